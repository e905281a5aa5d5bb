package imports

import (
	"context"
	"errors"
	"strings"
	"testing"

	"carpetqr/internal/domain"
)

func TestRunnerEndToEnd(t *testing.T) {
	raw := strings.Join([]string{
		"ID;CARPET_NAME;CINS;DESEN_NO;IMAGE_URL",
		`k-1;Anatolia;M7;P-3;"""http://x/1.png"""`,
		"k-2;Kars;M8;P-4;http://x/2.png",
		";NoID;M9;P-5;http://x/3.png",
	}, "\n")

	rec := &recordCommitter{}
	runner, err := NewRunner(rec, 10, nil)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	summary, err := runner.Run(context.Background(), raw)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Succeeded != 2 || summary.Failed != 1 || summary.Commits != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.RunID == "" {
		t.Fatal("summary missing run id")
	}

	rows := rec.batches[0]
	if len(rows) != 2 {
		t.Fatalf("committed rows = %d", len(rows))
	}
	first := rows[0]
	if first.CarpetID != "k-1" || first.RunID != summary.RunID {
		t.Fatalf("first row = %+v", first)
	}
	// 兼容字段从备选列名推导。
	if first.Properties[domain.FieldCode] != "k-1" {
		t.Fatalf("code = %v", first.Properties[domain.FieldCode])
	}
	if first.Properties[domain.FieldName] != "Anatolia" {
		t.Fatalf("name = %v", first.Properties[domain.FieldName])
	}
	if first.Properties[domain.FieldModel] != "M7" {
		t.Fatalf("model = %v", first.Properties[domain.FieldModel])
	}
	if first.Properties[domain.FieldPatternNo] != "P-3" {
		t.Fatalf("patternNo = %v", first.Properties[domain.FieldPatternNo])
	}
	if first.Properties[domain.FieldImageURL] != "http://x/1.png" {
		t.Fatalf("imageUrl = %v", first.Properties[domain.FieldImageURL])
	}
	if first.Properties["content_hash"] == "" {
		t.Fatal("content_hash missing")
	}
	// 原始列名也要保留。
	if first.Properties[domain.ColModelAlt] != "M7" {
		t.Fatalf("raw CINS = %v", first.Properties[domain.ColModelAlt])
	}
}

func TestRunnerCompatFieldsDefaultEmpty(t *testing.T) {
	rec := &recordCommitter{}
	runner, err := NewRunner(rec, 10, nil)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if _, err := runner.Run(context.Background(), "ID;IMAGE_URL\nk-1;\n"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	row := rec.batches[0][0]
	for _, field := range []string{domain.FieldName, domain.FieldModel, domain.FieldPatternNo, domain.FieldImageURL} {
		if v, ok := row.Properties[field]; !ok || v != "" {
			t.Fatalf("%s = %v (present=%v), want empty string", field, v, ok)
		}
	}
}

func TestRunnerRejectsBadFileWithoutCommits(t *testing.T) {
	rec := &recordCommitter{}
	runner, err := NewRunner(rec, 10, nil)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	if _, err := runner.Run(context.Background(), ""); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("empty file err = %v", err)
	}
	if _, err := runner.Run(context.Background(), "ID;MODEL\nk-1;M7\n"); !errors.Is(err, ErrBadHeader) {
		t.Fatalf("bad header err = %v", err)
	}
	if len(rec.sizes) != 0 {
		t.Fatalf("rejected file must not commit, got %v", rec.sizes)
	}
}

func TestRunnerReportsCommitFailureWithCounts(t *testing.T) {
	boom := errors.New("数据库不可达")
	rec := &recordCommitter{failOn: map[int]error{1: boom}}
	runner, err := NewRunner(rec, 1, nil)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	raw := "ID;IMAGE_URL\nk-1;http://x/1.png\nk-2;http://x/2.png\n"
	summary, err := runner.Run(context.Background(), raw)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped commit failure", err)
	}
	// 行计数不受提交失败影响。
	if summary.Succeeded != 2 || summary.Failed != 0 || summary.Commits != 2 {
		t.Fatalf("summary = %+v", summary)
	}
}
