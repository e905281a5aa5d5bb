package imports

import (
	"errors"
	"strings"
	"testing"

	"carpetqr/internal/domain"
)

func TestParseRejectsEmptyFile(t *testing.T) {
	for _, raw := range []string{"", "\n\n", "\r\n  \r\n"} {
		if _, err := Parse(raw); !errors.Is(err, ErrEmptyFile) {
			t.Fatalf("Parse(%q) err = %v, want ErrEmptyFile", raw, err)
		}
	}
}

func TestParseRejectsBadHeaderBeforeRows(t *testing.T) {
	raw := "ID;CARPET_NAME;MODEL\nk-1;Anatolia;M7\nk-2;Kars;M8\n"
	_, err := Parse(raw)
	if !errors.Is(err, ErrBadHeader) {
		t.Fatalf("err = %v, want ErrBadHeader", err)
	}

	raw = "CARPET_NAME;IMAGE_URL\nAnatolia;http://x/1.png\n"
	if _, err := Parse(raw); !errors.Is(err, ErrBadHeader) {
		t.Fatalf("header without ID: err = %v, want ErrBadHeader", err)
	}
}

func TestParseRowsAndRejections(t *testing.T) {
	header := "#;ID;CINS;CARPET_NAME;QR_TEXT;DESEN_NO;IMAGE_URL;EBAT;RENK;KALITE;STOK;FIYAT;DEPO;RAF;NOT"
	if got := len(strings.Split(header, ";")); got != 15 {
		t.Fatalf("fixture header has %d columns", got)
	}
	raw := strings.Join([]string{
		header,
		// 列数跟表头齐，通过。
		"1;k-1;M7;Anatolia;HALI:k-1;P-3;http://x/1.png;;;;;;;;",
		// 只有 10 列：按行拒绝。
		"2;k-2;M8;Kars;HALI:k-2;P-4;http://x/2.png;;;",
		// ID 空白：按行拒绝。
		"3;  ;M9;Van;HALI:k-3;P-5;http://x/3.png;;;;;;;;",
		"",
		"4;k-4;M10;Sivas;HALI:k-4;P-6;http://x/4.png;;;;;;;;",
	}, "\n")

	file, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(file.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(file.Records))
	}
	if file.Rejected != 2 {
		t.Fatalf("rejected = %d, want 2", file.Rejected)
	}
	if file.Records[0].ID != "k-1" || file.Records[1].ID != "k-4" {
		t.Fatalf("record ids = %q, %q", file.Records[0].ID, file.Records[1].ID)
	}
}

func TestParseBlankCellsAbsent(t *testing.T) {
	raw := "ID;CARPET_NAME;MODEL;IMAGE_URL\nk-1;Anatolia;;http://x/1.png\n"
	file, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	row := file.Records[0]
	if _, ok := row.Fields[domain.ColModel]; ok {
		t.Fatal("blank MODEL cell must be absent, not empty")
	}
	if row.Fields[domain.ColName] != "Anatolia" {
		t.Fatalf("CARPET_NAME = %q", row.Fields[domain.ColName])
	}
}

func TestParseDuplicateHeaderFirstWins(t *testing.T) {
	raw := "ID;MODEL;MODEL;IMAGE_URL\nk-1;first;second;http://x/1.png\n"
	file, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := file.Records[0].Fields[domain.ColModel]; got != "first" {
		t.Fatalf("MODEL = %q, want first occurrence", got)
	}
}

func TestParseCleansImageColumns(t *testing.T) {
	raw := "ID;IMAGE_URL;IMG_URL\nk-1;\"\"\"http://x/1.png\"\"\";  \"http://x/alt.png\"  \n"
	file, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	row := file.Records[0]
	if row.Fields[domain.ColImageURL] != "http://x/1.png" {
		t.Fatalf("IMAGE_URL = %q", row.Fields[domain.ColImageURL])
	}
	if row.Fields[domain.ColImageAlt] != "http://x/alt.png" {
		t.Fatalf("IMG_URL = %q", row.Fields[domain.ColImageAlt])
	}
}

func TestParseHandlesCRLFAndExtraColumns(t *testing.T) {
	raw := "ID;IMAGE_URL\r\nk-1;http://x/1.png;trailing;extra\r\n"
	file, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// 多出的列没有表头名，按行仍然通过。
	if len(file.Records) != 1 || file.Rejected != 0 {
		t.Fatalf("records = %d rejected = %d", len(file.Records), file.Rejected)
	}
}

func TestCleanURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{`"""http://x/1.png"""`, "http://x/1.png"},
		{`"http://x/1.png"`, "http://x/1.png"},
		{`  " http://x/1.png " `, "http://x/1.png"},
		{"http://x/1.png", "http://x/1.png"},
		{"", ""},
		{`""`, ""},
	}
	for _, c := range cases {
		if got := CleanURL(c.in); got != c.want {
			t.Fatalf("CleanURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
	for _, c := range cases {
		once := CleanURL(c.in)
		if twice := CleanURL(once); twice != once {
			t.Fatalf("CleanURL not idempotent on %q: %q -> %q", c.in, once, twice)
		}
	}
}
