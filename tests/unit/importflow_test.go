package unit

import (
	"context"
	"errors"
	"testing"

	"carpetqr/internal/app"
	"carpetqr/internal/domain"
	"carpetqr/internal/imports"
)

type failTokenSource struct{ err error }

func (f *failTokenSource) Token(context.Context) (string, error) { return "", f.err }

type countCommitter struct{ calls int }

func (c *countCommitter) CommitBatch(context.Context, []domain.CarpetRow) error {
	c.calls++
	return nil
}

func TestImportFlowAbortsWhenAdminSignInFails(t *testing.T) {
	committer := &countCommitter{}
	runner, err := imports.NewRunner(committer, 10, nil)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	boom := errors.New("凭据无效")
	flow := &app.ImportFlow{
		Admin:  &failTokenSource{err: boom},
		Runner: runner,
	}

	_, err = flow.Run(context.Background(), "ID;IMAGE_URL\nk-1;http://x/1.png\n")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped sign-in failure", err)
	}
	if committer.calls != 0 {
		t.Fatalf("sign-in failure must abort before commits, got %d", committer.calls)
	}
}

func TestImportFlowRunsWithoutAdminGate(t *testing.T) {
	committer := &countCommitter{}
	runner, err := imports.NewRunner(committer, 10, nil)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	flow := &app.ImportFlow{Runner: runner}

	summary, err := flow.Run(context.Background(), "ID;IMAGE_URL\nk-1;http://x/1.png\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Succeeded != 1 || committer.calls != 1 {
		t.Fatalf("summary = %+v, commits = %d", summary, committer.calls)
	}
}
