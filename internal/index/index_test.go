package index

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"carpetqr/internal/domain"
)

func TestSearch(t *testing.T) {
	idx := New()
	idx.Replace([]Entry{
		{CarpetID: "buhari-001", Name: "Anatolia Kilim"},
		{CarpetID: "k-17", Name: "Kars"},
		{CarpetID: "k-18", Name: "Van"},
	})

	if got := idx.Search("anatolia", 0); len(got) != 1 || got[0].CarpetID != "buhari-001" {
		t.Fatalf("name match = %v", got)
	}
	if got := idx.Search("K-1", 0); len(got) != 2 {
		t.Fatalf("id match = %v", got)
	}
	if got := idx.Search("", 2); len(got) != 2 {
		t.Fatalf("empty query with limit = %v", got)
	}
	if got := idx.Search("yok", 0); len(got) != 0 {
		t.Fatalf("no match = %v", got)
	}
	if idx.Size() != 3 {
		t.Fatalf("size = %d", idx.Size())
	}
}

func TestEntryFromDoc(t *testing.T) {
	doc := domain.CarpetDoc{
		CarpetID: "k-1",
		Properties: map[string]any{
			domain.FieldName:      "Anatolia",
			domain.FieldModel:     "M7",
			domain.FieldPatternNo: "P-3",
			"content_hash":        12345, // 非字符串字段忽略
		},
	}
	e := EntryFromDoc(doc)
	if e.CarpetID != "k-1" || e.Name != "Anatolia" || e.Model != "M7" || e.PatternNo != "P-3" {
		t.Fatalf("entry = %+v", e)
	}

	empty := EntryFromDoc(domain.CarpetDoc{CarpetID: "k-2"})
	if empty.Name != "" || empty.Model != "" {
		t.Fatalf("entry from bare doc = %+v", empty)
	}
}

func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "carpet_index_last_fetch")
	st := NewState(path)

	if _, ok := st.LastFetch(); ok {
		t.Fatal("fresh state must report no record")
	}
	if !st.Stale(time.Hour) {
		t.Fatal("never-fetched index must be stale")
	}

	at := time.UnixMilli(1700000000123)
	if err := st.Stamp(at); err != nil {
		t.Fatalf("Stamp: %v", err)
	}
	got, ok := st.LastFetch()
	if !ok || !got.Equal(at) {
		t.Fatalf("LastFetch = %v ok=%v, want %v", got, ok, at)
	}
	if st.Stale(100 * 365 * 24 * time.Hour) {
		t.Fatal("freshly stamped index reported stale")
	}
	if !st.Stale(time.Millisecond) {
		t.Fatal("old stamp must be stale under tiny max age")
	}
}

func TestStateRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carpet_index_last_fetch")
	st := NewState(path)
	if err := st.Stamp(time.Now()); err != nil {
		t.Fatalf("Stamp: %v", err)
	}
	if err := os.WriteFile(path, []byte("not a number"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := st.LastFetch(); ok {
		t.Fatal("garbage content must read as no record")
	}
}

type fakeSource struct {
	docs []domain.CarpetDoc
	err  error
}

func (f *fakeSource) FetchAll(context.Context) ([]domain.CarpetDoc, error) {
	return f.docs, f.err
}

func TestBuilderRebuild(t *testing.T) {
	src := &fakeSource{docs: []domain.CarpetDoc{
		{CarpetID: "k-1", Properties: map[string]any{domain.FieldName: "Anatolia"}},
		{CarpetID: "k-2"},
	}}
	idx := New()
	st := NewState(filepath.Join(t.TempDir(), "last_fetch"))
	b, err := NewBuilder(src, idx, st, nil)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}

	n, err := b.Rebuild(context.Background())
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if n != 2 || idx.Size() != 2 {
		t.Fatalf("rebuilt %d entries, index size %d", n, idx.Size())
	}
	if b.Stale(time.Hour) {
		t.Fatal("index stale right after rebuild")
	}
}

func TestBuilderKeepsIndexOnFetchFailure(t *testing.T) {
	src := &fakeSource{docs: []domain.CarpetDoc{{CarpetID: "k-1"}}}
	idx := New()
	st := NewState(filepath.Join(t.TempDir(), "last_fetch"))
	b, err := NewBuilder(src, idx, st, nil)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if _, err := b.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	src.err = errors.New("连接被拒绝")
	if _, err := b.Rebuild(context.Background()); err == nil {
		t.Fatal("expect error from failed fetch")
	}
	if idx.Size() != 1 {
		t.Fatalf("failed rebuild clobbered index, size %d", idx.Size())
	}
	if b.Stale(time.Hour) {
		t.Fatal("failed rebuild must keep previous stamp")
	}
}
