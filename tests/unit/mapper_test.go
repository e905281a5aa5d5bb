package unit

import (
	"testing"
	"time"

	"carpetqr/internal/domain"
	"carpetqr/internal/imports"
)

func TestBuildCarpetRowCompatFields(t *testing.T) {
	row := imports.Row{
		Line: 2,
		ID:   "buhari-001",
		Fields: map[string]string{
			"NAME":     "Anatolia",
			"CINS":     "M7",
			"DESEN_NO": "P-3",
			"IMG_URL":  `"http://x/1.png"`,
		},
	}
	got := imports.BuildCarpetRow(row, "run-1", time.Unix(1700000000, 0))

	if got.CarpetID != "buhari-001" || got.RunID != "run-1" {
		t.Fatalf("unexpected row %+v", got)
	}
	if got.Properties[domain.FieldCode] != "buhari-001" {
		t.Fatalf("code = %v", got.Properties[domain.FieldCode])
	}
	if got.Properties[domain.FieldName] != "Anatolia" {
		t.Fatalf("name = %v", got.Properties[domain.FieldName])
	}
	if got.Properties[domain.FieldModel] != "M7" {
		t.Fatalf("model = %v", got.Properties[domain.FieldModel])
	}
	if got.Properties[domain.FieldPatternNo] != "P-3" {
		t.Fatalf("patternNo = %v", got.Properties[domain.FieldPatternNo])
	}
	if got.Properties[domain.FieldImageURL] != "http://x/1.png" {
		t.Fatalf("imageUrl = %v", got.Properties[domain.FieldImageURL])
	}
	if got.Properties["CINS"] != "M7" {
		t.Fatalf("raw column lost: %v", got.Properties["CINS"])
	}
	if got.Properties["content_hash"] == "" {
		t.Fatal("content_hash missing")
	}
}

func TestBuildCarpetRowPrimaryColumnWins(t *testing.T) {
	row := imports.Row{
		ID: "k-1",
		Fields: map[string]string{
			"CARPET_NAME": "Primary",
			"NAME":        "Fallback",
		},
	}
	got := imports.BuildCarpetRow(row, "run-1", time.Unix(1700000000, 0))
	if got.Properties[domain.FieldName] != "Primary" {
		t.Fatalf("name = %v", got.Properties[domain.FieldName])
	}
}
