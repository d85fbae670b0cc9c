package record

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

type summary struct {
	Position int
	Date     string
	Text     string
	Promoted bool
}

func summarize(cs []Confession) []summary {
	out := make([]summary, 0, len(cs))
	for _, c := range cs {
		out = append(out, summary{c.Position, c.Date, c.Text, c.Promoted})
	}
	return out
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "confessions.json", `[
		{"date": "2024-01-05", "text": "first"},
		{"date": "2024-01-06", "text": "ad", "promoted": true},
		"not a record",
		{"text": "no date"},
		{"date": "2024-01-08", "promoted": 0},
		{"date": null, "text": "null date", "promoted": "yes"}
	]`)
	got, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := []summary{
		{1, "2024-01-05", "first", false},
		{2, "2024-01-06", "ad", true},
		{4, DefaultDate, "no date", false},
		{5, "2024-01-08", DefaultText, false},
		{6, DefaultDate, "null date", true},
	}
	if diff := cmp.Diff(want, summarize(got)); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "confessions.yaml", `
- date: "2024-02-01"
  text: from yaml
- date: "2024-02-02"
  text: promoted
  promoted: true
`)
	got, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := []summary{
		{1, "2024-02-01", "from yaml", false},
		{2, "2024-02-02", "promoted", true},
	}
	if diff := cmp.Diff(want, summarize(got)); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEmptyList(t *testing.T) {
	got, err := Load(writeFile(t, "empty.json", `[]`), nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}

func TestLoadFatalErrors(t *testing.T) {
	tests := map[string]string{
		"object.json": `{"date": "2024-01-05"}`,
		"broken.json": `[{"date": `,
		"scalar.yaml": `hello`,
		"empty.json":  ``,
	}
	for name, content := range tests {
		if _, err := Load(writeFile(t, name, content), nil); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json"), nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestTextIsNFCNormalized(t *testing.T) {
	// "e" + U+0301 应合并为 U+00E9
	path := writeFile(t, "nfc.json", `[{"date": "x", "text": "cafe\u0301"}]`)
	got, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got[0].Text != "caf\u00e9" {
		t.Fatalf("expected NFC text, got %q", got[0].Text)
	}
}

func TestFields(t *testing.T) {
	path := writeFile(t, "fields.json", `[{"date": "2024-01-05", "text": "hi", "author": "anon"}]`)
	got, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	fields := got[0].Fields()
	if fields["position"] != 1 || fields["author"] != "anon" || fields["date"] != "2024-01-05" {
		t.Fatalf("unexpected fields: %v", fields)
	}
}
