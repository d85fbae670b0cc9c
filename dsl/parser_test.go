package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/fesscard/dsl"
)

const sampleSheet = `
// FessToronto 默认样式
card fess {
  size: 1080
  background: #000000
  border-colors: [#c80000, #aa0000, #960000]
  font: "fonts/Eating Pasta.ttf"
  # 井号注释
  handle { text: "@FessToronto"; size: 40; color: #f00 }

  watermark {
    text: "FESS"
    opacity: 50
    enabled: true
  }
}
`

func TestParseSheet(t *testing.T) {
	sheet, err := dsl.Parse("sample.card", strings.NewReader(sampleSheet))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if sheet.Name != "fess" {
		t.Fatalf("expected sheet name fess, got %q", sheet.Name)
	}
	stmts := sheet.Block.Statements
	if len(stmts) != 6 {
		t.Fatalf("expected 6 statements, got %d", len(stmts))
	}

	size := stmts[0].Assignment
	if size == nil || size.Key != "size" || size.Value.Number == nil || *size.Value.Number != "1080" {
		t.Fatalf("unexpected size assignment: %+v", stmts[0])
	}
	bg := stmts[1].Assignment
	if bg == nil || bg.Value.Color == nil || *bg.Value.Color != "#000000" {
		t.Fatalf("unexpected background assignment: %+v", stmts[1])
	}
	borders := stmts[2].Assignment
	if borders == nil || borders.Value.Array == nil || len(borders.Value.Array.Values) != 3 {
		t.Fatalf("expected 3 border colors, got %+v", stmts[2])
	}
	if got := *borders.Value.Array.Values[1].Color; got != "#aa0000" {
		t.Fatalf("middle border color mismatch: %s", got)
	}
	font := stmts[3].Assignment
	if font == nil || font.Value.String == nil || string(*font.Value.String) != "fonts/Eating Pasta.ttf" {
		t.Fatalf("unexpected font assignment: %+v", stmts[3])
	}

	handle := stmts[4].Command
	if handle == nil || handle.Name != "handle" || handle.Block == nil {
		t.Fatalf("expected handle group, got %+v", stmts[4])
	}
	if len(handle.Block.Statements) != 3 {
		t.Fatalf("expected 3 handle properties, got %d", len(handle.Block.Statements))
	}
	if got := *handle.Block.Statements[2].Assignment.Value.Color; got != "#f00" {
		t.Fatalf("handle color mismatch: %s", got)
	}

	wm := stmts[5].Command
	if wm == nil || wm.Name != "watermark" || len(wm.Block.Statements) != 3 {
		t.Fatalf("unexpected watermark group: %+v", stmts[5])
	}
	enabled := wm.Block.Statements[2].Assignment
	if enabled.Value.Expr == nil || enabled.Value.Expr.Parts[0].Value != "true" {
		t.Fatalf("expected bare identifier expression, got %+v", enabled.Value)
	}
}

func TestParseSheetRejectsMissingHeader(t *testing.T) {
	if _, err := dsl.ParseString(`{ size: 1080 }`); err == nil {
		t.Fatalf("expected error for sheet without card header")
	}
}
