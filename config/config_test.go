package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestLoadOverlaysSheet(t *testing.T) {
	sheet := `card toronto {
  size: 800
  padding: 40px
  border-colors: [#ff0000, #dd0000, #bb0000]
  font: "fonts/Other.ttf"
  handle { text: "@Fess ${position}"; size: 36 }
  body { color: #eeeeee }
  watermark { text: "TO"; opacity: 30 }
  logo { src: "logo.png"; width: 120; height: 80 }
}
`
	path := filepath.Join(t.TempDir(), "style.card")
	if err := os.WriteFile(path, []byte(sheet), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := Default()
	want.Size = 800
	want.Padding = 40
	want.BorderColors = [3]Color{{255, 0, 0}, {221, 0, 0}, {187, 0, 0}}
	want.FontPath = "fonts/Other.ttf"
	want.Handle.Text = "@Fess ${position}"
	want.Handle.Size = 36
	want.Body.Color = Color{238, 238, 238}
	want.Watermark.Text = "TO"
	want.Watermark.Opacity = 30
	want.LogoPath = "logo.png"
	want.LogoWidth = 120
	want.LogoHeight = 80
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.card")
	if err := os.WriteFile(path, []byte("card x {\n  colour: #fff\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestValidateRejectsBadGeometry(t *testing.T) {
	cases := map[string]func(*Config){
		"zero size":       func(c *Config) { c.Size = 0 },
		"padding too big": func(c *Config) { c.Padding = 600 },
		"zero spacing":    func(c *Config) { c.Watermark.Spacing = 0 },
		"opacity":         func(c *Config) { c.Watermark.Opacity = 300 },
		"min font":        func(c *Config) { c.MinFontSize = 0 },
		"body size":       func(c *Config) { c.Body.Size = -1 },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]Color{
		"#c80000":   {200, 0, 0},
		"#fff":      {255, 255, 255},
		"#0a0b0cff": {10, 11, 12},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseColor(%q) = %+v, want %+v", in, got, want)
		}
	}
	if _, err := ParseColor("#12"); err == nil {
		t.Fatalf("expected error for short color")
	}
	if got := (Color{200, 0, 0}).Hex(); got != "#c80000" {
		t.Fatalf("Hex mismatch: %s", got)
	}
}

func TestLoadLogoShorthand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.card")
	if err := os.WriteFile(path, []byte("card x {\n  logo \"brand.webp\" { width: 150 }\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.LogoPath != "brand.webp" || got.LogoWidth != 150 || got.LogoHeight != 200 {
		t.Fatalf("unexpected logo config: %q %dx%d", got.LogoPath, got.LogoWidth, got.LogoHeight)
	}
}
