package asset

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{10, 20, 200, 255})
		}
	}
	return img
}

func TestThumbnailKeepsAspectRatio(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		maxW, maxH int
		want       image.Point
	}{
		{"square", 400, 400, 200, 200, image.Pt(200, 200)},
		{"wide", 800, 400, 200, 200, image.Pt(200, 100)},
		{"tall", 300, 600, 200, 200, image.Pt(100, 200)},
		{"small stays", 50, 80, 200, 200, image.Pt(50, 80)},
		{"unbounded", 120, 60, 0, 0, image.Pt(120, 60)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Thumbnail(solid(tt.w, tt.h), tt.maxW, tt.maxH).Bounds().Size()
			if got != tt.want {
				t.Fatalf("Thumbnail(%dx%d, %dx%d) = %v, want %v", tt.w, tt.h, tt.maxW, tt.maxH, got, tt.want)
			}
		})
	}
}

func TestLoadLogoDecodesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, solid(400, 200)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	img, err := LoadLogo(path, 200, 200)
	if err != nil {
		t.Fatalf("LoadLogo error: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(200, 100) {
		t.Fatalf("unexpected logo size %v", got)
	}
	r, g, b, _ := img.At(100, 50).RGBA()
	if r>>8 > 30 || g>>8 > 40 || b>>8 < 180 {
		t.Fatalf("unexpected scaled color %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestLoadLogoErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadLogo(filepath.Join(dir, "missing.png"), 200, 200); err == nil {
		t.Fatalf("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadLogo(bad, 200, 200); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := LoadLogo("", 200, 200); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
