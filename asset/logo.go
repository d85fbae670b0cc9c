package asset

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LoadLogo 读取并解码 logo，然后缩放到 width×height 的框内。
func LoadLogo(path string, width, height int) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("未指定 logo 文件")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("读取 logo %s 失败: %w", path, err)
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("解码 logo %s 失败: %w", path, err)
	}
	return Thumbnail(src, width, height), nil
}

// Thumbnail 保持宽高比把 src 缩小到 maxW×maxH 以内，从不放大。
// 框尺寸非正时按不限制处理。
func Thumbnail(src image.Image, maxW, maxH int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxW > 0 && w > maxW {
		h = max(1, h*maxW/w)
		w = maxW
	}
	if maxH > 0 && h > maxH {
		w = max(1, w*maxH/h)
		h = maxH
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
