package layout

import (
	"fmt"
)

// FitOptions 控制一次适配搜索。
type FitOptions struct {
	Font        FontResource
	StartSize   int
	MinSize     int
	WrapColumns int
}

// Fit 从 StartSize 开始逐级减小字号（步长 1，直到 MinSize），返回第一个
// 宽高都不超过 box 的结果，即能放下的最大字号。全部失败时退回 MinSize，
// 此时 Fits 为 false，调用方需接受溢出。
//
// 某个字号测量失败只会跳过该字号；只有最小字号也无法测量时才返回错误。
func Fit(ts Typesetter, text string, box Box, opts FitOptions) (FittedText, error) {
	if ts == nil {
		return FittedText{}, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}
	// 折行只依赖列宽，与字号无关
	wrapped := Wrap(text, opts.WrapColumns)

	for size := opts.StartSize; size >= opts.MinSize; size-- {
		w, h, err := ts.MeasureText(wrapped, opts.Font, float64(size))
		if err != nil {
			continue
		}
		width, height := ceilPx(w), ceilPx(h)
		if float64(width) <= box.Width && float64(height) <= box.Height {
			return FittedText{Size: size, Text: wrapped, Width: width, Height: height, Fits: true}, nil
		}
	}

	fallback := FittedText{Size: opts.MinSize, Text: wrapped}
	w, h, err := ts.MeasureText(wrapped, opts.Font, float64(opts.MinSize))
	if err != nil {
		return fallback, fmt.Errorf("最小字号 %d 下测量文本失败: %w", opts.MinSize, err)
	}
	fallback.Width, fallback.Height = ceilPx(w), ceilPx(h)
	// StartSize < MinSize 时循环不会执行，最小字号仍可能放得下
	fallback.Fits = float64(fallback.Width) <= box.Width && float64(fallback.Height) <= box.Height
	return fallback, nil
}
