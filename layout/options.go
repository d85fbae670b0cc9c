package layout

import (
	"image"
	"io"
	"log/slog"
)

// BuildOptions 配置布局阶段所需的依赖，例如排版后端。
type BuildOptions struct {
	Typesetter Typesetter
	// LogoSize 为缩放后 logo 的像素尺寸，零值表示没有 logo。
	LogoSize image.Point
	Logger   *slog.Logger
}

func (o BuildOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// Typesetter 负责测量以 \n 分行、居中对齐的文本块。
// size 为像素字号；返回的宽为最宽一行，高包含行间距。
type Typesetter interface {
	MeasureText(content string, font FontResource, size float64) (width, height float64, err error)
}
