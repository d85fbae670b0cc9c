package renderer

import (
	"image"

	"github.com/ByLCY/fesscard/layout"
)

// Renderer 将卡片布局绘制为位图。
// 单个元素绘制失败只记录日志，Render 仍返回尽可能完整的图像。
type Renderer interface {
	Render(card *layout.Card) (*image.RGBA, error)
}
