package layout

import "math"

// 画布按 1 单位 = 1 像素光栅化；tdewolff/canvas 内部以 mm 为长度单位、以 pt 为字号单位，
// 因此像素字号需要按 mm→pt 换算后再创建字体面。
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// PxToPt 将像素字号转换为 pt。
func PxToPt(px float64) float64 { return px * MmToPt }

// PtToPx 将 pt 转换为像素。
func PtToPx(pt float64) float64 { return pt * PtToMm }

// ceilPx 将测量结果向上取整为整像素，保证取整后的尺寸不小于实际尺寸。
func ceilPx(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Ceil(v - 1e-9))
}
