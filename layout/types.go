package layout

import "github.com/ByLCY/fesscard/config"

// 该文件定义卡片布局结果，供布局计算、渲染与调试 JSON 共用。
// 坐标单位均为像素，原点位于画布左上角。

// Role 标识卡片上的文本块。
type Role string

const (
	RoleHandle Role = "handle"
	RolePrompt Role = "prompt"
	RoleDate   Role = "date"
	RoleBody   Role = "body"
)

// Card 保存单张卡片布局后的全部元素。
type Card struct {
	Position   int          `json:"position"`
	Size       float64      `json:"size"`
	Background config.Color `json:"background"`
	Font       FontResource `json:"font"`
	Borders    []Rect       `json:"borders"`
	Watermark  *Watermark   `json:"watermark,omitempty"`
	Logo       *ImageBox    `json:"logo,omitempty"`
	TextArea   Area         `json:"textArea"`
	Texts      []TextBox    `json:"texts"`
}

// Text 按角色查找文本块。
func (c *Card) Text(role Role) (TextBox, bool) {
	for _, tb := range c.Texts {
		if tb.Role == role {
			return tb, true
		}
	}
	return TextBox{}, false
}

// FontResource 描述字体资源，src 可以是文件路径或 embed:* 形式。
type FontResource struct {
	Name     string `json:"name"`
	Src      string `json:"src"`
	Fallback string `json:"fallback"`
}

// Point 是画布上的一个坐标。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DefaultAnchor 是前一步测量不可用时使用的兜底位置。
var DefaultAnchor = Point{X: 0, Y: 0}

// Box 是文本适配时允许的最大宽高。
type Box struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area 记录正文区域的四条边。
type Area struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// Width 返回区域宽度。
func (a Area) Width() float64 { return a.Right - a.Left }

// Height 返回区域高度。
func (a Area) Height() float64 { return a.Bottom - a.Top }

// FittedText 是适配算法的结果。Text 为按列宽折行后以 \n 连接的文本。
type FittedText struct {
	Size   int    `json:"size"`
	Text   string `json:"text"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Fits   bool   `json:"fits"` // false 表示已退到最小字号仍然溢出
}

// TextBox 表示一个已经排好坐标、居中绘制的文本块。
type TextBox struct {
	Role     Role         `json:"role"`
	Content  string       `json:"content"`
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Width    float64      `json:"width"`
	Height   float64      `json:"height"`
	FontSize int          `json:"fontSize"`
	Color    config.Color `json:"color"`
	Fits     bool         `json:"fits"`
}

// CenterX 返回文本块的水平中心。
func (tb TextBox) CenterX() float64 { return tb.X + tb.Width/2 }

// Rect 表示一个描边矩形（边框）。
type Rect struct {
	X           float64      `json:"x"`
	Y           float64      `json:"y"`
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	StrokeColor config.Color `json:"strokeColor"`
	StrokeWidth float64      `json:"strokeWidth"`
}

// Watermark 描述水印层：文本从 From 开始按 Spacing 网格平铺到 To（不含）。
type Watermark struct {
	Text     string       `json:"text"`
	FontSize int          `json:"fontSize"`
	Color    config.Color `json:"color"`
	Opacity  int          `json:"opacity"`
	Spacing  float64      `json:"spacing"`
	From     float64      `json:"from"`
	To       float64      `json:"to"`
}

// Tiles 返回每个水印文本左上角的位置。
func (w *Watermark) Tiles() []Point {
	if w == nil || w.Spacing <= 0 {
		return nil
	}
	var tiles []Point
	for x := w.From; x < w.To; x += w.Spacing {
		for y := w.From; y < w.To; y += w.Spacing {
			tiles = append(tiles, Point{X: x, Y: y})
		}
	}
	return tiles
}

// LogoSrc 指向渲染器内置的 logo 图片资源。
const LogoSrc = "built-in:logo"

// ImageBox 用于描述图片位置与尺寸。
type ImageBox struct {
	Src    string  `json:"src"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
