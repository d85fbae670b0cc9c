package config

import (
	"fmt"
)

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// TextStyle 描述一类文本（handle/prompt/date/body）的起始字号与颜色。
// Text 仅对 handle 与 prompt 有意义，可包含 ${position} 等占位符。
type TextStyle struct {
	Text  string `json:"text,omitempty"`
	Size  int    `json:"size"`
	Color Color  `json:"color"`
}

// Watermark 描述平铺水印。Opacity 取值 0-255。
type Watermark struct {
	Text    string `json:"text"`
	Size    int    `json:"size"`
	Color   Color  `json:"color"`
	Opacity int    `json:"opacity"`
	Spacing int    `json:"spacing"`
}

// Config 是整个进程共享的只读渲染配置，启动时构造一次后按值传递。
type Config struct {
	Size         int       `json:"size"` // 画布边长（像素）
	Background   Color     `json:"background"`
	BorderColors [3]Color  `json:"borderColors"` // 由外到内
	BorderWidth  int       `json:"borderWidth"`
	Padding      int       `json:"padding"`
	FontPath     string    `json:"fontPath"`
	WrapColumns  int       `json:"wrapColumns"`
	MinFontSize  int       `json:"minFontSize"`
	Handle       TextStyle `json:"handle"`
	Prompt       TextStyle `json:"prompt"`
	Date         TextStyle `json:"date"`
	Body         TextStyle `json:"body"`
	Watermark    Watermark `json:"watermark"`
	LogoPath     string    `json:"logoPath"`
	LogoWidth    int       `json:"logoWidth"`
	LogoHeight   int       `json:"logoHeight"`
	OutputDir    string    `json:"outputDir"`
	InputFile    string    `json:"inputFile"`
}

// Default 返回 FessToronto 使用的默认配置。
func Default() Config {
	return Config{
		Size:       1080,
		Background: Color{0, 0, 0},
		BorderColors: [3]Color{
			{200, 0, 0},
			{170, 0, 0},
			{150, 0, 0},
		},
		BorderWidth: 6,
		Padding:     60,
		FontPath:    "fonts/Eating Pasta.ttf",
		WrapColumns: 40,
		MinFontSize: 20,
		Handle:      TextStyle{Text: "@FessToronto", Size: 40, Color: Color{255, 0, 0}},
		Prompt:      TextStyle{Text: "Link in bio to submit your own!", Size: 40, Color: Color{255, 255, 255}},
		Date:        TextStyle{Size: 50, Color: Color{255, 0, 0}},
		Body:        TextStyle{Size: 60, Color: Color{255, 255, 255}},
		Watermark: Watermark{
			Text:    "FESS",
			Size:    80,
			Color:   Color{255, 0, 0},
			Opacity: 50,
			Spacing: 279,
		},
		LogoPath:   "logos/logo.png",
		LogoWidth:  200,
		LogoHeight: 200,
		OutputDir:  "output_images",
		InputFile:  "confessions.json",
	}
}

// Validate 检查无法绘制的几何配置。
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("画布尺寸必须为正数: %d", c.Size)
	}
	if c.BorderWidth < 0 || c.Padding < 0 {
		return fmt.Errorf("边框宽度与内边距不能为负数")
	}
	if 4*c.BorderWidth+2*c.Padding >= c.Size {
		return fmt.Errorf("边框与内边距 (%d, %d) 超出画布尺寸 %d", c.BorderWidth, c.Padding, c.Size)
	}
	if c.MinFontSize <= 0 {
		return fmt.Errorf("最小字号必须为正数: %d", c.MinFontSize)
	}
	if c.WrapColumns <= 0 {
		return fmt.Errorf("换行列宽必须为正数: %d", c.WrapColumns)
	}
	for name, style := range map[string]TextStyle{"handle": c.Handle, "prompt": c.Prompt, "date": c.Date, "body": c.Body} {
		if style.Size <= 0 {
			return fmt.Errorf("%s 字号必须为正数: %d", name, style.Size)
		}
	}
	if c.Watermark.Spacing <= 0 {
		return fmt.Errorf("水印间距必须为正数: %d", c.Watermark.Spacing)
	}
	if c.Watermark.Opacity < 0 || c.Watermark.Opacity > 255 {
		return fmt.Errorf("水印透明度超出 0-255: %d", c.Watermark.Opacity)
	}
	if c.LogoWidth < 0 || c.LogoHeight < 0 {
		return fmt.Errorf("logo 尺寸不能为负数")
	}
	return nil
}
