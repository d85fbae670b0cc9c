package layout

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"strings"

	"github.com/ByLCY/fesscard/config"
	"github.com/ByLCY/fesscard/fonts"
)

const (
	blockGap       = 10.0 // logo、handle、prompt 之间的间距
	lineBoxSlack   = 10.0 // handle/prompt 的高度上限 = 起始字号 + slack
	textAreaGap    = 20.0 // prompt 与正文区域之间
	contentSpacing = 30.0 // 垂直居中时 date 与 body 之间预留的总间距
	dateGap        = 10.0 // 实际绘制时 date 与 body 之间的间距
	dateShare      = 0.10
	bodyShare      = 0.85 // 与 dateShare 之间剩余的 5% 不分配，居中按实测高度计算
)

// Content 是单张卡片需要排版的文本，handle/prompt 已完成占位符替换。
type Content struct {
	Position int
	Handle   string
	Prompt   string
	Date     string
	Body     string
}

// Build 计算一张卡片的全部元素位置。各文本块自上而下依次堆叠：
// 每一步的位置都依赖上一步的实测高度。某一步失败只会省略该元素，
// 位置退回 DefaultAnchor，后续步骤继续执行。
func Build(cfg config.Config, content Content, opts BuildOptions) (*Card, error) {
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}
	size := float64(cfg.Size)
	b := &cardBuilder{
		cfg:  cfg,
		ts:   opts.Typesetter,
		log:  opts.logger().With(slog.Int("position", content.Position)),
		size: size,
		card: &Card{
			Position:   content.Position,
			Size:       size,
			Background: cfg.Background,
			Font: FontResource{
				Name:     "Card",
				Src:      cfg.FontPath,
				Fallback: fonts.FallbackSrc,
			},
		},
	}

	b.borders()
	b.watermark()
	cursorY := b.logo(opts.LogoSize)

	bw := float64(cfg.BorderWidth)
	pad := float64(cfg.Padding)
	lineWidth := size - 4*bw - 2*pad

	handle, _ := b.place(RoleHandle, content.Handle, cfg.Handle, Box{Width: lineWidth, Height: float64(cfg.Handle.Size) + lineBoxSlack}, cursorY)
	prompt, _ := b.place(RolePrompt, content.Prompt, cfg.Prompt, Box{Width: lineWidth, Height: float64(cfg.Prompt.Size) + lineBoxSlack}, handle.Y+handle.Height+blockGap)

	area := Area{
		Top:    prompt.Y + prompt.Height + textAreaGap,
		Bottom: size - 2*bw - pad,
		Left:   2*bw + pad,
		Right:  size - 2*bw - pad,
	}
	b.card.TextArea = area

	date, dateOK := b.place(RoleDate, content.Date, cfg.Date, Box{Width: area.Width(), Height: area.Height() * dateShare}, 0)
	body, bodyOK := b.place(RoleBody, content.Body, cfg.Body, Box{Width: area.Width(), Height: area.Height() * bodyShare}, 0)

	combined := date.Height + body.Height + contentSpacing
	startY := area.Top + (area.Height()-combined)/2
	startY = math.Max(startY, bw+pad)

	if dateOK {
		b.moveText(RoleDate, startY)
	}
	startY += date.Height + dateGap
	if bodyOK {
		b.moveText(RoleBody, startY)
	}
	return b.card, nil
}

type cardBuilder struct {
	cfg  config.Config
	ts   Typesetter
	log  *slog.Logger
	size float64
	card *Card
}

// borders 生成三层同心边框，每层向内收缩一个边框宽度。
func (b *cardBuilder) borders() {
	bw := float64(b.cfg.BorderWidth)
	if bw <= 0 {
		return
	}
	for i, c := range b.cfg.BorderColors {
		inset := float64(i) * bw
		b.card.Borders = append(b.card.Borders, Rect{
			X:           inset,
			Y:           inset,
			Width:       b.size - 2*inset,
			Height:      b.size - 2*inset,
			StrokeColor: c,
			StrokeWidth: bw,
		})
	}
}

// watermark 从 -size 平铺到 2*size，即使以后加上旋转也能覆盖整张画布。
func (b *cardBuilder) watermark() {
	wm := b.cfg.Watermark
	if wm.Text == "" || wm.Opacity <= 0 || wm.Spacing <= 0 {
		return
	}
	b.card.Watermark = &Watermark{
		Text:     wm.Text,
		FontSize: wm.Size,
		Color:    wm.Color,
		Opacity:  wm.Opacity,
		Spacing:  float64(wm.Spacing),
		From:     -b.size,
		To:       2 * b.size,
	}
}

// logo 放置 logo 并返回其下方第一个文本块的 y 坐标。
// 没有 logo 时从顶部内缩处开始，logo 高度按 0 计算。
func (b *cardBuilder) logo(logoSize image.Point) float64 {
	top := 2*float64(b.cfg.BorderWidth) + math.Floor(float64(b.cfg.Padding)/2)
	if logoSize.X <= 0 || logoSize.Y <= 0 {
		return top + blockGap
	}
	w, h := float64(logoSize.X), float64(logoSize.Y)
	b.card.Logo = &ImageBox{
		Src:    LogoSrc,
		X:      math.Floor((b.size - w) / 2),
		Y:      top,
		Width:  w,
		Height: h,
	}
	return top + h + blockGap
}

// place 适配文本并水平居中。失败时返回位于 DefaultAnchor、高度为 0 的占位块，
// 且不加入卡片。
func (b *cardBuilder) place(role Role, text string, style config.TextStyle, box Box, y float64) (TextBox, bool) {
	fitted, err := Fit(b.ts, text, box, FitOptions{
		Font:        b.card.Font,
		StartSize:   style.Size,
		MinSize:     b.cfg.MinFontSize,
		WrapColumns: b.cfg.WrapColumns,
	})
	if err != nil {
		b.log.Warn("文本适配失败，跳过该文本块", slog.String("role", string(role)), slog.Any("error", err))
		return TextBox{Role: role, X: DefaultAnchor.X, Y: DefaultAnchor.Y}, false
	}
	if !fitted.Fits {
		b.log.Warn("最小字号下文本仍然溢出",
			slog.String("role", string(role)),
			slog.Int("size", fitted.Size),
			slog.Int("width", fitted.Width),
			slog.Int("height", fitted.Height),
			slog.Float64("maxWidth", box.Width),
			slog.Float64("maxHeight", box.Height))
	}
	tb := TextBox{
		Role:     role,
		Content:  fitted.Text,
		X:        math.Floor((b.size - float64(fitted.Width)) / 2),
		Y:        y,
		Width:    float64(fitted.Width),
		Height:   float64(fitted.Height),
		FontSize: fitted.Size,
		Color:    style.Color,
		Fits:     fitted.Fits,
	}
	b.card.Texts = append(b.card.Texts, tb)
	b.log.Debug("文本适配完成", slog.String("role", string(role)), slog.Int("size", tb.FontSize), slog.Int("lines", strings.Count(tb.Content, "\n")+1))
	return tb, true
}

func (b *cardBuilder) moveText(role Role, y float64) {
	for i := range b.card.Texts {
		if b.card.Texts[i].Role == role {
			b.card.Texts[i].Y = y
		}
	}
}
