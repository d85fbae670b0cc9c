package canvasrenderer

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"golang.org/x/image/draw"

	"github.com/ByLCY/fesscard/config"
	"github.com/ByLCY/fesscard/fonts"
	"github.com/ByLCY/fesscard/layout"
	"github.com/ByLCY/fesscard/renderer"
)

// LineSpacing 是多行文本相邻两行之间额外的像素间距。
const LineSpacing = 4.0

// Renderer draws cards via github.com/tdewolff/canvas.
// 画布按 1mm = 1px 光栅化，布局中的像素坐标可直接作为 canvas 坐标使用。
type Renderer struct {
	log *slog.Logger

	// injected resources
	images map[string]image.Image // by unique name

	fontMu         sync.Mutex
	fontFamilies   map[string]*canvas.FontFamily
	fallbackFamily *canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	Logger *slog.Logger
	Images map[string]image.Image // built-in images accessible via built-in:<name>
}

// NewRenderer creates a renderer with injected resources.
func NewRenderer(opts Options) *Renderer {
	r := &Renderer{
		log:          opts.Logger,
		images:       map[string]image.Image{},
		fontFamilies: map[string]*canvas.FontFamily{},
	}
	if r.log == nil {
		r.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	for name, img := range opts.Images {
		if name == "" || img == nil {
			continue
		}
		r.images[name] = img
	}
	return r
}

// MeasureText 实现 layout.Typesetter。宽为最宽一行，高为行高之和加行间距。
func (r *Renderer) MeasureText(content string, font layout.FontResource, size float64) (float64, float64, error) {
	if content == "" {
		return 0, 0, nil
	}
	face, err := r.fontFace(font, size, canvas.Black)
	if err != nil {
		return 0, 0, err
	}
	lines := strings.Split(content, "\n")
	width := 0.0
	for _, line := range lines {
		width = math.Max(width, face.TextWidth(line))
	}
	n := float64(len(lines))
	height := n*face.Metrics().LineHeight + (n-1)*LineSpacing
	return width, height, nil
}

// Render 依次绘制背景、边框、水印、logo 与文本。
// logo 与文本在两次光栅化之间合成，保证叠放顺序与绘制顺序一致。
func (r *Renderer) Render(card *layout.Card) (*image.RGBA, error) {
	if card == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if card.Size <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %g", card.Size)
	}
	log := r.log.With(slog.Int("position", card.Position))

	base := canvas.New(card.Size, card.Size)
	ctx := canvas.NewContext(base)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	r.step(log, "background", func() error { return r.drawBackground(ctx, card) })
	r.step(log, "borders", func() error { return r.drawBorders(ctx, card.Borders) })
	r.step(log, "watermark", func() error { return r.drawWatermark(ctx, card) })
	img := rasterizer.Draw(base, canvas.DPMM(1.0), canvas.DefaultColorSpace)

	r.step(log, "logo", func() error { return r.drawLogo(img, card.Logo) })

	overlay := canvas.New(card.Size, card.Size)
	textCtx := canvas.NewContext(overlay)
	textCtx.SetCoordSystem(canvas.CartesianIV)
	for _, tb := range card.Texts {
		r.step(log, string(tb.Role), func() error { return r.drawTextBox(textCtx, tb, card.Font) })
	}
	text := rasterizer.Draw(overlay, canvas.DPMM(1.0), canvas.DefaultColorSpace)
	draw.Draw(img, img.Bounds(), text, text.Bounds().Min, draw.Over)
	return img, nil
}

// step 执行一个绘制步骤，错误与 panic 都只记录日志。
func (r *Renderer) step(log *slog.Logger, name string, fn func() error) {
	defer func() {
		if p := recover(); p != nil {
			log.Error("绘制步骤异常，已跳过", slog.String("step", name), slog.Any("panic", p))
		}
	}()
	if err := fn(); err != nil {
		log.Warn("绘制步骤失败，已跳过", slog.String("step", name), slog.Any("error", err))
	}
}

func (r *Renderer) drawBackground(ctx *canvas.Context, card *layout.Card) error {
	ctx.SetFillColor(colorFromConfig(card.Background, 255))
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.DrawPath(0, 0, canvas.Rectangle(card.Size, card.Size))
	return nil
}

// drawBorders 绘制描边矩形。描边以路径为中线，因此路径向内收缩半个线宽，
// 使整条色带落在 Rect 给出的外边界之内。
func (r *Renderer) drawBorders(ctx *canvas.Context, rects []layout.Rect) error {
	for _, rc := range rects {
		w := rc.StrokeWidth
		if w <= 0 {
			continue
		}
		ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
		ctx.SetStrokeColor(colorFromConfig(rc.StrokeColor, 255))
		ctx.SetStrokeWidth(w)
		ctx.DrawPath(rc.X+w/2, rc.Y+w/2, canvas.Rectangle(rc.Width-w, rc.Height-w))
	}
	return nil
}

func (r *Renderer) drawWatermark(ctx *canvas.Context, card *layout.Card) error {
	wm := card.Watermark
	if wm == nil {
		return nil
	}
	face, err := r.fontFace(card.Font, float64(wm.FontSize), colorFromConfig(wm.Color, wm.Opacity))
	if err != nil {
		return err
	}
	ascent := face.Metrics().Ascent
	for _, p := range wm.Tiles() {
		ctx.DrawText(p.X, p.Y+ascent, canvas.NewTextLine(face, wm.Text, canvas.Left))
	}
	return nil
}

// drawLogo 将 logo 按原始像素尺寸合成到位图上，不再缩放。
func (r *Renderer) drawLogo(dst *image.RGBA, box *layout.ImageBox) error {
	if box == nil {
		return nil
	}
	name := strings.TrimPrefix(strings.TrimPrefix(box.Src, "built-in:"), "builtin:")
	src, ok := r.images[name]
	if !ok {
		return fmt.Errorf("找不到内置图片资源 built-in:%s", name)
	}
	at := image.Pt(int(box.X), int(box.Y))
	rect := image.Rectangle{Min: at, Max: at.Add(src.Bounds().Size())}
	draw.Draw(dst, rect, src, src.Bounds().Min, draw.Over)
	return nil
}

// drawTextBox 逐行居中绘制文本，基线 = 行顶部 + Ascent。
func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox, font layout.FontResource) error {
	if tb.Content == "" {
		return nil
	}
	face, err := r.fontFace(font, float64(tb.FontSize), colorFromConfig(tb.Color, 255))
	if err != nil {
		return err
	}
	metrics := face.Metrics()
	anchorX := tb.CenterX()
	for i, line := range strings.Split(tb.Content, "\n") {
		baseline := tb.Y + metrics.Ascent + float64(i)*(metrics.LineHeight+LineSpacing)
		ctx.DrawText(anchorX, baseline, canvas.NewTextLine(face, line, canvas.Center))
	}
	return nil
}

// fontFace 以像素字号创建字体面；canvas 的字号单位为 pt，这里做一次 px→pt。
func (r *Renderer) fontFace(font layout.FontResource, sizePx float64, col color.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(layout.PxToPt(sizePx), col, canvas.FontRegular, canvas.FontNormal), nil
}

// ensureFontFamily 加载并缓存字体。主字体不可用时记录一次警告并改用兜底字体，
// 之后同一 src 直接命中缓存。
func (r *Renderer) ensureFontFamily(font layout.FontResource) (*canvas.FontFamily, error) {
	key := font.Name + "|" + font.Src
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[key]; ok {
		return family, nil
	}

	familyName := font.Name
	if familyName == "" {
		familyName = "Card"
	}
	family := canvas.NewFontFamily(familyName)
	err := r.loadFontIntoFamily(family, font.Src)
	if err == nil {
		r.fontFamilies[key] = family
		return family, nil
	}

	fallback, fbErr := r.fallback(font.Fallback)
	if fbErr != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w（兜底字体同样不可用: %v）", font.Src, err, fbErr)
	}
	r.log.Warn("字体不可用，改用内置兜底字体", slog.String("src", font.Src), slog.Any("error", err))
	r.fontFamilies[key] = fallback
	return fallback, nil
}

func (r *Renderer) loadFontIntoFamily(family *canvas.FontFamily, src string) (err error) {
	data, err := loadFontBytes(src)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("解析字体 %s 失败: %v", src, p)
		}
	}()
	return family.LoadFont(data, 0, canvas.FontRegular)
}

func loadFontBytes(src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("未指定字体文件")
	}
	if fonts.IsEmbedded(src) {
		return fonts.Load(src)
	}
	return os.ReadFile(src)
}

func (r *Renderer) fallback(src string) (*canvas.FontFamily, error) {
	if r.fallbackFamily != nil {
		return r.fallbackFamily, nil
	}
	if src == "" {
		src = fonts.FallbackSrc
	}
	family := canvas.NewFontFamily("fesscard-fallback")
	if err := r.loadFontIntoFamily(family, src); err != nil {
		return nil, err
	}
	r.fallbackFamily = family
	return family, nil
}

// colorFromConfig 转换 0-255 颜色，alpha 同为 0-255。
func colorFromConfig(c config.Color, alpha int) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, float64(alpha)/255.0)
}
