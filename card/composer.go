package card

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/ByLCY/fesscard/binding"
	"github.com/ByLCY/fesscard/config"
	"github.com/ByLCY/fesscard/layout"
	"github.com/ByLCY/fesscard/record"
	"github.com/ByLCY/fesscard/renderer"
)

// ErrSkipped 表示记录被有意跳过（推广内容），不属于失败。
var ErrSkipped = errors.New("推广记录，已跳过")

// Backend 同时负责测量与绘制，canvas 渲染器即满足该接口。
type Backend interface {
	layout.Typesetter
	renderer.Renderer
}

// Options 配置 Composer。
type Options struct {
	// Logo 为已缩放的 logo，nil 表示不绘制 logo。
	Logo   image.Image
	Logger *slog.Logger
}

// Composer 将一条记录合成为一张卡片。配置与 logo 在所有记录间只读共享。
type Composer struct {
	cfg     config.Config
	backend Backend
	logo    image.Image
	log     *slog.Logger
}

// NewComposer 创建 Composer。backend 注册的 built-in:logo 图片应与 opts.Logo 一致。
func NewComposer(cfg config.Config, backend Backend, opts Options) *Composer {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Composer{cfg: cfg, backend: backend, logo: opts.Logo, log: log}
}

// Compose 计算布局并渲染一条记录。promoted 记录返回 ErrSkipped。
func (c *Composer) Compose(rec record.Confession) (*image.RGBA, *layout.Card, error) {
	if rec.Promoted {
		return nil, nil, ErrSkipped
	}
	fields := rec.Fields()
	content := layout.Content{
		Position: rec.Position,
		Handle:   binding.Interpolate(c.cfg.Handle.Text, fields),
		Prompt:   binding.Interpolate(c.cfg.Prompt.Text, fields),
		Date:     rec.Date,
		Body:     rec.Text,
	}
	var logoSize image.Point
	if c.logo != nil {
		logoSize = c.logo.Bounds().Size()
	}
	card, err := layout.Build(c.cfg, content, layout.BuildOptions{
		Typesetter: c.backend,
		LogoSize:   logoSize,
		Logger:     c.log,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("计算第 %d 条记录的布局失败: %w", rec.Position, err)
	}
	img, err := c.backend.Render(card)
	if err != nil {
		return nil, card, fmt.Errorf("渲染第 %d 条记录失败: %w", rec.Position, err)
	}
	return img, card, nil
}
