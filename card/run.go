package card

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ByLCY/fesscard/layout"
	"github.com/ByLCY/fesscard/record"
)

// RunOptions 配置一次批量渲染。
type RunOptions struct {
	OutputDir string
	// DebugDir 非空时为每张卡片写出布局 JSON。
	DebugDir string
	// Only 非空时只渲染其中的位置，编号保持不变。
	Only []int
}

// Summary 统计一次批量渲染的结果。
type Summary struct {
	Rendered int
	Skipped  int
	Failed   int
	Files    []string
}

// FileName 返回第 position 条记录的输出文件名。
func FileName(position int) string {
	return fmt.Sprintf("confession_%d.png", position)
}

// Run 顺序处理全部记录：一张卡片保存完成后才开始下一张。
// 只有无法创建输出目录是致命错误，单张卡片的失败记录日志后继续。
func (c *Composer) Run(records []record.Confession, opts RunOptions) (Summary, error) {
	var sum Summary
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return sum, fmt.Errorf("创建输出目录 %s 失败: %w", opts.OutputDir, err)
	}
	if opts.DebugDir != "" {
		if err := os.MkdirAll(opts.DebugDir, 0o755); err != nil {
			c.log.Warn("创建调试目录失败，不再输出布局 JSON", slog.String("dir", opts.DebugDir), slog.Any("error", err))
			opts.DebugDir = ""
		}
	}
	only := map[int]bool{}
	for _, p := range opts.Only {
		only[p] = true
	}

	for _, rec := range records {
		if len(only) > 0 && !only[rec.Position] {
			continue
		}
		log := c.log.With(slog.Int("position", rec.Position))
		img, card, err := c.Compose(rec)
		if errors.Is(err, ErrSkipped) {
			log.Info("跳过推广记录")
			sum.Skipped++
			continue
		}
		if card != nil && opts.DebugDir != "" {
			if path, err := layout.WriteDebugJSON(card, opts.DebugDir); err != nil {
				log.Warn("写出布局 JSON 失败", slog.Any("error", err))
			} else {
				log.Debug("已写出布局 JSON", slog.String("path", path))
			}
		}
		if err != nil {
			log.Error("卡片合成失败", slog.Any("error", err))
			sum.Failed++
			continue
		}
		path := filepath.Join(opts.OutputDir, FileName(rec.Position))
		if err := savePNG(path, img); err != nil {
			log.Error("保存卡片失败", slog.String("path", path), slog.Any("error", err))
			sum.Failed++
			continue
		}
		log.Info("已生成卡片", slog.String("path", path))
		sum.Rendered++
		sum.Files = append(sum.Files, path)
	}
	return sum, nil
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
