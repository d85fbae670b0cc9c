package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ByLCY/fesscard/dsl"
)

// Load 读取样式表并覆盖到默认配置上。path 为空时直接返回默认配置。
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("无法打开样式表 %s: %w", path, err)
	}
	defer file.Close()

	sheet, err := dsl.Parse(path, file)
	if err != nil {
		return cfg, fmt.Errorf("解析样式表失败: %w", err)
	}
	if err := Apply(&cfg, sheet); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Apply 将样式表中的赋值写入 cfg。未知键视为错误，避免拼写错误被悄悄忽略。
func Apply(cfg *Config, sheet *dsl.Sheet) error {
	if sheet == nil || sheet.Block == nil {
		return nil
	}
	for _, stmt := range sheet.Block.Statements {
		switch {
		case stmt.Assignment != nil:
			if err := applyRoot(cfg, stmt.Assignment); err != nil {
				return err
			}
		case stmt.Command != nil:
			if err := applyGroup(cfg, stmt.Command); err != nil {
				return err
			}
		}
	}
	return nil
}

func applyRoot(cfg *Config, a *dsl.Assignment) error {
	var err error
	switch a.Key {
	case "size":
		cfg.Size, err = intValue(a)
	case "background":
		cfg.Background, err = colorValue(a)
	case "border-width":
		cfg.BorderWidth, err = intValue(a)
	case "border-colors":
		err = applyBorderColors(cfg, a)
	case "padding":
		cfg.Padding, err = intValue(a)
	case "font":
		cfg.FontPath = valueToString(a.Value)
	case "wrap":
		cfg.WrapColumns, err = intValue(a)
	case "min-font-size":
		cfg.MinFontSize, err = intValue(a)
	case "input":
		cfg.InputFile = valueToString(a.Value)
	case "output":
		cfg.OutputDir = valueToString(a.Value)
	default:
		return fmt.Errorf("%s: 未知配置项 %s", a.Pos, a.Key)
	}
	return err
}

func applyGroup(cfg *Config, cmd *dsl.Command) error {
	if cmd.Block == nil {
		return fmt.Errorf("%s: %s 缺少属性块", cmd.Pos, cmd.Name)
	}
	switch cmd.Name {
	case "handle":
		return applyTextStyle(&cfg.Handle, cmd, true)
	case "prompt":
		return applyTextStyle(&cfg.Prompt, cmd, true)
	case "date":
		return applyTextStyle(&cfg.Date, cmd, false)
	case "body":
		return applyTextStyle(&cfg.Body, cmd, false)
	case "watermark":
		return applyWatermark(&cfg.Watermark, cmd)
	case "logo":
		return applyLogo(cfg, cmd)
	default:
		return fmt.Errorf("%s: 未知分组 %s", cmd.Pos, cmd.Name)
	}
}

func applyTextStyle(style *TextStyle, cmd *dsl.Command, literal bool) error {
	for _, a := range assignments(cmd) {
		var err error
		switch {
		case a.Key == "size":
			style.Size, err = intValue(a)
		case a.Key == "color":
			style.Color, err = colorValue(a)
		case a.Key == "text" && literal:
			style.Text = valueToString(a.Value)
		default:
			return fmt.Errorf("%s: %s 不支持属性 %s", a.Pos, cmd.Name, a.Key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func applyWatermark(wm *Watermark, cmd *dsl.Command) error {
	for _, a := range assignments(cmd) {
		var err error
		switch a.Key {
		case "text":
			wm.Text = valueToString(a.Value)
		case "size":
			wm.Size, err = intValue(a)
		case "color":
			wm.Color, err = colorValue(a)
		case "opacity":
			wm.Opacity, err = intValue(a)
		case "spacing":
			wm.Spacing, err = intValue(a)
		default:
			return fmt.Errorf("%s: watermark 不支持属性 %s", a.Pos, a.Key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// applyLogo 支持简写 logo "logos/logo.png" { ... }，块内的 src 优先。
func applyLogo(cfg *Config, cmd *dsl.Command) error {
	if len(cmd.Args) > 0 {
		cfg.LogoPath = cmd.Args[0].Value
	}
	for _, a := range assignments(cmd) {
		var err error
		switch a.Key {
		case "src":
			cfg.LogoPath = valueToString(a.Value)
		case "width":
			cfg.LogoWidth, err = intValue(a)
		case "height":
			cfg.LogoHeight, err = intValue(a)
		default:
			return fmt.Errorf("%s: logo 不支持属性 %s", a.Pos, a.Key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func applyBorderColors(cfg *Config, a *dsl.Assignment) error {
	if a.Value.Array == nil || len(a.Value.Array.Values) != len(cfg.BorderColors) {
		return fmt.Errorf("%s: border-colors 需要 %d 个颜色", a.Pos, len(cfg.BorderColors))
	}
	for i, v := range a.Value.Array.Values {
		c, err := ParseColor(valueToString(v))
		if err != nil {
			return fmt.Errorf("%s: %w", a.Pos, err)
		}
		cfg.BorderColors[i] = c
	}
	return nil
}

func assignments(cmd *dsl.Command) []*dsl.Assignment {
	var out []*dsl.Assignment
	for _, stmt := range cmd.Block.Statements {
		if stmt.Assignment != nil {
			out = append(out, stmt.Assignment)
		}
	}
	return out
}

func intValue(a *dsl.Assignment) (int, error) {
	raw := strings.TrimSuffix(valueToString(a.Value), "px")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %s 需要数值，得到 %q", a.Pos, a.Key, raw)
	}
	return int(f), nil
}

func colorValue(a *dsl.Assignment) (Color, error) {
	c, err := ParseColor(valueToString(a.Value))
	if err != nil {
		return Color{}, fmt.Errorf("%s: %s: %w", a.Pos, a.Key, err)
	}
	return c, nil
}

func valueToString(val *dsl.Value) string {
	if val == nil {
		return ""
	}
	switch {
	case val.String != nil:
		return string(*val.String)
	case val.Number != nil:
		return *val.Number
	case val.Color != nil:
		return *val.Color
	case val.Expr != nil:
		var builder strings.Builder
		for _, part := range val.Expr.Parts {
			builder.WriteString(part.Value)
		}
		return builder.String()
	default:
		return ""
	}
}
