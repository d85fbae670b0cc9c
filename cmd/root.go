package cmd

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/k1LoW/errors"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"

	"github.com/ByLCY/fesscard/asset"
	"github.com/ByLCY/fesscard/card"
	"github.com/ByLCY/fesscard/config"
	"github.com/ByLCY/fesscard/layout"
	"github.com/ByLCY/fesscard/record"
	canvasrenderer "github.com/ByLCY/fesscard/renderer/canvas"
)

var (
	inPath    string
	outDir    string
	stylePath string
	fontPath  string
	logoPath  string
	debugDir  string
	only      string
	logFile   string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:          "fesscard",
	Short:        "fesscard 将投稿记录渲染为方形图片卡片",
	Long:         `fesscard 读取 JSON/YAML 投稿列表，为每条非推广记录生成 confession_<n>.png。`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			err = errors.WithStack(err)
		}()
		logger, closeLog, err := newLogger(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer closeLog()

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		records, err := record.Load(cfg.InputFile, logger)
		if err != nil {
			return err
		}
		positions, err := selectionToPositions(only, lastPosition(records))
		if err != nil {
			return err
		}

		logo := loadLogo(cfg, logger)
		images := map[string]image.Image{}
		if logo != nil {
			images[logoName] = logo
		}
		r := canvasrenderer.NewRenderer(canvasrenderer.Options{Logger: logger, Images: images})
		composer := card.NewComposer(cfg, r, card.Options{Logo: logo, Logger: logger})

		sum, err := composer.Run(records, card.RunOptions{
			OutputDir: cfg.OutputDir,
			DebugDir:  debugDir,
			Only:      positions,
		})
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), sum, cfg.OutputDir)
		return nil
	},
}

// logoName 是布局中 logo 引用的内置图片名。
var logoName = strings.TrimPrefix(layout.LogoSrc, "built-in:")

// Execute 运行根命令，失败时输出错误（--verbose 时附带调用栈）并以 1 退出。
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if verbose {
			if b, merr := json.MarshalIndent(errors.StackTraces(err), "", "  "); merr == nil {
				_, _ = fmt.Fprintf(os.Stderr, "%s\n", b)
			}
		}
		os.Exit(1)
	}
}

func init() {
	defaults := config.Default()
	rootCmd.Flags().StringVarP(&inPath, "in", "i", "", fmt.Sprintf("投稿记录文件（默认 %s）", defaults.InputFile))
	rootCmd.Flags().StringVarP(&outDir, "out", "o", "", fmt.Sprintf("输出目录（默认 %s）", defaults.OutputDir))
	rootCmd.Flags().StringVarP(&stylePath, "style", "s", "", "卡片样式文件")
	rootCmd.Flags().StringVar(&fontPath, "font", "", "字体文件，覆盖样式中的 font")
	rootCmd.Flags().StringVar(&logoPath, "logo", "", "logo 图片，覆盖样式中的 logo.src")
	rootCmd.Flags().StringVar(&debugDir, "debug", "", "为每张卡片写出布局 JSON 的目录")
	rootCmd.Flags().StringVarP(&only, "only", "p", "", "只渲染指定位置，例如 1,3-5")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "额外以 JSON 格式写入日志的文件")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")
}

func newLogger(stderr io.Writer) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handlers := []slog.Handler{slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})}
	closeFn := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("打开日志文件 %s 失败: %w", logFile, err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closeFn = func() { _ = f.Close() }
	}
	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}

// loadConfig 读取样式文件，再用命令行参数覆盖路径类配置。
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(stylePath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("in") {
		cfg.InputFile = inPath
	}
	if flags.Changed("out") {
		cfg.OutputDir = outDir
	}
	if flags.Changed("font") {
		cfg.FontPath = fontPath
	}
	if flags.Changed("logo") {
		cfg.LogoPath = logoPath
	}
	return cfg, nil
}

// loadLogo 加载 logo；缺失或无法解码时记录警告，卡片按无 logo 排版。
func loadLogo(cfg config.Config, logger *slog.Logger) image.Image {
	if cfg.LogoPath == "" {
		return nil
	}
	logo, err := asset.LoadLogo(cfg.LogoPath, cfg.LogoWidth, cfg.LogoHeight)
	if err != nil {
		logger.Warn("logo 不可用，卡片将不含 logo", slog.Any("error", err))
		return nil
	}
	return logo
}

func lastPosition(records []record.Confession) int {
	if len(records) == 0 {
		return 0
	}
	return records[len(records)-1].Position
}

func printSummary(w io.Writer, sum card.Summary, dir string) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)
	bold := color.New(color.Bold)

	_, _ = fmt.Fprintf(w, "%s %s, %s, %s -> %s\n",
		bold.Sprint("fesscard:"),
		green.Sprintf("%d rendered", sum.Rendered),
		yellow.Sprintf("%d skipped", sum.Skipped),
		red.Sprintf("%d failed", sum.Failed),
		dir)
}
