package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chenjing1294/AvaloniaEdit/config"
	"github.com/chenjing1294/AvaloniaEdit/dsl"
	"github.com/chenjing1294/AvaloniaEdit/layout"
	canvasrenderer "github.com/chenjing1294/AvaloniaEdit/renderer/canvas"
	"github.com/chenjing1294/AvaloniaEdit/renderer/cell"
)

const defaultConfigFile = ".textline.yaml"

var (
	version = "dev"
	cfgFile string
	verbose bool
	flags   runFlags
)

type runFlags struct {
	input  string
	output string
	debug  string
	data   string
}

var rootCmd = &cobra.Command{
	Use:     "textline",
	Short:   "Lay out a run script into text lines",
	Long:    `Parse a run script, classify and measure its text runs into lines, and render them as PDF.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger(verbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper(), cfgFile)
		if err != nil {
			return err
		}
		return run(flags, cfg, slog.Default())
	},
	SilenceUsage: true,
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultConfigFile
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "已写入配置：%s\n", path)
		return nil
	},
}

func init() {
	defaults := config.Defaults()

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./"+defaultConfigFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.Flags().StringVarP(&flags.input, "in", "i", "examples/demo.textline", "run script 文件路径")
	rootCmd.Flags().StringVarP(&flags.output, "out", "o", "output/demo.pdf", "PDF 输出路径，为空时不渲染")
	rootCmd.Flags().StringVar(&flags.debug, "debug", "", "排版调试 JSON 输出路径")
	rootCmd.Flags().StringVar(&flags.data, "data", "", "绑定到脚本的 JSON 数据")
	rootCmd.Flags().Float64("tab-width", defaults.TabWidth, "tab width in device units")
	rootCmd.Flags().Float64("wrap-width", defaults.WrapWidth, "line wrap width in device units (0 = unlimited)")
	rootCmd.Flags().Float64("dpi", defaults.DPI, "device units per inch")
	rootCmd.Flags().String("measurer", defaults.Measurer, "measurement backend: canvas or cell")

	// Bind flags to viper
	_ = viper.BindPFlag("tab_width", rootCmd.Flags().Lookup("tab-width"))
	_ = viper.BindPFlag("wrap_width", rootCmd.Flags().Lookup("wrap-width"))
	_ = viper.BindPFlag("dpi", rootCmd.Flags().Lookup("dpi"))
	_ = viper.BindPFlag("measurer", rootCmd.Flags().Lookup("measurer"))

	rootCmd.AddCommand(initCmd)
}

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadConfig reads defaults, the config file, TEXTLINE_* environment
// variables and bound flags into a validated Config.
func loadConfig(v *viper.Viper, path string) (config.Config, error) {
	defaults := config.Defaults()
	v.SetDefault("tab_width", defaults.TabWidth)
	v.SetDefault("wrap_width", defaults.WrapWidth)
	v.SetDefault("dpi", defaults.DPI)
	v.SetDefault("measurer", defaults.Measurer)
	v.SetDefault("margin", defaults.Margin)
	v.SetDefault("cell.width", defaults.Cell.Width)
	v.SetDefault("cell.height", defaults.Cell.Height)

	v.SetEnvPrefix("TEXTLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	} else if _, err := os.Stat(path); err != nil {
		return config.Config{}, fmt.Errorf("config file: %w", err)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// run 串联解析、排版与渲染。
func run(f runFlags, cfg config.Config, logger *slog.Logger) error {
	var data any
	if f.data != "" {
		if err := json.Unmarshal([]byte(f.data), &data); err != nil {
			return fmt.Errorf("解析 data JSON 失败: %w", err)
		}
	}

	file, err := os.Open(f.input)
	if err != nil {
		return fmt.Errorf("无法打开脚本文件 %s: %w", f.input, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析脚本失败: %w", err)
	}

	r := newRenderer(cfg, filepath.Dir(f.input), logger)
	var measurer layout.Measurer = r
	cellGrid := cfg.Measurer == config.MeasurerCell
	if cellGrid {
		measurer = cell.Measurer{CellWidth: cfg.Cell.Width, CellHeight: cfg.Cell.Height}
	}

	result, err := layout.Build(doc, data, cfg.BuildOptions(measurer))
	if err != nil {
		return fmt.Errorf("排版失败: %w", err)
	}
	for i, p := range result.Paragraphs {
		for _, line := range p.Lines {
			logger.Debug("line",
				"paragraph", i+1,
				"first", line.FirstIndex(),
				"length", line.Length(),
				"width", line.Width(),
				"trailing", line.Trailing().Count,
				"runs", len(line.Runs()))
		}
	}

	if f.debug != "" {
		if err := writeDebug(result, f.debug); err != nil {
			return err
		}
	}
	if f.output == "" {
		return nil
	}

	if cellGrid {
		// the grid measured the lines; the PDF still needs faces to draw with
		for _, name := range slices.Sorted(maps.Keys(result.Resources.Fonts)) {
			if err := r.RegisterFont(result.Resources.Fonts[name]); err != nil {
				return fmt.Errorf("注册字体 %s 失败: %w", name, err)
			}
		}
	}
	if err := os.MkdirAll(filepath.Dir(f.output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	pdfBytes, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(f.output, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	logger.Info("已生成 PDF", "path", f.output, "lines", len(result.Lines()))
	return nil
}

func newRenderer(cfg config.Config, baseDir string, logger *slog.Logger) *canvasrenderer.Renderer {
	fonts := make(map[string]canvasrenderer.Resource, len(cfg.Fonts))
	for name, path := range cfg.Fonts {
		fonts[name] = canvasrenderer.Resource{Path: path}
	}
	margin := cfg.Margin
	if margin == 0 {
		margin = -1
	}
	return canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
		BaseDir: baseDir,
		DPI:     cfg.DPI,
		Margin:  margin,
		Fonts:   fonts,
		Logger:  logger,
	})
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
