package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ByLCY/roadmap/binding"
	"github.com/ByLCY/roadmap/config"
	"github.com/ByLCY/roadmap/layout"
	"github.com/ByLCY/roadmap/model"
	"github.com/ByLCY/roadmap/pipeline"
	canvasrenderer "github.com/ByLCY/roadmap/renderer/canvas"
	svgrenderer "github.com/ByLCY/roadmap/renderer/svg"
	"github.com/ByLCY/roadmap/timeaxis"
)

// app 持有命令共享的输出、配置与日志。
type app struct {
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time

	configPath string
	demo       bool
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd(a *app) *cobra.Command {
	if a.now == nil {
		a.now = time.Now
	}
	root := &cobra.Command{
		Use:           "roadmap",
		Short:         "项目与产品双时间轴看板：布局计算与矢量导出",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML 配置文件路径")
	pf.BoolVar(&a.demo, "demo", false, "使用内置演示数据集")
	pf.StringVar(&a.logLevel, "log-level", "warn", "日志级别：debug/info/warn/error")

	root.AddCommand(
		newExportCmd(a),
		newLayoutCmd(a),
		newTicksCmd(a),
	)
	return root
}

func (a *app) setup() error {
	logger, err := newLogger(a.stderr, a.logLevel)
	if err != nil {
		return err
	}
	a.logger = logger
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// dataset 读取命令行指定的路线图文件或内置演示数据，同时返回文件所在目录。
func (a *app) dataset(args []string) (model.Dataset, string, error) {
	switch {
	case a.demo && len(args) > 0:
		return model.Dataset{}, "", fmt.Errorf("--demo 与路线图文件不能同时指定")
	case a.demo:
		return model.Demo(), "", nil
	case len(args) == 0:
		return model.Dataset{}, "", fmt.Errorf("请指定路线图文件或使用 --demo")
	}
	ds, err := binding.LoadFile(args[0], binding.Options{})
	if err != nil {
		return model.Dataset{}, "", err
	}
	a.logger.LogAttrs(context.Background(), slog.LevelInfo, "dataset_loaded",
		slog.String("path", args[0]),
		slog.Int("projects", len(ds.Projects)),
		slog.Int("products", len(ds.Products)),
		slog.Int("feedbacks", len(ds.Feedbacks)),
	)
	return ds, filepath.Dir(args[0]), nil
}

func (a *app) pipelineOptions() pipeline.Options {
	th := a.cfg.SceneTheme()
	m := a.cfg.Metrics()
	return pipeline.Options{Logger: a.logger, Theme: &th, Metrics: &m}
}

func newExportCmd(a *app) *cobra.Command {
	var (
		format   string
		out      string
		minify   bool
		name     string
		fontPath string
		dpmm     float64
	)
	cmd := &cobra.Command{
		Use:   "export [路线图文件]",
		Short: "导出独立的 SVG、PDF 或 PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ec := a.cfg.Export
			flags := cmd.Flags()
			if flags.Changed("format") {
				ec.Format = format
			}
			if flags.Changed("minify") {
				ec.Minify = minify
			}
			if flags.Changed("name") {
				ec.FileName = name
			}
			if flags.Changed("font") {
				ec.FontPath = fontPath
			}
			if flags.Changed("dpmm") {
				ec.DPMM = dpmm
			}
			return a.runExport(args, ec, out)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "导出格式：svg/pdf/png")
	cmd.Flags().StringVarP(&out, "out", "o", "", "输出文件或目录，- 表示标准输出；省略时在终端中按建议文件名写入当前目录，否则写往标准输出")
	cmd.Flags().BoolVar(&minify, "minify", false, "压缩 SVG")
	cmd.Flags().StringVar(&name, "name", "", "文件名模板，可用 ${title}、${date}、${ext}")
	cmd.Flags().StringVar(&fontPath, "font", "", "PDF/PNG 使用的字体文件，相对路径基于路线图文件目录")
	cmd.Flags().Float64Var(&dpmm, "dpmm", layout.MmToPx, "PNG 分辨率（像素/毫米）")
	return cmd
}

func (a *app) runExport(args []string, ec config.ExportConfig, out string) error {
	ds, baseDir, err := a.dataset(args)
	if err != nil {
		return err
	}
	view := a.cfg.ViewState()
	opts := a.pipelineOptions()
	now := a.now()

	var (
		name string
		data []byte
	)
	switch format := strings.ToLower(ec.Format); format {
	case "", "svg":
		doc, err := pipeline.Export(ds, view, now, pipeline.ExportOptions{Options: opts, Minify: ec.Minify, FileName: ec.FileName})
		if err != nil {
			return err
		}
		name, data = doc.Name, []byte(doc.Content)
	case "pdf", "png":
		frame := pipeline.Compute(ds, view, opts)
		sc := svgrenderer.Standalone(frame.Scene, *opts.Theme)
		r := canvasrenderer.NewRenderer(canvasrenderer.Options{
			Theme:    opts.Theme,
			FontPath: ec.FontPath,
			BaseDir:  baseDir,
			Logger:   a.logger,
		})
		if format == "pdf" {
			data, err = r.Render(sc)
		} else {
			data, err = r.RenderPNG(sc, ec.DPMM)
		}
		if err != nil {
			return fmt.Errorf("渲染 %s 失败: %w", strings.ToUpper(format), err)
		}
		name = pipeline.FileName(ec.FileName, ds.Title, now, format)
	default:
		return fmt.Errorf("不支持的导出格式 %q", ec.Format)
	}
	return a.write(name, data, out)
}

// write 把导出内容写往标准输出或文件。out 为目录时使用建议文件名。
func (a *app) write(name string, data []byte, out string) error {
	if out == "-" || (out == "" && !isTerminal(a.stdout)) {
		_, err := a.stdout.Write(data)
		return err
	}
	path := out
	if path == "" {
		path = name
	} else if st, err := os.Stat(path); err == nil && st.IsDir() {
		path = filepath.Join(path, name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入文件失败: %w", err)
	}
	fmt.Fprintf(a.stdout, "已生成：%s\n", path)
	return nil
}

func newLayoutCmd(a *app) *cobra.Command {
	var (
		asJSON    bool
		debugPath string
	)
	cmd := &cobra.Command{
		Use:   "layout [路线图文件]",
		Short: "计算布局并输出锚点、连线与被跳过的反馈",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, _, err := a.dataset(args)
			if err != nil {
				return err
			}
			frame := pipeline.Compute(ds, a.cfg.ViewState(), a.pipelineOptions())
			if debugPath != "" {
				if err := writeDebug(frame.Result, debugPath); err != nil {
					return err
				}
			}
			if asJSON {
				data, err := layout.MarshalDebug(frame.Result)
				if err != nil {
					return fmt.Errorf("编码布局 JSON 失败: %w", err)
				}
				_, err = fmt.Fprintln(a.stdout, string(data))
				return err
			}
			_, err = io.WriteString(a.stdout, layoutSummary(ds.Title, frame.Result))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "以 JSON 输出完整布局结果")
	cmd.Flags().StringVar(&debugPath, "debug", "", "额外把布局调试 JSON 写入该路径")
	return cmd
}

func writeDebug(res *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(res, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func newTicksCmd(a *app) *cobra.Command {
	var granularity string
	cmd := &cobra.Command{
		Use:   "ticks [路线图文件]",
		Short: "列出时间表头的刻度",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, _, err := a.dataset(args)
			if err != nil {
				return err
			}
			view := a.cfg.ViewState()
			if cmd.Flags().Changed("granularity") {
				view.Granularity = timeaxis.ParseGranularity(granularity)
			}
			axis := ds.Axis()
			ticks, truncated := axis.BuildTicksChecked(view.Granularity)
			if truncated {
				a.logger.LogAttrs(context.Background(), slog.LevelWarn, "ticks_truncated",
					slog.Int("days", axis.Days()),
					slog.Int("max", timeaxis.MaxTicks),
				)
			}
			rows := make([][]string, 0, len(ticks))
			for i, t := range ticks {
				rows = append(rows, []string{
					strconv.Itoa(t.Offset),
					axis.OffsetToDate(t.Offset),
					t.Label,
					strconv.FormatFloat(axis.TickWidth(ticks, i, view.Zoom), 'f', -1, 64),
				})
			}
			_, err = io.WriteString(a.stdout, renderTable([]string{"偏移", "日期", "标签", "宽度"}, rows))
			return err
		},
	}
	cmd.Flags().StringVarP(&granularity, "granularity", "g", "week", "刻度粒度：day/week/month")
	return cmd
}
