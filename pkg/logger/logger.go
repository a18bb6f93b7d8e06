package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Options 日志初始化选项
type Options struct {
	Level     string // 日志级别: debug, info, warn, error
	Output    string // 输出目标: console, file, both
	Format    string // 输出格式: text, json
	FilePath  string // Output 为 file/both 时的日志文件路径
	Colorize  bool   // 控制台输出是否着色（仅 text 格式生效）
	AddSource bool   // 是否附带调用位置
}

var (
	mu       sync.RWMutex
	level    = new(slog.LevelVar)
	instance = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
)

// Init 初始化全局日志器，main 启动时调用一次
func Init(opts Options) error {
	lv, err := parseLevel(opts.Level)
	if err != nil {
		return err
	}
	level.Set(lv)

	writer, err := buildWriter(opts)
	if err != nil {
		return err
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       level,
		AddSource:   opts.AddSource,
		ReplaceAttr: buildReplaceAttr(opts.Colorize && opts.Format != "json"),
	}

	var handler slog.Handler
	if opts.Format == "json" {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(writer, handlerOpts)
	}

	mu.Lock()
	instance = slog.New(handler)
	mu.Unlock()

	return nil
}

// SetLevel 动态调整日志级别
func SetLevel(s string) error {
	lv, err := parseLevel(s)
	if err != nil {
		return err
	}
	level.Set(lv)
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

func buildWriter(opts Options) (io.Writer, error) {
	switch opts.Output {
	case "", "console":
		return os.Stdout, nil
	case "file", "both":
		if opts.FilePath == "" {
			return nil, fmt.Errorf("log file path is required for output %q", opts.Output)
		}
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		if opts.Output == "both" {
			return io.MultiWriter(os.Stdout, f), nil
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unknown log output: %s", opts.Output)
	}
}

// buildReplaceAttr 组合属性处理：敏感键脱敏，text 格式下对级别着色
func buildReplaceAttr(colorize bool) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key != slog.LevelKey {
			a.Value = slog.AnyValue(SanitizeValue(a.Key, a.Value.Any()))
			return a
		}
		if colorize {
			return colorizeLevel(groups, a)
		}
		return a
	}
}

// ANSI 着色仅作用于级别字段
func colorizeLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	lv, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	var color string
	switch {
	case lv >= slog.LevelError:
		color = "\033[31m" // red
	case lv >= slog.LevelWarn:
		color = "\033[33m" // yellow
	case lv >= slog.LevelInfo:
		color = "\033[32m" // green
	default:
		color = "\033[36m" // cyan
	}
	a.Value = slog.StringValue(color + lv.String() + "\033[0m")
	return a
}

func get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return instance
}

// Debug 输出调试日志，args 为键值对
func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}

// Info 输出信息日志
func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

// Warn 输出警告日志
func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}

// Error 输出错误日志
func Error(msg string, args ...any) {
	get().Error(msg, args...)
}
