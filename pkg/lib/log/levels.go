package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ============================================================================
//                              按组件级别
// ============================================================================

// Levels 按组件配置的日志级别
//
// 格式: 组件=级别,组件=级别,默认级别
// 示例: core/eventbus=debug,core/executor=warn,info
type Levels struct {
	Default    slog.Level
	Components map[string]slog.Level
}

// ParseLevels 解析级别配置字符串
//
// 空串等价于 "info"。任何一段无法解析都返回错误。
func ParseLevels(conf string) (Levels, error) {
	lv := Levels{Default: LevelInfo, Components: make(map[string]slog.Level)}

	for _, part := range strings.Split(conf, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		component, name, scoped := strings.Cut(part, "=")
		if !scoped {
			level, err := ParseLevel(part)
			if err != nil {
				return Levels{}, err
			}
			lv.Default = level
			continue
		}

		component = strings.TrimSpace(component)
		if component == "" {
			return Levels{}, fmt.Errorf("empty component in log level %q", part)
		}
		level, err := ParseLevel(strings.TrimSpace(name))
		if err != nil {
			return Levels{}, err
		}
		lv.Components[component] = level
	}
	return lv, nil
}

// For 返回组件的日志级别
func (l Levels) For(component string) slog.Level {
	if level, ok := l.Components[component]; ok {
		return level
	}
	return l.Default
}

// min 返回所有配置中最低的级别
func (l Levels) min() slog.Level {
	m := l.Default
	for _, level := range l.Components {
		if level < m {
			m = level
		}
	}
	return m
}

// SetupLevels 按格式和组件级别重建默认 logger
func SetupLevels(w io.Writer, format, conf string) error {
	levels, err := ParseLevels(conf)
	if err != nil {
		return err
	}
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: levels.min()}

	var h slog.Handler
	switch strings.ToLower(format) {
	case "", FormatText:
		h = slog.NewTextHandler(w, opts)
	case FormatJSON:
		h = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	slog.SetDefault(slog.New(&componentHandler{inner: h, levels: levels}))
	return nil
}

// componentHandler 按 component 属性过滤级别的 slog.Handler
//
// LazyLogger 通过 With("component", ...) 附加组件名，
// WithAttrs 时记下它，Enabled 时按该组件的级别判断。
type componentHandler struct {
	inner     slog.Handler
	levels    Levels
	component string
}

func (h *componentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.levels.For(h.component) && h.inner.Enabled(ctx, level)
}

func (h *componentHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h *componentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	component := h.component
	for _, a := range attrs {
		if a.Key == componentKey {
			component = a.Value.String()
		}
	}
	return &componentHandler{
		inner:     h.inner.WithAttrs(attrs),
		levels:    h.levels,
		component: component,
	}
}

func (h *componentHandler) WithGroup(name string) slog.Handler {
	return &componentHandler{
		inner:     h.inner.WithGroup(name),
		levels:    h.levels,
		component: h.component,
	}
}
