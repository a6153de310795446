package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/plan-systems/klog"
)

// klogHandler forwards slog records from the library to klog.
type klogHandler struct {
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

func newKlogHandler(level slog.Level) *klogHandler {
	return &klogHandler{level: level}
}

func (h *klogHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level
}

func (h *klogHandler) Handle(_ context.Context, r slog.Record) error {
	line := h.format(r)
	switch {
	case r.Level >= slog.LevelError:
		klog.Errorf("%s", line)
	case r.Level >= slog.LevelWarn:
		klog.Warningf("%s", line)
	default:
		klog.Infof("%s", line)
	}
	return nil
}

func (h *klogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	prefix := h.prefix()
	h2.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	h2.attrs = append(h2.attrs, h.attrs...)
	for _, a := range attrs {
		a.Key = prefix + a.Key
		h2.attrs = append(h2.attrs, a)
	}
	return &h2
}

func (h *klogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(slices.Clip(h.groups), name)
	return &h2
}

func (h *klogHandler) prefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

// format renders a record as "message key=value ...".
func (h *klogHandler) format(r slog.Record) string {
	var sb strings.Builder
	sb.WriteString(r.Message)
	write := func(key string, v slog.Value) {
		fmt.Fprintf(&sb, " %s=%v", key, v.Resolve())
	}
	for _, a := range h.attrs {
		write(a.Key, a.Value)
	}
	prefix := h.prefix()
	r.Attrs(func(a slog.Attr) bool {
		write(prefix+a.Key, a.Value)
		return true
	})
	return sb.String()
}
