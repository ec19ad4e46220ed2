package log

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"
)

// MaskValue is the string used to replace credential values.
const MaskValue = "***MASKED***"

// credentialKeywords flags attribute keys whose values are always masked.
// Matching is by substring on the lowercased key, so "proxy_password" and
// "playlistPassword" are both caught.
var credentialKeywords = []string{
	"password", "passwd", "secret", "token", "credential",
}

// MaskHandler wraps an slog.Handler and masks credential-bearing
// attributes before they reach it.
//
// Design decision: We wrap a handler rather than building a custom
// logger because it composes with any underlying format (text, JSON)
// and with every library that accepts a *slog.Logger.
type MaskHandler struct {
	handler slog.Handler
}

// NewMaskHandler creates a MaskHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewMaskHandler(handler slog.Handler) *MaskHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &MaskHandler{handler: handler}
}

// Enabled delegates to the underlying handler.
func (h *MaskHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it on.
func (h *MaskHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})
	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes added,
// masked first.
func (h *MaskHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.maskAttr(a)
	}
	return &MaskHandler{handler: h.handler.WithAttrs(maskedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *MaskHandler) WithGroup(name string) slog.Handler {
	return &MaskHandler{handler: h.handler.WithGroup(name)}
}

// maskAttr masks a single attribute, recursively handling groups.
// Credential keys are fully redacted; string values that are URLs or
// proxy addresses with embedded userinfo keep everything but the
// credentials.
func (h *MaskHandler) maskAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		maskedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			maskedAttrs[i] = h.maskAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedAttrs...)}
	}

	keyLower := strings.ToLower(a.Key)
	for _, keyword := range credentialKeywords {
		if strings.Contains(keyLower, keyword) {
			return slog.String(a.Key, MaskValue)
		}
	}

	if a.Value.Kind() == slog.KindString {
		if stripped, changed := stripUserinfo(a.Value.String()); changed {
			return slog.String(a.Key, stripped)
		}
	}

	return a
}

// stripUserinfo removes embedded user:pass credentials from a URL or
// proxy address value, reporting whether anything was removed.
func stripUserinfo(value string) (string, bool) {
	if !strings.Contains(value, "@") {
		return value, false
	}

	s := value
	if !strings.Contains(s, "://") {
		s = "//" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.User == nil || u.Host == "" {
		return value, false
	}

	u.User = nil
	return strings.TrimPrefix(u.String(), "//"), true
}

// NewLogger creates a structured logger writing to w with credential
// masking applied. Verbose selects LevelDebug, otherwise LevelWarn.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewMaskHandler(textHandler))
}
