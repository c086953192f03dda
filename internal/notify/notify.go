// Package notify surfaces user-facing notices.
//
// Components never show UI themselves; they hand a domain.Notice to a
// Notifier. LogNotifier writes structured log records, WriterNotifier prints
// one line per notice for the CLI, and Recorder keeps a bounded history that
// the HTTP API serves to the presentation layer.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"guardian/internal/domain"
)

// LogNotifier writes notices to a structured logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a LogNotifier; a nil logger means slog.Default().
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Notify implements domain.Notifier.
func (n *LogNotifier) Notify(ctx context.Context, notice domain.Notice) {
	level := slog.LevelInfo
	switch notice.Level {
	case domain.NoticeWarning:
		level = slog.LevelWarn
	case domain.NoticeError:
		level = slog.LevelError
	}
	n.logger.Log(ctx, level, "Notice", "title", notice.Title, "message", notice.Message)
}

// WriterNotifier prints notices as single lines.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterNotifier returns a notifier printing to w.
func NewWriterNotifier(w io.Writer) *WriterNotifier { return &WriterNotifier{w: w} }

// Notify implements domain.Notifier.
func (n *WriterNotifier) Notify(_ context.Context, notice domain.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "[%s] %s: %s\n", notice.Level, notice.Title, notice.Message)
}

// Recorder keeps the most recent notices in memory.
type Recorder struct {
	mu      sync.Mutex
	limit   int
	notices []domain.Notice
}

// NewRecorder keeps at most limit notices; limit <= 0 keeps 50.
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = 50
	}
	return &Recorder{limit: limit}
}

// Notify implements domain.Notifier.
func (r *Recorder) Notify(_ context.Context, notice domain.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
	if over := len(r.notices) - r.limit; over > 0 {
		r.notices = append([]domain.Notice(nil), r.notices[over:]...)
	}
}

// Notices returns a copy of the recorded notices, oldest first.
func (r *Recorder) Notices() []domain.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notice(nil), r.notices...)
}

// Titles returns the titles of recorded notices, oldest first.
func (r *Recorder) Titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.notices))
	for i, n := range r.notices {
		out[i] = n.Title
	}
	return out
}

// Multi fans a notice out to several notifiers in order.
type Multi []domain.Notifier

// Notify implements domain.Notifier.
func (m Multi) Notify(ctx context.Context, notice domain.Notice) {
	for _, n := range m {
		n.Notify(ctx, notice)
	}
}

var (
	_ domain.Notifier = (*LogNotifier)(nil)
	_ domain.Notifier = (*WriterNotifier)(nil)
	_ domain.Notifier = (*Recorder)(nil)
	_ domain.Notifier = Multi(nil)
)
