package intent

import (
	"context"
	"fmt"
	"io"
	"sync"

	"guardian/internal/domain"
)

// WriterLauncher prints intent URIs to w.
type WriterLauncher struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterLauncher returns a launcher that writes to w.
func NewWriterLauncher(w io.Writer) *WriterLauncher { return &WriterLauncher{w: w} }

// Launch implements domain.IntentLauncher.
func (l *WriterLauncher) Launch(_ context.Context, in domain.Intent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := fmt.Fprintln(l.w, in.URI)
	return err
}

var _ domain.IntentLauncher = (*WriterLauncher)(nil)
