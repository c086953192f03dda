package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"guardian/internal/domain"
)

// DefaultSubjectPrefix is used when no prefix is configured.
const DefaultSubjectPrefix = "guardian.events"

// New stamps a fresh event with a random ID.
func New(kind domain.EventKind, at time.Time, data map[string]string) domain.Event {
	return domain.Event{
		ID:   uuid.NewString(),
		Kind: kind,
		At:   at.UTC(),
		Data: data,
	}
}

// Subject returns the NATS subject for kind under prefix.
func Subject(prefix string, kind domain.EventKind) string {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return prefix + "." + string(kind)
}

// NATSPublisher publishes events on a NATS connection.
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

// NewNATSPublisher wraps an established connection.
func NewNATSPublisher(conn *nats.Conn, prefix string) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: prefix}
}

// Connect dials url and returns a publisher that owns the connection.
func Connect(url, prefix string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("guardian"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return NewNATSPublisher(conn, prefix), nil
}

// Publish sends event as JSON.
func (p *NATSPublisher) Publish(ctx context.Context, event domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(Subject(p.prefix, event.Kind), b); err != nil {
		return fmt.Errorf("publish %s: %w", event.Kind, err)
	}
	return nil
}

// Close drains and closes the underlying connection.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

// Nop discards events.
type Nop struct{}

// Publish implements domain.EventPublisher.
func (Nop) Publish(context.Context, domain.Event) error { return nil }

var (
	_ domain.EventPublisher = (*NATSPublisher)(nil)
	_ domain.EventPublisher = Nop{}
)
