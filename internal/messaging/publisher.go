package messaging

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pixil98/go-arena/internal/game"
)

const (
	SubjectInput  = "input"
	SubjectState  = "state"
	SubjectEvents = "events"
)

// Subject joins a match prefix and a channel name.
func Subject(prefix, name string) string {
	return prefix + "." + name
}

// NatsPublisher mirrors tick output onto NATS subjects under a prefix.
type NatsPublisher struct {
	server *NatsServer
	prefix string
}

// NewNatsPublisher wraps a NatsServer for match output.
func NewNatsPublisher(server *NatsServer, prefix string) *NatsPublisher {
	return &NatsPublisher{
		server: server,
		prefix: prefix,
	}
}

func (p *NatsPublisher) EmitState(ctx context.Context, entities []game.Entity) error {
	b, err := EncodeState(entities)
	if err != nil {
		return err
	}
	return p.publish(ctx, SubjectState, b)
}

func (p *NatsPublisher) EmitWon(ctx context.Context) error {
	return p.publish(ctx, SubjectEvents, WonLine)
}

func (p *NatsPublisher) publish(ctx context.Context, name string, data []byte) error {
	err := p.server.Publish(Subject(p.prefix, name), data)
	if errors.Is(err, ErrNotReady) {
		slog.DebugContext(ctx, "nats not ready, skipping publish", "subject", name)
		return nil
	}
	return err
}
