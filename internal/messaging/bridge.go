package messaging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-arena/internal/input"
)

// InputBridge is a worker that feeds commands published on the match input
// subject into the tick loop's queue.
type InputBridge struct {
	server *NatsServer
	prefix string
	q      *input.Queue
}

func NewInputBridge(server *NatsServer, prefix string, q *input.Queue) *InputBridge {
	return &InputBridge{
		server: server,
		prefix: prefix,
		q:      q,
	}
}

func (b *InputBridge) Start(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	case <-b.server.Ready():
	}

	subject := Subject(b.prefix, SubjectInput)
	unsubscribe, err := b.server.Subscribe(subject, func(data []byte) {
		input.Ingest(ctx, b.q, data)
	})
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", subject, err)
	}
	slog.InfoContext(ctx, "accepting input over nats", "subject", subject)

	<-ctx.Done()
	unsubscribe()
	return nil
}
