package input

import (
	"context"
	"log/slog"
	"sync"
)

// Queue hands parsed commands from readers to the tick loop in arrival
// order. Push never blocks on the consumer and Drain never waits for input.
type Queue struct {
	mu    sync.Mutex
	items []Command
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Push(c Command) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, c)
}

// Drain removes and returns everything queued so far.
func (q *Queue) Drain() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Ingest parses a line and queues the resulting command. Lines that fail to
// parse are logged and dropped.
func Ingest(ctx context.Context, q *Queue, line []byte) bool {
	cmd, err := Parse(line)
	if err != nil {
		slog.WarnContext(ctx, "dropping input line", "error", err)
		return false
	}
	q.Push(cmd)
	return true
}
