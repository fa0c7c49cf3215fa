package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pixil98/go-arena/internal/game"
	"github.com/pixil98/go-arena/internal/input"
	"github.com/pixil98/go-testutil"
)

func startTestServer(t *testing.T) (*NatsServer, *nats.Conn) {
	t.Helper()

	s, err := NewNatsServer(WithPort(-1), WithStartTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	select {
	case <-s.Ready():
	case err := <-done:
		cancel()
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("server never became ready")
	}

	client, err := nats.Connect(s.ClientURL())
	if err != nil {
		cancel()
		t.Fatalf("connecting client: %v", err)
	}

	t.Cleanup(func() {
		client.Close()
		cancel()
		<-done
	})

	return s, client
}

func TestNatsServer_PublishBeforeReady(t *testing.T) {
	s, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Publish("x", []byte("y")); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if _, err := s.Subscribe("x", func([]byte) {}); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}

	p := NewNatsPublisher(s, "arena.m1")
	if err := p.EmitWon(context.Background()); err != nil {
		t.Fatalf("publisher should skip when not ready: %v", err)
	}
}

func TestNatsPublisher(t *testing.T) {
	s, client := startTestServer(t)

	states, err := client.SubscribeSync("arena.m1.state")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events, err := client.SubscribeSync("arena.m1.events")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := client.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := NewNatsPublisher(s, "arena.m1")
	ctx := context.Background()
	if err := p.EmitState(ctx, []game.Entity{testEntity()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.EmitWon(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg, err := states.NextMsg(2 * time.Second)
	if err != nil {
		t.Fatalf("waiting for state: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(msg.Data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "entities", len(decoded), 1)

	msg, err = events.NextMsg(2 * time.Second)
	if err != nil {
		t.Fatalf("waiting for event: %v", err)
	}
	testutil.AssertEqual(t, "event", string(msg.Data), `"game_won"`)
}

func TestInputBridge(t *testing.T) {
	s, client := startTestServer(t)
	q := input.NewQueue()
	bridge := NewInputBridge(s, "arena.m1", q)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bridge.Start(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	deadline := time.Now().Add(3 * time.Second)
	for q.Len() == 0 && time.Now().Before(deadline) {
		_ = client.Publish("arena.m1.input", []byte(`{"action":"jump","id":"p1","linvel_z":2}`))
		_ = client.Publish("arena.m1.input", []byte(`nonsense`))
		_ = client.Flush()
		time.Sleep(20 * time.Millisecond)
	}

	cmds := q.Drain()
	if len(cmds) == 0 {
		t.Fatal("no commands arrived over nats")
	}
	for _, c := range cmds {
		testutil.AssertEqual(t, "action", c.Action(), input.ActionJump)
	}
}
