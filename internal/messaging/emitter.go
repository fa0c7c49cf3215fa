package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pixil98/go-arena/internal/game"
	"github.com/pixil98/go-errors"
)

// WonLine is written once, after the last state line of a finished match.
var WonLine = []byte(`"game_won"`)

// Emitter receives the output of each tick.
type Emitter interface {
	EmitState(ctx context.Context, entities []game.Entity) error
	EmitWon(ctx context.Context) error
}

// EncodeState renders one tick's entities as a single JSON array.
func EncodeState(entities []game.Entity) ([]byte, error) {
	if entities == nil {
		entities = []game.Entity{}
	}
	b, err := json.Marshal(entities)
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return b, nil
}

// LineEmitter writes each output as one line on a stream.
type LineEmitter struct {
	w io.Writer
}

func NewLineEmitter(w io.Writer) *LineEmitter {
	return &LineEmitter{w: w}
}

func (e *LineEmitter) EmitState(_ context.Context, entities []game.Entity) error {
	b, err := EncodeState(entities)
	if err != nil {
		return err
	}
	return e.writeLine(b)
}

func (e *LineEmitter) EmitWon(_ context.Context) error {
	return e.writeLine(WonLine)
}

func (e *LineEmitter) writeLine(b []byte) error {
	line := make([]byte, 0, len(b)+1)
	line = append(line, b...)
	line = append(line, '\n')
	if _, err := e.w.Write(line); err != nil {
		return fmt.Errorf("writing output line: %w", err)
	}
	return nil
}

// Emitters fans output out to several emitters. Every emitter is called
// even when an earlier one fails.
type Emitters []Emitter

func (es Emitters) EmitState(ctx context.Context, entities []game.Entity) error {
	el := errors.NewErrorList()
	for _, e := range es {
		el.Add(e.EmitState(ctx, entities))
	}
	return el.Err()
}

func (es Emitters) EmitWon(ctx context.Context) error {
	el := errors.NewErrorList()
	for _, e := range es {
		el.Add(e.EmitWon(ctx))
	}
	return el.Err()
}
