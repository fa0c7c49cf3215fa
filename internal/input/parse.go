package input

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-arena/internal/game"
	"github.com/tidwall/gjson"
)

type moveWire struct {
	ID string   `json:"id"`
	X  *float64 `json:"x"`
	Y  *float64 `json:"y"`
}

type rotateWire struct {
	ID            string   `json:"id"`
	RotationAngle *float64 `json:"rotation_angle"`
}

type jumpWire struct {
	ID      string   `json:"id"`
	LinVelZ *float64 `json:"linvel_z"`
}

// Parse decodes one line of client input. The object is dispatched on its
// "action" field; the remaining fields depend on the action.
func Parse(line []byte) (Command, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil, fmt.Errorf("%w: empty line", ErrMalformed)
	}
	if !gjson.ValidBytes(line) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformed)
	}

	action := gjson.GetBytes(line, "action")
	if !action.Exists() {
		return nil, fmt.Errorf("%w: missing action", ErrMalformed)
	}

	switch action.String() {
	case ActionMove:
		var w moveWire
		if err := decode(line, &w); err != nil {
			return nil, err
		}
		if err := require(w.ID, map[string]*float64{"x": w.X, "y": w.Y}); err != nil {
			return nil, err
		}
		return Move{ID: w.ID, X: *w.X, Y: *w.Y}, nil

	case ActionRotate:
		var w rotateWire
		if err := decode(line, &w); err != nil {
			return nil, err
		}
		if err := require(w.ID, map[string]*float64{"rotation_angle": w.RotationAngle}); err != nil {
			return nil, err
		}
		return Rotate{ID: w.ID, RotationAngle: *w.RotationAngle}, nil

	case ActionJump:
		var w jumpWire
		if err := decode(line, &w); err != nil {
			return nil, err
		}
		if err := require(w.ID, map[string]*float64{"linvel_z": w.LinVelZ}); err != nil {
			return nil, err
		}
		return Jump{ID: w.ID, LinVelZ: *w.LinVelZ}, nil

	case ActionShoot:
		e, err := parseEntity(line)
		if err != nil {
			return nil, err
		}
		return Shoot{Entity: e}, nil

	case ActionAddPlayer:
		e, err := parseEntity(line)
		if err != nil {
			return nil, err
		}
		return AddPlayer{Entity: e}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action.String())
	}
}

func decode(line []byte, v any) error {
	if err := json.Unmarshal(line, v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return nil
}

func require(id string, fields map[string]*float64) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrMalformed)
	}
	for name, v := range fields {
		if v == nil {
			return fmt.Errorf("%w: %s is required", ErrMalformed, name)
		}
	}
	return nil
}

func parseEntity(line []byte) (game.Entity, error) {
	var e game.Entity
	if err := decode(line, &e); err != nil {
		return game.Entity{}, err
	}
	if err := e.Validate(); err != nil {
		return game.Entity{}, fmt.Errorf("%w: entity %q: %w", ErrMalformed, e.ID, err)
	}
	return e, nil
}
