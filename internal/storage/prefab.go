package storage

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-arena/internal/game"
)

// Prefab is a hand-placed entity in an arena layout. The asset id becomes the
// entity id, and the class defaults to obstacle.
type Prefab struct {
	Entity game.Entity
}

func (p *Prefab) UnmarshalJSON(b []byte) error {
	e := game.Entity{Class: game.ClassObstacle}
	if err := json.Unmarshal(b, &e); err != nil {
		return err
	}
	p.Entity = e
	return nil
}

func (p *Prefab) Validate() error {
	if p == nil {
		return fmt.Errorf("spec must be set")
	}
	// The id comes from the asset envelope.
	e := p.Entity
	if e.ID == "" {
		e.ID = "prefab"
	}
	return e.Validate()
}

// LoadLayout reads every prefab under path and returns them as entities in id
// order.
func LoadLayout(path string) ([]game.Entity, error) {
	store, err := NewFileStore[*Prefab](path)
	if err != nil {
		return nil, fmt.Errorf("loading layout %s: %w", path, err)
	}

	var entities []game.Entity
	for _, id := range store.Ids() {
		p, _ := store.Get(id)
		e := p.Entity
		e.ID = id.String()
		entities = append(entities, e)
	}
	return entities, nil
}
