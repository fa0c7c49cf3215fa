package command

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-arena/internal/messaging"
	"github.com/pixil98/go-errors"
)

const defaultSubjectPrefix = "arena"

type NatsConfig struct {
	Enabled       bool   `json:"enabled" env:"ARENA_NATS_ENABLED"`
	Host          string `json:"host" env:"ARENA_NATS_HOST"`
	Port          int    `json:"port" env:"ARENA_NATS_PORT"`
	StartTimeout  string `json:"start_timeout"`
	SubjectPrefix string `json:"subject_prefix"`
	MatchID       string `json:"match_id" env:"ARENA_MATCH_ID"`
}

func (n *NatsConfig) validate() error {
	el := errors.NewErrorList()

	if n.StartTimeout != "" {
		_, err := time.ParseDuration(n.StartTimeout)
		if err != nil {
			el.Add(fmt.Errorf("parsing start_timeout: %w", err))
		}
	}

	if n.Port < -1 || n.Port > 65535 {
		el.Add(fmt.Errorf("nats port %d is out of range", n.Port))
	}

	return el.Err()
}

// subjectPrefix returns the prefix every subject of this match lives under,
// generating a match id when none was configured.
func (n *NatsConfig) subjectPrefix() string {
	prefix := n.SubjectPrefix
	if prefix == "" {
		prefix = defaultSubjectPrefix
	}
	if n.MatchID == "" {
		n.MatchID = uuid.NewString()
	}
	return prefix + "." + n.MatchID
}

func (c *NatsConfig) buildNatsServer() (*messaging.NatsServer, error) {
	var opts []messaging.NatsServerOpt
	if c.StartTimeout != "" {
		d, err := time.ParseDuration(c.StartTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing start_timeout: %w", err)
		}
		opts = append(opts, messaging.WithStartTimeout(d))
	}
	if c.Host != "" {
		opts = append(opts, messaging.WithHost(c.Host))
	}
	if c.Port != 0 {
		opts = append(opts, messaging.WithPort(c.Port))
	}

	s, err := messaging.NewNatsServer(opts...)
	if err != nil {
		return nil, err
	}

	return s, nil
}
