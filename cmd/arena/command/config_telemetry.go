package command

import (
	"context"

	"github.com/pixil98/go-arena/internal/telemetry"
)

const defaultServiceName = "arena"

type TelemetryConfig struct {
	Endpoint    string `json:"endpoint" env:"ARENA_OTEL_ENDPOINT"`
	ServiceName string `json:"service_name"`
}

func (c *TelemetryConfig) buildProvider(ctx context.Context) (*telemetry.Provider, error) {
	name := c.ServiceName
	if name == "" {
		name = defaultServiceName
	}
	return telemetry.Setup(ctx, c.Endpoint, name)
}
