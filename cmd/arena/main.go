package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/pixil98/go-arena/cmd/arena/command"
	"github.com/pixil98/go-service"
)

func main() {
	// stdout carries match output, so logs go to stderr.
	level := new(slog.LevelVar)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := &command.Builder{
		Halt:   cancel,
		Level:  level,
		Input:  os.Stdin,
		Output: os.Stdout,
	}

	app, err := service.NewApp(&command.Config{}, b.BuildWorkers)
	if err != nil {
		slog.Error("creating application", "error", err)
		os.Exit(1)
	}

	err = app.Run(ctx)
	if err != nil {
		slog.Error("running application", "error", err)
		os.Exit(1)
	}

	slog.Info("exiting")
}
