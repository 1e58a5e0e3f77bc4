package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/tilewalk/internal/session"
	"chosenoffset.com/tilewalk/internal/term"
)

func main() {
	configPath := flag.String("config", "tilewalk.json", "Path to the config file")
	mapPath := flag.String("map", "", "Collision file to load instead of the built-in map")
	logPath := flag.String("log", "", "Write logs to this file (the terminal is busy drawing)")
	flag.Parse()

	if err := run(*configPath, *mapPath, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, mapPath, logPath string) error {
	cfg, err := session.LoadConfig(configPath, mapPath, "", false)
	if err != nil {
		return err
	}

	logOut := io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := session.NewLogger(logOut, cfg.Debug.LogLevel)
	if err != nil {
		return err
	}

	collisions, err := session.LoadMap(cfg)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	app, err := term.New(screen, cfg, collisions, runtime.GOOS, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
