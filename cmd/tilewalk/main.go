package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"chosenoffset.com/tilewalk/internal/audio"
	"chosenoffset.com/tilewalk/internal/game"
	ebitenrender "chosenoffset.com/tilewalk/internal/render/ebiten"
	"chosenoffset.com/tilewalk/internal/session"
)

func main() {
	configPath := flag.String("config", "tilewalk.json", "Path to the config file")
	mapPath := flag.String("map", "", "Collision file to load instead of the built-in map")
	debug := flag.Bool("debug", false, "Show obstacles and the debug HUD, and log at debug level")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flag.Parse()

	cfg, err := session.LoadConfig(*configPath, *mapPath, *logLevel, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger, err := session.NewLogger(os.Stderr, cfg.Debug.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	collisions, err := session.LoadMap(cfg)
	if err != nil {
		logger.Fatal("Failed to load collision map", "err", err)
	}

	// Initialize the renderer backend (ebiten)
	renderer, err := ebitenrender.NewRenderer()
	if err != nil {
		logger.Fatal("Failed to create renderer", "err", err)
	}
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	music := audio.Start(cfg.Audio, cfg.AssetPath(cfg.Assets.Music), logger)
	defer music.Close()

	g, err := game.New(game.Options{
		Config:   cfg,
		Map:      collisions,
		Renderer: renderer,
		InputMgr: inputMgr,
		Loader:   loader,
		Music:    music,
		Logger:   logger,
		GOOS:     runtime.GOOS,
	})
	if err != nil {
		music.Close()
		logger.Fatal("Failed to start session", "err", err)
	}

	// Set up the window
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(cfg.Window.Resizable)

	logger.Info("Starting game", "map", collisions.Name)
	if err := engine.RunGame(g); err != nil {
		music.Close()
		logger.Fatal("Game loop failed", "err", err)
	}
	logger.Info("Goodbye")
}
