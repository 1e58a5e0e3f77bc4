package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"chosenoffset.com/tilewalk/internal/core/geom"
	"chosenoffset.com/tilewalk/internal/game"
	"chosenoffset.com/tilewalk/internal/placeholders"
	"chosenoffset.com/tilewalk/internal/session"
	"chosenoffset.com/tilewalk/internal/world/tilegrid"
)

func main() {
	configPath := flag.String("config", "tilewalk.json", "Path to the config file")
	mapPath := flag.String("map", "", "Collision file to draw instead of the built-in map")
	outDir := flag.String("out", "", "Output directory (defaults to the configured assets dir)")
	flag.Parse()

	fmt.Println("tilewalk Placeholder Graphics Generator")
	fmt.Println("=======================================")
	fmt.Println()

	if err := generate(*configPath, *mapPath, *outDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Done! Placeholder graphics are ready to use.")
}

func generate(configPath, mapPath, outDir string) error {
	cfg, err := session.LoadConfig(configPath, mapPath, "", false)
	if err != nil {
		return err
	}
	collisions, err := session.LoadMap(cfg)
	if err != nil {
		return err
	}
	if outDir == "" {
		outDir = cfg.Assets.Dir
	}

	layout := collisions.Layout(game.LayoutFromConfig(cfg))
	grid := tilegrid.Reshape(collisions.Collisions, layout.Columns)
	set := placeholders.Generate(grid, layout, cfg.Player.Frames)

	a := cfg.Assets
	files := map[string]image.Image{
		a.Background:  set.Background,
		a.Foreground:  set.Foreground,
		a.PlayerUp:    set.Players[geom.DirUp],
		a.PlayerDown:  set.Players[geom.DirDown],
		a.PlayerLeft:  set.Players[geom.DirLeft],
		a.PlayerRight: set.Players[geom.DirRight],
	}
	delete(files, "")

	written, err := placeholders.SaveAll(outDir, files)
	for _, path := range written {
		fmt.Printf("  wrote %s\n", path)
	}
	return err
}
