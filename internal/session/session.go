// Package session holds the startup steps shared by the tilewalk binaries.
package session

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"chosenoffset.com/tilewalk/data"
	"chosenoffset.com/tilewalk/internal/config"
	"chosenoffset.com/tilewalk/internal/world/tilegrid"
)

// NewLogger returns a logger writing to w at the named level, tagged with a
// fresh session id. An unknown level is an error.
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilewalk",
		Level:           lvl,
	})
	return logger.With("session", uuid.NewString()), nil
}

// LoadConfig reads the config at path and applies the command-line overrides.
// Empty overrides leave the file's values alone.
func LoadConfig(path, mapPath, logLevel string, debug bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if mapPath != "" {
		cfg.Map.CollisionsPath = mapPath
	}
	if logLevel != "" {
		cfg.Debug.LogLevel = logLevel
	}
	if debug {
		cfg.Debug.ShowObstacles = true
		cfg.Debug.ShowHUD = true
		cfg.Debug.LogLevel = "debug"
	}
	return cfg, nil
}

// LoadMap returns the configured collision map, or the embedded one when no
// path is set.
func LoadMap(cfg *config.Config) (*tilegrid.CollisionMap, error) {
	if cfg.Map.CollisionsPath == "" {
		m, err := data.DefaultMap()
		if err != nil {
			return nil, fmt.Errorf("failed to load embedded collision map: %w", err)
		}
		return m, nil
	}
	return tilegrid.Load(cfg.Map.CollisionsPath)
}
