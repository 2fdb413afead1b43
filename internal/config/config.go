// Package config reads settings from the environment and an optional .env
// file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// EnvFile is loaded from the working directory when present.
	EnvFile = ".env"

	EnvTheme   = "TASKS_THEME"
	EnvNoColor = "TASKS_NO_COLOR"
	EnvDebug   = "TASKS_DEBUG"
)

// Config holds the user-tunable settings. The data file location is fixed
// and deliberately not part of it.
type Config struct {
	Theme   string
	NoColor bool
	Debug   bool
}

// Load applies .env (without overriding variables already set) and reads
// the environment.
func Load() (Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", EnvFile, err)
	}
	return FromEnv(os.Getenv), nil
}

// FromEnv builds a Config from a getenv-style lookup.
func FromEnv(getenv func(string) string) Config {
	theme := strings.TrimSpace(getenv(EnvTheme))
	if theme == "" {
		theme = "classic"
	}
	return Config{
		Theme:   strings.ToLower(theme),
		NoColor: getenv("NO_COLOR") != "" || truthy(getenv(EnvNoColor)),
		Debug:   truthy(getenv(EnvDebug)),
	}
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
