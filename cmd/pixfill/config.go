package main

import (
	"github.com/kelseyhightower/envconfig"
)

// config holds the defaults of the command line flags, read from the environment.
type config struct {
	Color     string `envconfig:"PIXFILL_COLOR" default:"#000000"`
	Workers   int    `envconfig:"PIXFILL_WORKERS" default:"0"`
	UndoLimit int    `envconfig:"PIXFILL_UNDO_LIMIT" default:"4"`
}

func loadConfig() (*config, error) {
	var cfg config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
