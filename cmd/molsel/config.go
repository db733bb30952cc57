package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/hupe1980/molsel/codec"
	"github.com/hupe1980/molsel/lookup"
	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration of the CLI.
type Config struct {
	LogLevel  string       `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string       `yaml:"log_format" validate:"oneof=text json"`
	Codec     string       `yaml:"codec" validate:"codec"`
	Lookup    LookupConfig `yaml:"lookup"`
}

// LookupConfig tunes the grids built for the loaded structure.
type LookupConfig struct {
	CellSize        float64 `yaml:"cell_size" validate:"gte=0"`
	ElementsPerCell int     `yaml:"elements_per_cell" validate:"gte=1,lte=4096"`
}

func defaultConfig() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Codec:     codec.Default.Name(),
		Lookup:    LookupConfig{ElementsPerCell: lookup.DefaultOptions.ElementsPerCell},
	}
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("codec", func(fl validator.FieldLevel) bool {
		_, ok := codec.ByName(fl.Field().String())
		return ok
	})
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) level() slog.Level {
	var l slog.Level
	// validated by oneof above
	_ = l.UnmarshalText([]byte(c.LogLevel))
	return l
}

func (c Config) lookupOptions() func(o *lookup.Options) {
	return func(o *lookup.Options) {
		o.CellSize = c.Lookup.CellSize
		o.ElementsPerCell = c.Lookup.ElementsPerCell
	}
}
