package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/ChizhovVadim/CounterBot/pkg/engine"
	"github.com/ChizhovVadim/CounterBot/pkg/eval"
)

type Config struct {
	LogLevel string         `yaml:"log_level"`
	Engine   engine.Options `yaml:"engine"`
	Eval     eval.Weights   `yaml:"eval"`
	Bench    BenchConfig    `yaml:"bench"`
	Arena    ArenaConfig    `yaml:"arena"`
}

type BenchConfig struct {
	Depth   int `yaml:"depth"`
	Workers int `yaml:"workers"`
}

// ArenaConfig drives self-play matches between two evaluator settings.
type ArenaConfig struct {
	Workers  int           `yaml:"workers"`
	Depth    int           `yaml:"depth"`
	MoveTime time.Duration `yaml:"move_time"`
	MaxPlies int           `yaml:"max_plies"`

	OpponentPositionalWeight float64 `yaml:"opponent_positional_weight"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Engine:   engine.NewOptions(),
		Eval:     eval.DefaultWeights(),
		Bench: BenchConfig{
			Depth:   4,
			Workers: 1,
		},
		Arena: ArenaConfig{
			Workers:  1,
			Depth:    3,
			MaxPlies: 200,
		},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	var config = Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
		if err := decode(data, &config); err != nil {
			return config, fmt.Errorf("parse config %v: %w", path, err)
		}
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func decode(data []byte, config *Config) error {
	var dec = yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var err = dec.Decode(config)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	var o = &c.Engine
	if o.ThinkTime <= 0 {
		return errors.New("engine.think_time must be positive")
	}
	if o.MaxDepth < 0 {
		return errors.New("engine.max_depth must not be negative")
	}
	if o.CacheCeiling <= 0 {
		return errors.New("engine.cache_ceiling must be positive")
	}
	if o.ExtensionLimit < 0 {
		return errors.New("engine.extension_limit must not be negative")
	}
	if o.StopCheckHeight < 0 {
		return errors.New("engine.stop_check_height must not be negative")
	}
	if c.Eval.PositionalWeight < 0 {
		return errors.New("eval.positional_weight must not be negative")
	}
	var ph = c.Eval.Phase
	if ph.OpeningPlies > ph.EarlyPlies {
		return errors.New("eval.phase: opening_plies exceeds early_plies")
	}
	if ph.LateEndgamePieces > ph.EndgamePieces || ph.EndgamePieces > ph.LateMiddlePieces {
		return errors.New("eval.phase: piece thresholds must not decrease from late endgame to late middle game")
	}
	if c.Bench.Depth <= 0 {
		return errors.New("bench.depth must be positive")
	}
	if c.Bench.Workers <= 0 {
		return errors.New("bench.workers must be positive")
	}
	if c.Arena.Workers <= 0 {
		return errors.New("arena.workers must be positive")
	}
	if c.Arena.Depth <= 0 && c.Arena.MoveTime <= 0 {
		return errors.New("arena needs depth or move_time")
	}
	if c.Arena.MaxPlies < 0 || c.Arena.OpponentPositionalWeight < 0 {
		return errors.New("arena.max_plies and arena.opponent_positional_weight must not be negative")
	}
	return nil
}
