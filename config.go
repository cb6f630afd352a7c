package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/bodul/arcade3d/crossword"
)

const defaultConfigFile = "arcade.toml"

// Config is the server configuration. Values come from an optional TOML
// file, then from the environment.
type Config struct {
	Port      string          `toml:"port"`
	Gemini    GeminiConfig    `toml:"gemini"`
	Crossword CrosswordConfig `toml:"crossword"`
	Limits    LimitsConfig    `toml:"limits"`
}

type GeminiConfig struct {
	ProjectID string `toml:"project_id"`
	Region    string `toml:"region"`
	Model     string `toml:"model"`
}

type CrosswordConfig struct {
	MaxAttempts int `toml:"max_attempts"`
	// Trace logs generation steps with the standard logger.
	Trace bool `toml:"trace"`
	// Targets maps a grid size ("5", "7", ...) to its word target.
	Targets map[string]int `toml:"targets"`
}

type LimitsConfig struct {
	CreatePerMinute int `toml:"create_per_minute"`
	MovesPerSecond  int `toml:"moves_per_second"`
}

func DefaultConfig() Config {
	return Config{
		Port: "8080",
		Gemini: GeminiConfig{
			Region: defaultRegion,
			Model:  defaultModel,
		},
		Crossword: CrosswordConfig{
			MaxAttempts: crossword.DefaultMaxAttempts,
		},
		Limits: LimitsConfig{
			CreatePerMinute: 10,
			MovesPerSecond:  20,
		},
	}
}

// LoadConfig reads filename over the defaults. Only the default file may
// be missing. PORT, GCP_PROJECT_ID and GCP_REGION override the file.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()
	if filename != "" {
		_, err := toml.DecodeFile(filename, &cfg)
		if err != nil && !(filename == defaultConfigFile && errors.Is(err, fs.ErrNotExist)) {
			return cfg, fmt.Errorf("read config %s: %w", filename, err)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	return cfg, cfg.validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("PORT"); ok && v != "" {
		c.Port = v
	}
	if v, ok := lookup("GCP_PROJECT_ID"); ok && v != "" {
		c.Gemini.ProjectID = v
	}
	if v, ok := lookup("GCP_REGION"); ok && v != "" {
		c.Gemini.Region = v
	}
}

func (c Config) validate() error {
	if c.Port == "" {
		return errors.New("config: port is empty")
	}
	if c.Crossword.MaxAttempts < 1 {
		return fmt.Errorf("config: crossword.max_attempts must be positive, got %d", c.Crossword.MaxAttempts)
	}
	if c.Limits.CreatePerMinute < 1 || c.Limits.MovesPerSecond < 1 {
		return errors.New("config: limits must be positive")
	}
	if _, err := c.Crossword.targets(); err != nil {
		return err
	}
	return nil
}

func (c CrosswordConfig) targets() (map[int]int, error) {
	if len(c.Targets) == 0 {
		return nil, nil
	}
	out := make(map[int]int, len(c.Targets))
	for k, v := range c.Targets {
		size, err := strconv.Atoi(k)
		if err != nil || size < 1 {
			return nil, fmt.Errorf("config: crossword.targets key %q is not a grid size", k)
		}
		if v < 1 {
			return nil, fmt.Errorf("config: crossword.targets[%s] must be positive, got %d", k, v)
		}
		out[size] = v
	}
	return out, nil
}

// GenerateOptions turns the crossword section into generator options.
func (c CrosswordConfig) GenerateOptions() []crossword.Option {
	opts := []crossword.Option{crossword.WithMaxAttempts(c.MaxAttempts)}
	if t, err := c.targets(); err == nil && t != nil {
		opts = append(opts, crossword.WithTargets(t))
	}
	if c.Trace {
		opts = append(opts, crossword.WithLogger(log.Default()))
	}
	return opts
}

func configFile() string {
	if f := os.Getenv("CONFIG_FILE"); f != "" {
		return f
	}
	return defaultConfigFile
}
