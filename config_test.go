package main

import (
	"bytes"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodul/arcade3d/crossword"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arcade.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GCP_PROJECT_ID", "")
	t.Setenv("GCP_REGION", "")
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(defaultConfigFile)
	if err != nil {
		t.Fatalf("missing default file should not fail: %v", err)
	}
	def := DefaultConfig()
	if cfg.Port != def.Port || cfg.Gemini.Model != def.Gemini.Model || cfg.Crossword.MaxAttempts != crossword.DefaultMaxAttempts {
		t.Fatalf("expected defaults, got %+v", cfg)
	}

	// A file named explicitly must exist.
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GCP_PROJECT_ID", "")
	t.Setenv("GCP_REGION", "")

	path := writeConfig(t, `
port = "9090"

[gemini]
project_id = "demo"
model = "gemini-2.5-pro"

[crossword]
max_attempts = 200

[crossword.targets]
"5" = 6
"9" = 25

[limits]
create_per_minute = 3
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.Gemini.ProjectID != "demo" || cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Fatalf("unexpected values %+v", cfg)
	}
	if cfg.Gemini.Region != defaultRegion {
		t.Fatalf("region should keep its default, got %q", cfg.Gemini.Region)
	}
	if cfg.Crossword.MaxAttempts != 200 || cfg.Limits.CreatePerMinute != 3 || cfg.Limits.MovesPerSecond != 20 {
		t.Fatalf("unexpected limits %+v %+v", cfg.Crossword, cfg.Limits)
	}
	targets, err := cfg.Crossword.targets()
	if err != nil {
		t.Fatal(err)
	}
	if targets[5] != 6 || targets[9] != 25 || len(targets) != 2 {
		t.Fatalf("unexpected targets %v", targets)
	}
	if n := len(cfg.Crossword.GenerateOptions()); n != 2 {
		t.Fatalf("expected attempts and targets options, got %d", n)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("GCP_PROJECT_ID", "from-env")
	t.Setenv("GCP_REGION", "us-central1")

	path := writeConfig(t, `
port = "9090"
[gemini]
project_id = "from-file"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "7000" || cfg.Gemini.ProjectID != "from-env" || cfg.Gemini.Region != "us-central1" {
		t.Fatalf("environment should win, got %+v", cfg)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GCP_PROJECT_ID", "")
	t.Setenv("GCP_REGION", "")

	tests := map[string]string{
		"syntax":       `port = `,
		"attempts":     "[crossword]\nmax_attempts = 0\n",
		"target key":   "[crossword.targets]\nbig = 3\n",
		"target value": "[crossword.targets]\n\"5\" = 0\n",
		"limits":       "[limits]\nmoves_per_second = -1\n",
		"wrong type":   `port = 8080`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, body)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestTraceLogsGeneration(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	cfg := DefaultConfig()
	if n := len(cfg.Crossword.GenerateOptions()); n != 1 {
		t.Fatalf("expected only the attempts option without trace, got %d", n)
	}

	t.Setenv("PORT", "")
	cfg, err := LoadConfig(writeConfig(t, "[crossword]\ntrace = true\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Crossword.Trace {
		t.Fatal("trace should be read from the file")
	}
	p := crossword.GenerateDifficulty(5, "easy", cfg.Crossword.GenerateOptions()...)
	if !strings.Contains(buf.String(), "crossword: placed") {
		t.Fatalf("expected a generation trace, got %q (%d words)", buf.String(), len(p.Words))
	}
}
