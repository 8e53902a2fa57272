// Package runconfig loads the per-run configuration for a playoff
// simulation: which provider/league to pull from, how many trials to run,
// and the random seed, from a JSON or YAML file selected by its extension.
package runconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v2"
)

// Config is everything a run needs beyond the data an Adapter fetches.
type Config struct {
	Platform     string `json:"platform" yaml:"platform"`
	LeagueID     string `json:"leagueId" yaml:"leagueId"`
	Season       string `json:"season" yaml:"season"`
	Sport        string `json:"sport" yaml:"sport"`
	PlayoffSpots int    `json:"playoffSpots" yaml:"playoffSpots"`

	Trials int   `json:"trials" yaml:"trials"`
	Seed   int64 `json:"seed" yaml:"seed"`

	// BruteForceGameLimit is read from the config file but not consulted by
	// scenario generation, which always uses its built-in limit of 10
	// current-week games for exact enumeration.
	BruteForceGameLimit int `json:"bruteForceGameLimit" yaml:"bruteForceGameLimit"`

	LogLevel  string `json:"logLevel" yaml:"logLevel"`
	LogFormat string `json:"logFormat" yaml:"logFormat"` // "text" or "json"
}

// defaultTrials matches the original engine's default Monte Carlo sample
// size; a config file that leaves Trials unset gets this value instead of
// running zero trials.
const defaultTrials = 10000

// Load reads path and unmarshals it as JSON or YAML depending on its file
// extension (.json, or .yaml/.yml). Any other extension is an error.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing JSON config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing YAML config %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config file extension %q", ext)
	}

	if cfg.Trials <= 0 {
		cfg.Trials = defaultTrials
	}
	if cfg.PlayoffSpots <= 0 {
		cfg.PlayoffSpots = 6
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}
