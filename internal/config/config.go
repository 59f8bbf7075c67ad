package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Backend struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"backend"`
	Questions struct {
		File string `yaml:"file"`
		URL  string `yaml:"url"`
	} `yaml:"questions"`
	Quiz struct {
		TimeLimit       string `yaml:"time_limit"`
		BasePoints      int    `yaml:"base_points"`
		MaxTimeBonus    int    `yaml:"max_time_bonus"`
		AdvancePoll     string `yaml:"advance_poll"`
		LeaderboardPoll string `yaml:"leaderboard_poll"`
	} `yaml:"quiz"`
	Storage struct {
		File  string `yaml:"file"`
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"storage"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DurationOr parses a duration string or returns the fallback if empty or invalid.
func DurationOr(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// IntOr returns n unless it is zero.
func IntOr(n, fallback int) int {
	if n == 0 {
		return fallback
	}
	return n
}
