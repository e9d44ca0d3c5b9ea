package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr         string        `yaml:"addr"`
	APITimeout   time.Duration `yaml:"timeout"`
	DatabasePath string        `yaml:"database_path"`
	Faults       FaultsConfig  `yaml:"faults"`
}

// FaultsConfig tunes the simulated transport: a uniform latency window on
// every request and a fixed failure probability on writes. A zero ErrorRate
// disables injection; a non-zero Seed makes the injector deterministic.
type FaultsConfig struct {
	ErrorRate  float64       `yaml:"error_rate"`
	MinLatency time.Duration `yaml:"min_latency"`
	MaxLatency time.Duration `yaml:"max_latency"`
	Seed       int64         `yaml:"seed"`
}

func LoadConfig(path string) (*Config, error) {
	// .env is optional; absence is not an error
	_ = godotenv.Load()

	cfg := &Config{
		Addr:         getEnv("TALENTFLOW_ADDR", ":8080"),
		APITimeout:   15 * time.Second,
		DatabasePath: getEnv("TALENTFLOW_DATABASE_PATH", "talentflow.db"),
		Faults: FaultsConfig{
			ErrorRate:  0.02,
			MinLatency: 50 * time.Millisecond,
			MaxLatency: 250 * time.Millisecond,
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
