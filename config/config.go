package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"pizza-harness/loadtest"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the harness configuration, read from the environment.
type Config struct {
	BaseURL      string        `env:"PIZZA_BASE_URL" envDefault:"http://localhost:5173"`
	FactoryURL   string        `env:"PIZZA_FACTORY_URL"`
	Mock         bool          `env:"LOADTEST_MOCK" envDefault:"true"`
	ScenarioFile string        `env:"LOADTEST_SCENARIO"`
	Stages       string        `env:"LOADTEST_STAGES"`
	ThinkTime    time.Duration `env:"LOADTEST_THINK_TIME" envDefault:"1s"`
	MockLatency  time.Duration `env:"MOCK_LATENCY" envDefault:"0s"`
	JWTSecret    string        `env:"JWT_SECRET"`
	FrontendURL  string        `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	Debug        bool          `env:"GATEWAY_DEBUG"`
}

// LoadEnv loads the file named by PIZZA_ENV_FILE, or .env.
func LoadEnv() error {
	path := GetEnv("PIZZA_ENV_FILE", ".env")
	// A missing file is fine; the variables may already be set.
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.FactoryURL == "" {
		cfg.FactoryURL = cfg.BaseURL
	}
	return cfg, nil
}

// LoadStages parses LOADTEST_STAGES, falling back to the default ramp when
// it is unset.
func (c Config) LoadStages() ([]loadtest.Stage, error) {
	if c.Stages == "" {
		return loadtest.DefaultStages(), nil
	}
	return loadtest.ParseStages(c.Stages)
}

// ValidateEnv checks the values Load cannot check by type alone.
func ValidateEnv(cfg Config) error {
	for name, raw := range map[string]string{"PIZZA_BASE_URL": cfg.BaseURL, "PIZZA_FACTORY_URL": cfg.FactoryURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}

	if _, err := cfg.LoadStages(); err != nil {
		return fmt.Errorf("LOADTEST_STAGES: %w", err)
	}

	if cfg.ThinkTime < 0 || cfg.MockLatency < 0 {
		return fmt.Errorf("durations must not be negative")
	}

	if !cfg.Mock && cfg.ScenarioFile != "" {
		log.Println("WARNING: LOADTEST_SCENARIO is ignored when LOADTEST_MOCK is false")
	}
	if cfg.Mock && cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET not set - the mock gateway issues fixed tokens")
	}

	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
