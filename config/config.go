package config

import (
	"fmt"
	"os"

	"github.com/Gobusters/ectoenv"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	AppName    string `env:"APP_NAME" env-default:"bramble" validate:"required"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error dpanic panic fatal"`
	PrettyLogs bool   `env:"PRETTY_LOGS" env-default:"false"`

	// Upper bound on combinations generated for one facet. Zero disables it.
	MaxCombinations int `env:"MAX_COMBINATIONS" env-default:"500" validate:"gte=0"`
	// Treat paths with no schema entry as required
	SchemaRequireUndeclared bool `env:"SCHEMA_REQUIRE_UNDECLARED" env-default:"true"`

	TracingEnabled   bool   `env:"TRACING_ENABLED" env-default:"false"`
	MetricsNamespace string `env:"METRICS_NAMESPACE" env-default:"bramble" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the optional env files (".env" when none are given), then binds
// the environment onto Config.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := ectoenv.BindEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
