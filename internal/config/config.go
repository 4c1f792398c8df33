package config

import (
	"fmt"
	"strings"

	"github.com/Kilat-Pet-Delivery/service-fare/internal/application"
	"github.com/Kilat-Pet-Delivery/service-fare/internal/domain/fare"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "FARECALC"

// ServiceConfig holds all configuration for the fare calculator.
type ServiceConfig struct {
	AppEnv      string
	LogLevel    string
	CatalogFile string
	Limits      application.TripLimits
}

// Load reads configuration from FARECALC_* environment variables. Flags in
// fs, when given, take precedence over the environment.
func Load(fs *pflag.FlagSet) (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_env", "production")
	v.SetDefault("log_level", "warn")
	v.SetDefault("catalog_file", "")
	v.SetDefault("max_distance_km", 200.0)
	v.SetDefault("max_duration_min", 1000.0)

	if fs != nil {
		for key, flag := range map[string]string{
			"log_level":    "log-level",
			"catalog_file": "catalog",
		} {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
				}
			}
		}
	}

	cfg := &ServiceConfig{
		AppEnv:      v.GetString("app_env"),
		LogLevel:    v.GetString("log_level"),
		CatalogFile: v.GetString("catalog_file"),
		Limits: application.TripLimits{
			MaxDistanceKm:  v.GetFloat64("max_distance_km"),
			MaxDurationMin: v.GetFloat64("max_duration_min"),
		},
	}
	if cfg.Limits.MaxDistanceKm <= 0 {
		return nil, fmt.Errorf("max distance must be positive, got %v", cfg.Limits.MaxDistanceKm)
	}
	if cfg.Limits.MaxDurationMin <= 0 {
		return nil, fmt.Errorf("max duration must be positive, got %v", cfg.Limits.MaxDurationMin)
	}
	return cfg, nil
}

// Catalog returns the configured pricing catalog, falling back to the
// built-in tables when no catalog file is set.
func (c *ServiceConfig) Catalog() (*fare.Catalog, error) {
	if c.CatalogFile == "" {
		return fare.DefaultCatalog(), nil
	}
	return LoadCatalog(c.CatalogFile)
}
