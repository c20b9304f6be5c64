// Package config loads hazcalc configuration from file and environment and
// initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/basin-labs/hazcalc/internal/exceedance"
	"github.com/basin-labs/hazcalc/internal/scaling"
)

// Config holds the full application configuration.
type Config struct {
	Store StoreConfig `yaml:"store" mapstructure:"store"`
	Calc  CalcConfig  `yaml:"calc" mapstructure:"calc"`
	Log   LogConfig   `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the results database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// CalcConfig configures the hazard calculation: the truncation policy and
// level applied to every ground-motion distribution, the default scaling
// relationship for rupture geometry, and optional overrides for the
// intensity-measure levels the curves are computed at.
type CalcConfig struct {
	TruncationModel string    `yaml:"truncation_model" mapstructure:"truncation_model"`
	TruncationLevel float64   `yaml:"truncation_level" mapstructure:"truncation_level"`
	Scaling         string    `yaml:"scaling" mapstructure:"scaling"`
	IMLs            []float64 `yaml:"imls" mapstructure:"imls"`
	MaxConcurrent   int       `yaml:"max_concurrent_sites" mapstructure:"max_concurrent_sites"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("HAZCALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "hazcalc.db")
	v.SetDefault("calc.truncation_model", string(exceedance.UpperOnly))
	v.SetDefault("calc.truncation_level", 3.0)
	v.SetDefault("calc.scaling", scaling.IDShaw09Mod)
	v.SetDefault("calc.max_concurrent_sites", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that calculation settings resolve to known policies.
func (c *Config) Validate() error {
	if _, err := exceedance.ParseModel(c.Calc.TruncationModel); err != nil {
		return err
	}
	if c.Calc.TruncationLevel < 0 {
		return eris.Errorf("config: negative truncation level %g", c.Calc.TruncationLevel)
	}
	if c.Calc.Scaling != scaling.IDGeometry {
		if _, err := scaling.ByName(c.Calc.Scaling); err != nil {
			return err
		}
	}
	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		return eris.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
