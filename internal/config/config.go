package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/twpayne/go-proximity"
)

// Config holds the full application configuration.
type Config struct {
	Proximity ProximityConfig `yaml:"proximity" mapstructure:"proximity"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ProximityConfig configures proximity computations.
type ProximityConfig struct {
	Strategy            string `yaml:"strategy" mapstructure:"strategy"`
	Workers             int    `yaml:"workers" mapstructure:"workers"`
	ScaleMode           string `yaml:"scale_mode" mapstructure:"scale_mode"`
	Anchor              string `yaml:"anchor" mapstructure:"anchor"`
	CoordinateCacheSize int    `yaml:"coordinate_cache_size" mapstructure:"coordinate_cache_size"`
	TargetCacheSize     int    `yaml:"target_cache_size" mapstructure:"target_cache_size"`
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
	v.SetConfigName("proximity")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PROXIMITY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("proximity.strategy", "sequential")
	v.SetDefault("proximity.workers", 0)
	v.SetDefault("proximity.scale_mode", "geometric_mean")
	v.SetDefault("proximity.anchor", "corner")
	v.SetDefault("proximity.coordinate_cache_size", 16)
	v.SetDefault("proximity.target_cache_size", 64)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

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

// Options converts c into proximity options.
func (c ProximityConfig) Options() ([]proximity.Option, error) {
	strategy, err := proximity.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, eris.Wrap(err, "config: strategy")
	}
	scaleMode, err := proximity.ParseScaleMode(c.ScaleMode)
	if err != nil {
		return nil, eris.Wrap(err, "config: scale mode")
	}
	var anchor proximity.Anchor
	switch c.Anchor {
	case "corner", "":
		anchor = proximity.AnchorCorner
	case "center":
		anchor = proximity.AnchorCenter
	default:
		return nil, eris.Errorf("config: unknown anchor %q", c.Anchor)
	}
	return []proximity.Option{
		proximity.WithStrategy(strategy),
		proximity.WithWorkers(c.Workers),
		proximity.WithScaleMode(scaleMode),
		proximity.WithAnchor(anchor),
		proximity.WithCoordinateCacheSize(c.CoordinateCacheSize),
	}, nil
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
