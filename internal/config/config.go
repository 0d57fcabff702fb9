package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/dgnsrekt/gexlab/internal/gex"
)

type Config struct {
	DataDir string        `mapstructure:"data_dir"`
	Output  OutputConfig  `mapstructure:"output"`
	Load    LoadConfig    `mapstructure:"load"`
	NetGEX  NetGEXConfig  `mapstructure:"netgex"`
	DGI     DGIConfig     `mapstructure:"dgi"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type OutputConfig struct {
	Directory string `mapstructure:"directory"`
}

type LoadConfig struct {
	Workers int `mapstructure:"workers"`
}

type NetGEXConfig struct {
	StrikeWidth float64 `mapstructure:"strike_width"`
	Multiplier  float64 `mapstructure:"multiplier"`
	GammaScale  float64 `mapstructure:"gamma_scale"`
	DealerShort bool    `mapstructure:"dealer_short"`
}

type DGIConfig struct {
	MinAbsDelta float64 `mapstructure:"min_abs_delta"`
	MaxAbsDelta float64 `mapstructure:"max_abs_delta"`
}

type ServerConfig struct {
	Port          string `mapstructure:"port"`
	RatePerSecond int    `mapstructure:"rate_per_second"`
}

type LoggingConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory"`
	Level     string `mapstructure:"level"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("data_dir", "data")
	v.SetDefault("output.directory", "charts")
	v.SetDefault("load.workers", 3)
	v.SetDefault("netgex.strike_width", 50.0)
	v.SetDefault("netgex.multiplier", gex.DefaultMultiplier)
	v.SetDefault("netgex.gamma_scale", 0.01)
	v.SetDefault("netgex.dealer_short", true)
	v.SetDefault("dgi.min_abs_delta", gex.DefaultMinAbsDelta)
	v.SetDefault("dgi.max_abs_delta", gex.DefaultMaxAbsDelta)
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.rate_per_second", 10)
	v.SetDefault("logging.enabled", false)
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.level", "info")

	// Environment variable support
	v.SetEnvPrefix("GEXLAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Load config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("default")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.Load.Workers < 1 {
		return fmt.Errorf("load.workers must be >= 1")
	}
	if c.NetGEX.StrikeWidth <= 0 {
		return fmt.Errorf("netgex.strike_width must be > 0")
	}
	if c.NetGEX.Multiplier <= 0 {
		return fmt.Errorf("netgex.multiplier must be > 0")
	}
	if c.DGI.MinAbsDelta < 0 || c.DGI.MaxAbsDelta > 1 || c.DGI.MinAbsDelta > c.DGI.MaxAbsDelta {
		return fmt.Errorf("dgi delta band must satisfy 0 <= min <= max <= 1")
	}
	if c.Server.RatePerSecond < 1 {
		return fmt.Errorf("server.rate_per_second must be >= 1")
	}
	return nil
}

// NetGEXParams maps the config block onto metric parameters.
func (c *Config) NetGEXParams() gex.NetGEXParams {
	return gex.NetGEXParams{
		StrikeWidth: c.NetGEX.StrikeWidth,
		Multiplier:  c.NetGEX.Multiplier,
		GammaScale:  c.NetGEX.GammaScale,
		DealerShort: c.NetGEX.DealerShort,
	}
}
