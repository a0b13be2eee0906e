package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "SWOT_ATLAS"
	dateLayout = "2006-01-02"
)

type Config struct {
	OutputDir     string         `mapstructure:"output_dir" validate:"required"`
	PortfolioDir  string         `mapstructure:"portfolio_dir" validate:"required"`
	Forms         []string       `mapstructure:"forms" validate:"required,min=1,dive,required"`
	EarliestStart string         `mapstructure:"earliest_start" validate:"required,datetime=2006-01-02"`
	LatestEnd     string         `mapstructure:"latest_end" validate:"required,datetime=2006-01-02"`
	Source        string         `mapstructure:"source" validate:"oneof=fs s3"`
	S3            S3Config       `mapstructure:"s3"`
	Pipeline      PipelineConfig `mapstructure:"pipeline"`
	DBPath        string         `mapstructure:"db_path" validate:"required"`
	Server        ServerConfig   `mapstructure:"server"`
	LogLevel      string         `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`
}

type S3Config struct {
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
	Region string `mapstructure:"region"`
}

type PipelineConfig struct {
	Command string        `mapstructure:"command" validate:"required"`
	Args    []string      `mapstructure:"args"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type ServerConfig struct {
	Host string `mapstructure:"host" validate:"required"`
	Port string `mapstructure:"port" validate:"required,numeric"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", "sec_swot_output")
	v.SetDefault("portfolio_dir", "sec_portfolio")
	v.SetDefault("forms", []string{"10-K"})
	v.SetDefault("earliest_start", "2020-01-01")
	v.SetDefault("latest_end", "2025-12-31")
	v.SetDefault("source", "fs")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("pipeline.command", "python")
	v.SetDefault("pipeline.args", []string{"swot_analysis.py"})
	v.SetDefault("pipeline.timeout", "0s")
	v.SetDefault("db_path", "swot-atlas.db")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("log_level", "info")
}

// LoadConfig reads an optional YAML file, then SWOT_ATLAS_* environment variables.
// An empty path uses defaults and the environment only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Source == "s3" && c.S3.Bucket == "" {
		return errors.New("invalid config: s3.bucket is required when source is s3")
	}

	earliest, latest, err := c.DateBounds()
	if err != nil {
		return err
	}
	if latest.Before(earliest) {
		return fmt.Errorf("invalid config: latest_end %s precedes earliest_start %s", c.LatestEnd, c.EarliestStart)
	}
	return nil
}

func (c *Config) DateBounds() (earliest, latest time.Time, err error) {
	earliest, err = time.Parse(dateLayout, c.EarliestStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid earliest_start: %w", err)
	}
	latest, err = time.Parse(dateLayout, c.LatestEnd)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid latest_end: %w", err)
	}
	return earliest, latest, nil
}

func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
