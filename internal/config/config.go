// Package config layers defaults, an optional YAML file, SEAMCARVER_*
// environment variables and command-line flags into one Config.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"seam-carver/internal/carve"
	"seam-carver/internal/diagnostics"
	"seam-carver/internal/logger"
)

const EnvPrefix = "SEAMCARVER"

const (
	BackendGo     = "go"
	BackendOpenCV = "opencv"
)

type Config struct {
	Backend     string            `mapstructure:"backend"`
	Trace       string            `mapstructure:"trace"`
	Parallel    bool              `mapstructure:"parallel"`
	Timing      bool              `mapstructure:"timing"`
	Log         LogConfig         `mapstructure:"log"`
	Output      OutputConfig      `mapstructure:"output"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type OutputConfig struct {
	JPEGQuality int `mapstructure:"jpeg_quality"`
}

type DiagnosticsConfig struct {
	Heatmap bool   `mapstructure:"heatmap"`
	Scale   string `mapstructure:"scale"`
}

// FlagKeys maps config keys to the flag names that override them.
var FlagKeys = map[string]string{
	"backend":             "backend",
	"trace":               "trace",
	"parallel":            "parallel",
	"timing":              "timing",
	"log.level":           "log-level",
	"log.format":          "log-format",
	"output.jpeg_quality": "jpeg-quality",
	"diagnostics.heatmap": "heatmap",
	"diagnostics.scale":   "scale",
}

// Load reads configuration. configPath may be empty; flags may be nil. Only
// flags the user actually set take precedence over the file and environment.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for key, name := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("backend", d.Backend)
	v.SetDefault("trace", d.Trace)
	v.SetDefault("parallel", d.Parallel)
	v.SetDefault("timing", d.Timing)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("output.jpeg_quality", d.Output.JPEGQuality)

	v.SetDefault("diagnostics.heatmap", d.Diagnostics.Heatmap)
	v.SetDefault("diagnostics.scale", d.Diagnostics.Scale)
}

func Default() *Config {
	return &Config{
		Backend:  BackendGo,
		Trace:    carve.TraceGradient.String(),
		Parallel: false,
		Timing:   true,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Output: OutputConfig{
			JPEGQuality: 95,
		},
		Diagnostics: DiagnosticsConfig{
			Heatmap: false,
			Scale:   "half",
		},
	}
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendGo, BackendOpenCV:
	default:
		return fmt.Errorf("invalid backend %q: want %q or %q", c.Backend, BackendGo, BackendOpenCV)
	}
	if _, err := carve.ParseTraceMode(c.Trace); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q: want console or json", c.Log.Format)
	}
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality %d out of range [1, 100]", c.Output.JPEGQuality)
	}
	if _, err := diagnostics.ParseScale(c.Diagnostics.Scale); err != nil {
		return err
	}
	return nil
}

func (c *Config) TraceMode() carve.TraceMode {
	m, _ := carve.ParseTraceMode(c.Trace)
	return m
}

func (c *Config) Scale() diagnostics.Scale {
	s, _ := diagnostics.ParseScale(c.Diagnostics.Scale)
	return s
}
