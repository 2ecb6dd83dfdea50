package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/dd0wney/cluso-netanalyzer/pkg/analysis"
	"github.com/dd0wney/cluso-netanalyzer/pkg/logging"
	"github.com/dd0wney/cluso-netanalyzer/pkg/netio"
	"github.com/dd0wney/cluso-netanalyzer/pkg/network"
	"github.com/dd0wney/cluso-netanalyzer/pkg/stats"
)

// EnvPrefix prefixes every environment override, e.g.
// NETANALYZER_ANALYSIS_WORKERS=8.
const EnvPrefix = "NETANALYZER"

// Config holds the complete netanalyzer configuration.
type Config struct {
	Interpretation network.Interpretation `mapstructure:"interpretation" yaml:"interpretation"`
	Analysis       analysis.Config        `mapstructure:"analysis" yaml:"analysis"`
	Log            LogConfig              `mapstructure:"log" yaml:"log"`
	Metrics        MetricsConfig          `mapstructure:"metrics" yaml:"metrics"`
	Output         OutputConfig           `mapstructure:"output" yaml:"output"`
	Filters        netio.Filters          `mapstructure:"filters" yaml:"filters"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=json text"`
}

type MetricsConfig struct {
	// Addr serves /metrics when set, e.g. ":9100".
	Addr string `mapstructure:"addr" yaml:"addr" validate:"omitempty,hostname_port"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=json yaml"`
	// Path is the results file; empty writes to stdout. A ".sz" suffix
	// selects snappy framing.
	Path string `mapstructure:"path" yaml:"path"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Interpretation: network.Undirected(),
		Analysis:       analysis.DefaultConfig(),
		Log: LogConfig{
			Level:  "info",
			Format: string(logging.FormatJSON),
		},
		Output: OutputConfig{Format: "json"},
	}
}

// Load reads configuration from path, when given, on top of the defaults
// and applies NETANALYZER_* environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("interpretation.directed", d.Interpretation.Directed)
	v.SetDefault("interpretation.ignore_self_loops", d.Interpretation.IgnoreSelfLoops)
	v.SetDefault("interpretation.combine_paired", d.Interpretation.CombinePaired)

	v.SetDefault("analysis.compute_betweenness", d.Analysis.ComputeBetweenness)
	v.SetDefault("analysis.compute_strong_components", d.Analysis.ComputeStrongComponents)
	v.SetDefault("analysis.workers", d.Analysis.Workers)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("metrics.addr", d.Metrics.Addr)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.path", d.Output.Path)

	for _, name := range []string{"degree", "distance", "shared_neighbors", "stress"} {
		v.SetDefault("filters."+name+".min", 0)
		v.SetDefault("filters."+name+".max", 0)
	}
}

// Validate checks struct constraints and the histogram filter ranges.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	filters := map[string]stats.Filter{
		"degree":           c.Filters.Degree,
		"distance":         c.Filters.Distance,
		"shared_neighbors": c.Filters.SharedNeighbors,
		"stress":           c.Filters.Stress,
	}
	for _, name := range []string{"degree", "distance", "shared_neighbors", "stress"} {
		if err := filters[name].Validate(); err != nil {
			return fmt.Errorf("filters.%s: %w", name, err)
		}
	}
	return nil
}

// ToAnalysis returns the run configuration.
func (c *Config) ToAnalysis() analysis.Config {
	out := c.Analysis
	if c.Analysis.Subset != nil {
		out.Subset = append([]int(nil), c.Analysis.Subset...)
	}
	return out
}

// LogLevel parses the configured level. Validate has already rejected
// unknown names.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Log.Level)
}
