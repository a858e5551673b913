package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/uyouii/geochron/age"
	"github.com/uyouii/geochron/common"
	"github.com/uyouii/geochron/decay"
	"github.com/uyouii/geochron/kde"
	"github.com/uyouii/geochron/york"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAge76Min       = 0.0
	DefaultAge76Max       = 4600.0
	DefaultInterceptMin   = 0.0
	DefaultInterceptMax   = 4600.0
	DefaultMaxDiscordance = 10.0
	DefaultLogLevel       = "info"
	defaultConfigFileMode = 0644
)

type Config struct {
	// label such as "jaffey-238" or a number in 1/Myr
	Lambda238 string `yaml:"lambda238"`
	Lambda235 string `yaml:"lambda235"`

	Age76          RangeConfig     `yaml:"age76"`
	York           YorkConfig      `yaml:"york"`
	WMean          WMeanConfig     `yaml:"wmean"`
	Density        DensityConfig   `yaml:"density"`
	Intercept      InterceptConfig `yaml:"intercept"`
	MaxDiscordance float64         `yaml:"max_discordance"`
	LogLevel       string          `yaml:"log_level"`
}

// RangeConfig is an age bracket in Myr.
type RangeConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type YorkConfig struct {
	Iterations int `yaml:"iterations"`
}

type WMeanConfig struct {
	Corrected bool `yaml:"corrected"`
}

type DensityConfig struct {
	BandwidthAdjust float64   `yaml:"bandwidth_adjust"`
	Cut             float64   `yaml:"cut"`
	Quantiles       []float64 `yaml:"quantiles"`
}

type InterceptConfig struct {
	Range   RangeConfig `yaml:"range"`
	Samples int         `yaml:"samples"`
	Seed    uint64      `yaml:"seed"`
}

func DefaultConfig() *Config {
	intercept := age.DefaultInterceptOptions()
	return &Config{
		Lambda238: decay.LabelJaffey238,
		Lambda235: decay.LabelSchoene235,
		Age76: RangeConfig{
			Min: DefaultAge76Min,
			Max: DefaultAge76Max,
		},
		York: YorkConfig{
			Iterations: york.DefaultIterations,
		},
		Density: DensityConfig{
			BandwidthAdjust: kde.DefaultBandwidthAdjust,
			Cut:             kde.DefaultCut,
			Quantiles:       slices.Clone(kde.DefaultQuantiles),
		},
		Intercept: InterceptConfig{
			Range: RangeConfig{
				Min: DefaultInterceptMin,
				Max: DefaultInterceptMax,
			},
			Samples: intercept.Samples,
			Seed:    intercept.Seed,
		},
		MaxDiscordance: DefaultMaxDiscordance,
		LogLevel:       DefaultLogLevel,
	}
}

// Load overlays the YAML file at path onto DefaultConfig and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, defaultConfigFileMode)
}

func (c *Config) Validate() error {
	if _, err := c.Constants(); err != nil {
		return err
	}
	if !(c.Age76.Min < c.Age76.Max) {
		return fmt.Errorf("%w: age76 range [%g, %g] is empty", common.ErrorInvalidValue, c.Age76.Min, c.Age76.Max)
	}
	if !(c.Intercept.Range.Min < c.Intercept.Range.Max) {
		return fmt.Errorf("%w: intercept range [%g, %g] is empty", common.ErrorInvalidValue,
			c.Intercept.Range.Min, c.Intercept.Range.Max)
	}
	if c.York.Iterations < 1 {
		return fmt.Errorf("%w: york iterations %d must be at least 1", common.ErrorInvalidValue, c.York.Iterations)
	}
	if c.Intercept.Samples < 2 {
		return fmt.Errorf("%w: intercept samples %d must be at least 2", common.ErrorInvalidValue, c.Intercept.Samples)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", common.ErrorInvalidValue, c.LogLevel)
	}
	for _, q := range c.Density.Quantiles {
		if !(q > 0 && q < 1) {
			return fmt.Errorf("%w: density quantile %g outside (0, 1)", common.ErrorInvalidValue, q)
		}
	}
	return nil
}

// Constants resolves the configured decay-constant selectors.
func (c *Config) Constants() (age.Constants, error) {
	return age.NewConstants(decay.ParseSelector(c.Lambda238), decay.ParseSelector(c.Lambda235))
}

func (c *Config) InterceptOptions() age.InterceptOptions {
	return age.InterceptOptions{
		Samples: c.Intercept.Samples,
		Seed:    c.Intercept.Seed,
	}
}
