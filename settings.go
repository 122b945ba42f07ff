package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Settings holds application settings, loaded from YAML and LIFESPAN_* env vars
type Settings struct {
	App      AppSettings    `mapstructure:"app"`
	Server   ServerSettings `mapstructure:"server"`
	Lifespan BaseLifespan   `mapstructure:"lifespan"`
	Limits   Limits         `mapstructure:"limits"`
	Report   ReportSettings `mapstructure:"report"`
}

type AppSettings struct {
	LogLevel string `mapstructure:"log_level"`
}

type ServerSettings struct {
	Addr string `mapstructure:"addr"`
}

type ReportSettings struct {
	TopImpacts int    `mapstructure:"top_impacts"` // Entries in the "main factors" table
	OutputDir  string `mapstructure:"output_dir"`  // Directory for HTML/PDF/JSON files
}

// DefaultSettings returns the settings used when no file is given
func DefaultSettings() Settings {
	return Settings{
		App:      AppSettings{LogLevel: "info"},
		Server:   ServerSettings{Addr: "localhost:8080"},
		Lifespan: DefaultBaseLifespan(),
		Limits:   DefaultLimits(),
		Report:   ReportSettings{TopImpacts: 10, OutputDir: "."},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	d := DefaultSettings()
	v.SetDefault("app.log_level", d.App.LogLevel)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("lifespan.base_male", d.Lifespan.Male)
	v.SetDefault("lifespan.base_female", d.Lifespan.Female)
	v.SetDefault("limits.min", d.Limits.Min)
	v.SetDefault("limits.max", d.Limits.Max)
	v.SetDefault("limits.realistic_max", d.Limits.RealisticMax)
	v.SetDefault("limits.min_effective_acm", d.Limits.MinEffectiveACM)
	v.SetDefault("report.top_impacts", d.Report.TopImpacts)
	v.SetDefault("report.output_dir", d.Report.OutputDir)

	v.SetEnvPrefix("LIFESPAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings reads settings from configPath. An empty path uses defaults
// plus environment overrides.
func LoadSettings(configPath string) (*Settings, error) {
	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read settings failed: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal settings failed: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that limits are ordered and baselines are positive
func (s *Settings) Validate() error {
	if s.Lifespan.Male <= 0 || s.Lifespan.Female <= 0 {
		return fmt.Errorf("lifespan baselines must be positive")
	}
	if s.Limits.Min <= 0 || s.Limits.RealisticMax <= s.Limits.Min {
		return fmt.Errorf("limits.realistic_max (%.0f) must exceed limits.min (%.0f)", s.Limits.RealisticMax, s.Limits.Min)
	}
	if s.Limits.Max < s.Limits.RealisticMax {
		return fmt.Errorf("limits.max (%.0f) must not be below limits.realistic_max (%.0f)", s.Limits.Max, s.Limits.RealisticMax)
	}
	if s.Limits.MinEffectiveACM <= -100 {
		return fmt.Errorf("limits.min_effective_acm must be greater than -100 (got %d)", s.Limits.MinEffectiveACM)
	}
	if s.Report.TopImpacts < 0 {
		return fmt.Errorf("report.top_impacts must not be negative")
	}
	return nil
}
