// Package config loads planner configuration through viper. Defaults are set
// in code; a loadplan.json file in the config directory overrides them. A
// missing file is not an error.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/skylane/loadplan/internal/model"
)

// Config holds everything configurable from outside the planner core.
type Config struct {
	LogLevel string `mapstructure:"logLevel"`

	AircraftDB string `mapstructure:"aircraftDB"`
	ULDDB      string `mapstructure:"uldDB"`
	OutputFile string `mapstructure:"outputFile"`

	Strategy string `mapstructure:"strategy"`

	MainForeArm  float64 `mapstructure:"mainForeArm"`
	MainAftArm   float64 `mapstructure:"mainAftArm"`
	LowerForeArm float64 `mapstructure:"lowerForeArm"`
	LowerAftArm  float64 `mapstructure:"lowerAftArm"`
}

// Load reads loadplan.json from configDir on top of the built-in defaults.
// A missing config file yields the defaults; any other read problem is an
// error for the caller to warn about (the defaults still apply).
func Load(configDir string) (Config, error) {
	v := viper.New()

	defaults := model.DefaultSettings()
	v.SetDefault("logLevel", "info")
	v.SetDefault("aircraftDB", "aircraft_db.json")
	v.SetDefault("uldDB", "ulddb.json")
	v.SetDefault("outputFile", "loadplan.txt")
	v.SetDefault("strategy", string(defaults.Strategy))
	v.SetDefault("mainForeArm", defaults.MainForeArm)
	v.SetDefault("mainAftArm", defaults.MainAftArm)
	v.SetDefault("lowerForeArm", defaults.LowerForeArm)
	v.SetDefault("lowerAftArm", defaults.LowerAftArm)

	v.SetConfigName("loadplan")
	v.SetConfigType("json")
	v.AddConfigPath(configDir)

	var loadErr error
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			loadErr = fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, loadErr
}

// Settings converts the configuration into planner settings. Unknown
// strategy names fall back to first-fit.
func (c Config) Settings() model.PlanSettings {
	s := model.PlanSettings{
		Strategy:     model.StrategyFirstFit,
		MainForeArm:  c.MainForeArm,
		MainAftArm:   c.MainAftArm,
		LowerForeArm: c.LowerForeArm,
		LowerAftArm:  c.LowerAftArm,
	}
	if model.Strategy(c.Strategy) == model.StrategyBalance {
		s.Strategy = model.StrategyBalance
	}
	return s
}
