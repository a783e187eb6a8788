// Package config resolves progrich's data paths and user settings.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Settings are the user-tunable defaults, read from config.yaml in the
// data directory with PROGRICH_* environment overrides.
type Settings struct {
	// FPS is the live-region repaint rate.
	FPS float64 `mapstructure:"fps"`
	// Spinner names the frame set (dot, line, minidot, jump, points).
	Spinner string `mapstructure:"spinner"`
	// NoColor disables styled output.
	NoColor bool `mapstructure:"no_color"`
	// HistoryLimit caps how many runs `progrich history` prints.
	HistoryLimit int `mapstructure:"history_limit"`
}

func defaults() map[string]any {
	return map[string]any{
		"fps":           10.0,
		"spinner":       "dot",
		"no_color":      false,
		"history_limit": 20,
	}
}

// Load reads settings from the data directory and the environment. A
// missing config file is not an error; defaults apply.
func Load() (Settings, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := DataDir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix("PROGRICH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Settings{}, err
		}
	}
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
