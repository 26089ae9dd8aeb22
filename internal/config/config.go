// Package config loads tascade settings from .tascade.yaml and the
// environment.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the complete tascade configuration.
type Config struct {
	// Document is the path to the task document.
	Document string `mapstructure:"document"`

	Run RunConfig `mapstructure:"run"`
}

// RunConfig controls run behavior.
type RunConfig struct {
	// UseTUI enables the live execution monitor; when false, run prints
	// plain progress lines.
	UseTUI bool `mapstructure:"use_tui"`

	// ProgressLog is the path of the JSONL progress log. Empty disables
	// progress logging.
	ProgressLog string `mapstructure:"progress_log"`

	// Command is the default shell command executed per task when the
	// run command is given no --cmd flag. The task identifier is exposed
	// as $TASCADE_TASK_ID.
	Command string `mapstructure:"command"`
}

// Load reads configuration from .tascade.yaml in the working directory,
// with TASCADE_* environment variables taking precedence. A missing
// config file is not an error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".tascade")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TASCADE")
	v.AutomaticEnv()

	v.SetDefault("document", "tasks.md")
	v.SetDefault("run.use_tui", true)
	v.SetDefault("run.progress_log", "")
	v.SetDefault("run.command", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
