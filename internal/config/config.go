// Package config loads study settings from the user's config file and
// environment. Settings are read here once and passed into the core as a
// plain struct; the core never reaches back into ambient state.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/SheaGuev/studykit/internal/models"
)

// Config is everything the CLI needs to run: where data lives and how
// study queues are assembled.
type Config struct {
	DataDir  string
	Settings models.StudySettings
}

// Load reads ~/.studykit/config.yaml, then applies STUDYKIT_* environment
// overrides (e.g. STUDYKIT_MAX_QUEUE_SIZE). A missing config file is fine;
// defaults apply.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, errors.Wrap(err, "cannot determine home directory")
	}
	return load(filepath.Join(home, ".studykit"))
}

func load(defaultDir string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultDir)
	v.SetEnvPrefix("STUDYKIT")
	v.AutomaticEnv()

	defaults := models.DefaultSettings()
	v.SetDefault("data_dir", defaultDir)
	v.SetDefault("max_queue_size", defaults.MaxQueueSize)
	v.SetDefault("new_per_session", defaults.NewPerSession)
	v.SetDefault("include_upcoming", defaults.IncludeUpcoming)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "read config file")
		}
	}

	cfg := Config{
		DataDir: v.GetString("data_dir"),
		Settings: models.StudySettings{
			MaxQueueSize:    v.GetInt("max_queue_size"),
			NewPerSession:   v.GetInt("new_per_session"),
			IncludeUpcoming: v.GetBool("include_upcoming"),
		}.Normalized(),
	}
	return cfg, nil
}
