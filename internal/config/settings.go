package config

import (
	"fmt"
	"os"

	"moodplayer/internal/schedule"
	"moodplayer/internal/selector"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Settings holds tuning read from the optional YAML file
type Settings struct {
	Selector selector.Config `yaml:"selector"`
	Schedule schedule.Config `yaml:"schedule"`
}

// DefaultSettings returns the built-in tuning
func DefaultSettings() Settings {
	return Settings{
		Selector: selector.DefaultConfig(),
		Schedule: schedule.DefaultConfig(),
	}
}

// LoadSettings reads path on top of the defaults. An empty path returns the defaults.
func LoadSettings(path string, logger *zap.Logger) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	logger.Debug("Loading settings", zap.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}

	if err := settings.validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings %s: %w", path, err)
	}

	logger.Info("Settings loaded",
		zap.Bool("bucket_filter", settings.Selector.BucketFilter.Enabled),
		zap.Int("plays_per_day", settings.Schedule.PlaysPerDay))
	return settings, nil
}

func (s Settings) validate() error {
	bf := s.Selector.BucketFilter
	if bf.RestrictProbability < 0 || bf.RestrictProbability > 1 {
		return fmt.Errorf("restrict_probability must be within [0,1]")
	}
	if bf.DropProbability < 0 || bf.DropProbability > 1 {
		return fmt.Errorf("drop_probability must be within [0,1]")
	}
	if s.Selector.ThresholdMultiplier < 1 {
		return fmt.Errorf("threshold_multiplier must be at least 1")
	}
	if s.Schedule.PlaysPerDay < 0 {
		return fmt.Errorf("plays_per_day must not be negative")
	}
	for name, d := range map[string]schedule.Distribution{"weekday": s.Schedule.Weekday, "weekend": s.Schedule.Weekend} {
		for _, sd := range d.StdDevs {
			if sd <= 0 {
				return fmt.Errorf("%s std_devs must be positive", name)
			}
		}
	}
	return nil
}
