package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Validate checks the configuration for values that cannot work at runtime.
// It assumes ApplyDefaults has run.
func Validate(cfg *Config) error {
	if cfg.Server.ListenAddress == "" {
		return fmt.Errorf("server.listen_address cannot be empty")
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive, got %d", cfg.Server.MaxBodyBytes)
	}

	if cfg.Rules.ReloadSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Rules.ReloadSchedule); err != nil {
			return fmt.Errorf("rules.reload_schedule: invalid cron expression %q: %w",
				cfg.Rules.ReloadSchedule, err)
		}
	}

	if cfg.Classifier.Threshold != nil {
		t := *cfg.Classifier.Threshold
		if t < 0 || t > 1 {
			return fmt.Errorf("classifier.threshold %v outside [0, 1]", t)
		}
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug/info/warn/error, got %q", cfg.Logging.Level)
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text, got %q", cfg.Logging.Format)
	}

	return nil
}
