package config

import "time"

// Config is the root service configuration for the sentra daemon and CLI.
// It is loaded from YAML; zero values are filled by ApplyDefaults and
// checked by Validate.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Rules      RulesConfig      `yaml:"rules"`
	Scorer     ScorerConfig     `yaml:"scorer"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Lexicon    LexiconConfig    `yaml:"lexicon"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// ServerConfig configures the HTTP classification service.
type ServerConfig struct {
	// ListenAddress is the host:port to bind. Default: ":8420".
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout for incoming requests. Default: 10s.
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout for responses. Default: 30s.
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown. Default: 15s.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxBodyBytes caps the request body size. Default: 1MiB.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// RulesConfig locates the rule files and controls reloading.
type RulesConfig struct {
	// Path is a rule file or a directory of rule files. Required for
	// serve/classify commands.
	Path string `yaml:"path"`

	// Watch enables fsnotify-based hot reload. Default: true.
	Watch *bool `yaml:"watch"`

	// ReloadSchedule is an optional cron expression for periodic reloads
	// (for filesystems where fsnotify is unreliable). Empty disables it.
	ReloadSchedule string `yaml:"reload_schedule"`
}

// ScorerConfig configures the optional external scoring service.
type ScorerConfig struct {
	// Endpoint is the scoring service URL. Empty disables the scorer:
	// unmatched sentences fall back to the default label directly.
	Endpoint string `yaml:"endpoint"`

	// Timeout per scoring request. Default: 10s.
	Timeout time.Duration `yaml:"timeout"`

	// Headers added to every scoring request.
	Headers map[string]string `yaml:"headers"`

	// Graceful turns scorer failures into "no prediction" instead of
	// failing the classification call. Default: true.
	Graceful *bool `yaml:"graceful"`
}

// ClassifierConfig sets the fallback policy defaults. Rule files may
// override both fields.
type ClassifierConfig struct {
	// Default label for low-confidence outcomes. Default: "unknown".
	Default string `yaml:"default"`

	// Threshold is the minimum scorer confidence, in [0,1].
	// Default: 0.40.
	Threshold *float64 `yaml:"threshold"`
}

// LexiconConfig locates the tagger lexicon for the bundled tokenizer.
type LexiconConfig struct {
	// DBPath is a SQLite lexicon database. Empty means no lexicon: the
	// bundled tokenizer tags every token as unknown.
	DBPath string `yaml:"db_path"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error. Default: "info".
	Level string `yaml:"level"`

	// Format is "json" or "text". Default: "text".
	Format string `yaml:"format"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled exposes /metrics on the server. Default: true.
	Enabled *bool `yaml:"enabled"`

	// Namespace for metric names. Default: "sentra".
	Namespace string `yaml:"namespace"`
}
