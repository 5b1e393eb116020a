package classify

import (
	"context"
	"errors"
	"testing"
)

// TestDefaultConfig tests the default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scorer != nil {
		t.Error("Scorer != nil by default")
	}
	if cfg.Default != DefaultLabel {
		t.Errorf("Default = %v, want %v", cfg.Default, DefaultLabel)
	}
	if cfg.Threshold != DefaultThreshold {
		t.Errorf("Threshold = %v, want %v", cfg.Threshold, DefaultThreshold)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

// TestConfigChaining tests the chainable With* setters
func TestConfigChaining(t *testing.T) {
	scorer := ScorerFunc(func(_ context.Context, _ string, _ map[string]any) (*Prediction, error) {
		return nil, nil
	})
	cfg := DefaultConfig().
		WithScorer(scorer).
		WithDefault("other").
		WithThreshold(0.75)

	if cfg.Scorer == nil {
		t.Error("WithScorer did not set the scorer")
	}
	if cfg.Default != "other" {
		t.Errorf("Default = %v, want other", cfg.Default)
	}
	if cfg.Threshold != 0.75 {
		t.Errorf("Threshold = %v, want 0.75", cfg.Threshold)
	}
}

// TestApplyDefaults tests zero-value filling, including the explicit-zero
// threshold case
func TestApplyDefaults(t *testing.T) {
	t.Run("zero value gets defaults", func(t *testing.T) {
		var cfg Config
		cfg.ApplyDefaults()
		if cfg.Default != DefaultLabel {
			t.Errorf("Default = %v, want %v", cfg.Default, DefaultLabel)
		}
		if cfg.Threshold != DefaultThreshold {
			t.Errorf("Threshold = %v, want %v", cfg.Threshold, DefaultThreshold)
		}
	})

	t.Run("explicit zero threshold survives", func(t *testing.T) {
		cfg := &Config{}
		cfg.WithThreshold(0)
		cfg.ApplyDefaults()
		if cfg.Threshold != 0 {
			t.Errorf("Threshold = %v, want 0", cfg.Threshold)
		}
	})

	t.Run("set fields untouched", func(t *testing.T) {
		cfg := &Config{Default: "mine"}
		cfg.ApplyDefaults()
		if cfg.Default != "mine" {
			t.Errorf("Default = %v, want mine", cfg.Default)
		}
	})
}

// TestConfigValidate tests configuration validation boundaries
func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"valid defaults", DefaultConfig(), false},
		{"threshold zero", DefaultConfig().WithThreshold(0), false},
		{"threshold one", DefaultConfig().WithThreshold(1), false},
		{"threshold negative", DefaultConfig().WithThreshold(-0.1), true},
		{"threshold above one", DefaultConfig().WithThreshold(1.1), true},
		{"empty default label", &Config{Threshold: 0.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error does not wrap ErrInvalidConfig: %v", err)
			}
		})
	}
}

// TestConfigClone tests that clones are independent
func TestConfigClone(t *testing.T) {
	orig := DefaultConfig().WithThreshold(0.6)
	clone := orig.Clone()
	clone.WithThreshold(0.9).WithDefault("changed")

	if orig.Threshold != 0.6 {
		t.Errorf("original Threshold = %v after clone edit, want 0.6", orig.Threshold)
	}
	if orig.Default != DefaultLabel {
		t.Errorf("original Default = %v after clone edit, want %v", orig.Default, DefaultLabel)
	}
}
