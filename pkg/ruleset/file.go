package ruleset

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// FileSource loads rule sets from YAML files on disk.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource creates a file-based rule source. The path can be a single
// file or a directory; for a directory all .yaml and .yml files are loaded
// in lexical order, which fixes the cross-file rule priority.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		path:   path,
		logger: logger,
	}
}

// Path returns the configured file or directory path.
func (s *FileSource) Path() string {
	return s.path
}

// Load loads and merges all rule files from the configured path.
// The first file (in lexical order) provides the metadata, default label,
// and threshold when later files do not set them; rules are appended in
// file order so ordering stays deterministic.
func (s *FileSource) Load(ctx context.Context) (*RuleSet, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %q: %w", s.path, err)
	}

	var merged *RuleSet

	if !info.IsDir() {
		merged, err = ParseFile(s.path)
		if err != nil {
			return nil, err
		}
	} else {
		err = filepath.WalkDir(s.path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			ext := filepath.Ext(path)
			if ext != ".yaml" && ext != ".yml" {
				return nil
			}

			rs, err := ParseFile(path)
			if err != nil {
				return err
			}

			if merged == nil {
				merged = rs
				return nil
			}
			return merged.merge(rs)
		})
		if err != nil {
			return nil, err
		}
		if merged == nil {
			return nil, fmt.Errorf("no rule files found in %q", s.path)
		}
	}

	s.logger.Info("loaded rule set",
		"path", s.path,
		"rule_count", len(merged.Rules),
	)

	return merged, nil
}
