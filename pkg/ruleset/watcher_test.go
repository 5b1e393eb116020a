package ruleset

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sentra-hq/sentra/pkg/predicate"

	"github.com/fsnotify/fsnotify"
)

// TestWatcher_ReloadOnChange tests that a file write triggers a debounced
// reload
func TestWatcher_ReloadOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	writeFile(t, path, managerRuleYAML)

	manager, err := NewManager(NewFileSource(path, nil), ManagerConfig{
		Registry:    predicate.NewRegistry(),
		TokenSource: fieldsSource,
	}, nil)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	first := manager.Current()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcherDone := make(chan error, 1)
	go func() {
		watcherDone <- NewWatcher(manager, 10*time.Millisecond, nil).Watch(ctx)
	}()

	// Give the watcher time to install its fsnotify watch.
	time.Sleep(100 * time.Millisecond)

	writeFile(t, path, strings.Replace(managerRuleYAML, "label: command", "label: request", 1))

	deadline := time.After(3 * time.Second)
	for manager.Current() == first {
		select {
		case <-deadline:
			t.Fatal("classifier not swapped after rule file change")
		case <-time.After(20 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-watcherDone:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(time.Second):
		t.Error("Watch() did not return after context cancellation")
	}
}

// TestWatcher_MissingPath tests startup failure on an unwatchable path
func TestWatcher_MissingPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	writeFile(t, path, managerRuleYAML)

	manager, err := NewManager(NewFileSource(path, nil), ManagerConfig{
		Registry:    predicate.NewRegistry(),
		TokenSource: fieldsSource,
	}, nil)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	// Point the source at a path whose parent does not exist.
	manager.source = NewFileSource(filepath.Join(dir, "gone", "rules.yaml"), nil)

	if err := NewWatcher(manager, 0, nil).Watch(context.Background()); err == nil {
		t.Error("Watch() error = nil, want watch setup failure")
	}
}

// TestWatcher_Relevant tests the event filter
func TestWatcher_Relevant(t *testing.T) {
	w := NewWatcher(nil, 0, nil)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"yaml write", fsnotify.Event{Name: "rules.yaml", Op: fsnotify.Write}, true},
		{"yml create", fsnotify.Event{Name: "extra.yml", Op: fsnotify.Create}, true},
		{"yaml rename", fsnotify.Event{Name: "rules.yaml", Op: fsnotify.Rename}, true},
		{"chmod ignored", fsnotify.Event{Name: "rules.yaml", Op: fsnotify.Chmod}, false},
		{"non-yaml ignored", fsnotify.Event{Name: "rules.txt", Op: fsnotify.Write}, false},
		{"editor temp file ignored", fsnotify.Event{Name: ".rules.yaml.swp", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(tt.event); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}
