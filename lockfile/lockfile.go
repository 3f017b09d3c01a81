// Package lockfile implements .localecheck.lock, which records the MD5
// checksum of every locale file checked and whether it passed. Runs with
// --changed skip files that passed before and have not changed since.
//
// The lock file is stored next to .localecheck.yaml in the project root.
package lockfile

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// LockFileName is the default lock file name.
const LockFileName = ".localecheck.lock"

// Version is the lock file format version.
const Version = 1

// Task names group entries by the kind of run that produced them.
const (
	TaskValidate     = "validate"
	TaskCompleteness = "completeness"
)

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// Entry is the recorded state of one file for one task.
type Entry struct {
	Checksum string `yaml:"checksum"`
	Passed   bool   `yaml:"passed"`
}

// LockFile represents the .localecheck.lock file structure.
type LockFile struct {
	Version int                         `yaml:"version"`
	Tasks   map[string]map[string]Entry `yaml:"tasks"` // task -> target -> entry

	mu   sync.Mutex `yaml:"-"`
	path string     `yaml:"-"`
}

// ---------------------------------------------------------------------------
// Loading and saving
// ---------------------------------------------------------------------------

// Load reads the lock file from the given directory.
// Returns an empty lock file if the file doesn't exist.
func Load(dir string) (*LockFile, error) {
	path := filepath.Join(dir, LockFileName)
	lf := &LockFile{
		Version: Version,
		Tasks:   make(map[string]map[string]Entry),
		path:    path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return lf, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, lf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	lf.path = path

	if lf.Version != Version {
		// Entries written by another format version are dropped.
		lf.Version = Version
		lf.Tasks = nil
	}
	if lf.Tasks == nil {
		lf.Tasks = make(map[string]map[string]Entry)
	}

	return lf, nil
}

// Save writes the lock file to disk.
func (lf *LockFile) Save() error {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	if lf.path == "" {
		return fmt.Errorf("lock file path not set")
	}

	data, err := yaml.Marshal(lf)
	if err != nil {
		return fmt.Errorf("marshaling lock file: %w", err)
	}

	if err := os.WriteFile(lf.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", lf.path, err)
	}

	return nil
}

// Path returns the lock file path.
func (lf *LockFile) Path() string {
	return lf.path
}

// ---------------------------------------------------------------------------
// Checksums
// ---------------------------------------------------------------------------

// Hash computes the MD5 hex digest of a string.
func Hash(s string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(s)))
}

// Content joins everything a result depends on (file data, reference data,
// the enabled checks) into one string for hashing.
func Content(parts ...string) string {
	return strings.Join(parts, "\x00")
}

// TargetKey returns the key a file is recorded under: its slash-separated
// path relative to the lock file's directory, or the absolute path for
// files outside it.
func (lf *LockFile) TargetKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	if rel, err := filepath.Rel(filepath.Dir(lf.path), abs); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(abs)
}

func (lf *LockFile) resolve(target string) string {
	p := filepath.FromSlash(target)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(lf.path), p)
}

// IsChanged reports whether target needs checking: it is new, its content
// changed, or it did not pass last time.
func (lf *LockFile) IsChanged(task, target, content string) bool {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	e, ok := lf.Tasks[task][target]
	if !ok || !e.Passed {
		return true
	}
	return e.Checksum != Hash(content)
}

// Update records the outcome of checking target with the given content.
func (lf *LockFile) Update(task, target, content string, passed bool) {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	if lf.Tasks[task] == nil {
		lf.Tasks[task] = make(map[string]Entry)
	}
	lf.Tasks[task][target] = Entry{Checksum: Hash(content), Passed: passed}
}

// FilterChanged returns the targets of entries (target -> content) that
// IsChanged, sorted.
func (lf *LockFile) FilterChanged(task string, entries map[string]string) []string {
	var changed []string
	for target, content := range entries {
		if lf.IsChanged(task, target, content) {
			changed = append(changed, target)
		}
	}
	sort.Strings(changed)
	return changed
}

// Prune removes entries whose files no longer exist, and returns how many
// were removed.
func (lf *LockFile) Prune() int {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	removed := 0
	for task, targets := range lf.Tasks {
		for target := range targets {
			if _, err := os.Stat(lf.resolve(target)); os.IsNotExist(err) {
				delete(targets, target)
				removed++
			}
		}
		if len(targets) == 0 {
			delete(lf.Tasks, task)
		}
	}
	return removed
}

// RemoveTask removes all entries recorded for a task.
func (lf *LockFile) RemoveTask(task string) {
	lf.mu.Lock()
	defer lf.mu.Unlock()
	delete(lf.Tasks, task)
}

// ---------------------------------------------------------------------------
// Stats
// ---------------------------------------------------------------------------

// Stats returns the number of tasks and total file entries.
func (lf *LockFile) Stats() (tasks, files int) {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	tasks = len(lf.Tasks)
	for _, m := range lf.Tasks {
		files += len(m)
	}
	return
}

// Targets returns the sorted targets recorded for a task.
func (lf *LockFile) Targets(task string) []string {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	targets := make([]string, 0, len(lf.Tasks[task]))
	for t := range lf.Tasks[task] {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets
}

// Summary returns a human-readable summary string.
func (lf *LockFile) Summary() string {
	tasks, files := lf.Stats()
	if tasks == 0 {
		return "empty"
	}

	lf.mu.Lock()
	names := make([]string, 0, len(lf.Tasks))
	for name := range lf.Tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	var parts []string
	for _, name := range names {
		passed := 0
		for _, e := range lf.Tasks[name] {
			if e.Passed {
				passed++
			}
		}
		parts = append(parts, fmt.Sprintf("%s: %d/%d passed", name, passed, len(lf.Tasks[name])))
	}
	lf.mu.Unlock()

	return fmt.Sprintf("%d tasks, %d files (%s)", tasks, files, strings.Join(parts, ", "))
}
