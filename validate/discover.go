package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Discover returns the locale files named by target: target itself when
// it is a file, or the files directly inside it whose names match one of
// patterns, sorted.
func Discover(target string, patterns []string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{target}, nil
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := Matches(e.Name(), patterns)
		if err != nil {
			return nil, err
		}
		if ok {
			files = append(files, filepath.Join(target, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// DiscoverAll runs Discover for each target and concatenates the results,
// dropping repeats.
func DiscoverAll(targets []string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, t := range targets {
		found, err := Discover(t, patterns)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if seen[f] {
				continue
			}
			seen[f] = true
			files = append(files, f)
		}
	}
	return files, nil
}

// Matches reports whether the base name of path matches any pattern.
func Matches(path string, patterns []string) (bool, error) {
	name := filepath.Base(path)
	for _, p := range patterns {
		ok, err := filepath.Match(p, name)
		if err != nil {
			return false, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
