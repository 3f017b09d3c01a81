// Package config — .localecheck.yaml configuration file support.
//
// When a .localecheck.yaml file exists in the project root it declares the
// reference locale and where the translations live:
//
//	reference: config/locales/en.yml
//	paths:
//	  - config/locales
//	patterns: ["*.yml"]
//	jobs: 8
//	checks:
//	  naming: true
//	  legacy_interpolations: false
//
// Without a config file, Detect looks for the usual locale directories.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/minios-linux/localecheck/localefile"
)

// FileName is the default config file name.
const FileName = ".localecheck.yaml"

// DefaultJobs is the number of files validated in parallel.
const DefaultJobs = 4

// DefaultPatterns are the file name patterns of locale files.
var DefaultPatterns = []string{"*.yml", "*.yaml", "*.json", "*.toml"}

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// File is the top-level .localecheck.yaml structure.
type File struct {
	// Reference is the locale file other locales are compared against,
	// relative to the project root.
	Reference string `yaml:"reference,omitempty"`
	// SourceLang is the reference locale code (default "en").
	SourceLang string `yaml:"source_lang,omitempty"`
	// Paths are locale files or directories, relative to the project root.
	Paths []string `yaml:"paths,omitempty"`
	// Patterns select locale files inside directories.
	Patterns []string `yaml:"patterns,omitempty"`
	// Jobs limits how many files are validated at once.
	Jobs int `yaml:"jobs,omitempty"`
	// Checks toggles individual checks.
	Checks Checks `yaml:"checks,omitempty"`

	// root is the absolute directory the file was loaded from.
	root string
}

// Checks toggles the optional checks. Unset fields use their default.
type Checks struct {
	// Naming: the locale key must match the file name (default on).
	Naming *bool `yaml:"naming,omitempty"`
	// Locale: the locale key must be a valid language tag (default on).
	Locale *bool `yaml:"locale,omitempty"`
	// MissingPluralizations: pluralizations must have every CLDR
	// category of their language (default on).
	MissingPluralizations *bool `yaml:"missing_pluralizations,omitempty"`
	// LegacyInterpolations: flag "{{name}}" interpolations (default on).
	LegacyInterpolations *bool `yaml:"legacy_interpolations,omitempty"`
	// Subset: completeness runs also report keys absent from the
	// reference (default off).
	Subset *bool `yaml:"subset,omitempty"`
}

func enabled(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func (c Checks) NamingEnabled() bool                { return enabled(c.Naming, true) }
func (c Checks) LocaleEnabled() bool                { return enabled(c.Locale, true) }
func (c Checks) MissingPluralizationsEnabled() bool { return enabled(c.MissingPluralizations, true) }
func (c Checks) LegacyInterpolationsEnabled() bool  { return enabled(c.LegacyInterpolations, true) }
func (c Checks) SubsetEnabled() bool                { return enabled(c.Subset, false) }

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load loads and validates .localecheck.yaml from the given directory.
// Returns nil if no config file exists.
func Load(rootDir string) (*File, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(absRoot, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	f.root = absRoot
	f.applyDefaults()

	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

func (f *File) applyDefaults() {
	if f.SourceLang == "" {
		f.SourceLang = "en"
	}
	if len(f.Patterns) == 0 {
		f.Patterns = DefaultPatterns
	}
	if f.Jobs == 0 {
		f.Jobs = DefaultJobs
	}
}

func (f *File) validate() error {
	if f.Jobs < 0 {
		return fmt.Errorf("jobs must be positive, got %d", f.Jobs)
	}
	for _, p := range f.Patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return fmt.Errorf("invalid pattern %q: %w", p, err)
		}
	}
	if f.Reference != "" {
		if _, err := localefile.FormatFromPath(f.Reference); err != nil {
			return fmt.Errorf("reference: %w", err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Resolving paths
// ---------------------------------------------------------------------------

// Root returns the absolute project root.
func (f *File) Root() string {
	return f.root
}

// AbsReference returns the absolute reference path, or empty.
func (f *File) AbsReference() string {
	if f.Reference == "" {
		return ""
	}
	return f.abs(f.Reference)
}

// AbsPaths returns the configured paths made absolute.
func (f *File) AbsPaths() []string {
	paths := make([]string, len(f.Paths))
	for i, p := range f.Paths {
		paths[i] = f.abs(p)
	}
	return paths
}

func (f *File) abs(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(f.root, p)
}

// ---------------------------------------------------------------------------
// Auto-detection
// ---------------------------------------------------------------------------

// localeDirCandidates are the directories searched by Detect, in order.
var localeDirCandidates = []string{
	filepath.Join("config", "locales"),
	"locales",
	"locale",
	filepath.Join("public", "locales"),
	"translations",
	"i18n",
}

// Detect builds a configuration for a project without .localecheck.yaml.
// The first existing candidate locale directory becomes the only path and
// its source-language file, if present, becomes the reference.
func Detect(rootDir string) *File {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		absRoot = rootDir
	}
	f := &File{root: absRoot}
	f.applyDefaults()

	for _, candidate := range localeDirCandidates {
		dir := filepath.Join(absRoot, candidate)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		f.Paths = []string{candidate}
		for _, ext := range []string{".yml", ".yaml", ".json", ".toml"} {
			ref := filepath.Join(candidate, f.SourceLang+ext)
			if info, err := os.Stat(filepath.Join(absRoot, ref)); err == nil && !info.IsDir() {
				f.Reference = ref
				break
			}
		}
		break
	}
	return f
}

// LoadOrDetect returns the config file in rootDir, or a detected
// configuration when there is none.
func LoadOrDetect(rootDir string) (*File, error) {
	f, err := Load(rootDir)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return Detect(rootDir), nil
	}
	return f, nil
}
