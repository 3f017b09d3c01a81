package validate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/minios-linux/localecheck/localefile"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("os.WriteFile() error: %v", err)
	}
	return path
}

func levels(r Result) []Level {
	out := make([]Level, len(r.Findings))
	for i, f := range r.Findings {
		out[i] = f.Level
	}
	return out
}

var englishRules = localefile.PluralRulesFunc(func(string) []string {
	return []string{"one", "other"}
})

func TestFileValid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "en.yml", "en:\n  save: Save\n  cats:\n    one: A cat\n    other: \"%{count} cats\"\n")

	r := File(path, Options{Checks: AllChecks})
	if diff := cmp.Diff([]Level{LevelOK}, levels(r)); diff != "" {
		t.Fatalf("File() levels mismatch (-want +got):\n%s", diff)
	}
	if r.Failed() {
		t.Fatalf("Failed() = true, want false")
	}
	if r.Path != path {
		t.Fatalf("Path = %q, want %q", r.Path, path)
	}
}

func TestFileFatals(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name    string
		file    string
		content string
		message string
	}{
		{name: "syntax", file: "en.yml", content: "en:\n  save: [unclosed\n", message: "could not be parsed"},
		{name: "two locales", file: "en.yml", content: "en:\n  a: A\nfr:\n  a: A\n", message: "does not have exactly one top-level namespace"},
		{name: "empty", file: "de.yml", content: "", message: "does not have exactly one top-level namespace"},
		{name: "scalar locale", file: "it.yml", content: "it: ciao\n", message: "top-level namespace is not a mapping"},
		{name: "unknown extension", file: "en.po", content: "msgid \"\"\n", message: "could not be loaded"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tc.file, tc.content)
			r := File(path, Options{Checks: AllChecks})
			if len(r.Findings) != 1 {
				t.Fatalf("File() findings = %#v, want exactly one fatal", r.Findings)
			}
			f := r.Findings[0]
			if f.Level != LevelFatal || f.Message != tc.message {
				t.Fatalf("finding = %#v, want fatal %q", f, tc.message)
			}
			if len(f.Details) != 1 || f.Details[0] == "" {
				t.Fatalf("finding details = %#v, want the error text", f.Details)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		r := File(filepath.Join(dir, "nope.yml"), Options{})
		if r.Fatals() != 1 {
			t.Fatalf("Fatals() = %d, want 1", r.Fatals())
		}
	})
}

func TestFilePluralizationFindings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "en.yml", `en:
  cats:
    one: A cat
    two: Two cats
    name: Tommy
  dogs:
    one: A dog
  birds:
    other: Birds
`)

	r := File(path, Options{Rules: englishRules, Checks: AllChecks})
	want := []Finding{
		{Level: LevelError, Message: "invalid pluralization keys", Details: []string{"cats"}},
		{Level: LevelError, Message: "missing pluralization keys", Details: []string{"birds: one", "cats: other", "dogs: other"}},
	}
	if diff := cmp.Diff(want, r.Findings); diff != "" {
		t.Fatalf("File() findings mismatch (-want +got):\n%s", diff)
	}
	if r.Errors() != 2 || !r.Failed() {
		t.Fatalf("Errors() = %d, Failed() = %v", r.Errors(), r.Failed())
	}
}

func TestFileWarnings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fr.yml", "xx-!!:\n  hello: \"Hello {{name}}\"\n")

	r := File(path, Options{Checks: AllChecks})
	want := []Level{LevelWarning, LevelWarning, LevelWarning}
	if diff := cmp.Diff(want, levels(r)); diff != "" {
		t.Fatalf("File() levels mismatch (-want +got):\n%s", diff)
	}
	if r.Failed() {
		t.Fatalf("warnings alone must not fail the file")
	}
	if got := r.Findings[0].Details; len(got) != 1 || got[0] != "expected xx-!!.yml" {
		t.Fatalf("naming details = %#v", got)
	}
	if got := r.Findings[2].Details; len(got) != 1 || got[0] != "hello" {
		t.Fatalf("legacy interpolation details = %#v", got)
	}

	t.Run("disabled checks", func(t *testing.T) {
		r := File(path, Options{})
		if diff := cmp.Diff([]Level{LevelOK}, levels(r)); diff != "" {
			t.Fatalf("File() with no optional checks mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestFilesKeepsOrderAndContinuesAfterFatal(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"de.yml", "broken.yml", "en.yml", "fr.json", "ja.toml"} {
		content := ""
		switch filepath.Ext(name) {
		case ".json":
			content = `{"fr": {"save": "Enregistrer"}}`
		case ".toml":
			content = "[ja]\nsave = \"保存\"\n"
		default:
			content = strings.TrimSuffix(name, ".yml") + ":\n  save: x\n"
		}
		if name == "broken.yml" {
			content = "broken: [\n"
		}
		paths = append(paths, writeFile(t, dir, name, content))
	}

	results, err := Files(context.Background(), paths, Options{Checks: AllChecks, Jobs: 2})
	if err != nil {
		t.Fatalf("Files() error: %v", err)
	}
	if len(results) != len(paths) {
		t.Fatalf("Files() returned %d results, want %d", len(results), len(paths))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Fatalf("results[%d].Path = %q, want %q", i, r.Path, paths[i])
		}
	}
	if results[1].Fatals() != 1 {
		t.Fatalf("broken file Fatals() = %d, want 1", results[1].Fatals())
	}
	for _, i := range []int{0, 2, 3, 4} {
		if !results[i].Has(LevelOK) {
			t.Fatalf("results[%d] = %#v, want OK", i, results[i])
		}
	}
}

func TestFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := writeFile(t, t.TempDir(), "en.yml", "en:\n  a: A\n")
	_, err := Files(ctx, []string{path}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Files(cancelled) error = %v, want context.Canceled", err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fr.yml", "fr:\n")
	writeFile(t, dir, "en.yml", "en:\n")
	writeFile(t, dir, "de.json", "{}")
	writeFile(t, dir, "README.md", "docs")
	if err := os.Mkdir(filepath.Join(dir, "nested.yml"), 0755); err != nil {
		t.Fatalf("os.Mkdir() error: %v", err)
	}

	got, err := Discover(dir, []string{"*.yml", "*.json"})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "de.json"),
		filepath.Join(dir, "en.yml"),
		filepath.Join(dir, "fr.yml"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Discover() mismatch (-want +got):\n%s", diff)
	}

	t.Run("single file ignores patterns", func(t *testing.T) {
		file := filepath.Join(dir, "README.md")
		got, err := Discover(file, []string{"*.yml"})
		if err != nil || len(got) != 1 || got[0] != file {
			t.Fatalf("Discover(file) = %v, %v", got, err)
		}
	})

	t.Run("missing target", func(t *testing.T) {
		if _, err := Discover(filepath.Join(dir, "missing"), nil); err == nil {
			t.Fatalf("Discover(missing) expected error")
		}
	})

	t.Run("bad pattern", func(t *testing.T) {
		if _, err := Discover(dir, []string{"["}); err == nil {
			t.Fatalf("Discover(bad pattern) expected error")
		}
	})

	t.Run("all drops repeats", func(t *testing.T) {
		got, err := DiscoverAll([]string{dir, filepath.Join(dir, "en.yml")}, []string{"*.yml"})
		if err != nil {
			t.Fatalf("DiscoverAll() error: %v", err)
		}
		want := []string{filepath.Join(dir, "en.yml"), filepath.Join(dir, "fr.yml")}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("DiscoverAll() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestLevelSeverity(t *testing.T) {
	cases := map[Level]Severity{
		LevelFatal:    SeverityFatal,
		LevelError:    SeverityError,
		LevelMissing:  SeverityError,
		LevelExtra:    SeverityError,
		LevelWarning:  SeverityWarning,
		LevelOK:       SeverityNone,
		LevelComplete: SeverityNone,
	}
	for level, want := range cases {
		if got := level.Severity(); got != want {
			t.Fatalf("%s.Severity() = %d, want %d", level, got, want)
		}
	}
}
