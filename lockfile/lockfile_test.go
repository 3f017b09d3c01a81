package lockfile

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newLockFile(dir string) *LockFile {
	return &LockFile{
		Version: Version,
		Tasks:   make(map[string]map[string]Entry),
		path:    filepath.Join(dir, LockFileName),
	}
}

func TestHashDeterministic(t *testing.T) {
	h1 := Hash("hello world")
	h2 := Hash("hello world")
	if h1 != h2 {
		t.Errorf("Hash not deterministic: %s != %s", h1, h2)
	}
	h3 := Hash("different")
	if h1 == h3 {
		t.Errorf("Hash collision: %s == %s", h1, h3)
	}
}

func TestContentSeparatesParts(t *testing.T) {
	if Content("ab", "c") == Content("a", "bc") {
		t.Errorf("Content should keep part boundaries")
	}
}

func TestLoadNonExistent(t *testing.T) {
	lf, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load returned error for non-existent file: %v", err)
	}
	if lf.Version != Version {
		t.Errorf("Version = %d, want %d", lf.Version, Version)
	}
	if len(lf.Tasks) != 0 {
		t.Errorf("Tasks not empty: %v", lf.Tasks)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, LockFileName), []byte("tasks: [\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("Load expected error for malformed lock file")
	}
}

func TestLoadOtherVersionStartsOver(t *testing.T) {
	dir := t.TempDir()
	content := "version: 99\ntasks:\n  validate:\n    en.yml: {checksum: abc, passed: true}\n"
	if err := os.WriteFile(filepath.Join(dir, LockFileName), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	lf, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lf.Version != Version || len(lf.Tasks) != 0 {
		t.Errorf("Load = version %d, %d tasks; want version %d and no tasks", lf.Version, len(lf.Tasks), Version)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	lf, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	lf.Update(TaskValidate, "locales/ru.yml", "ru", true)
	lf.Update(TaskValidate, "locales/de.yml", "de", false)
	lf.Update(TaskCompleteness, "locales/ru.yml", "ru\x00en", true)

	if err := lf.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path := filepath.Join(dir, LockFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("Lock file not created at %s", path)
	}

	lf2, err := Load(dir)
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}

	tasks, files := lf2.Stats()
	if tasks != 2 {
		t.Errorf("tasks = %d, want 2", tasks)
	}
	if files != 3 {
		t.Errorf("files = %d, want 3", files)
	}
	if lf2.IsChanged(TaskValidate, "locales/ru.yml", "ru") {
		t.Errorf("passed entry should survive a save/load round trip")
	}
}

func TestIsChanged(t *testing.T) {
	lf := newLockFile(t.TempDir())

	if !lf.IsChanged(TaskValidate, "ru.yml", "ru") {
		t.Error("new entry should be changed")
	}

	lf.Update(TaskValidate, "ru.yml", "ru", true)
	if lf.IsChanged(TaskValidate, "ru.yml", "ru") {
		t.Error("unchanged passing entry should not be changed")
	}

	if !lf.IsChanged(TaskValidate, "ru.yml", "ru!") {
		t.Error("modified entry should be changed")
	}

	if !lf.IsChanged(TaskCompleteness, "ru.yml", "ru") {
		t.Error("other task should be changed")
	}

	lf.Update(TaskValidate, "de.yml", "de", false)
	if !lf.IsChanged(TaskValidate, "de.yml", "de") {
		t.Error("failing entry should always be rechecked")
	}
}

func TestFilterChanged(t *testing.T) {
	lf := newLockFile(t.TempDir())

	lf.Update(TaskValidate, "en.yml", "en", true)
	lf.Update(TaskValidate, "fr.yml", "fr", true)

	entries := map[string]string{
		"en.yml": "en",  // unchanged
		"fr.yml": "fr!", // changed
		"de.yml": "de",  // new
	}

	got := lf.FilterChanged(TaskValidate, entries)
	want := []string{"de.yml", "fr.yml"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterChanged = %v, want %v", got, want)
	}
}

func TestTargetKey(t *testing.T) {
	dir := t.TempDir()
	lf := newLockFile(dir)

	if got := lf.TargetKey(filepath.Join(dir, "config", "locales", "en.yml")); got != "config/locales/en.yml" {
		t.Errorf("TargetKey(inside) = %q", got)
	}

	outside := filepath.Join(filepath.Dir(dir), "elsewhere", "en.yml")
	if got := lf.TargetKey(outside); got != filepath.ToSlash(outside) {
		t.Errorf("TargetKey(outside) = %q, want %q", got, filepath.ToSlash(outside))
	}
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	lf := newLockFile(dir)

	if err := os.WriteFile(filepath.Join(dir, "en.yml"), []byte("en:\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	lf.Update(TaskValidate, "en.yml", "en", true)
	lf.Update(TaskValidate, "gone.yml", "gone", true)
	lf.Update(TaskCompleteness, "gone.yml", "gone", true)

	if removed := lf.Prune(); removed != 2 {
		t.Errorf("Prune removed %d, want 2", removed)
	}
	if got := lf.Targets(TaskValidate); !reflect.DeepEqual(got, []string{"en.yml"}) {
		t.Errorf("Targets after Prune = %v", got)
	}
	if tasks, _ := lf.Stats(); tasks != 1 {
		t.Errorf("tasks after Prune = %d, want 1", tasks)
	}
}

func TestRemoveTask(t *testing.T) {
	lf := newLockFile(t.TempDir())

	lf.Update(TaskValidate, "ru.yml", "ru", true)
	lf.RemoveTask(TaskValidate)

	tasks, _ := lf.Stats()
	if tasks != 0 {
		t.Errorf("tasks after RemoveTask = %d, want 0", tasks)
	}
}

func TestSummary(t *testing.T) {
	lf := newLockFile(t.TempDir())
	if got := lf.Summary(); got != "empty" {
		t.Errorf("Summary() = %q, want empty", got)
	}

	lf.Update(TaskValidate, "en.yml", "en", true)
	lf.Update(TaskValidate, "de.yml", "de", false)
	lf.Update(TaskCompleteness, "de.yml", "de", true)

	want := "2 tasks, 3 files (completeness: 1/1 passed, validate: 1/2 passed)"
	if got := lf.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
