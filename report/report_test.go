package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/minios-linux/localecheck/validate"
)

func TestWrite(t *testing.T) {
	results := []validate.Result{
		{
			Path: "config/locales/fr.yml",
			Findings: []validate.Finding{
				{Level: validate.LevelError, Message: "invalid pluralization keys", Details: []string{"cats", "dogs"}},
				{Level: validate.LevelWarning, Message: "legacy {{name}} interpolations", Details: []string{"hello"}},
			},
		},
		{
			Path:     "config/locales/de.yml",
			Findings: []validate.Finding{{Level: validate.LevelOK}},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, results); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	want := "\n### config/locales/fr.yml\n\n" +
		"- *ERROR* invalid pluralization keys\n" +
		"  - cats\n" +
		"  - dogs\n" +
		"- *WARNING* legacy {{name}} interpolations\n" +
		"  - hello\n" +
		"\n### config/locales/de.yml\n\n" +
		"- *OK*\n"
	if got := buf.String(); got != want {
		t.Fatalf("Write() =\n%q\nwant\n%q", got, want)
	}
}

func TestWriteCompleteness(t *testing.T) {
	r := validate.Result{
		Path: "fr.yml",
		Findings: []validate.Finding{
			{Level: validate.LevelMissing, Message: "edit"},
			{Level: validate.LevelMissing, Message: "cats"},
		},
	}
	var buf bytes.Buffer
	if err := WriteResult(&buf, r); err != nil {
		t.Fatalf("WriteResult() error: %v", err)
	}
	want := "\n### fr.yml\n\n- *MISSING* edit\n- *MISSING* cats\n"
	if got := buf.String(); got != want {
		t.Fatalf("WriteResult() = %q, want %q", got, want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWritePropagatesErrors(t *testing.T) {
	err := Write(failingWriter{}, []validate.Result{{Path: "en.yml"}})
	if err == nil {
		t.Fatalf("Write() expected error")
	}
}

func TestSummarize(t *testing.T) {
	results := []validate.Result{
		{Path: "a.yml", Findings: []validate.Finding{{Level: validate.LevelFatal, Message: "could not be parsed"}}},
		{Path: "b.yml", Findings: []validate.Finding{
			{Level: validate.LevelError, Message: "invalid pluralization keys"},
			{Level: validate.LevelWarning, Message: "legacy"},
		}},
		{Path: "c.yml", Findings: []validate.Finding{{Level: validate.LevelWarning, Message: "naming"}}},
		{Path: "d.yml", Findings: []validate.Finding{{Level: validate.LevelOK}}},
	}

	s := Summarize(results)
	want := Summary{Files: 4, Failed: 2, Fatals: 1, Errors: 1, Warnings: 2}
	if s != want {
		t.Fatalf("Summarize() = %+v, want %+v", s, want)
	}
	if s.OK() {
		t.Fatalf("OK() = true, want false")
	}
	if got, want := s.String(), "4 files checked, 2 failed: 1 fatal, 1 error, 2 warnings"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}

	if !Summarize(results[2:]).OK() {
		t.Fatalf("warnings only should be OK")
	}
}
