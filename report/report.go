// Package report renders validation results as Markdown-flavoured text:
//
//	### config/locales/fr.yml
//
//	- *ERROR* missing pluralization keys
//	  - cats: other
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/minios-linux/localecheck/i18n"
	"github.com/minios-linux/localecheck/validate"
)

// DetailPrefix starts each detail line under a finding.
const DetailPrefix = "  - "

// Write renders every result as a heading followed by its findings.
func Write(w io.Writer, results []validate.Result) error {
	for _, r := range results {
		if err := WriteResult(w, r); err != nil {
			return err
		}
	}
	return nil
}

// WriteResult renders one result.
func WriteResult(w io.Writer, r validate.Result) error {
	var b strings.Builder
	b.WriteString("\n### " + r.Path + "\n\n")
	for _, f := range r.Findings {
		b.WriteString("- *" + strings.ToUpper(string(f.Level)) + "*")
		if f.Message != "" {
			b.WriteString(" " + f.Message)
		}
		b.WriteByte('\n')
		for _, d := range f.Details {
			b.WriteString(DetailPrefix + d + "\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Summary counts findings across a run.
type Summary struct {
	Files    int
	Failed   int
	Fatals   int
	Errors   int
	Warnings int
}

// Summarize totals the results.
func Summarize(results []validate.Result) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		s.Fatals += r.Fatals()
		s.Errors += r.Errors()
		s.Warnings += r.Warnings()
		if r.Failed() {
			s.Failed++
		}
	}
	return s
}

// OK reports whether no file had a fatal or error finding.
func (s Summary) OK() bool {
	return s.Fatals+s.Errors == 0
}

// String renders the summary as one line, e.g.
// "3 files checked, 1 failed: 0 fatal, 2 errors, 1 warning".
func (s Summary) String() string {
	return fmt.Sprintf(i18n.N("%d file checked", "%d files checked", s.Files), s.Files) + ", " +
		fmt.Sprintf(i18n.N("%d failed", "%d failed", s.Failed), s.Failed) + ": " +
		fmt.Sprintf(i18n.N("%d fatal", "%d fatal", s.Fatals), s.Fatals) + ", " +
		fmt.Sprintf(i18n.N("%d error", "%d errors", s.Errors), s.Errors) + ", " +
		fmt.Sprintf(i18n.N("%d warning", "%d warnings", s.Warnings), s.Warnings)
}
