// Package validate runs the locale file checks over files on disk and
// collects their findings for reporting.
package validate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/minios-linux/localecheck/i18n"
	"github.com/minios-linux/localecheck/langmeta"
	"github.com/minios-linux/localecheck/localefile"
)

// DefaultJobs is used when Options.Jobs is not positive.
const DefaultJobs = 4

// Checks selects the optional per-file checks.
type Checks struct {
	Naming                bool
	Locale                bool
	MissingPluralizations bool
	LegacyInterpolations  bool
}

// AllChecks enables every optional check.
var AllChecks = Checks{
	Naming:                true,
	Locale:                true,
	MissingPluralizations: true,
	LegacyInterpolations:  true,
}

// Options configure a validation run.
type Options struct {
	// Rules supplies plural categories. Defaults to langmeta.CLDR.
	Rules localefile.PluralRules
	// Tags validates locale identifiers. Defaults to langmeta.CLDR.
	Tags localefile.TagValidator
	// Checks selects the optional checks.
	Checks Checks
	// Jobs limits the number of files evaluated at once.
	Jobs int
	// Subset makes completeness runs report keys the reference lacks.
	Subset bool
}

func (o Options) withDefaults() Options {
	if o.Rules == nil {
		o.Rules = langmeta.CLDR{}
	}
	if o.Tags == nil {
		o.Tags = langmeta.CLDR{}
	}
	if o.Jobs <= 0 {
		o.Jobs = DefaultJobs
	}
	return o
}

// File checks a single locale file. Load failures are reported as a fatal
// finding and end the checks for that file.
func File(path string, opts Options) Result {
	opts = opts.withDefaults()
	r := Result{Path: path}

	tree, err := localefile.ParseFile(path)
	if err != nil {
		r.addLoadFailure(err)
		return r
	}

	if keys := tree.InvalidPluralizationKeys(); len(keys) > 0 {
		r.add(LevelError, i18n.T("invalid pluralization keys"), keys...)
	}

	if opts.Checks.MissingPluralizations {
		if missing := tree.MissingPluralizationKeys(opts.Rules); len(missing) > 0 {
			r.add(LevelError, i18n.T("missing pluralization keys"), formatMissing(missing)...)
		}
	}

	if opts.Checks.Naming && !tree.IsNamedLikeSource() {
		r.add(LevelWarning, fmt.Sprintf(i18n.T("is not named like its locale %q"), tree.Locale()),
			fmt.Sprintf(i18n.T("expected %s"), expectedName(tree.Locale(), path)))
	}

	if opts.Checks.Locale && !tree.HasValidLocale(opts.Tags) {
		r.add(LevelWarning, fmt.Sprintf(i18n.T("locale %q is not a valid language tag"), tree.Locale()))
	}

	if opts.Checks.LegacyInterpolations {
		if keys := tree.LegacyInterpolationKeys(); len(keys) > 0 {
			r.add(LevelWarning, i18n.T("legacy {{name}} interpolations"), keys...)
		}
	}

	if len(r.Findings) == 0 {
		r.add(LevelOK, "")
	}
	return r
}

func (r *Result) addLoadFailure(err error) {
	switch {
	case localefile.IsSyntaxError(err):
		r.add(LevelFatal, i18n.T("could not be parsed"), err.Error())
	case errors.Is(err, localefile.ErrMultipleTopLevelKeys), errors.Is(err, localefile.ErrNoTopLevelKey):
		r.add(LevelFatal, i18n.T("does not have exactly one top-level namespace"), err.Error())
	case errors.Is(err, localefile.ErrNotMapping):
		r.add(LevelFatal, i18n.T("top-level namespace is not a mapping"), err.Error())
	default:
		r.add(LevelFatal, i18n.T("could not be loaded"), err.Error())
	}
}

// formatMissing renders "path: cat, cat" lines sorted by path.
func formatMissing(missing map[string][]string) []string {
	paths := make([]string, 0, len(missing))
	for p := range missing {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	lines := make([]string, len(paths))
	for i, p := range paths {
		lines[i] = p + ": " + strings.Join(missing[p], ", ")
	}
	return lines
}

// expectedName is the file name the locale should have: "de.yml".
func expectedName(locale, path string) string {
	return locale + filepath.Ext(path)
}

// Files checks every path with up to opts.Jobs files in flight. Results
// come back in the order of paths. The only error is the context's.
func Files(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	opts = opts.withDefaults()
	return run(ctx, paths, opts.Jobs, func(path string) Result {
		return File(path, opts)
	})
}

func run(ctx context.Context, paths []string, jobs int, check func(path string) Result) ([]Result, error) {
	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = check(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
