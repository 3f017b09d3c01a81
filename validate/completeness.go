package validate

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/minios-linux/localecheck/i18n"
	"github.com/minios-linux/localecheck/localefile"
)

// Completeness compares each candidate file against the reference file.
// A candidate with every reference key gets a complete finding; otherwise
// each missing key is reported. With opts.Subset, keys the reference does
// not have are reported too. The reference itself is skipped when it
// appears among paths.
//
// A reference that cannot be loaded is an error; a candidate that cannot
// be loaded is a fatal finding for that candidate.
func Completeness(ctx context.Context, reference string, paths []string, opts Options) ([]Result, error) {
	opts = opts.withDefaults()
	ref, err := localefile.ParseFile(reference)
	if err != nil {
		return nil, fmt.Errorf("loading reference: %w", err)
	}

	candidates := make([]string, 0, len(paths))
	for _, p := range paths {
		if !samePath(p, reference) {
			candidates = append(candidates, p)
		}
	}

	return run(ctx, candidates, opts.Jobs, func(path string) Result {
		return compare(ref, path, opts.Subset)
	})
}

func compare(ref *localefile.Tree, path string, subset bool) Result {
	r := Result{Path: path}
	tree, err := localefile.ParseFile(path)
	if err != nil {
		r.addLoadFailure(err)
		return r
	}

	missing := tree.MissingKeysFrom(ref)
	if len(missing) == 0 {
		r.add(LevelComplete, "")
	}
	for _, key := range missing {
		r.add(LevelMissing, key)
	}

	if subset {
		for _, key := range tree.ExtraKeysFrom(ref) {
			r.add(LevelExtra, key, i18n.T("not present in the reference locale"))
		}
	}
	return r
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
