// localecheck — validates Rails-style locale files: pluralizations,
// completeness against a reference locale, naming and locale tags.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/minios-linux/localecheck/config"
	"github.com/minios-linux/localecheck/i18n"
	"github.com/minios-linux/localecheck/langmeta"
	"github.com/minios-linux/localecheck/localefile"
	"github.com/minios-linux/localecheck/lockfile"
	"github.com/minios-linux/localecheck/report"
	"github.com/minios-linux/localecheck/validate"
	"github.com/minios-linux/localecheck/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// errChecksFailed is returned by commands whose report contains a fatal
// or error finding. main exits 1 without logging it again.
var errChecksFailed = errors.New("checks failed")

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir string
	jobs    int
	uiLang  string
)

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "localecheck",
		Short: "Validate locale files: pluralizations, completeness, naming",
		Long: `localecheck validates YAML, JSON and TOML locale files that keep one
language under a single top-level key (Rails i18n style).

Commands:
  validate      Check pluralizations, naming, locale tags and interpolations
  completeness  Compare translations against a reference locale
  keys          List the dot-notation keys of a locale file
  watch         Re-validate locale files when they change

Without arguments the commands use .localecheck.yaml in the project root,
or the first of config/locales, locales, locale, public/locales,
translations and i18n that exists.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			i18n.Init(uiLang)
		},
	}

	// Global persistent flags, inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")
	root.PersistentFlags().IntVar(&jobs, "jobs", 0, "Files checked in parallel (0 = config or default)")
	root.PersistentFlags().StringVar(&uiLang, "lang", "", "Language of localecheck's own messages (default: from environment)")

	root.AddCommand(
		newValidateCmd(),
		newCompletenessCmd(),
		newKeysCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errChecksFailed) {
			logError("%v", err)
		}
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "localecheck version %s\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// Shared check options
// ---------------------------------------------------------------------------

// Names accepted by --skip.
const (
	checkNaming                = "naming"
	checkLocale                = "locale"
	checkMissingPluralizations = "missing-pluralizations"
	checkLegacyInterpolations  = "legacy-interpolations"
)

var checkNames = []string{checkNaming, checkLocale, checkMissingPluralizations, checkLegacyInterpolations}

type checkArgs struct {
	skip     []string
	patterns []string
	changed  bool
}

func addCheckFlags(fs *pflag.FlagSet, a *checkArgs) {
	fs.StringSliceVar(&a.skip, "skip", nil, "Checks to skip: "+strings.Join(checkNames, ", "))
	fs.StringSliceVar(&a.patterns, "pattern", nil, "File name patterns inside directories (default: config or *.yml,*.yaml,*.json,*.toml)")
}

func addChangedFlag(fs *pflag.FlagSet, a *checkArgs) {
	fs.BoolVar(&a.changed, "changed", false, "Only check files that changed or failed since the last run (tracked in "+lockfile.LockFileName+")")
}

// buildOptions merges the config file, then the command line, into
// validation options.
func buildOptions(cfg *config.File, a *checkArgs) (validate.Options, error) {
	checks := validate.Checks{
		Naming:                cfg.Checks.NamingEnabled(),
		Locale:                cfg.Checks.LocaleEnabled(),
		MissingPluralizations: cfg.Checks.MissingPluralizationsEnabled(),
		LegacyInterpolations:  cfg.Checks.LegacyInterpolationsEnabled(),
	}
	for _, name := range a.skip {
		switch strings.TrimSpace(name) {
		case checkNaming:
			checks.Naming = false
		case checkLocale:
			checks.Locale = false
		case checkMissingPluralizations:
			checks.MissingPluralizations = false
		case checkLegacyInterpolations:
			checks.LegacyInterpolations = false
		default:
			return validate.Options{}, fmt.Errorf("unknown check %q (valid: %s)", name, strings.Join(checkNames, ", "))
		}
	}

	opts := validate.Options{
		Rules:  langmeta.CLDR{},
		Tags:   langmeta.CLDR{},
		Checks: checks,
		Jobs:   cfg.Jobs,
		Subset: cfg.Checks.SubsetEnabled(),
	}
	if jobs > 0 {
		opts.Jobs = jobs
	}
	return opts, nil
}

func patternsFor(cfg *config.File, a *checkArgs) []string {
	if len(a.patterns) > 0 {
		return a.patterns
	}
	return cfg.Patterns
}

// resolveTargets returns args, or the configured paths when there are no
// args.
func resolveTargets(cfg *config.File, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(cfg.Paths) == 0 {
		return nil, errors.New(i18n.T("no locale paths given and none found in the project"))
	}
	return cfg.AbsPaths(), nil
}

// interruptContext is cancelled on Ctrl-C.
func interruptContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		select {
		case <-sigCh:
			logWarning("%s", i18n.T("Interrupted"))
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

// finish writes the report and summary and turns failures into
// errChecksFailed.
func finish(out io.Writer, results []validate.Result) error {
	if err := report.Write(out, results); err != nil {
		return err
	}
	summary := report.Summarize(results)
	if !summary.OK() {
		logError("%s", summary)
		return errChecksFailed
	}
	if summary.Warnings > 0 {
		logWarning("%s", summary)
	} else {
		logSuccess("%s", summary)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Incremental runs (--changed)
// ---------------------------------------------------------------------------

// incremental skips files whose recorded state in the lock file shows they
// passed with the same content, and records the new outcomes.
type incremental struct {
	lock    *lockfile.LockFile
	task    string
	content map[string]string // file path -> content hashed into the lock
}

// newIncremental loads the lock file in root. extra holds whatever else
// the outcome depends on for this task.
func newIncremental(root, task string, files []string, extra ...string) (*incremental, error) {
	lock, err := lockfile.Load(root)
	if err != nil {
		return nil, err
	}
	inc := &incremental{lock: lock, task: task, content: make(map[string]string)}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			// unreadable files are always checked
			continue
		}
		inc.content[f] = lockfile.Content(append([]string{string(data)}, extra...)...)
	}
	return inc, nil
}

// filter returns the files that need checking, keeping their order.
func (inc *incremental) filter(files []string) []string {
	entries := make(map[string]string, len(inc.content))
	for f, c := range inc.content {
		entries[inc.lock.TargetKey(f)] = c
	}
	changed := make(map[string]bool)
	for _, target := range inc.lock.FilterChanged(inc.task, entries) {
		changed[target] = true
	}

	var out []string
	for _, f := range files {
		if _, ok := inc.content[f]; !ok || changed[inc.lock.TargetKey(f)] {
			out = append(out, f)
		}
	}
	return out
}

// record stores the outcome of each result and saves the lock file.
func (inc *incremental) record(results []validate.Result) error {
	for _, r := range results {
		if c, ok := inc.content[r.Path]; ok {
			inc.lock.Update(inc.task, inc.lock.TargetKey(r.Path), c, !r.Failed())
		}
	}
	inc.lock.Prune()
	return inc.lock.Save()
}

// ---------------------------------------------------------------------------
// validate
// ---------------------------------------------------------------------------

func newValidateCmd() *cobra.Command {
	var a checkArgs

	cmd := &cobra.Command{
		Use:   "validate [path...]",
		Short: "Check locale files for structural problems",
		Long: `Check each locale file, or each matching file in a directory.

Fatal:    the file does not parse, or does not have exactly one top-level key
Error:    invalid pluralization keys, missing pluralization keys
Warning:  file not named like its locale, invalid locale tag,
          legacy {{name}} interpolations

Exits with status 1 when any fatal or error finding is reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDetect(rootDir)
			if err != nil {
				return err
			}
			opts, err := buildOptions(cfg, &a)
			if err != nil {
				return err
			}
			targets, err := resolveTargets(cfg, args)
			if err != nil {
				return err
			}
			files, err := validate.DiscoverAll(targets, patternsFor(cfg, &a))
			if err != nil {
				return err
			}
			if len(files) == 0 {
				logWarning("%s", i18n.T("No locale files found"))
				return nil
			}

			var inc *incremental
			if a.changed {
				if inc, err = newIncremental(cfg.Root(), lockfile.TaskValidate, files, fmt.Sprintf("%+v", opts.Checks)); err != nil {
					return err
				}
				if files = inc.filter(files); len(files) == 0 {
					logSuccess("%s", i18n.T("No files changed since the last run"))
					return nil
				}
			}
			logInfo(i18n.N("Validating %d file", "Validating %d files", len(files)), len(files))

			ctx, cancel := interruptContext()
			defer cancel()

			results, err := validate.Files(ctx, files, opts)
			if err != nil {
				return err
			}
			if inc != nil {
				if err := inc.record(results); err != nil {
					logWarning("%v", err)
				}
			}
			return finish(cmd.OutOrStdout(), results)
		},
	}

	addCheckFlags(cmd.Flags(), &a)
	addChangedFlag(cmd.Flags(), &a)
	return cmd
}

// ---------------------------------------------------------------------------
// completeness
// ---------------------------------------------------------------------------

func newCompletenessCmd() *cobra.Command {
	var a checkArgs
	var subset bool

	cmd := &cobra.Command{
		Use:   "completeness [reference] [path...]",
		Short: "Report keys missing from translations of a reference locale",
		Long: `Compare translated locale files against a reference locale file.

Each file that has every key of the reference is COMPLETE; otherwise each
missing key is listed. With --subset, keys that do not exist in the
reference are listed as EXTRA too.

The reference and paths default to the "reference" and "paths" of
.localecheck.yaml. The reference itself is skipped when it is among the
paths.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDetect(rootDir)
			if err != nil {
				return err
			}
			opts, err := buildOptions(cfg, &a)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("subset") {
				opts.Subset = subset
			}

			reference := cfg.AbsReference()
			if len(args) > 0 {
				reference, args = args[0], args[1:]
			}
			if reference == "" {
				return errors.New(i18n.T("no reference locale given and none found in the project"))
			}

			targets, err := resolveTargets(cfg, args)
			if err != nil {
				return err
			}
			files, err := validate.DiscoverAll(targets, patternsFor(cfg, &a))
			if err != nil {
				return err
			}
			logInfo(i18n.T("Reference: %s"), reference)

			var inc *incremental
			if a.changed {
				refData, err := os.ReadFile(reference)
				if err != nil {
					return fmt.Errorf("reading reference: %w", err)
				}
				inc, err = newIncremental(cfg.Root(), lockfile.TaskCompleteness, files, string(refData), fmt.Sprint(opts.Subset))
				if err != nil {
					return err
				}
				if files = inc.filter(files); len(files) == 0 {
					logSuccess("%s", i18n.T("No files changed since the last run"))
					return nil
				}
			}

			ctx, cancel := interruptContext()
			defer cancel()

			results, err := validate.Completeness(ctx, reference, files, opts)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				logWarning("%s", i18n.T("No translations to compare"))
				return nil
			}
			if inc != nil {
				if err := inc.record(results); err != nil {
					logWarning("%v", err)
				}
			}
			return finish(cmd.OutOrStdout(), results)
		},
	}

	addCheckFlags(cmd.Flags(), &a)
	addChangedFlag(cmd.Flags(), &a)
	cmd.Flags().BoolVar(&subset, "subset", false, "Also report keys absent from the reference")
	return cmd
}

// ---------------------------------------------------------------------------
// keys
// ---------------------------------------------------------------------------

func newKeysCmd() *cobra.Command {
	var values bool

	cmd := &cobra.Command{
		Use:   "keys <file>",
		Short: "List the dot-notation keys of a locale file",
		Long: `Print every addressable key of a locale file in document order.

A pluralization (a branch whose keys are all of zero, one, two, few, many,
other) is one key. With --values each key is followed by its value, or by
its plural categories.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := localefile.ParseFile(args[0])
			if err != nil {
				return err
			}
			printKeys(cmd.OutOrStdout(), tree, values)
			return nil
		},
	}

	cmd.Flags().BoolVar(&values, "values", false, "Print values next to keys")
	return cmd
}

func printKeys(out io.Writer, tree *localefile.Tree, values bool) {
	if !values {
		for _, k := range tree.Keys() {
			fmt.Fprintln(out, k)
		}
		return
	}
	for _, e := range tree.Entries() {
		switch n := e.Node.(type) {
		case *localefile.Leaf:
			fmt.Fprintf(out, "%s\t%q\n", e.Path, n.Value)
		case *localefile.Branch:
			fmt.Fprintf(out, "%s\t{%s}\n", e.Path, strings.Join(n.Keys(), ", "))
		}
	}
}

// ---------------------------------------------------------------------------
// watch
// ---------------------------------------------------------------------------

func newWatchCmd() *cobra.Command {
	var a checkArgs
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "watch [dir...]",
		Short: "Re-validate locale files when they change",
		Long: `Watch locale directories and validate each file when it is written.

Directories default to the configured paths. Press Ctrl-C to stop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDetect(rootDir)
			if err != nil {
				return err
			}
			opts, err := buildOptions(cfg, &a)
			if err != nil {
				return err
			}
			targets, err := resolveTargets(cfg, args)
			if err != nil {
				return err
			}
			dirs, err := watchDirs(targets)
			if err != nil {
				return err
			}

			w, err := watch.New(patternsFor(cfg, &a), delay)
			if err != nil {
				return err
			}
			w.OnError = func(err error) { logWarning(i18n.T("Watch error: %v"), err) }
			for _, dir := range dirs {
				if err := w.Add(dir); err != nil {
					_ = w.Close()
					return fmt.Errorf("watching %s: %w", dir, err)
				}
				logInfo(i18n.T("Watching %s"), dir)
			}

			ctx, cancel := interruptContext()
			defer cancel()

			out := cmd.OutOrStdout()
			err = w.Run(ctx, func(path string) {
				r := validate.File(path, opts)
				if err := report.WriteResult(out, r); err != nil {
					logError("%v", err)
				}
				if r.Failed() {
					logError(i18n.T("%s has problems"), path)
				}
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	addCheckFlags(cmd.Flags(), &a)
	cmd.Flags().DurationVar(&delay, "delay", watch.DefaultDelay, "Quiet period before a changed file is checked")
	return cmd
}

// watchDirs maps targets to the directories to watch: directories as
// they are, files to their parent directory. Repeats are dropped.
func watchDirs(targets []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	for _, t := range targets {
		info, err := os.Stat(t)
		if err != nil {
			return nil, err
		}
		dir := t
		if !info.IsDir() {
			dir = filepath.Dir(t)
		}
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}
