package localefile

import "sort"

// PluralizationKeys is the full set of CLDR plural category names, in CLDR
// order. Any branch is classified against this set; the categories a given
// language actually needs come from PluralRules.
var PluralizationKeys = []string{"zero", "one", "two", "few", "many", "other"}

var pluralizationRank = func() map[string]int {
	m := make(map[string]int, len(PluralizationKeys))
	for i, k := range PluralizationKeys {
		m[k] = i
	}
	return m
}()

// IsPluralizationKey reports whether key is one of PluralizationKeys.
func IsPluralizationKey(key string) bool {
	_, ok := pluralizationRank[key]
	return ok
}

// IsPluralization reports whether every key of b is a pluralization key.
// An empty branch is a pluralization.
func IsPluralization(b *Branch) bool {
	for _, k := range b.keys {
		if !IsPluralizationKey(k) {
			return false
		}
	}
	return true
}

// HasPluralizationKeys reports whether b has at least one pluralization key.
func HasPluralizationKeys(b *Branch) bool {
	for _, k := range b.keys {
		if IsPluralizationKey(k) {
			return true
		}
	}
	return false
}

// IsInvalidPluralization reports whether b mixes pluralization keys with
// ordinary keys.
func IsInvalidPluralization(b *Branch) bool {
	return HasPluralizationKeys(b) && !IsPluralization(b)
}

// PluralRules supplies the plural categories a locale has to provide.
type PluralRules interface {
	Categories(locale string) []string
}

// PluralRulesFunc adapts a function to PluralRules.
type PluralRulesFunc func(locale string) []string

// Categories implements PluralRules.
func (f PluralRulesFunc) Categories(locale string) []string {
	return f(locale)
}

// InvalidPluralizationKeys returns the paths of branches that mix
// pluralization keys with ordinary keys. Such branches are not descended
// into.
func (t *Tree) InvalidPluralizationKeys() []string {
	var invalid []string
	var walk func(b *Branch, prefix string)
	walk = func(b *Branch, prefix string) {
		b.each(func(key string, n Node) {
			child, ok := n.(*Branch)
			if !ok {
				return
			}
			path := joinPath(prefix, key)
			if IsInvalidPluralization(child) {
				invalid = append(invalid, path)
				return
			}
			walk(child, path)
		})
	}
	walk(t.root, "")
	return invalid
}

// MissingPluralizationKeys returns, per pluralization path, the categories
// required for the tree's locale that the branch lacks. The result lists
// categories in CLDR order.
//
// A branch that has none of the required categories is an ordinary
// namespace, not an attempted pluralization, and is descended into like a
// complete one. A branch with some but not all of them is reported and not
// descended into.
func (t *Tree) MissingPluralizationKeys(rules PluralRules) map[string][]string {
	required := uniqueCategories(rules.Categories(t.locale))
	missing := make(map[string][]string)

	var walk func(b *Branch, prefix string)
	walk = func(b *Branch, prefix string) {
		b.each(func(key string, n Node) {
			child, ok := n.(*Branch)
			if !ok {
				return
			}
			path := joinPath(prefix, key)
			lacking := lackingCategories(child, required)
			if len(lacking) > 0 && len(lacking) != len(required) {
				missing[path] = lacking
				return
			}
			walk(child, path)
		})
	}
	walk(t.root, "")
	return missing
}

// lackingCategories returns the required categories that b has no key for.
func lackingCategories(b *Branch, required []string) []string {
	var lacking []string
	for _, c := range required {
		if !b.Has(c) {
			lacking = append(lacking, c)
		}
	}
	sortCategories(lacking)
	return lacking
}

func uniqueCategories(cats []string) []string {
	seen := make(map[string]bool, len(cats))
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// sortCategories orders category names by CLDR order; names outside
// PluralizationKeys sort last, alphabetically.
func sortCategories(cats []string) {
	sort.SliceStable(cats, func(i, j int) bool {
		ri, iok := pluralizationRank[cats[i]]
		rj, jok := pluralizationRank[cats[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return cats[i] < cats[j]
		}
	})
}

// HasMissingPluralizationKeys reports whether any pluralization lacks a
// category required by rules.
func (t *Tree) HasMissingPluralizationKeys(rules PluralRules) bool {
	return len(t.MissingPluralizationKeys(rules)) > 0
}

// MissingPluralizationPaths flattens MissingPluralizationKeys into sorted
// "path.category" strings.
func (t *Tree) MissingPluralizationPaths(rules PluralRules) []string {
	var paths []string
	for path, cats := range t.MissingPluralizationKeys(rules) {
		for _, c := range cats {
			paths = append(paths, path+"."+c)
		}
	}
	sort.Strings(paths)
	return paths
}
