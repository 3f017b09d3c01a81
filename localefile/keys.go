package localefile

import (
	"regexp"
	"sort"
)

// Entry is one addressable translation unit: a leaf, or a pluralization
// branch kept whole.
type Entry struct {
	Path string
	Node Node
}

// IsPluralization reports whether the entry is a pluralization branch.
func (e Entry) IsPluralization() bool {
	_, ok := e.Node.(*Branch)
	return ok
}

// flatten walks the tree depth first and calls emit once per addressable
// path. Pluralization branches are emitted as a unit and not descended
// into. Paths already emitted are skipped, so keys containing dots cannot
// produce duplicates.
func (t *Tree) flatten(emit func(path string, n Node)) {
	seen := make(map[string]bool)
	var walk func(b *Branch, prefix string)
	walk = func(b *Branch, prefix string) {
		b.each(func(key string, n Node) {
			path := joinPath(prefix, key)
			if child, ok := n.(*Branch); ok && !IsPluralization(child) {
				walk(child, path)
				return
			}
			if seen[path] {
				return
			}
			seen[path] = true
			emit(path, n)
		})
	}
	walk(t.root, "")
}

// Keys returns every addressable dot-notation key in document order. Each
// key appears once.
func (t *Tree) Keys() []string {
	var keys []string
	t.flatten(func(path string, _ Node) {
		keys = append(keys, path)
	})
	return keys
}

// Entries is Keys with the node behind each key: the *Leaf, or the whole
// pluralization *Branch.
func (t *Tree) Entries() []Entry {
	var entries []Entry
	t.flatten(func(path string, n Node) {
		entries = append(entries, Entry{Path: path, Node: n})
	})
	return entries
}

// KeySet returns Keys as a set.
func (t *Tree) KeySet() map[string]struct{} {
	set := make(map[string]struct{})
	t.flatten(func(path string, _ Node) {
		set[path] = struct{}{}
	})
	return set
}

// legacyInterpolation matches the pre-%{} interpolation syntax "{{name}}".
var legacyInterpolation = regexp.MustCompile(`\{\{[^{}]+\}\}`)

// LegacyInterpolationKeys returns the paths of leaves, including
// pluralization categories, that use "{{name}}" interpolation. The result
// is sorted.
func (t *Tree) LegacyInterpolationKeys() []string {
	var keys []string
	var walk func(b *Branch, prefix string)
	walk = func(b *Branch, prefix string) {
		b.each(func(key string, n Node) {
			path := joinPath(prefix, key)
			switch n := n.(type) {
			case *Branch:
				walk(n, path)
			case *Leaf:
				if legacyInterpolation.MatchString(n.Value) {
					keys = append(keys, path)
				}
			}
		})
	}
	walk(t.root, "")
	sort.Strings(keys)
	return keys
}

// HasLegacyInterpolations reports whether any leaf uses "{{name}}"
// interpolation.
func (t *Tree) HasLegacyInterpolations() bool {
	return len(t.LegacyInterpolationKeys()) > 0
}
