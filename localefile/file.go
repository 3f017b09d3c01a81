// Package localefile implements the locale file model and the checks run
// against it.
//
// A locale file holds one language's translations under a single top-level
// key naming the locale (Rails i18n style):
//
//	en:
//	  save: Save
//	  cats:
//	    one: A cat
//	    other: "%{count} cats"
//
// Nested keys are addressed in dot notation ("cats", "nav.home"). A branch
// whose keys are all pluralization categories (zero, one, two, few, many,
// other) is one translation unit and is addressed as a single key.
//
// Trees are immutable after construction and safe for concurrent use.
package localefile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrMultipleTopLevelKeys is returned when a document declares more
	// than one locale.
	ErrMultipleTopLevelKeys = errors.New("multiple top-level keys")
	// ErrNoTopLevelKey is returned for a document without any locale key.
	ErrNoTopLevelKey = errors.New("no top-level key")
	// ErrNotMapping is returned when the document, or the value under the
	// locale key, is not a mapping.
	ErrNotMapping = errors.New("not a mapping")
)

// Tree is a parsed locale file.
type Tree struct {
	locale string
	root   *Branch
	source string
}

// New builds a Tree from a parsed document whose single top-level key is
// the locale identifier. source is informational (usually the file path)
// and may be empty.
func New(doc *Branch, source string) (*Tree, error) {
	if doc == nil {
		return nil, ErrNoTopLevelKey
	}
	switch doc.Len() {
	case 0:
		return nil, ErrNoTopLevelKey
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s", ErrMultipleTopLevelKeys, strings.Join(doc.Keys(), ", "))
	}

	locale := doc.keys[0]
	root, ok := doc.nodes[locale].(*Branch)
	if !ok {
		return nil, fmt.Errorf("locale %q: %w", locale, ErrNotMapping)
	}
	return &Tree{locale: locale, root: root, source: source}, nil
}

// Locale returns the locale identifier, i.e. the top-level key.
func (t *Tree) Locale() string {
	return t.locale
}

// Root returns the translations under the locale key.
func (t *Tree) Root() *Branch {
	return t.root
}

// Source returns the path the tree was loaded from, if any.
func (t *Tree) Source() string {
	return t.source
}

// IsNamedLike reports whether the locale equals name.
func (t *Tree) IsNamedLike(name string) bool {
	return t.locale == name
}

// IsNamedLikeSource reports whether the locale matches the base name of the
// source path without its extension ("config/locales/de.yml" -> "de").
func (t *Tree) IsNamedLikeSource() bool {
	return t.IsNamedLike(BaseName(t.source))
}

// BaseName returns the file name of path without directory and extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TagValidator decides whether a locale identifier is a well-formed, known
// language tag.
type TagValidator interface {
	Valid(locale string) bool
}

// HasValidLocale reports whether v accepts the tree's locale.
func (t *Tree) HasValidLocale(v TagValidator) bool {
	return v.Valid(t.locale)
}

// Lookup returns the node at a dot-notation path.
func (t *Tree) Lookup(path string) (Node, bool) {
	if path == "" {
		return t.root, true
	}
	var n Node = t.root
	for _, part := range strings.Split(path, ".") {
		b, ok := n.(*Branch)
		if !ok {
			return nil, false
		}
		if n, ok = b.Get(part); !ok {
			return nil, false
		}
	}
	return n, true
}
