// Package langmeta resolves locale identifiers into language tags and
// supplies the CLDR plural categories each language uses.
package langmeta

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Tag is a resolved locale identifier.
type Tag struct {
	// ID is the canonical form of the identifier (e.g. "pt-BR").
	ID string
	// Language is the base language code (e.g. "pt").
	Language string
	// Region is the explicit region code, or empty (e.g. "BR").
	Region string
	// Valid is false when the identifier is not a well-formed tag of a
	// known language and region.
	Valid bool
}

func canonicalize(lang string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, "-")
	parts[0] = strings.ToLower(parts[0])
	if len(parts) >= 2 && len(parts[1]) == 2 {
		parts[1] = strings.ToUpper(parts[1])
	}
	return strings.Join(parts, "-")
}

// Resolve parses a locale identifier such as "en", "pt-BR" or "pt_br".
// Unparseable identifiers come back with Valid false and a best-effort
// Language taken from the first subtag.
func Resolve(id string) Tag {
	canonical := canonicalize(id)
	tag := Tag{ID: canonical}
	if canonical == "" {
		return tag
	}

	parsed, err := language.Parse(canonical)
	if err != nil {
		tag.Language = strings.SplitN(canonical, "-", 2)[0]
		return tag
	}

	base, _, region := parsed.Raw()
	tag.Language = base.String()
	// Raw reports an unspecified region as the unknown region ZZ.
	if r := region.String(); r != "ZZ" {
		tag.Region = r
	}
	tag.Valid = true
	return tag
}

// Valid reports whether id is a well-formed tag of a known language.
func Valid(id string) bool {
	return Resolve(id).Valid
}

// Name returns the language's name in that language (e.g. "Deutsch"), or
// id when the tag cannot be resolved.
func Name(id string) string {
	parsed, err := language.Parse(canonicalize(id))
	if err != nil {
		return id
	}
	if name := display.Self.Name(parsed); name != "" {
		return name
	}
	return id
}

// CLDR implements the plural-rule and tag-validity lookups used by the
// locale file checks.
type CLDR struct{}

// Categories returns the plural categories of the locale's language.
func (CLDR) Categories(locale string) []string {
	return Categories(Resolve(locale).Language)
}

// Valid reports whether locale is a valid language tag.
func (CLDR) Valid(locale string) bool {
	return Valid(locale)
}
