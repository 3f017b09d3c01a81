package langmeta

import "strings"

// Plural category names as defined by Unicode CLDR.
const (
	PluralZero  = "zero"
	PluralOne   = "one"
	PluralTwo   = "two"
	PluralFew   = "few"
	PluralMany  = "many"
	PluralOther = "other"
)

// pluralFamily is a group of languages sharing the same cardinal plural
// categories.
type pluralFamily struct {
	categories []string
	languages  []string
}

// pluralFamilies lists CLDR cardinal plural categories for integer and
// decimal counts. Compact-notation-only categories (the "many" CLDR 42
// added for 1e6 in French, Spanish, Italian, Portuguese and Catalan) are
// left out: translation catalogs for those languages do not carry them.
var pluralFamilies = []pluralFamily{
	{
		categories: []string{PluralOther},
		languages: []string{
			"bm", "bo", "dz", "id", "ig", "ii", "in", "ja", "jbo", "jv", "jw",
			"kde", "kea", "km", "ko", "lkt", "lo", "ms", "my", "nqo", "osa",
			"sah", "ses", "sg", "su", "th", "to", "tpi", "vi", "wo", "yo",
			"yue", "zh",
		},
	},
	{
		categories: []string{PluralOne, PluralOther},
		languages: []string{
			"af", "ak", "am", "an", "as", "asa", "ast", "az", "bal", "bem",
			"bez", "bg", "bho", "bn", "brx", "ca", "ce", "ceb", "cgg", "chr",
			"ckb", "da", "de", "doi", "dv", "ee", "el", "en", "eo", "es", "et",
			"eu", "fa", "ff", "fi", "fil", "fo", "fr", "fur", "fy", "gl",
			"gsw", "gu", "guw", "ha", "haw", "hi", "hu", "hy", "ia", "io",
			"is", "it", "jgo", "jmc", "ka", "kab", "kaj", "kcg", "kk", "kkj",
			"kl", "kn", "ks", "ksb", "ku", "ky", "lb", "lg", "lij", "ln",
			"mas", "mg", "mgo", "mk", "ml", "mn", "mr", "nah", "nb", "nd",
			"ne", "nl", "nn", "nnh", "no", "nr", "nso", "ny", "nyn", "om",
			"or", "os", "pa", "pap", "ps", "pt", "rm", "rof", "rwk", "saq",
			"sc", "scn", "sd", "sdh", "seh", "si", "sn", "so", "sq", "ss",
			"ssy", "st", "sv", "sw", "syr", "ta", "te", "teo", "ti", "tig",
			"tk", "tl", "tn", "tr", "ts", "ug", "ur", "uz", "ve", "vo", "vun",
			"wa", "wae", "xh", "xog", "yi", "zu",
		},
	},
	{
		categories: []string{PluralZero, PluralOne, PluralOther},
		languages:  []string{"ksh", "lag", "lv", "prg"},
	},
	{
		categories: []string{PluralOne, PluralTwo, PluralOther},
		languages: []string{
			"iu", "naq", "sat", "se", "sma", "smi", "smj", "smn", "sms",
		},
	},
	{
		categories: []string{PluralOne, PluralFew, PluralOther},
		languages:  []string{"bs", "hr", "mo", "ro", "sh", "sr"},
	},
	{
		categories: []string{PluralOne, PluralTwo, PluralFew, PluralOther},
		languages:  []string{"dsb", "gd", "hsb", "sl"},
	},
	{
		categories: []string{PluralOne, PluralTwo, PluralMany, PluralOther},
		languages:  []string{"he", "iw"},
	},
	{
		categories: []string{PluralOne, PluralFew, PluralMany, PluralOther},
		languages:  []string{"be", "cs", "lt", "mt", "pl", "ru", "sk", "uk"},
	},
	{
		categories: []string{PluralOne, PluralTwo, PluralFew, PluralMany, PluralOther},
		languages:  []string{"br", "ga", "gv"},
	},
	{
		categories: []string{PluralZero, PluralOne, PluralTwo, PluralFew, PluralMany, PluralOther},
		languages:  []string{"ar", "ars", "cy", "kw"},
	},
}

// rootCategories is what CLDR's root locale uses for unknown languages.
var rootCategories = []string{PluralOther}

var pluralIndex = func() map[string][]string {
	m := make(map[string][]string)
	for _, f := range pluralFamilies {
		for _, lang := range f.languages {
			m[lang] = f.categories
		}
	}
	return m
}()

// Categories returns the CLDR plural categories for a language code.
// Locale variants fall back to their base language ("pt-BR" -> "pt");
// unknown languages get the root set {other}. The returned slice must not
// be modified.
func Categories(lang string) []string {
	normalized := canonicalize(lang)
	if cats, ok := pluralIndex[normalized]; ok {
		return cats
	}
	if parts := strings.SplitN(normalized, "-", 2); len(parts) == 2 {
		if cats, ok := pluralIndex[parts[0]]; ok {
			return cats
		}
	}
	return rootCategories
}

// HasPluralRules reports whether the language has its own entry in the
// plural table, as opposed to the root fallback.
func HasPluralRules(lang string) bool {
	normalized := canonicalize(lang)
	if _, ok := pluralIndex[normalized]; ok {
		return true
	}
	base := strings.SplitN(normalized, "-", 2)[0]
	_, ok := pluralIndex[base]
	return ok
}
