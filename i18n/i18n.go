// Package i18n translates localecheck's own messages.
//
// Report lines and log output go through T and N. The catalogues are
// gettext PO files embedded in the binary and loaded by Init:
//
//	i18n.Init("")  // LANGUAGE, LC_ALL, LC_MESSAGES, LANG
//	fmt.Println(i18n.T("missing pluralization keys"))
//	fmt.Println(i18n.N("%d file checked", "%d files checked", n))
package i18n

import (
	"embed"
	"os"
	"strings"
	"sync"

	"github.com/leonelquinteros/gotext"
)

// Directory structure: locales/{lang}/LC_MESSAGES/localecheck.po
//
//go:embed all:locales
var locales embed.FS

const domain = "localecheck"

var (
	mu   sync.RWMutex
	po   *gotext.Locale
	lang string
)

// Init selects the UI language. An empty lang is taken from the
// environment the way GNU gettext does. Calling Init again switches the
// language.
func Init(l string) {
	if l == "" {
		l = detectLanguage()
	}

	loc := gotext.NewLocaleFSWithPath(normalize(l), locales, "locales")
	loc.AddDomain(domain)
	loc.SetDomain(domain)

	mu.Lock()
	po, lang = loc, l
	mu.Unlock()
}

// Language returns the language passed to (or detected by) Init.
func Language() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}

// T translates msgid, returning it unchanged when no translation exists.
func T(msgid string) string {
	mu.RLock()
	defer mu.RUnlock()
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// N translates a message with plural forms, chosen by the catalogue's
// Plural-Forms formula for n.
func N(singular, plural string, n int) string {
	mu.RLock()
	defer mu.RUnlock()
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// normalize maps "ru-RU" to the gettext form "ru_RU".
func normalize(l string) string {
	return strings.ReplaceAll(l, "-", "_")
}

// detectLanguage follows the GNU gettext priority:
// LANGUAGE > LC_ALL > LC_MESSAGES > LANG.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		// LANGUAGE is a colon-separated list
		if env == "LANGUAGE" {
			val = strings.SplitN(val, ":", 2)[0]
		}
		// "ru_RU.UTF-8" -> "ru_RU"
		if idx := strings.IndexByte(val, '.'); idx >= 0 {
			val = val[:idx]
		}
		if val == "C" || val == "POSIX" || val == "" {
			continue
		}
		return val
	}
	return "en"
}
