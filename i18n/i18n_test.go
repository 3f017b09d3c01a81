package i18n

import "testing"

func clearLocaleEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LANGUAGE", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")
}

func TestDetectLanguagePriorityAndNormalization(t *testing.T) {
	t.Run("LANGUAGE has highest priority", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANGUAGE", "ru_RU.UTF-8:en_US")
		t.Setenv("LC_ALL", "de_DE.UTF-8")

		if got := detectLanguage(); got != "ru_RU" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "ru_RU")
		}
	})

	t.Run("C and POSIX are skipped", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANGUAGE", "C")
		t.Setenv("LC_ALL", "POSIX")
		t.Setenv("LC_MESSAGES", "fr_FR.UTF-8")

		if got := detectLanguage(); got != "fr_FR" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "fr_FR")
		}
	})

	t.Run("falls back to en", func(t *testing.T) {
		clearLocaleEnv(t)
		if got := detectLanguage(); got != "en" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "en")
		}
	})
}

func TestTAndNFallbackWhenUninitialized(t *testing.T) {
	restoreLocale(t)
	mu.Lock()
	po = nil
	mu.Unlock()

	if got := T("Hello"); got != "Hello" {
		t.Fatalf("T fallback = %q, want %q", got, "Hello")
	}

	if got := N("file", "files", 1); got != "file" {
		t.Fatalf("N singular fallback = %q, want %q", got, "file")
	}

	if got := N("file", "files", 2); got != "files" {
		t.Fatalf("N plural fallback = %q, want %q", got, "files")
	}
}

func restoreLocale(t *testing.T) {
	t.Helper()
	mu.RLock()
	oldPo, oldLang := po, lang
	mu.RUnlock()
	t.Cleanup(func() {
		mu.Lock()
		po, lang = oldPo, oldLang
		mu.Unlock()
	})
}

func TestInitLoadsEmbeddedCatalogue(t *testing.T) {
	restoreLocale(t)

	for _, l := range []string{"ru", "ru_RU", "ru-RU"} {
		Init(l)
		if got := Language(); got != l {
			t.Fatalf("Language() = %q, want %q", got, l)
		}
		if got := T("invalid pluralization keys"); got != "некорректные ключи множественного числа" {
			t.Fatalf("Init(%q): T() = %q, want Russian translation", l, got)
		}
	}

	if got := N("%d error", "%d errors", 5); got != "%d ошибок" {
		t.Fatalf("N(5) = %q, want %q", got, "%d ошибок")
	}
	if got := N("%d error", "%d errors", 2); got != "%d ошибки" {
		t.Fatalf("N(2) = %q, want %q", got, "%d ошибки")
	}
	if got := T("untranslated message"); got != "untranslated message" {
		t.Fatalf("T(untranslated) = %q, want passthrough", got)
	}
}

func TestInitUnknownLanguagePassesThrough(t *testing.T) {
	restoreLocale(t)

	Init("xx")
	if got := T("invalid pluralization keys"); got != "invalid pluralization keys" {
		t.Fatalf("T() = %q, want passthrough", got)
	}
	if got := N("%d error", "%d errors", 1); got != "%d error" {
		t.Fatalf("N(1) = %q, want singular", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := normalize("pt-BR"); got != "pt_BR" {
		t.Fatalf("normalize(pt-BR) = %q, want pt_BR", got)
	}
}
