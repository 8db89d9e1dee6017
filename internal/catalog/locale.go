package catalog

import (
	"strings"

	"golang.org/x/text/language"
)

const DefaultLocale = "en"

// SupportedLocales lists the site languages; the first one is the fallback.
var SupportedLocales = []string{"en", "de", "ru"}

var localeMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.German,
	language.Russian,
})

// MatchLocale picks a supported locale from the candidates in order. Each
// candidate may be a bare tag ("de") or an Accept-Language header value.
func MatchLocale(candidates ...string) string {
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(candidate)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, confidence := localeMatcher.Match(tags...)
		if confidence == language.No {
			continue
		}
		return SupportedLocales[idx]
	}
	return DefaultLocale
}

func IsSupportedLocale(locale string) bool {
	for _, l := range SupportedLocales {
		if l == locale {
			return true
		}
	}
	return false
}
