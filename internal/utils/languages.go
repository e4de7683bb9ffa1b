package utils

import (
	"strings"

	"golang.org/x/text/language"
)

// NormalizeLanguage returns the canonical BCP 47 form of a language code
// ("EN" -> "en", "pt-br" -> "pt-BR"). Codes the parser rejects are only
// trimmed and lower-cased so they can still be compared.
func NormalizeLanguage(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToLower(code)
	}
	return tag.String()
}

// NormalizeLanguages canonicalises every code in list, dropping empty ones
func NormalizeLanguages(list []string) []string {
	out := make([]string, 0, len(list))
	for _, code := range list {
		if n := NormalizeLanguage(code); n != "" {
			out = append(out, n)
		}
	}
	return out
}
