package awekas

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no supported language can be matched.
const DefaultLanguage = "en"

// request languages the API serves; English first so it wins ties
var requestLanguages = []language.Tag{
	language.English,
	language.German,
	language.French,
	language.Spanish,
	language.Dutch,
}

// compass tables exist for one more language than the API serves
var labelLanguages = append(append([]language.Tag{}, requestLanguages...), language.Italian)

var (
	requestMatcher = language.NewMatcher(requestLanguages)
	labelMatcher   = language.NewMatcher(labelLanguages)
)

// ResolveRequestLanguage maps a language tag to the lng parameter sent to the
// API: one of de, en, fr, es or nl. Unknown or unsupported tags give "en".
func ResolveRequestLanguage(tag string) string {
	return resolve(requestMatcher, requestLanguages, tag)
}

// ResolveLabelLanguage maps a language tag to a compass label table: one of
// de, en, es, fr, it or nl. Unknown or unsupported tags give "en".
func ResolveLabelLanguage(tag string) string {
	return resolve(labelMatcher, labelLanguages, tag)
}

func resolve(m language.Matcher, supported []language.Tag, tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return DefaultLanguage
	}
	t, err := language.Parse(tag)
	if err != nil {
		return DefaultLanguage
	}
	_, index, confidence := m.Match(t)
	if confidence == language.No {
		return DefaultLanguage
	}
	// the matcher also offers related languages (gl for es, af for nl);
	// only the same base language counts
	want, _ := t.Base()
	got, _ := supported[index].Base()
	if want != got {
		return DefaultLanguage
	}
	return got.String()
}

// SystemLanguage returns the language of the process locale, read from
// LC_ALL, LC_MESSAGES and LANG in that order. It returns an empty string when
// none is set or the locale is C/POSIX.
func SystemLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := localeLanguage(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

// localeLanguage turns "de_AT.UTF-8@euro" into "de-AT".
func localeLanguage(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(locale, "_", "-")
}
