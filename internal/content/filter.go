package content

import (
	"strings"
	"unicode"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// Letters beyond a-z that each built-in language may use.
var alphabets = map[string]string{
	"en": "",
	"de": "äöüß",
	"es": "áéíóúñü",
}

// FilterForLang returns a language-specific filter for word lists. Built-in
// languages keep lowercase words from their alphabet; any other language
// keeps words made only of letters.
func FilterForLang(lang string) FilterFunc {
	extra, ok := alphabets[strings.ToLower(lang)]
	if !ok {
		return lettersOnly
	}
	return func(word string) bool {
		return inAlphabet(word, extra)
	}
}

func keepAll(string) bool { return true }

func inAlphabet(word, extra string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if r >= 'a' && r <= 'z' {
			continue
		}
		if !strings.ContainsRune(extra, r) {
			return false
		}
	}
	return true
}

func lettersOnly(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
