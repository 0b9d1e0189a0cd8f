// Package myanmar detects and normalizes Burmese text. Much user-entered
// Burmese is typed with the legacy Zawgyi font encoding, which stores the E
// vowel before its consonant instead of after it.
package myanmar

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	vowelE = 'ေ'

	firstConsonant = 'က'
	lastConsonant  = 'အ'
)

var (
	myanmarRE = regexp.MustCompile(`[\x{1000}-\x{109F}\x{AA60}-\x{AA7F}]`)

	zawgyiREs = []*regexp.Regexp{
		regexp.MustCompile(`[\x{1000}-\x{109F}][\x{1060}-\x{109F}]`),
		regexp.MustCompile(`\x{1031}[\x{1000}-\x{1021}]`),
		regexp.MustCompile(`[\x{1000}-\x{1021}]\x{103A}\x{1031}`),
	}

	// Runes after which a truncated preview may be cut.
	boundaries = []rune{' ', 'က', '၊', '။'}
)

// IsMyanmar reports whether text contains any Myanmar script.
func IsMyanmar(text string) bool {
	return myanmarRE.MatchString(text)
}

// IsZawgyi reports whether text looks Zawgyi encoded.
func IsZawgyi(text string) bool {
	if !IsMyanmar(text) {
		return false
	}
	for _, re := range zawgyiREs {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func isConsonant(r rune) bool {
	return r >= firstConsonant && r <= lastConsonant
}

// ZawgyiToUnicode moves every E vowel that precedes a consonant behind it.
// Text that isn't Zawgyi is returned unchanged.
func ZawgyiToUnicode(text string) string {
	if !IsZawgyi(text) {
		return text
	}

	runes := []rune(text)
	for i := 0; i < len(runes)-1; i++ {
		if runes[i] == vowelE && isConsonant(runes[i+1]) {
			runes[i], runes[i+1] = runes[i+1], runes[i]
			i++
		}
	}
	return string(runes)
}

// Normalize converts Zawgyi to Unicode and returns the NFC form.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return norm.NFC.String(ZawgyiToUnicode(text))
}

// NormalizePtr is Normalize for optional columns.
func NormalizePtr(text *string) *string {
	if text == nil {
		return nil
	}
	n := Normalize(*text)
	return &n
}

// Truncate shortens normalized text to at most max runes plus an ellipsis.
// When a word boundary falls within the last fifth of the cut, the text is
// cut there instead.
func Truncate(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}

	normalized := []rune(Normalize(text))
	if len(normalized) <= max {
		return string(normalized)
	}

	truncated := normalized[:max]
	last := -1
	for i, r := range truncated {
		for _, b := range boundaries {
			if r == b {
				last = i
			}
		}
	}

	if float64(last) > float64(max)*0.8 {
		return strings.TrimRight(string(truncated[:last]), " ") + "..."
	}
	return string(truncated) + "..."
}
