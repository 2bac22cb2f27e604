package demo

import (
	"strings"
	"unicode"
)

// ComponentSuffix ends every derived component name.
const ComponentSuffix = "Component"

// ComponentName derives a TypeScript identifier from a free-text description.
//
// Only ASCII letters and digits survive into the name. Hangul is kept while tokens
// are split and cased, then dropped, so a description written entirely in Korean
// yields just ComponentSuffix. Leading digits are removed so the result never
// starts with one.
func ComponentName(description string) string {
	var sb strings.Builder
	for _, token := range strings.Fields(FilterDescription(description)) {
		runes := []rune(strings.ToLower(token))
		runes[0] = unicode.ToUpper(runes[0])
		for _, r := range runes {
			if isASCIIAlnum(r) {
				sb.WriteRune(r)
			}
		}
	}

	name := strings.TrimLeft(sb.String(), "0123456789")
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return name + ComponentSuffix
}

// FilterDescription keeps ASCII letters and digits, Hangul syllables and whitespace.
func FilterDescription(description string) string {
	return strings.Map(func(r rune) rune {
		if isASCIIAlnum(r) || isHangulSyllable(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, description)
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isHangulSyllable(r rune) bool {
	return r >= '가' && r <= '힣'
}
