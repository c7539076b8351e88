package schema

import (
	"regexp"
	"strings"
	"unicode"
)

var separatorPattern = regexp.MustCompile(`[_\-.\s]+`)

var acronyms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"csv":  "CSV",
	"api":  "API",
	"uuid": "UUID",
}

// Humanize turns a field or column key into a display label: separators and
// camelCase boundaries become spaces, words are title cased and well known
// acronyms are upper cased ("createdAt" -> "Created At", "user_id" -> "User ID").
func Humanize(key string) string {
	if strings.TrimSpace(key) == "" {
		return ""
	}

	var words []string
	for _, chunk := range separatorPattern.Split(key, -1) {
		for _, word := range splitCamel(chunk) {
			if word == "" {
				continue
			}
			words = append(words, titleWord(word))
		}
	}
	return strings.Join(words, " ")
}

// LabelOr returns label when set, otherwise the humanized key.
func LabelOr(label, key string) string {
	if trimmed := strings.TrimSpace(label); trimmed != "" {
		return trimmed
	}
	return Humanize(key)
}

func splitCamel(input string) []string {
	runes := []rune(input)
	var (
		words []string
		start int
	)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := (unicode.IsLower(prev) && unicode.IsUpper(cur)) ||
			(unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
			(unicode.IsDigit(prev) && unicode.IsLetter(cur))
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	if start < len(runes) {
		words = append(words, string(runes[start:]))
	}
	return words
}

func titleWord(word string) string {
	lower := strings.ToLower(word)
	if acronym, ok := acronyms[lower]; ok {
		return acronym
	}
	runes := []rune(lower)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
