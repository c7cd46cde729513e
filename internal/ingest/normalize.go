package ingest

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	LangItalian = "ita"
	LangEnglish = "eng"
)

var (
	nonAlnum      = regexp.MustCompile(`[^a-zA-Z0-9]`)
	leadingDigits = regexp.MustCompile(`^(\d+)(.*)`)
)

var numberWords = map[string][]string{
	LangItalian: {"zero", "uno", "due", "tre", "quattro", "cinque", "sei", "sette", "otto", "nove"},
	LangEnglish: {"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"},
}

// Clean strips non-ASCII runes, replaces every character outside [A-Za-z0-9]
// with a space and trims. Total on any input, including empty.
func Clean(text string) string {
	ascii := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(nonAlnum.ReplaceAllString(ascii, " "))
}

// TransliterateLeadingDigits cleans text and rewrites a leading run of digits
// into the target language's number words ("3d printing" -> "tre d printing"
// for Italian). Graph labels cannot start with a digit.
func TransliterateLeadingDigits(text, lang string) string {
	s := Clean(text)
	words, ok := numberWords[lang]
	if !ok {
		words = numberWords[LangEnglish]
	}
	m := leadingDigits.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	spelled := make([]string, 0, len(m[1]))
	for _, d := range m[1] {
		spelled = append(spelled, words[d-'0'])
	}
	rest := strings.TrimLeft(m[2], " ")
	if rest == "" {
		return strings.Join(spelled, " ")
	}
	return strings.Join(spelled, " ") + " " + rest
}

// GraphToken turns free text into the label-safe token shape entity names
// take in the graph.
func GraphToken(text, lang string) string {
	return strings.ReplaceAll(TransliterateLeadingDigits(text, lang), " ", "_")
}
