package ingest

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// decodeLoose decodes a model response that should be JSON but often is not
// quite: single-quoted strings, parenthesized tuples, Python constants.
// Strict JSON is tried first, then the literal-syntax rewrite.
func decodeLoose(raw string, out any) error {
	s := stripFences(strings.TrimSpace(raw))
	if s == "" {
		return fmt.Errorf("empty response")
	}
	if err := json.Unmarshal([]byte(s), out); err == nil {
		return nil
	}
	rewritten, err := literalToJSON(s)
	if err != nil {
		return fmt.Errorf("literal rewrite: %w", err)
	}
	if err := json.Unmarshal([]byte(rewritten), out); err != nil {
		return fmt.Errorf("decode rewritten literal: %w", err)
	}
	return nil
}

func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// literalToJSON rewrites Python literal-data syntax into JSON: tuples become
// arrays, single-quoted strings become double-quoted, None/True/False become
// their JSON spellings. Anything else is passed through and left for the JSON
// decoder to reject.
func literalToJSON(s string) (string, error) {
	var b strings.Builder
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == '\'' || r == '"':
			delim := r
			b.WriteByte('"')
			i++
			closed := false
			for i < len(runes) {
				c := runes[i]
				if c == '\\' && i+1 < len(runes) {
					next := runes[i+1]
					if next == '\'' {
						b.WriteRune('\'')
					} else {
						b.WriteRune('\\')
						b.WriteRune(next)
					}
					i += 2
					continue
				}
				if c == delim {
					closed = true
					i++
					break
				}
				if c == '"' {
					b.WriteString(`\"`)
				} else {
					b.WriteRune(c)
				}
				i++
			}
			if !closed {
				return "", fmt.Errorf("unterminated string")
			}
			b.WriteByte('"')
		case r == '(':
			b.WriteByte('[')
			i++
		case r == ')':
			b.WriteByte(']')
			i++
		case unicode.IsLetter(r):
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			switch word := string(runes[i:j]); word {
			case "None":
				b.WriteString("null")
			case "True":
				b.WriteString("true")
			case "False":
				b.WriteString("false")
			default:
				b.WriteString(word)
			}
			i = j
		default:
			b.WriteRune(r)
			i++
		}
	}
	return b.String(), nil
}
