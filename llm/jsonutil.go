package llm

import "errors"

var ErrNoJSONObject = errors.New("no JSON object in llm response")

// ExtractJSONObject returns the first balanced {...} region of free-form model output.
// Braces inside JSON strings, escaped quotes included, do not count.
func ExtractJSONObject(content string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(content); i++ {
		c := content[i]
		if start < 0 {
			if c == '{' {
				start = i
				depth = 1
			}
			continue
		}
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSONObject
}
