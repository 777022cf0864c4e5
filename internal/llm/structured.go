package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONArray returns the first well-formed JSON array in raw that
// decodes as []T. Replies often surround the array with prose or markdown
// fences, and the prose may contain brackets of its own, so every '[' is
// tried as a starting point.
func ExtractJSONArray[T any](raw string) ([]T, error) {
	body := dropFenceLines(raw)

	var lastErr error
	for from := 0; ; {
		rel := strings.IndexByte(body[from:], '[')
		if rel < 0 {
			break
		}
		start := from + rel
		from = start + 1

		end := matchingClose(body, start)
		if end < 0 {
			continue
		}
		var out []T
		if err := json.Unmarshal([]byte(sanitizeJSON(body[start:end+1])), &out); err != nil {
			lastErr = err
			continue
		}
		return out, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, lastErr)
	}
	return nil, fmt.Errorf("%w: no JSON array in reply", ErrInvalidOutput)
}

func dropFenceLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if !strings.HasPrefix(strings.TrimSpace(l), "```") {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}

// matchingClose returns the index of the ']' that closes the '[' at start,
// or -1. Brackets inside string literals do not count.
func matchingClose(s string, start int) int {
	depth := 0
	var st stringState
	for i := start; i < len(s); i++ {
		if st.step(s[i]) {
			continue
		}
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// sanitizeJSON removes // and /* */ comments and rewrites bare leading
// decimals such as ".5" to "0.5". String literals pass through untouched.
func sanitizeJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	var st stringState
	for i := 0; i < len(s); i++ {
		c := s[i]
		if st.step(c) {
			b.WriteByte(c)
			continue
		}

		if c == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				for i+1 < len(s) && s[i+1] != '\n' {
					i++
				}
				continue
			case '*':
				if end := strings.Index(s[i+2:], "*/"); end >= 0 {
					i += 2 + end + 1
				} else {
					i = len(s)
				}
				continue
			}
		}

		if c == '.' && i+1 < len(s) && isDigit(s[i+1]) && startsNumber(lastNonSpace(s[:i])) {
			b.WriteByte('0')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// stringState tracks whether a byte scan is inside a JSON string literal.
type stringState struct {
	in, escaped bool
}

// step consumes c and reports whether it belongs to a string literal,
// including the quotes themselves.
func (st *stringState) step(c byte) bool {
	switch {
	case st.escaped:
		st.escaped = false
		return true
	case st.in && c == '\\':
		st.escaped = true
		return true
	case c == '"':
		st.in = !st.in
		return true
	default:
		return st.in
	}
}

func lastNonSpace(s string) byte {
	t := strings.TrimRight(s, " \t\r\n")
	if t == "" {
		return 0
	}
	return t[len(t)-1]
}

func startsNumber(prev byte) bool {
	switch prev {
	case 0, ':', ',', '[', '{', '-':
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
