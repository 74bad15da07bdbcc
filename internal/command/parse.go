package command

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// splitCommand returns the first whitespace-delimited token and the trimmed rest.
func splitCommand(line string) (keyword, rest string) {
	line = strings.TrimSpace(line)
	end := strings.IndexFunc(line, unicode.IsSpace)
	if end < 0 {
		return line, ""
	}
	return line[:end], strings.TrimSpace(line[end:])
}

// splitAtDelimiter partitions s at the first occurrence of delim that stands
// as a whole word. Both halves are trimmed. Later occurrences stay in after.
func splitAtDelimiter(s, delim string) (before, after string, ok bool) {
	if delim == "" {
		return "", "", false
	}
	for start := 0; start < len(s); {
		idx := strings.Index(s[start:], delim)
		if idx < 0 {
			break
		}
		idx += start
		end := idx + len(delim)
		if spaceBefore(s, idx) && spaceAt(s, end) {
			return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[end:]), true
		}
		start = idx + 1
	}
	return "", "", false
}

func spaceBefore(s string, i int) bool {
	if i <= 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return unicode.IsSpace(r)
}

func spaceAt(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsSpace(r)
}
