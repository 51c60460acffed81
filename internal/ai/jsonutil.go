package ai

import "strings"

// ExtractJSON returns the first complete JSON object in a model reply, or ""
// when there is none. Markdown code fences and surrounding prose are skipped.
// A reply that is itself a top-level array is returned whole.
func ExtractJSON(reply string) string {
	text := stripFence(strings.TrimSpace(reply))

	if strings.HasPrefix(text, "[") {
		if end := valueEnd(text); end > 0 {
			return text[:end]
		}
	}

	start := strings.IndexByte(text, '{')
	for start >= 0 {
		if end := valueEnd(text[start:]); end > 0 {
			return text[start : start+end]
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return ""
}

func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	body := text[3:]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	}
	if i := strings.LastIndex(body, "```"); i >= 0 {
		body = body[:i]
	}
	return strings.TrimSpace(body)
}

// valueEnd returns the length of the balanced object or array at the start of
// s, or 0 when it never closes. Brackets inside strings are ignored.
func valueEnd(s string) int {
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && ch == '\\':
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{' || ch == '[':
			depth++
		case ch == '}' || ch == ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return 0
}
