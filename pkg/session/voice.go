package session

import "strings"

// NormalizeTranscript maps a spoken phrase onto the typed command language.
// Phrases that match no known pattern pass through unchanged and fall into
// the chat backend like any other free text.
func NormalizeTranscript(text string) string {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "show all products") || strings.Contains(lower, "list all products"):
		return "list products"

	case strings.Contains(lower, "show") || strings.Contains(lower, "find") || strings.Contains(lower, "search"):
		name := lower
		for _, keyword := range []string{"show", "find", "search"} {
			if idx := strings.LastIndex(name, keyword); idx >= 0 {
				name = name[idx+len(keyword):]
			}
		}
		return "show " + strings.TrimSpace(name)

	case strings.Contains(lower, "add product"):
		params := afterLast(lower, "add product")
		return "add " + params

	case strings.Contains(lower, "update product"):
		params := afterLast(lower, "update product")
		return "update " + params

	case strings.Contains(lower, "delete product"):
		name := afterLast(lower, "delete product")
		return "delete " + name
	}

	return text
}

func afterLast(s, sep string) string {
	if idx := strings.LastIndex(s, sep); idx >= 0 {
		s = s[idx+len(sep):]
	}
	return strings.TrimSpace(s)
}
