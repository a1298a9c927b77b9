package translate

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Field names probed in order when the conventional "translations" field
// is absent. Provider output is not schema-guaranteed, so parsing is an
// ordered chain of strategies and the first success wins.
var translationFields = []string{"translations", "translation", "results", "lines", "texts", "items", "output"}

const excerptLimit = 200

// ParseTranslations parses raw provider output into exactly expected
// strings. It tolerates code-fence markup, alternate field names, bare
// arrays and numeric-keyed objects, but never accepts a wrong-length
// result: anything else fails with a FormatError.
func ParseTranslations(raw string, expected int) ([]string, error) {
	trimmed := stripCodeFence(raw)

	// Object with a known array field
	var object map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &object); err == nil {
		for _, field := range translationFields {
			value, ok := object[field]
			if !ok {
				continue
			}
			if list, ok := decodeStringArray(value); ok {
				if len(list) == expected {
					return list, nil
				}
				return nil, &FormatError{Expected: expected, Actual: len(list), Excerpt: excerpt(raw)}
			}
		}
		// Object keyed by stringified sequential indices
		if list, ok := decodeIndexedObject(object, expected); ok {
			return list, nil
		}
	}

	// Bare array
	if list, ok := decodeStringArray(json.RawMessage(trimmed)); ok {
		if len(list) == expected {
			return list, nil
		}
		return nil, &FormatError{Expected: expected, Actual: len(list), Excerpt: excerpt(raw)}
	}

	return nil, &FormatError{Expected: expected, Actual: -1, Excerpt: excerpt(raw)}
}

// stripCodeFence removes enclosing triple-backtick markup, with or without
// a language tag, so fenced JSON parses like plain JSON.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if newline := strings.IndexByte(trimmed, '\n'); newline >= 0 {
		// Drop the language tag line ("json", "JSON", or empty)
		firstLine := strings.TrimSpace(trimmed[:newline])
		if firstLine == "" || isLanguageTag(firstLine) {
			trimmed = trimmed[newline+1:]
		}
	}
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

func isLanguageTag(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}

// decodeStringArray decodes a JSON array of strings, coercing numbers and
// other scalars to their textual form.
func decodeStringArray(raw json.RawMessage) ([]string, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	list := make([]string, len(items))
	for i, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			list[i] = s
			continue
		}
		list[i] = strings.Trim(string(item), `"`)
	}
	return list, true
}

// decodeIndexedObject handles responses shaped like {"0": "...", "1": "..."}
func decodeIndexedObject(object map[string]json.RawMessage, expected int) ([]string, bool) {
	if len(object) != expected || expected == 0 {
		return nil, false
	}
	list := make([]string, expected)
	for i := 0; i < expected; i++ {
		value, ok := object[strconv.Itoa(i)]
		if !ok {
			return nil, false
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, false
		}
		list[i] = s
	}
	return list, true
}

func excerpt(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) > excerptLimit {
		return trimmed[:excerptLimit] + "..."
	}
	return trimmed
}
