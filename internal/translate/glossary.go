package translate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Glossary maps a source-language term to its fixed target-language
// rendering. It is used to keep recurring proper nouns and technical
// terms consistent across batches.
type Glossary map[string]string

// Clone returns a copy of the glossary
func (g Glossary) Clone() Glossary {
	clone := make(Glossary, len(g))
	for k, v := range g {
		clone[k] = v
	}
	return clone
}

// Merge copies incoming entries into g. A later entry overwrites an earlier
// one with the same key (last-write-wins), except keys in protected, which
// are authoritative seed entries and survive verbatim.
func (g Glossary) Merge(incoming Glossary, protected map[string]struct{}) {
	for term, translated := range incoming {
		if _, seeded := protected[term]; seeded {
			continue
		}
		g[term] = translated
	}
}

// Render formats the glossary as "original = translated" lines sorted by
// term, for embedding into the provider instruction.
func (g Glossary) Render() string {
	terms := make([]string, 0, len(g))
	for term := range g {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	var builder strings.Builder
	for _, term := range terms {
		builder.WriteString(term)
		builder.WriteString(" = ")
		builder.WriteString(g[term])
		builder.WriteString("\n")
	}
	return builder.String()
}

// extractionInstruction builds the system instruction for a terminology
// extraction request. Known entries are included so the provider preserves
// them instead of re-deriving them.
func extractionInstruction(sourceLang, targetLang string, known Glossary) string {
	var builder strings.Builder
	if sourceLang != "" {
		fmt.Fprintf(&builder, "You are a terminology extractor for %s to %s subtitle translation.\n", sourceLang, targetLang)
	} else {
		fmt.Fprintf(&builder, "You are a terminology extractor for subtitle translation into %s.\n", targetLang)
	}
	builder.WriteString("Identify recurring proper nouns and technical terms in the user's text and translate each one.\n")
	builder.WriteString(`Respond with a JSON object: {"terms": [{"original": "...", "translated": "..."}]}.` + "\n")
	builder.WriteString("Only include terms that benefit from a fixed translation. Respond with an empty list if there are none.\n")

	if len(known) > 0 {
		builder.WriteString("\nThese terms are already fixed. Keep these exact translations and do not re-derive them:\n")
		builder.WriteString(known.Render())
	}
	return builder.String()
}

// Field names probed for extraction responses
var termFields = []string{"terms", "glossary", "entries"}

// termPair tolerates the key spellings providers actually produce
type termPair struct {
	Original    string `json:"original"`
	Translated  string `json:"translated"`
	Term        string `json:"term"`
	Translation string `json:"translation"`
	Source      string `json:"source"`
	Target      string `json:"target"`
}

func (p termPair) pair() (string, string) {
	original := p.Original
	if original == "" {
		original = p.Term
	}
	if original == "" {
		original = p.Source
	}
	translated := p.Translated
	if translated == "" {
		translated = p.Translation
	}
	if translated == "" {
		translated = p.Target
	}
	return original, translated
}

// parseTerms parses a terminology extraction response into a glossary.
// Like translation responses, the shape is probed tolerantly; anything
// unparseable fails with a FormatError. Only the named-field and array
// shapes are accepted: a flat object of arbitrary string values (such as
// a prose remark wrapped in JSON) carries no term pairs and must not
// leak into the glossary.
func parseTerms(raw string) (Glossary, error) {
	trimmed := stripCodeFence(raw)

	var object map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &object); err == nil {
		for _, field := range termFields {
			value, ok := object[field]
			if !ok {
				continue
			}
			if glossary, ok := decodeTermArray(value); ok {
				return glossary, nil
			}
		}
	}

	if glossary, ok := decodeTermArray(json.RawMessage(trimmed)); ok {
		return glossary, nil
	}

	return nil, &FormatError{Expected: 0, Actual: -1, Excerpt: excerpt(raw)}
}

func decodeTermArray(raw json.RawMessage) (Glossary, bool) {
	var pairs []termPair
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, false
	}
	glossary := make(Glossary)
	for _, p := range pairs {
		original, translated := p.pair()
		if original != "" && translated != "" {
			glossary[original] = translated
		}
	}
	return glossary, true
}
