package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadGlossary reads a glossary file containing a JSON object that maps
// original terms to their translations.
func LoadGlossary(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read glossary file: %w", err)
	}

	glossary := make(map[string]string)
	if err := json.Unmarshal(data, &glossary); err != nil {
		return nil, fmt.Errorf("failed to parse glossary file %s: %w", path, err)
	}

	return glossary, nil
}

// SaveGlossary writes a glossary to path as an indented JSON object,
// keys sorted for stable diffs.
func SaveGlossary(path string, glossary map[string]string) error {
	data, err := json.MarshalIndent(glossary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode glossary: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write glossary file: %w", err)
	}

	return nil
}
