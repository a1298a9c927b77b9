package translate

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseTranslations(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
		want     []string
		wantErr  bool
	}{
		{
			name:     "conventional field",
			raw:      `{"translations": ["Bonjour", "Monde"]}`,
			expected: 2,
			want:     []string{"Bonjour", "Monde"},
		},
		{
			name:     "code fence with language tag",
			raw:      "```json\n{\"translations\": [\"Bonjour\", \"Monde\"]}\n```",
			expected: 2,
			want:     []string{"Bonjour", "Monde"},
		},
		{
			name:     "code fence without language tag",
			raw:      "```\n{\"translations\": [\"Bonjour\"]}\n```",
			expected: 1,
			want:     []string{"Bonjour"},
		},
		{
			name:     "alternate field name",
			raw:      `{"results": ["Bonjour", "Monde"]}`,
			expected: 2,
			want:     []string{"Bonjour", "Monde"},
		},
		{
			name:     "bare array",
			raw:      `["Bonjour", "Monde"]`,
			expected: 2,
			want:     []string{"Bonjour", "Monde"},
		},
		{
			name:     "numeric-keyed object",
			raw:      `{"0": "Bonjour", "1": "Monde"}`,
			expected: 2,
			want:     []string{"Bonjour", "Monde"},
		},
		{
			name:     "surrounding whitespace",
			raw:      "  \n{\"translations\": [\"Bonjour\"]}\n  ",
			expected: 1,
			want:     []string{"Bonjour"},
		},
		{
			name:     "wrong count fails",
			raw:      `{"translations": ["Bonjour"]}`,
			expected: 2,
			wantErr:  true,
		},
		{
			name:     "wrong count in bare array fails",
			raw:      `["a", "b", "c"]`,
			expected: 2,
			wantErr:  true,
		},
		{
			name:     "prose fails",
			raw:      "Here are your translations: Bonjour, Monde",
			expected: 2,
			wantErr:  true,
		},
		{
			name:     "empty content fails",
			raw:      "",
			expected: 1,
			wantErr:  true,
		},
		{
			name:     "numeric-keyed object with gap fails",
			raw:      `{"0": "a", "2": "c"}`,
			expected: 2,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTranslations(tt.raw, tt.expected)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				var formatErr *FormatError
				if !errors.As(err, &formatErr) {
					t.Errorf("expected FormatError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTranslations failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTranslations = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTranslationsNeverWrongLength(t *testing.T) {
	// Count preservation: any successful parse has exactly the expected length
	inputs := []string{
		`{"translations": ["a", "b"]}`,
		`["a", "b", "c"]`,
		`{"0": "a"}`,
		`{"lines": []}`,
		`not json at all`,
	}
	for _, raw := range inputs {
		for expected := 0; expected <= 4; expected++ {
			got, err := ParseTranslations(raw, expected)
			if err == nil && len(got) != expected {
				t.Errorf("ParseTranslations(%q, %d) returned %d strings without error", raw, expected, len(got))
			}
		}
	}
}

func TestFormatErrorCarriesCounts(t *testing.T) {
	_, err := ParseTranslations(`{"translations": ["only one"]}`, 3)
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if formatErr.Expected != 3 || formatErr.Actual != 1 {
		t.Errorf("counts = %d/%d, want 3/1", formatErr.Expected, formatErr.Actual)
	}
	if formatErr.Excerpt == "" {
		t.Error("excerpt is empty")
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"plain", "plain"},
		{"```json\n{}\n```", "{}"},
		{"```\n{}\n```", "{}"},
		{"```JSON\n[1]\n```", "[1]"},
	}
	for _, tt := range tests {
		if got := stripCodeFence(tt.raw); got != tt.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
