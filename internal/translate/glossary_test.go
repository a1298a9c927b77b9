package translate

import (
	"reflect"
	"strings"
	"testing"
)

func TestGlossaryMerge(t *testing.T) {
	tests := []struct {
		name      string
		existing  Glossary
		incoming  Glossary
		protected map[string]struct{}
		want      Glossary
	}{
		{
			name:     "union of disjoint keys",
			existing: Glossary{"A": "x"},
			incoming: Glossary{"B": "y"},
			want:     Glossary{"A": "x", "B": "y"},
		},
		{
			name:     "last write wins",
			existing: Glossary{"A": "x"},
			incoming: Glossary{"A": "y"},
			want:     Glossary{"A": "y"},
		},
		{
			name:      "seed entries are authoritative",
			existing:  Glossary{"A": "seed"},
			incoming:  Glossary{"A": "new", "B": "added"},
			protected: map[string]struct{}{"A": {}},
			want:      Glossary{"A": "seed", "B": "added"},
		},
		{
			name:     "empty incoming",
			existing: Glossary{"A": "x"},
			incoming: Glossary{},
			want:     Glossary{"A": "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.existing.Clone()
			g.Merge(tt.incoming, tt.protected)
			if !reflect.DeepEqual(g, tt.want) {
				t.Errorf("Merge = %v, want %v", g, tt.want)
			}
		})
	}
}

func TestGlossaryRenderSorted(t *testing.T) {
	g := Glossary{"Zeta": "z", "Alpha": "a", "Mid": "m"}
	want := "Alpha = a\nMid = m\nZeta = z\n"
	if got := g.Render(); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestParseTerms(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Glossary
		wantErr bool
	}{
		{
			name: "conventional shape",
			raw:  `{"terms": [{"original": "Jedi", "translated": "Jedi"}, {"original": "Death Star", "translated": "Étoile de la mort"}]}`,
			want: Glossary{"Jedi": "Jedi", "Death Star": "Étoile de la mort"},
		},
		{
			name: "alternate field and key names",
			raw:  `{"glossary": [{"term": "Warp", "translation": "Distorsion"}]}`,
			want: Glossary{"Warp": "Distorsion"},
		},
		{
			name: "source target keys",
			raw:  `{"entries": [{"source": "Ring", "target": "Anneau"}]}`,
			want: Glossary{"Ring": "Anneau"},
		},
		{
			name: "bare array",
			raw:  `[{"original": "Shire", "translated": "Comté"}]`,
			want: Glossary{"Shire": "Comté"},
		},
		{
			name:    "flat object without a term field is rejected",
			raw:     `{"Shire": "Comté"}`,
			wantErr: true,
		},
		{
			name:    "prose remark wrapped in JSON is rejected",
			raw:     `{"note": "no recurring terms found"}`,
			wantErr: true,
		},
		{
			name: "code fence",
			raw:  "```json\n{\"terms\": [{\"original\": \"Hobbit\", \"translated\": \"Hobbit\"}]}\n```",
			want: Glossary{"Hobbit": "Hobbit"},
		},
		{
			name: "empty list",
			raw:  `{"terms": []}`,
			want: Glossary{},
		},
		{
			name: "incomplete pairs are skipped",
			raw:  `{"terms": [{"original": "NoTranslation"}, {"original": "Ok", "translated": "Bien"}]}`,
			want: Glossary{"Ok": "Bien"},
		},
		{
			name:    "prose fails",
			raw:     "I found the following terms: Jedi",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTerms(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTerms failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseTerms = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractionInstructionIncludesKnownTerms(t *testing.T) {
	instruction := extractionInstruction("en", "fr", Glossary{"Shire": "Comté"})
	if !strings.Contains(instruction, "Shire = Comté") {
		t.Error("known terms not embedded in extraction instruction")
	}
	if !strings.Contains(instruction, `"terms"`) {
		t.Error("instruction does not name the expected response field")
	}
}
