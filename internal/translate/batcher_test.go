package translate

import (
	"fmt"
	"reflect"
	"testing"
)

func makeUnits(texts ...string) []Unit {
	units := make([]Unit, len(texts))
	for i, text := range texts {
		units[i] = Unit{ID: fmt.Sprintf("u%d", i), Text: text}
	}
	return units
}

func TestComposeBatches(t *testing.T) {
	tests := []struct {
		name      string
		units     []Unit
		maxChars  int
		wantSizes []int
	}{
		{
			name:      "empty input",
			units:     nil,
			maxChars:  100,
			wantSizes: nil,
		},
		{
			name:      "all fit in one batch",
			units:     makeUnits("Hello", "World"),
			maxChars:  100,
			wantSizes: []int{2},
		},
		{
			name:      "split at boundary",
			units:     makeUnits("aaaa", "bbbb", "cccc"),
			maxChars:  8,
			wantSizes: []int{2, 1},
		},
		{
			name:      "exact fit",
			units:     makeUnits("aaaa", "bbbb"),
			maxChars:  8,
			wantSizes: []int{2},
		},
		{
			name:      "one unit per batch",
			units:     makeUnits("aaaa", "bbbb", "cccc"),
			maxChars:  5,
			wantSizes: []int{1, 1, 1},
		},
		{
			name:      "oversized unit emitted alone",
			units:     makeUnits("aa", "this text is far too long", "bb"),
			maxChars:  10,
			wantSizes: []int{1, 1, 1},
		},
		{
			name:      "oversized unit first",
			units:     makeUnits("this text is far too long", "aa", "bb"),
			maxChars:  10,
			wantSizes: []int{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches := ComposeBatches(tt.units, tt.maxChars)

			if len(batches) != len(tt.wantSizes) {
				t.Fatalf("got %d batches, want %d", len(batches), len(tt.wantSizes))
			}
			for i, b := range batches {
				if len(b.Units) != tt.wantSizes[i] {
					t.Errorf("batch %d has %d units, want %d", i, len(b.Units), tt.wantSizes[i])
				}
			}

			// Completeness: concatenation reproduces the input exactly
			var flattened []Unit
			for _, b := range batches {
				flattened = append(flattened, b.Units...)
			}
			if !reflect.DeepEqual(flattened, tt.units) && !(len(flattened) == 0 && len(tt.units) == 0) {
				t.Errorf("batches do not partition input: got %+v, want %+v", flattened, tt.units)
			}
		})
	}
}

func TestComposeBatchesBound(t *testing.T) {
	units := makeUnits("aaa", "bbbbb", "cc", "ddddddddddddddddd", "e", "ff", "ggggg")
	maxChars := 8

	for i, b := range ComposeBatches(units, maxChars) {
		total := 0
		for _, u := range b.Units {
			total += len(u.Text)
		}
		if total != b.Length {
			t.Errorf("batch %d cached length %d, actual %d", i, b.Length, total)
		}
		if total > maxChars && len(b.Units) != 1 {
			t.Errorf("batch %d exceeds bound with %d units", i, len(b.Units))
		}
	}
}
