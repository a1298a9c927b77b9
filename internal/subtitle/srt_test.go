package subtitle

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    List
	}{
		{
			name:    "empty input",
			content: "",
			want:    nil,
		},
		{
			name: "single entry",
			content: `1
00:00:01,000 --> 00:00:02,500
Hello`,
			want: List{
				{Index: 1, Start: time.Second, End: 2500 * time.Millisecond, Text: "Hello"},
			},
		},
		{
			name: "multiple entries",
			content: `1
00:00:01,000 --> 00:00:02,000
Hello

2
00:00:03,000 --> 00:00:04,000
World`,
			want: List{
				{Index: 1, Start: time.Second, End: 2 * time.Second, Text: "Hello"},
				{Index: 2, Start: 3 * time.Second, End: 4 * time.Second, Text: "World"},
			},
		},
		{
			name: "multi-line text preserved",
			content: `1
00:00:01,000 --> 00:00:02,000
First line
Second line`,
			want: List{
				{Index: 1, Start: time.Second, End: 2 * time.Second, Text: "First line\nSecond line"},
			},
		},
		{
			name: "dot millisecond separator",
			content: `1
00:00:01.500 --> 00:00:02.000
Hello`,
			want: List{
				{Index: 1, Start: 1500 * time.Millisecond, End: 2 * time.Second, Text: "Hello"},
			},
		},
		{
			name: "entry without text is dropped",
			content: `1
00:00:01,000 --> 00:00:02,000

2
00:00:03,000 --> 00:00:04,000
Kept`,
			want: List{
				{Index: 2, Start: 3 * time.Second, End: 4 * time.Second, Text: "Kept"},
			},
		},
		{
			name: "BOM stripped",
			content: "\uFEFF1\n00:00:01,000 --> 00:00:02,000\nHello",
			want: List{
				{Index: 1, Start: time.Second, End: 2 * time.Second, Text: "Hello"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.content))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	entries := List{
		{Index: 1, Start: time.Second, End: 2 * time.Second, Text: "Hello"},
		{Index: 2, Start: 3 * time.Second, End: 4*time.Second + 250*time.Millisecond, Text: "Two\nlines"},
	}

	parsed, err := Parse(strings.NewReader(Format(entries)))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(parsed, entries) {
		t.Errorf("round trip mismatch: got %+v, want %+v", parsed, entries)
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00,000"},
		{time.Second, "00:00:01,000"},
		{time.Hour + 23*time.Minute + 45*time.Second + 678*time.Millisecond, "01:23:45,678"},
	}

	for _, tt := range tests {
		if got := FormatTimestamp(tt.d); got != tt.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestEntryID(t *testing.T) {
	a := Entry{Index: 1, Start: time.Second, End: 2 * time.Second, Text: "Hello"}
	b := Entry{Index: 1, Start: time.Second, End: 2 * time.Second, Text: "Edited"}
	c := Entry{Index: 2, Start: time.Second, End: 2 * time.Second, Text: "Hello"}

	if a.ID() != b.ID() {
		t.Error("ID should not depend on text")
	}
	if a.ID() == c.ID() {
		t.Error("ID should differ for different indices")
	}
}
