// Package subtitle parses and serializes SRT subtitle files. It supplies the
// ordered entries the translation engine consumes and writes translated text
// back without touching indices or timing.
package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var timestampRegex = regexp.MustCompile(`(\d{2}):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})[,.](\d{3})`)

// Parse reads SRT content from a reader.
// Entries without text are dropped; malformed index lines reset the block.
func Parse(r io.Reader) (List, error) {
	var entries List
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var current *Entry
	lineNum := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Strip UTF-8 BOM from the first line
		line = strings.TrimPrefix(line, "\uFEFF")

		if line == "" {
			if current != nil && current.Text != "" {
				entries = append(entries, *current)
			}
			current = nil
			lineNum = 0
			continue
		}

		lineNum++
		switch lineNum {
		case 1:
			index, err := strconv.Atoi(line)
			if err == nil {
				current = &Entry{Index: index}
			}
		case 2:
			if current != nil {
				m := timestampRegex.FindStringSubmatch(line)
				if len(m) == 9 {
					current.Start = parseTimestamp(m[1], m[2], m[3], m[4])
					current.End = parseTimestamp(m[5], m[6], m[7], m[8])
				}
			}
		default:
			if current != nil {
				if current.Text != "" {
					current.Text += "\n"
				}
				current.Text += line
			}
		}
	}

	if current != nil && current.Text != "" {
		entries = append(entries, *current)
	}

	return entries, scanner.Err()
}

// ParseFile parses an SRT file from the given path
func ParseFile(path string) (List, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open subtitle file: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// Format serializes entries back to SRT
func Format(entries List) string {
	var builder strings.Builder
	for i, e := range entries {
		builder.WriteString(strconv.Itoa(e.Index))
		builder.WriteString("\n")
		builder.WriteString(FormatTimestamp(e.Start))
		builder.WriteString(" --> ")
		builder.WriteString(FormatTimestamp(e.End))
		builder.WriteString("\n")
		builder.WriteString(e.Text)
		builder.WriteString("\n")
		if i < len(entries)-1 {
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

// WriteFile serializes entries to an SRT file
func WriteFile(path string, entries List) error {
	if err := os.WriteFile(path, []byte(Format(entries)), 0644); err != nil {
		return fmt.Errorf("failed to write subtitle file: %w", err)
	}
	return nil
}

func parseTimestamp(h, m, s, ms string) time.Duration {
	hours, _ := strconv.Atoi(h)
	mins, _ := strconv.Atoi(m)
	secs, _ := strconv.Atoi(s)
	millis, _ := strconv.Atoi(ms)
	return time.Duration(hours)*time.Hour +
		time.Duration(mins)*time.Minute +
		time.Duration(secs)*time.Second +
		time.Duration(millis)*time.Millisecond
}

// FormatTimestamp renders a duration as an SRT timestamp (HH:MM:SS,mmm)
func FormatTimestamp(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	ms := int(d.Milliseconds()) % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
