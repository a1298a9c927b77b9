package subtitle

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// Entry represents a single subtitle cue with timing and text
type Entry struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// List is an ordered collection of subtitle entries
type List []Entry

// ID returns a stable identifier for the entry derived from its positional
// metadata. The same cue always yields the same ID, independent of its text,
// so a re-run after editing translations still matches cached work.
// Format: index_md5(start-->end)[:8]
func (e Entry) ID() string {
	positional := fmt.Sprintf("%d-->%d", e.Start.Milliseconds(), e.End.Milliseconds())
	hash := md5.Sum([]byte(positional))
	return fmt.Sprintf("%d_%s", e.Index, hex.EncodeToString(hash[:])[:8])
}

// Texts returns the text of every entry in order
func (l List) Texts() []string {
	texts := make([]string, len(l))
	for i, e := range l {
		texts[i] = e.Text
	}
	return texts
}
