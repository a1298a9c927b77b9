package translate

import "time"

// Unit is one atomic piece of translatable text with a stable identifier.
// IDs are derived upstream and must be unique within one job.
type Unit struct {
	ID   string
	Text string
}

// Batch is an ordered, non-empty group of units sent together in one
// provider request. Length caches the cumulative character count.
type Batch struct {
	Units  []Unit
	Length int
}

// Texts returns the source text of every unit in the batch
func (b Batch) Texts() []string {
	texts := make([]string, len(b.Units))
	for i, u := range b.Units {
		texts[i] = u.Text
	}
	return texts
}

// Options configures a translation job
type Options struct {
	SourceLang string // optional; empty lets the model detect it
	TargetLang string
	Model      string

	// MaxBatchChars bounds the cumulative character length of a batch
	MaxBatchChars int
	// Concurrency is the number of batches with outstanding requests at once
	Concurrency int
	// MaxRetries is the number of attempts per batch before giving up
	MaxRetries int
	// RetryDelay is the base delay between attempts; it grows linearly
	RetryDelay time.Duration

	// Strict aborts the whole job when a batch exhausts its retries.
	// When false, the batch keeps its source text and is recorded as failed.
	Strict bool

	// Terminology enables the glossary extraction phase before translation
	Terminology bool
	// SeedGlossary entries are authoritative and survive merging verbatim
	SeedGlossary Glossary

	// OnProgress, if set, is called after each batch completes
	OnProgress func(done, total int)
}

// Defaults mirrored by the CLI flag defaults
const (
	DefaultMaxBatchChars = 3000
	DefaultConcurrency   = 4
	DefaultMaxRetries    = 3
	DefaultRetryDelay    = 500 * time.Millisecond
)

// withDefaults fills in zero values
func (o Options) withDefaults() Options {
	if o.MaxBatchChars <= 0 {
		o.MaxBatchChars = DefaultMaxBatchChars
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = DefaultRetryDelay
	}
	return o
}

// Stats reports what a job actually did
type Stats struct {
	CacheHits     int   // units answered from the unit-level cache
	RequestHits   int   // batches answered from the request-level cache
	ProviderCalls int   // completed network calls
	Retries       int   // extra attempts beyond the first, summed over batches
	TermsUsed     int   // glossary entries embedded in the instruction
	FailedBatches []int // batch indices that exhausted their retries (lenient mode)
}

// Result is the outcome of a translation job. Translations is total over
// all input units: every unit ID maps to a string.
type Result struct {
	Translations map[string]string
	Glossary     Glossary
	Stats        Stats
}
