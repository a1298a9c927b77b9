package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	OutputFile string
	SourceLang string
	TargetLang string
	Provider   string
	Model      string
	Strict     bool

	// Batching and dispatch flags
	MaxBatchChars int
	Concurrency   int
	Retries       int
	RetryDelay    time.Duration

	// Cache flags
	NoCache    bool
	CacheDir   string
	ClearCache bool

	// Terminology flags
	Terminology bool
	GlossaryIn  string
	GlossaryOut string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		TargetLang:    "en",
		Model:         "gpt-4o-mini",
		MaxBatchChars: 3000,
		Concurrency:   4,
		Retries:       3,
		RetryDelay:    500 * time.Millisecond,
	}
}
