package translate

import "fmt"

// FormatError reports provider output that could not be parsed into the
// expected number of translations.
type FormatError struct {
	Expected int
	Actual   int
	Excerpt  string
}

func (e *FormatError) Error() string {
	if e.Actual >= 0 {
		return fmt.Sprintf("unexpected response format: expected %d translations, got %d (content: %q)", e.Expected, e.Actual, e.Excerpt)
	}
	return fmt.Sprintf("unexpected response format: expected %d translations (content: %q)", e.Expected, e.Excerpt)
}

// CountMismatchError reports a validated translation list whose length
// differs from the batch size. The validator already enforces exact counts,
// so this is a defensive boundary check.
type CountMismatchError struct {
	Expected int
	Actual   int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("translation count mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// TransportError wraps a provider network or auth failure
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("provider request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ConfigError reports missing or invalid job configuration. It is surfaced
// immediately and never retried.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

// BatchError reports which batch failed and after how many attempts
type BatchError struct {
	BatchIndex int
	Attempts   int
	Err        error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch %d failed after %d attempts: %v", e.BatchIndex, e.Attempts, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
