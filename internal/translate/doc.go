// Package translate implements the batch translation engine: it groups text
// units into length-bounded batches, extracts a cross-batch terminology
// glossary, dispatches batches to the LLM provider under bounded concurrency
// with retries and strict response validation, and caches provider responses
// so identical work is never sent twice.
package translate
