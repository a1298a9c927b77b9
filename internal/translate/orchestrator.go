package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"codeberg.org/snonux/sublate/internal/cache"
	"codeberg.org/snonux/sublate/internal/provider"
)

// Orchestrator drives a translation job end to end: cache lookup, batch
// composition, terminology extraction, concurrent dispatch with retries,
// and ordered reassembly.
type Orchestrator struct {
	client provider.Client
	store  cache.Store // nil disables caching

	// set after the first cache failure; the job continues uncached
	cacheDegraded atomic.Bool
}

// New creates an orchestrator. Pass a nil store to disable caching.
func New(client provider.Client, store cache.Store) *Orchestrator {
	return &Orchestrator{
		client: client,
		store:  store,
	}
}

// jobStats accumulates counters across concurrent workers
type jobStats struct {
	cacheHits     int
	requestHits   atomic.Int64
	providerCalls atomic.Int64
	retries       atomic.Int64
}

// Translate runs a full translation job over the given units.
// The returned Translations mapping is total: every input unit ID maps to a
// string, merged from cache hits and newly translated batches in original
// order. In strict mode a batch that exhausts its retries aborts the job;
// otherwise it keeps its source text and is recorded in the report.
func (o *Orchestrator) Translate(ctx context.Context, units []Unit, opts Options) (*Result, error) {
	if err := validateOptions(o.client, units, opts); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	stats := &jobStats{}

	// Unit-level cache partition
	cached := make(map[string]string)
	var toTranslate []Unit
	for _, u := range units {
		if value, ok := o.cacheGet(cache.UnitKey(u.Text, opts.SourceLang, opts.TargetLang, opts.Model)); ok {
			cached[u.ID] = value
			stats.cacheHits++
			continue
		}
		toTranslate = append(toTranslate, u)
	}

	batches := ComposeBatches(toTranslate, opts.MaxBatchChars)

	// The glossary must be final before any batch instruction embeds it,
	// so extraction runs to completion before translation dispatch.
	glossary := opts.SeedGlossary.Clone()
	if opts.Terminology && len(batches) > 0 {
		o.extractTerminology(ctx, batches, glossary, seedKeys(opts.SeedGlossary), opts, stats)
	}

	instruction := translationInstruction(opts, glossary)

	outputs := make([][]string, len(batches))
	errs := make([]error, len(batches))
	o.dispatch(ctx, batches, instruction, opts, stats, outputs, errs)

	result := &Result{
		Translations: cached,
		Glossary:     glossary,
		Stats: Stats{
			CacheHits:     stats.cacheHits,
			RequestHits:   int(stats.requestHits.Load()),
			ProviderCalls: int(stats.providerCalls.Load()),
			Retries:       int(stats.retries.Load()),
			TermsUsed:     len(glossary),
		},
	}

	if opts.Strict {
		// Workers canceled by a fatal batch report context errors; surface
		// the batch failure itself.
		var fallback error
		for _, err := range errs {
			if err == nil {
				continue
			}
			var batchErr *BatchError
			if errors.As(err, &batchErr) {
				return nil, err
			}
			if fallback == nil {
				fallback = err
			}
		}
		if fallback != nil {
			return nil, fallback
		}
	} else {
		for i, err := range errs {
			if err == nil {
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Lenient: the batch keeps its source text so line alignment
			// downstream is preserved.
			outputs[i] = batches[i].Texts()
			result.Stats.FailedBatches = append(result.Stats.FailedBatches, i)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Reassembly in original order, keyed by unit ID
	for i, batch := range batches {
		if len(outputs[i]) != len(batch.Units) {
			return nil, &CountMismatchError{Expected: len(batch.Units), Actual: len(outputs[i])}
		}
		for j, u := range batch.Units {
			result.Translations[u.ID] = outputs[i][j]
		}
	}
	if len(result.Translations) != len(units) {
		return nil, fmt.Errorf("internal error: %d translations for %d units", len(result.Translations), len(units))
	}

	return result, nil
}

func validateOptions(client provider.Client, units []Unit, opts Options) error {
	if client == nil {
		return &ConfigError{Reason: "no provider client"}
	}
	if opts.TargetLang == "" {
		return &ConfigError{Reason: "target language is required"}
	}
	if opts.Model == "" {
		return &ConfigError{Reason: "model name is required"}
	}
	seen := make(map[string]struct{}, len(units))
	for _, u := range units {
		if u.ID == "" {
			return &ConfigError{Reason: "unit with empty ID"}
		}
		if _, dup := seen[u.ID]; dup {
			return &ConfigError{Reason: fmt.Sprintf("duplicate unit ID %q", u.ID)}
		}
		seen[u.ID] = struct{}{}
	}
	return nil
}

// dispatch runs batches through a fixed pool of workers. Workers pull the
// next unclaimed batch index from a shared counter; each output slot is
// written by exactly one worker, so no locking is needed. A strict-mode
// failure cancels scheduling of further batches but does not un-send
// requests already in flight.
func (o *Orchestrator) dispatch(ctx context.Context, batches []Batch, instruction string, opts Options, stats *jobStats, outputs [][]string, errs []error) {
	if len(batches) == 0 {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var next atomic.Int64
	var done atomic.Int64
	workers := opts.Concurrency
	if workers > len(batches) {
		workers = len(batches)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= len(batches) || ctx.Err() != nil {
					return
				}
				list, err := o.translateBatch(ctx, batches[i], i, instruction, opts, stats)
				if err != nil {
					errs[i] = err
					if opts.Strict {
						cancel()
					}
				} else {
					outputs[i] = list
				}
				if opts.OnProgress != nil {
					opts.OnProgress(int(done.Add(1)), len(batches))
				}
			}
		}()
	}
	wg.Wait()
}

// translateBatch translates one batch, consulting the request-level cache
// first and retrying transport and format failures up to the bound.
func (o *Orchestrator) translateBatch(ctx context.Context, batch Batch, index int, instruction string, opts Options, stats *jobStats) ([]string, error) {
	payload, err := json.Marshal(batch.Texts())
	if err != nil {
		return nil, fmt.Errorf("failed to encode batch payload: %w", err)
	}

	requestKey := cache.RequestKey(instruction, string(payload), opts.Model)
	if raw, ok := o.cacheGet(requestKey); ok {
		if list, err := ParseTranslations(raw, len(batch.Units)); err == nil {
			stats.requestHits.Add(1)
			return list, nil
		}
		// A cached response that no longer validates is ignored
	}

	var lastErr error
	for attempt := 1; attempt <= opts.MaxRetries; attempt++ {
		if attempt > 1 {
			stats.retries.Add(1)
			if err := sleepContext(ctx, time.Duration(attempt-1)*opts.RetryDelay); err != nil {
				return nil, err
			}
		}

		raw, err := o.client.Complete(ctx, opts.Model, instruction, string(payload))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = &TransportError{Err: err}
			continue
		}
		stats.providerCalls.Add(1)

		list, err := ParseTranslations(raw, len(batch.Units))
		if err != nil {
			lastErr = err
			continue
		}
		if len(list) != len(batch.Units) {
			lastErr = &CountMismatchError{Expected: len(batch.Units), Actual: len(list)}
			continue
		}

		o.cacheSet(requestKey, raw)
		for i, u := range batch.Units {
			o.cacheSet(cache.UnitKey(u.Text, opts.SourceLang, opts.TargetLang, opts.Model), list[i])
		}
		return list, nil
	}

	return nil, &BatchError{BatchIndex: index, Attempts: opts.MaxRetries, Err: lastErr}
}

// extractTerminology issues one extraction request per batch through the
// same bounded pool, then merges the per-batch glossaries in batch order so
// the outcome is deterministic. Extraction is an optimization: a failed or
// unparseable chunk contributes no terms and the job continues.
func (o *Orchestrator) extractTerminology(ctx context.Context, batches []Batch, glossary Glossary, protected map[string]struct{}, opts Options, stats *jobStats) {
	instruction := extractionInstruction(opts.SourceLang, opts.TargetLang, opts.SeedGlossary)

	extracted := make([]Glossary, len(batches))
	var next atomic.Int64
	workers := opts.Concurrency
	if workers > len(batches) {
		workers = len(batches)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= len(batches) || ctx.Err() != nil {
					return
				}
				content := strings.Join(batches[i].Texts(), "\n")

				requestKey := cache.RequestKey(instruction, content, opts.Model)
				raw, ok := o.cacheGet(requestKey)
				if !ok {
					var err error
					raw, err = o.client.Complete(ctx, opts.Model, instruction, content)
					if err != nil {
						warnf("terminology extraction for batch %d failed: %v\n", i, err)
						continue
					}
					stats.providerCalls.Add(1)
					o.cacheSet(requestKey, raw)
				} else {
					stats.requestHits.Add(1)
				}

				terms, err := parseTerms(raw)
				if err != nil {
					warnf("terminology extraction for batch %d returned unparseable content: %v\n", i, err)
					continue
				}
				extracted[i] = terms
			}
		}()
	}
	wg.Wait()

	for _, terms := range extracted {
		if terms != nil {
			glossary.Merge(terms, protected)
		}
	}
}

// translationInstruction builds the system instruction, embedding the
// glossary verbatim when present.
func translationInstruction(opts Options, glossary Glossary) string {
	var builder strings.Builder
	if opts.SourceLang != "" {
		fmt.Fprintf(&builder, "You are a subtitle translator. Translate from %s to %s.\n", opts.SourceLang, opts.TargetLang)
	} else {
		fmt.Fprintf(&builder, "You are a subtitle translator. Translate into %s.\n", opts.TargetLang)
	}
	builder.WriteString("The user message is a JSON array of subtitle lines.\n")
	builder.WriteString(`Respond with a JSON object: {"translations": [...]} containing exactly one translation per input line, in the same order.` + "\n")
	builder.WriteString("Keep translations natural and concise. Preserve line breaks within each entry. Do not add explanations.\n")

	if len(glossary) > 0 {
		builder.WriteString("\nUse these exact translations whenever a term appears:\n")
		builder.WriteString(glossary.Render())
	}
	return builder.String()
}

func seedKeys(seed Glossary) map[string]struct{} {
	keys := make(map[string]struct{}, len(seed))
	for term := range seed {
		keys[term] = struct{}{}
	}
	return keys
}

// cacheGet reads the store, absorbing IO errors: the first failure warns
// and degrades the job to uncached operation.
func (o *Orchestrator) cacheGet(key string) (string, bool) {
	if o.store == nil || o.cacheDegraded.Load() {
		return "", false
	}
	value, ok, err := o.store.Get(key)
	if err != nil {
		o.degradeCache(err)
		return "", false
	}
	return value, ok
}

func (o *Orchestrator) cacheSet(key, value string) {
	if o.store == nil || o.cacheDegraded.Load() {
		return
	}
	if err := o.store.Set(key, value); err != nil {
		o.degradeCache(err)
	}
}

func (o *Orchestrator) degradeCache(err error) {
	if o.cacheDegraded.CompareAndSwap(false, true) {
		warnf("cache unavailable, continuing without it: %v\n", err)
	}
}

func warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Warning: "+format, args...)
}

// sleepContext waits for the duration or until the context is canceled
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
