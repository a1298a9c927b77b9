package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/sublate/internal/cache"
	"codeberg.org/snonux/sublate/internal/cli"
	"codeberg.org/snonux/sublate/internal/provider"
	"codeberg.org/snonux/sublate/internal/subtitle"
	"codeberg.org/snonux/sublate/internal/translate"
)

// Processor handles a single subtitle translation job
type Processor struct {
	flags *cli.Flags
}

// NewProcessor creates a new subtitle processor
func NewProcessor(flags *cli.Flags) *Processor {
	return &Processor{flags: flags}
}

// ProcessFile translates the subtitle file at inputPath and writes the
// translated file next to it (or to the configured output path).
func (p *Processor) ProcessFile(ctx context.Context, inputPath string) error {
	entries, err := subtitle.ParseFile(inputPath)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no subtitle entries found in %s", inputPath)
	}
	fmt.Printf("Read %d subtitle entries from %s\n", len(entries), inputPath)

	store, err := p.openCache()
	if err != nil {
		return err
	}
	if closer, ok := store.(*cache.SQLiteStore); ok {
		defer closer.Close()
	}

	client, err := p.buildClient(ctx)
	if err != nil {
		return err
	}

	opts, err := p.buildOptions()
	if err != nil {
		return err
	}

	units := make([]translate.Unit, len(entries))
	for i, e := range entries {
		units[i] = translate.Unit{ID: e.ID(), Text: e.Text}
	}

	fmt.Printf("Translating into %s using %s (%s)\n", opts.TargetLang, opts.Model, client.Name())
	result, err := translate.New(client, store).Translate(ctx, units, opts)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	for i := range entries {
		if text, ok := result.Translations[entries[i].ID()]; ok {
			entries[i].Text = text
		}
	}

	outputPath := p.flags.OutputFile
	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath, opts.TargetLang)
	}
	if err := subtitle.WriteFile(outputPath, entries); err != nil {
		return err
	}

	if p.flags.GlossaryOut != "" && len(result.Glossary) > 0 {
		if err := cli.SaveGlossary(p.flags.GlossaryOut, result.Glossary); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			fmt.Printf("Glossary written to %s (%d terms)\n", p.flags.GlossaryOut, len(result.Glossary))
		}
	}

	printSummary(result.Stats, len(entries))
	if store != nil {
		if size, err := store.Len(); err == nil {
			fmt.Printf("Cache entries: %d\n", size)
		}
	}
	fmt.Printf("\nDone! Translated subtitles saved to: %s\n", outputPath)
	return nil
}

// openCache returns the cache store for this run, or nil when caching
// is disabled.
func (p *Processor) openCache() (cache.Store, error) {
	if p.flags.NoCache {
		return nil, nil
	}

	if err := os.MkdirAll(p.flags.CacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	store, err := cache.NewSQLiteStore(filepath.Join(p.flags.CacheDir, "cache.db"))
	if err != nil {
		return nil, err
	}

	if p.flags.ClearCache {
		if err := store.Clear(); err != nil {
			store.Close()
			return nil, err
		}
		fmt.Printf("Cache cleared\n")
	}

	return store, nil
}

func (p *Processor) buildClient(ctx context.Context) (provider.Client, error) {
	client, err := provider.NewClient(ctx, &provider.Config{
		Provider:  p.flags.Provider,
		OpenAIKey: cli.GetOpenAIKey(),
		GeminiKey: cli.GetGeminiKey(),
	}, p.flags.Model)
	if err != nil {
		return nil, err
	}
	return provider.NewBreakerClient(client), nil
}

func (p *Processor) buildOptions() (translate.Options, error) {
	opts := translate.Options{
		SourceLang:    p.flags.SourceLang,
		TargetLang:    p.flags.TargetLang,
		Model:         p.flags.Model,
		MaxBatchChars: p.flags.MaxBatchChars,
		Concurrency:   p.flags.Concurrency,
		MaxRetries:    p.flags.Retries,
		RetryDelay:    p.flags.RetryDelay,
		Strict:        p.flags.Strict,
		Terminology:   p.flags.Terminology,
		OnProgress: func(done, total int) {
			fmt.Printf("Translated batch %d/%d\n", done, total)
		},
	}

	if p.flags.GlossaryIn != "" {
		seed, err := cli.LoadGlossary(p.flags.GlossaryIn)
		if err != nil {
			return translate.Options{}, err
		}
		opts.SeedGlossary = translate.Glossary(seed)
		opts.Terminology = true
		fmt.Printf("Loaded %d seed glossary terms from %s\n", len(seed), p.flags.GlossaryIn)
	}

	return opts, nil
}

func printSummary(stats translate.Stats, total int) {
	fmt.Printf("\n=== Translation Summary ===\n")
	fmt.Printf("Entries: %d\n", total)
	fmt.Printf("Cache hits: %d\n", stats.CacheHits)
	fmt.Printf("Provider calls: %d\n", stats.ProviderCalls)
	if stats.RequestHits > 0 {
		fmt.Printf("Cached responses reused: %d\n", stats.RequestHits)
	}
	if stats.Retries > 0 {
		fmt.Printf("Retries: %d\n", stats.Retries)
	}
	if stats.TermsUsed > 0 {
		fmt.Printf("Glossary terms used: %d\n", stats.TermsUsed)
	}
	if len(stats.FailedBatches) > 0 {
		fmt.Printf("Failed batches (source text kept): %d\n", len(stats.FailedBatches))
	}
}

// defaultOutputPath derives "<input>.<lang>.srt" from the input path
func defaultOutputPath(inputPath, targetLang string) string {
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(inputPath, ext)
	return fmt.Sprintf("%s.%s%s", stem, targetLang, ext)
}
