package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/sublate/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sublate <subtitle file>",
		Short: "LLM Subtitle Translator",
		Long: `sublate translates SRT subtitle files using an LLM provider.

Entries are grouped into length-bounded batches, translated concurrently
with retries, and cached so repeated runs only pay for new content. An
optional terminology pass keeps recurring names and terms consistent
across the whole file.

Examples:
  sublate movie.srt --target de                   # Translate to German
  sublate movie.srt --target fr -o movie.fr.srt   # Explicit output path
  sublate movie.srt --target ja --terminology     # With glossary pass`,
		Args:    cobra.ExactArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Default cache directory matches the state dir layout of other tools
	home, _ := os.UserHomeDir()
	defaultCacheDir := filepath.Join(home, ".local", "state", "sublate", "cache")

	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.sublate.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", "", "Output file (default: <input>.<target>.srt)")
	cmd.Flags().StringVarP(&flags.SourceLang, "source", "s", "", "Source language (default: detected by the model)")
	cmd.Flags().StringVarP(&flags.TargetLang, "target", "t", flags.TargetLang, "Target language")
	cmd.Flags().StringVar(&flags.Provider, "provider", "", "LLM provider: openai or gemini (default: by model name)")
	cmd.Flags().StringVarP(&flags.Model, "model", "m", flags.Model, "Model name, e.g. gpt-4o-mini or gemini-2.0-flash")
	cmd.Flags().BoolVar(&flags.Strict, "strict", false, "Abort the whole job when a batch exhausts its retries")

	// Batching and dispatch flags
	cmd.Flags().IntVar(&flags.MaxBatchChars, "max-batch-chars", flags.MaxBatchChars, "Maximum cumulative characters per request batch")
	cmd.Flags().IntVar(&flags.Concurrency, "concurrency", flags.Concurrency, "Number of concurrent provider requests")
	cmd.Flags().IntVar(&flags.Retries, "retries", flags.Retries, "Attempts per batch before giving up")
	cmd.Flags().DurationVar(&flags.RetryDelay, "retry-delay", flags.RetryDelay, "Base delay between retry attempts")

	// Cache flags
	cmd.Flags().BoolVar(&flags.NoCache, "no-cache", false, "Disable the translation cache")
	cmd.Flags().StringVar(&flags.CacheDir, "cache-dir", defaultCacheDir, "Directory for the persistent cache database")
	cmd.Flags().BoolVar(&flags.ClearCache, "clear-cache", false, "Clear the cache before translating")

	// Terminology flags
	cmd.Flags().BoolVar(&flags.Terminology, "terminology", false, "Extract a terminology glossary before translating")
	cmd.Flags().StringVar(&flags.GlossaryIn, "glossary", "", "Seed glossary file (JSON map of term to translation)")
	cmd.Flags().StringVar(&flags.GlossaryOut, "glossary-out", "", "Write the final glossary to this file")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("translate.source", cmd.Flags().Lookup("source"))
	viper.BindPFlag("translate.target", cmd.Flags().Lookup("target"))
	viper.BindPFlag("translate.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("translate.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("translate.max_batch_chars", cmd.Flags().Lookup("max-batch-chars"))
	viper.BindPFlag("translate.concurrency", cmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("translate.retries", cmd.Flags().Lookup("retries"))
	viper.BindPFlag("cache.directory", cmd.Flags().Lookup("cache-dir"))
}

// ApplyConfig copies the bound configuration values back into flags.
// Viper resolves precedence: an explicitly set flag wins over the config
// file, which wins over the flag default.
func ApplyConfig(flags *Flags) {
	flags.SourceLang = viper.GetString("translate.source")
	flags.TargetLang = viper.GetString("translate.target")
	flags.Provider = viper.GetString("translate.provider")
	flags.Model = viper.GetString("translate.model")
	flags.MaxBatchChars = viper.GetInt("translate.max_batch_chars")
	flags.Concurrency = viper.GetInt("translate.concurrency")
	flags.Retries = viper.GetInt("translate.retries")
	flags.CacheDir = viper.GetString("cache.directory")
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".sublate" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sublate")
	}

	// Environment variables
	viper.SetEnvPrefix("SUBLATE")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translate.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}

	return viper.GetString("translate.gemini_key")
}
