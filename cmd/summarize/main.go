// Package main provides a CLI command for summarizing a single PDF.
// Usage: pdf-summarize [--provider openai|gemini|claude|compatible] [--output json] file.pdf
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"pdf-summary/internal/config"
	"pdf-summary/internal/infra/extractor"
	"pdf-summary/internal/infra/provider"
	"pdf-summary/internal/ratelimit"
	"pdf-summary/internal/utils/text"

	sumUC "pdf-summary/internal/usecase/summarize"
)

// SummaryOutput represents the JSON output format for summary results.
type SummaryOutput struct {
	Filename  string `json:"filename"`
	Pages     int    `json:"pages"`
	TextUnits int    `json:"text_units"`
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	Summary   string `json:"summary"`
}

func main() {
	var (
		providerName string
		modelName    string
		profileName  string
		profilesPath string
		outputFormat string
		timeout      time.Duration
	)

	flag.StringVar(&providerName, "provider", "", "LLM backend: openai, gemini, claude, compatible, or noop (overrides LLM_PROVIDER)")
	flag.StringVar(&modelName, "model", "", "Model identifier (overrides LLM_MODEL)")
	flag.StringVar(&profileName, "profile", "", "Provider profile name from the profiles file")
	flag.StringVar(&profilesPath, "profiles", "", "Path to the provider profiles YAML file")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.DurationVar(&timeout, "timeout", 15*time.Minute, "Overall processing deadline")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: pdf-summarize [flags] file.pdf")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Examples:")
		fmt.Fprintln(os.Stderr, "  pdf-summarize report.pdf")
		fmt.Fprintln(os.Stderr, "  pdf-summarize --provider gemini report.pdf")
		fmt.Fprintln(os.Stderr, "  pdf-summarize --profiles providers.yaml --profile local report.pdf")
		fmt.Fprintln(os.Stderr, "  pdf-summarize --output json report.pdf")
		os.Exit(1)
	}
	pdfPath := flag.Arg(0)

	logger := initLogger()

	// Flags win over the environment: feed them back before loading so
	// provider default models and API key lookup follow the selection.
	if providerName != "" {
		_ = os.Setenv("LLM_PROVIDER", providerName)
	}
	if modelName != "" {
		_ = os.Setenv("LLM_MODEL", modelName)
	}

	summarizerCfg, err := config.LoadSummarizerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Invalid summarizer configuration: %v\n", err)
		os.Exit(1)
	}

	if profilesPath != "" && profileName != "" {
		profiles, err := config.LoadProfilesConfig(profilesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to load profiles: %v\n", err)
			os.Exit(1)
		}
		if err := profiles.Apply(profileName, summarizerCfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to apply profile %q: %v\n", profileName, err)
			os.Exit(1)
		}
	}

	extractorCfg, err := config.LoadExtractorConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Invalid extractor configuration: %v\n", err)
		os.Exit(1)
	}

	client, err := provider.New(provider.Config{
		Backend: summarizerCfg.Provider,
		APIKey:  summarizerCfg.APIKey,
		BaseURL: summarizerCfg.BaseURL,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to create provider client: %v\n", err)
		os.Exit(1)
	}

	limiter := ratelimit.NewPerMinute(summarizerCfg.RequestsPerMinute)

	summarizer, err := sumUC.NewService(client, limiter, sumUC.Config{
		Model:            summarizerCfg.Model,
		Temperature:      summarizerCfg.Temperature,
		MaxOutputUnits:   summarizerCfg.MaxOutputUnits,
		MaxUnitsPerChunk: summarizerCfg.MaxUnitsPerChunk,
		ConcurrencyLimit: summarizerCfg.ConcurrencyLimit,
		MaxDepth:         summarizerCfg.MaxDepth,
		CallTimeout:      summarizerCfg.CallTimeout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to create summarizer: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("extracting text",
		slog.String("file", pdfPath))

	result, err := extractor.New(*extractorCfg).Extract(ctx, pdfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Extraction failed: %v\n", err)
		os.Exit(1)
	}

	logger.Info("summarizing",
		slog.String("provider", summarizerCfg.Provider),
		slog.String("model", summarizerCfg.Model),
		slog.Int("pages", result.Pages),
		slog.Int("text_units", text.EstimateUnits(result.Text)))

	summary, err := summarizer.Summarize(ctx, result.Text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Summarization failed: %v\n", err)
		os.Exit(1)
	}

	if outputFormat == "json" {
		outputJSON(pdfPath, result, summarizerCfg, summary)
	} else {
		outputText(pdfPath, result, summary)
	}
}

// outputText prints the summary in human-readable format.
func outputText(pdfPath string, result *extractor.Result, summary string) {
	fmt.Printf("Summary of %s (%d pages)\n\n", pdfPath, result.Pages)
	fmt.Println(summary)
}

// outputJSON prints the summary in JSON format.
func outputJSON(pdfPath string, result *extractor.Result, cfg *config.SummarizerConfig, summary string) {
	output := SummaryOutput{
		Filename:  pdfPath,
		Pages:     result.Pages,
		TextUnits: text.EstimateUnits(result.Text),
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		Summary:   summary,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to encode JSON: %v\n", err)
		os.Exit(1)
	}
}

// initLogger initializes and returns a structured logger.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}
