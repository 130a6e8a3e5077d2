// Package main provides the command line entry point for the interview coach.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alfie-app/interview-coach/internal/coach"
	"github.com/alfie-app/interview-coach/internal/config"
	"github.com/alfie-app/interview-coach/internal/logger"
	"github.com/alfie-app/interview-coach/internal/types"
)

var rootCmd = &cobra.Command{
	Use:   "interview_coach",
	Short: "Interview practice question and feedback generator",
	Long:  "Interview coach extracts structured requirements from job postings and generates tailored interview questions, quizzes, and answer feedback through the Gemini API.",
}

var (
	flagAPIKey     string
	flagConfigPath string
	flagLogLevel   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newService builds a configured service from flags, config file, and
// environment, in that order of precedence.
func newService() (*coach.Service, error) {
	cfg := config.Config{
		APIKey:   flagAPIKey,
		LogLevel: flagLogLevel,
	}
	if flagConfigPath != "" {
		fileCfg, err := config.Load(flagConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	cfg = cfg.MergeWithDefaults(config.FromEnv())
	cfg = cfg.MergeWithDefaults(config.Config{LogLevel: "info"})

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key)")
	}

	log := logger.New(cfg.LogLevel)
	svc := coach.New(nil, log)
	if err := svc.SetCredential(cfg.APIKey); err != nil {
		return nil, err
	}
	return svc, nil
}

// loadRequirements reads a JobRequirements JSON file produced by the
// requirements subcommand.
func loadRequirements(path string) (*types.JobRequirements, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read requirements file: %w", err)
	}
	var req types.JobRequirements
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse requirements JSON: %w", err)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("requirements file is not valid: %w", err)
	}
	return &req, nil
}

// writeJSON marshals v with indentation to the given path, or to stdout when
// path is empty.
func writeJSON(path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if path == "" {
		_, err = fmt.Fprintln(os.Stdout, string(jsonBytes))
		return err
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
