package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alfie-app/interview-coach/internal/types"
)

var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Produce an overall interview evaluation",
	Long:  "Aggregate a recorded question/answer/feedback history into an overall readiness score with strengths, improvement areas, and a recommendation.",
	RunE:  runAnalysis,
}

var (
	analysisReqFile     string
	analysisHistoryFile string
	analysisOutFile     string
)

func init() {
	analysisCmd.Flags().StringVarP(&analysisReqFile, "requirements", "r", "", "Path to requirements JSON file (required)")
	analysisCmd.Flags().StringVar(&analysisHistoryFile, "history", "", "Path to history JSON file with question/answer/feedback entries (required)")
	analysisCmd.Flags().StringVarP(&analysisOutFile, "out", "o", "", "Path to output JSON file (default: stdout)")

	if err := analysisCmd.MarkFlagRequired("requirements"); err != nil {
		panic(fmt.Sprintf("failed to mark requirements flag as required: %v", err))
	}
	if err := analysisCmd.MarkFlagRequired("history"); err != nil {
		panic(fmt.Sprintf("failed to mark history flag as required: %v", err))
	}

	rootCmd.AddCommand(analysisCmd)
}

func runAnalysis(_ *cobra.Command, _ []string) error {
	req, err := loadRequirements(analysisReqFile)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(analysisHistoryFile)
	if err != nil {
		return fmt.Errorf("failed to read history file: %w", err)
	}
	var history []types.HistoryEntry
	if err := json.Unmarshal(data, &history); err != nil {
		return fmt.Errorf("failed to parse history JSON: %w", err)
	}
	if len(history) == 0 {
		return fmt.Errorf("history file contains no entries")
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	analysis, err := svc.GenerateFinalAnalysis(context.Background(), history, req)
	if err != nil {
		return fmt.Errorf("failed to generate analysis: %w", err)
	}

	if err := writeJSON(analysisOutFile, analysis); err != nil {
		return err
	}
	if analysisOutFile != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Successfully generated final analysis (score: %.1f)\nOutput: %s\n", analysis.FinalScore, analysisOutFile)
	}
	return nil
}
