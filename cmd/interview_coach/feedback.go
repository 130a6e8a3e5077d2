package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Score an interview answer",
	Long:  "Analyze a single interview answer against the job requirements and output a structured score with strengths, improvements, and a suggested answer.",
	RunE:  runFeedback,
}

var (
	feedbackReqFile  string
	feedbackQuestion string
	feedbackAnswer   string
	feedbackOutFile  string
)

func init() {
	feedbackCmd.Flags().StringVarP(&feedbackReqFile, "requirements", "r", "", "Path to requirements JSON file (required)")
	feedbackCmd.Flags().StringVarP(&feedbackQuestion, "question", "q", "", "The interview question that was asked (required)")
	feedbackCmd.Flags().StringVarP(&feedbackAnswer, "answer", "a", "", "The candidate's answer (required)")
	feedbackCmd.Flags().StringVarP(&feedbackOutFile, "out", "o", "", "Path to output JSON file (default: stdout)")

	if err := feedbackCmd.MarkFlagRequired("requirements"); err != nil {
		panic(fmt.Sprintf("failed to mark requirements flag as required: %v", err))
	}
	if err := feedbackCmd.MarkFlagRequired("question"); err != nil {
		panic(fmt.Sprintf("failed to mark question flag as required: %v", err))
	}
	if err := feedbackCmd.MarkFlagRequired("answer"); err != nil {
		panic(fmt.Sprintf("failed to mark answer flag as required: %v", err))
	}

	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(_ *cobra.Command, _ []string) error {
	req, err := loadRequirements(feedbackReqFile)
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	feedback, err := svc.AnalyzeFeedback(context.Background(), feedbackQuestion, feedbackAnswer, req)
	if err != nil {
		return fmt.Errorf("failed to analyze answer: %w", err)
	}

	if err := writeJSON(feedbackOutFile, feedback); err != nil {
		return err
	}
	if feedbackOutFile != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Successfully analyzed answer (score: %.1f)\nOutput: %s\n", feedback.Score, feedbackOutFile)
	}
	return nil
}
