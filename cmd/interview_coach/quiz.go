package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a 10-question multiple-choice quiz",
	Long:  "Generate ten multiple-choice quiz questions with four options each, tailored to previously extracted job requirements.",
	RunE:  runQuiz,
}

var (
	quizReqFile string
	quizOutFile string
)

func init() {
	quizCmd.Flags().StringVarP(&quizReqFile, "requirements", "r", "", "Path to requirements JSON file (required)")
	quizCmd.Flags().StringVarP(&quizOutFile, "out", "o", "", "Path to output JSON file (default: stdout)")

	if err := quizCmd.MarkFlagRequired("requirements"); err != nil {
		panic(fmt.Sprintf("failed to mark requirements flag as required: %v", err))
	}

	rootCmd.AddCommand(quizCmd)
}

func runQuiz(_ *cobra.Command, _ []string) error {
	req, err := loadRequirements(quizReqFile)
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	questions, err := svc.GenerateQuizQuestions(context.Background(), req)
	if err != nil {
		return fmt.Errorf("failed to generate quiz: %w", err)
	}

	if err := writeJSON(quizOutFile, questions); err != nil {
		return err
	}
	if quizOutFile != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Successfully generated %d quiz questions\nOutput: %s\n", len(questions), quizOutFile)
	}
	return nil
}
