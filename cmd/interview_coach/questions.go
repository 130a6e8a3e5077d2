package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Generate a 10-question interview set",
	Long:  "Generate six technical and four behavioral interview questions tailored to previously extracted job requirements.",
	RunE:  runQuestions,
}

var (
	questionsReqFile string
	questionsOutFile string
)

func init() {
	questionsCmd.Flags().StringVarP(&questionsReqFile, "requirements", "r", "", "Path to requirements JSON file (required)")
	questionsCmd.Flags().StringVarP(&questionsOutFile, "out", "o", "", "Path to output JSON file (default: stdout)")

	if err := questionsCmd.MarkFlagRequired("requirements"); err != nil {
		panic(fmt.Sprintf("failed to mark requirements flag as required: %v", err))
	}

	rootCmd.AddCommand(questionsCmd)
}

func runQuestions(_ *cobra.Command, _ []string) error {
	req, err := loadRequirements(questionsReqFile)
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	questions, err := svc.GenerateQuestions(context.Background(), req)
	if err != nil {
		return fmt.Errorf("failed to generate questions: %w", err)
	}

	if err := writeJSON(questionsOutFile, questions); err != nil {
		return err
	}
	if questionsOutFile != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Successfully generated %d questions\nOutput: %s\n", len(questions), questionsOutFile)
	}
	return nil
}
