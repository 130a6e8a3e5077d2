package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// minInputLength is the cheap pre-check applied to raw input before any
// network or model call is made.
const minInputLength = 30

var requirementsCmd = &cobra.Command{
	Use:   "requirements",
	Short: "Extract structured job requirements from a posting",
	Long:  "Extract seniority, requirements, and technologies from a job posting given as a text file, a URL, or inline text, and output structured JSON.",
	RunE:  runRequirements,
}

var (
	reqTextFile string
	reqURL      string
	reqText     string
	reqOutFile  string
)

func init() {
	requirementsCmd.Flags().StringVarP(&reqTextFile, "text-file", "t", "", "Path to text file containing the job posting")
	requirementsCmd.Flags().StringVarP(&reqURL, "url", "u", "", "URL of the job posting")
	requirementsCmd.Flags().StringVar(&reqText, "text", "", "Job posting text given inline")
	requirementsCmd.Flags().StringVarP(&reqOutFile, "out", "o", "", "Path to output JSON file (default: stdout)")

	rootCmd.AddCommand(requirementsCmd)
}

func runRequirements(_ *cobra.Command, _ []string) error {
	sources := 0
	for _, s := range []string{reqTextFile, reqURL, reqText} {
		if s != "" {
			sources++
		}
	}
	if sources == 0 {
		return fmt.Errorf("one of --text-file, --url, or --text must be provided")
	}
	if sources > 1 {
		return fmt.Errorf("--text-file, --url, and --text are mutually exclusive; provide only one")
	}

	jobInfo := reqText
	switch {
	case reqURL != "":
		jobInfo = reqURL
	case reqTextFile != "":
		data, err := os.ReadFile(reqTextFile)
		if err != nil {
			return fmt.Errorf("failed to read text file: %w", err)
		}
		jobInfo = string(data)
	}

	// URLs are short by nature; the length floor applies to pasted text only.
	if reqURL == "" && len(strings.TrimSpace(jobInfo)) < minInputLength {
		return fmt.Errorf("job posting text is too short (need at least %d characters)", minInputLength)
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	req, err := svc.ExtractRequirements(context.Background(), jobInfo)
	if err != nil {
		return fmt.Errorf("failed to extract requirements: %w", err)
	}

	if err := writeJSON(reqOutFile, req); err != nil {
		return err
	}
	if reqOutFile != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Successfully extracted requirements\nOutput: %s\n", reqOutFile)
	}
	return nil
}
