package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateKeyCmd = &cobra.Command{
	Use:   "validate-key",
	Short: "Check that the configured Gemini API key works",
	Long:  "Verify the API key against the live Gemini API by listing available models and issuing a minimal completion against the selected model.",
	RunE:  runValidateKey,
}

func init() {
	rootCmd.AddCommand(validateKeyCmd)
}

func runValidateKey(_ *cobra.Command, _ []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	ok, err := svc.ValidateCredential(context.Background(), "")
	if err != nil {
		return fmt.Errorf("key validation failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("API key did not pass validation")
	}

	_, _ = fmt.Fprintf(os.Stdout, "API key is valid\n")
	return nil
}
