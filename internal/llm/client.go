// Package llm wraps the Gemini API behind a small completion interface and
// layers the reliability machinery on top: transport retries, response
// normalization and bounded structured extraction.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/alfie-app/interview-coach/internal/retry"
)

const (
	// DefaultModel is the target model family. Credential validation may
	// select a more specific name from the provider's model list.
	DefaultModel = "gemini-2.0-flash"

	// completionTimeout bounds each individual completion request.
	completionTimeout = 60 * time.Second

	transportAttempts = 3
	transportInterval = 2 * time.Second
)

// Completer issues a single generative completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client is a Gemini-backed Completer. Each Complete call retries transient
// failures with linear backoff before giving up.
type Client struct {
	genai  *genai.Client
	model  string
	policy retry.Policy
	log    *zap.Logger
}

// NewClient creates a client for the given credential and model. An empty
// model falls back to DefaultModel.
func NewClient(ctx context.Context, apiKey, model string, log *zap.Logger) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoCredential
	}
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}

	gc, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		genai:  gc,
		model:  model,
		policy: retry.NewPolicy(transportAttempts, transportInterval),
		log:    log,
	}, nil
}

// Model returns the model identifier this client generates with.
func (c *Client) Model() string {
	return c.model
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	if c.genai != nil {
		return c.genai.Close()
	}
	return nil
}

// Complete generates text for the prompt, retrying the whole request on any
// failure up to the transport attempt bound.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return completeWithRetry(ctx, c.policy, c.log, c.model, func(ctx context.Context) (string, error) {
		return c.completeOnce(ctx, prompt)
	})
}

// completeWithRetry drives one completion operation through the transport
// retry policy.
func completeWithRetry(ctx context.Context, policy retry.Policy, log *zap.Logger, model string, op func(context.Context) (string, error)) (string, error) {
	var text string
	err := policy.Do(ctx, func(attempt int) error {
		var err error
		text, err = op(ctx)
		if err != nil {
			log.Warn("completion attempt failed",
				zap.Int("attempt", attempt),
				zap.String("model", model),
				zap.Error(err))
		}
		return err
	})
	return text, err
}

func (c *Client) completeOnce(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	model := c.generativeModel()
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", c.classify(err)
	}
	return candidateText(resp)
}

// Ping issues a minimal one-token completion as a credential liveness check.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	model := c.genai.GenerativeModel(c.model)
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(1)

	resp, err := model.GenerateContent(ctx, genai.Text("Hello"))
	if err != nil {
		return c.classify(err)
	}
	if len(resp.Candidates) == 0 {
		return ErrEmptyCompletion
	}
	return nil
}

// ListModels returns the model names the provider offers to this credential.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	var names []string
	it := c.genai.ListModels(ctx)
	for {
		info, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, c.classify(err)
		}
		names = append(names, info.Name)
	}
	return names, nil
}

// generativeModel configures the generation parameters. Safety categories are
// permissive so interview content about e.g. conflict handling is not
// over-filtered.
func (c *Client) generativeModel() *genai.GenerativeModel {
	model := c.genai.GenerativeModel(c.model)
	model.SetTemperature(0.7)
	model.SetTopK(40)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(2048)
	model.SetCandidateCount(1)
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
	}
	return model
}

// classify logs the raw provider failure and translates it into one of the
// package error values. Raw provider errors never cross this boundary.
func (c *Client) classify(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		c.log.Error("provider request rejected",
			zap.Int("status", gerr.Code),
			zap.String("body", gerr.Body),
			zap.String("message", gerr.Message))
		switch gerr.Code {
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s", ErrInvalidCredential, gerr.Message)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrPermissionDenied, gerr.Message)
		default:
			return &ProviderError{Status: gerr.Code, Message: gerr.Message, Cause: err}
		}
	}
	c.log.Error("provider request failed", zap.Error(err))
	return &ProviderError{Message: err.Error(), Cause: err}
}

// candidateText extracts the text of the first candidate.
func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", ErrEmptyCompletion
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", ErrEmptyCompletion
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	joined := strings.TrimSpace(strings.Join(parts, ""))
	if joined == "" {
		return "", ErrEmptyCompletion
	}
	return joined, nil
}
