// Package generate holds the domain generators: each one owns a prompt
// template, drives the structured extractor, and repairs or rejects the
// parsed payload before constructing the domain value object.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alfie-app/interview-coach/internal/fetch"
	"github.com/alfie-app/interview-coach/internal/llm"
	"github.com/alfie-app/interview-coach/internal/retry"
	"github.com/alfie-app/interview-coach/internal/schemas"
)

const (
	promptFile = "generate.json"

	// minJobTextLength is the smallest job text worth sending to the model.
	minJobTextLength = 50

	questionAttempts = 3
	questionInterval = time.Second

	quizAttempts = 3
	quizInterval = 2 * time.Second
)

// structuredExtractor is the slice of llm.Extractor the generators need.
type structuredExtractor interface {
	Extract(ctx context.Context, prompt string) (json.RawMessage, error)
}

// Generator produces validated domain objects from a completion backend.
type Generator struct {
	extractor structuredExtractor

	// questionPolicy retries a whole question-set generation when the
	// response is well-formed JSON but semantically wrong (bad counts or
	// distribution). The extractor's own retry handles malformed JSON.
	questionPolicy retry.Policy
	quizPolicy     retry.Policy

	fetchOpts *fetch.Options
	log       *zap.Logger
}

// New creates a generator over the given completer.
func New(c llm.Completer, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		extractor:      llm.NewExtractor(c, log),
		questionPolicy: retry.NewPolicy(questionAttempts, questionInterval),
		quizPolicy:     retry.NewPolicy(quizAttempts, quizInterval),
		fetchOpts:      fetch.DefaultOptions(),
		log:            log,
	}
}

// checkSchema validates the payload and converts schema violations into a
// MissingFieldsError.
func checkSchema(schema string, payload json.RawMessage) error {
	err := schemas.ValidateString(schema, string(payload))
	if err == nil {
		return nil
	}
	var verr *schemas.ValidationError
	if errors.As(err, &verr) {
		return &MissingFieldsError{Fields: verr.Fields()}
	}
	return err
}

// asString coerces a loosely typed JSON value to a string.
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// asStringList coerces a loosely typed JSON value to a list of trimmed,
// non-empty strings.
func asStringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s := strings.TrimSpace(asString(item))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// asNumber coerces a loosely typed JSON value to a number. Scores often come
// back as quoted strings.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// limit truncates a list to at most n items.
func limit(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// truncateRunes shortens a string to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}

// trimmed returns a whitespace-trimmed copy of every string.
func trimmed(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, strings.TrimSpace(item))
	}
	return out
}
