package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alfie-app/interview-coach/internal/prompts"
	"github.com/alfie-app/interview-coach/internal/retry"
)

const (
	extractAttempts = 3
	extractInterval = time.Second
)

// Extractor turns freeform completions into parsed JSON payloads. Every
// prompt gets a fixed suffix demanding bare JSON; each attempt normalizes the
// response before parsing, and malformed responses are retried with linear
// backoff.
type Extractor struct {
	completer Completer
	policy    retry.Policy
	log       *zap.Logger
}

// NewExtractor creates an extractor over the given completer.
func NewExtractor(c Completer, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{
		completer: c,
		policy:    retry.NewPolicy(extractAttempts, extractInterval),
		log:       log,
	}
}

// Extract runs the prompt through the completer and returns the response as
// parsed JSON. Top-level arrays are filtered of entries that are not objects
// with at least one field, dropping partial items from truncated responses.
// After exhausting attempts it returns ErrExtractionFailed wrapping the last
// failure.
func (e *Extractor) Extract(ctx context.Context, prompt string) (json.RawMessage, error) {
	full := prompt + prompts.MustGet("generate.json", "structured-suffix")

	var out json.RawMessage
	err := e.policy.Do(ctx, func(attempt int) error {
		text, err := e.completer.Complete(ctx, full)
		if err != nil {
			e.log.Warn("extraction attempt failed", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}

		cleaned := Normalize(text)
		var value any
		if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
			e.log.Warn("extraction attempt produced unparseable JSON",
				zap.Int("attempt", attempt),
				zap.String("response", cleaned),
				zap.Error(err))
			return err
		}

		if arr, ok := value.([]any); ok {
			value = filterPartialItems(arr)
		}

		buf, err := json.Marshal(value)
		if err != nil {
			return err
		}
		out = buf
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}
	return out, nil
}

// filterPartialItems keeps only entries that are non-array objects with at
// least one field. Truncated completions often leave a dangling partial item
// at the end of an array.
func filterPartialItems(items []any) []any {
	valid := make([]any, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok || len(obj) == 0 {
			continue
		}
		valid = append(valid, obj)
	}
	return valid
}
