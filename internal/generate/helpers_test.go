package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alfie-app/interview-coach/internal/types"
)

// fakeExtractor returns canned payloads in call order, recording prompts.
type fakeExtractor struct {
	payloads []json.RawMessage
	errs     []error
	prompts  []string
	calls    int
}

func (f *fakeExtractor) Extract(_ context.Context, prompt string) (json.RawMessage, error) {
	f.prompts = append(f.prompts, prompt)
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.payloads) {
		return f.payloads[i], nil
	}
	return nil, fmt.Errorf("unexpected extract call %d", i+1)
}

// newTestGenerator wires a generator to a fake extractor with no real sleeps.
func newTestGenerator(e structuredExtractor) *Generator {
	g := New(nil, zap.NewNop())
	g.extractor = e
	noop := func(context.Context, time.Duration) error { return nil }
	g.questionPolicy = g.questionPolicy.WithSleeper(noop)
	g.quizPolicy = g.quizPolicy.WithSleeper(noop)
	return g
}

func testRequirements() *types.JobRequirements {
	return &types.JobRequirements{
		Description:      "Backend engineer for the payments platform",
		Requirements:     []string{"5 years of Go", "REST API design", "SQL databases"},
		JobType:          "Full-time",
		Seniority:        "Senior",
		MainTechnologies: []string{"Go", "PostgreSQL"},
	}
}

// questionSetPayload builds a {"questions": [...]} payload with the given
// difficulty sequence, all of one type.
func questionSetPayload(qType string, difficulties []string) json.RawMessage {
	questions := make([]map[string]any, 0, len(difficulties))
	for i, d := range difficulties {
		questions = append(questions, map[string]any{
			"question":       fmt.Sprintf("%s question %d", qType, i+1),
			"context":        "why this is asked",
			"type":           qType,
			"difficulty":     d,
			"expectedTopics": []string{"topic"},
		})
	}
	payload, _ := json.Marshal(map[string]any{"questions": questions})
	return payload
}

func technicalPayload() json.RawMessage {
	return questionSetPayload("technical", []string{"easy", "easy", "medium", "medium", "hard", "hard"})
}

func behavioralPayload() json.RawMessage {
	return questionSetPayload("behavioral", []string{"easy", "medium", "medium", "hard"})
}

// quizPayload builds a quiz payload with n well-formed items.
func quizPayload(n int) json.RawMessage {
	questions := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, map[string]any{
			"question":      fmt.Sprintf("quiz question %d", i+1),
			"options":       []string{"a", "b", "c", "d"},
			"correctAnswer": 1,
			"explanation":   "because",
			"type":          "technical",
			"difficulty":    "medium",
			"topic":         "Go",
		})
	}
	payload, _ := json.Marshal(map[string]any{"questions": questions})
	return payload
}
