package generate

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/alfie-app/interview-coach/internal/prompts"
	"github.com/alfie-app/interview-coach/internal/types"
)

// A full interview is 6 technical questions followed by 4 behavioral ones,
// each set with a fixed difficulty distribution.
var (
	technicalDistribution = map[types.Difficulty]int{
		types.DifficultyEasy:   2,
		types.DifficultyMedium: 2,
		types.DifficultyHard:   2,
	}
	behavioralDistribution = map[types.Difficulty]int{
		types.DifficultyEasy:   1,
		types.DifficultyMedium: 2,
		types.DifficultyHard:   1,
	}
)

type rawQuestion struct {
	Question       string   `json:"question"`
	Context        string   `json:"context"`
	Type           string   `json:"type"`
	Difficulty     string   `json:"difficulty"`
	ExpectedTopics []string `json:"expectedTopics"`
}

// Questions generates the full 10-question interview set: technical questions
// first, then behavioral. The two sets are produced by independent extraction
// calls, each wrapped in its own semantic retry: the extractor already
// re-requests malformed JSON, while this outer loop discards well-formed
// responses with wrong counts or distribution and asks again.
func (g *Generator) Questions(ctx context.Context, req *types.JobRequirements) ([]types.InterviewQuestion, error) {
	data := g.promptData(req)

	technical, err := g.questionSet(ctx,
		prompts.Format(prompts.MustGet(promptFile, "technical-questions"), data),
		types.TypeTechnical, technicalDistribution)
	if err != nil {
		return nil, err
	}

	behavioral, err := g.questionSet(ctx,
		prompts.Format(prompts.MustGet(promptFile, "behavioral-questions"), data),
		types.TypeBehavioral, behavioralDistribution)
	if err != nil {
		return nil, err
	}

	return append(technical, behavioral...), nil
}

func (g *Generator) questionSet(ctx context.Context, prompt string, qType types.QuestionType, dist map[types.Difficulty]int) ([]types.InterviewQuestion, error) {
	var out []types.InterviewQuestion
	err := g.questionPolicy.Do(ctx, func(attempt int) error {
		payload, err := g.extractor.Extract(ctx, prompt)
		if err != nil {
			g.log.Warn("question set attempt failed",
				zap.Int("attempt", attempt),
				zap.String("type", string(qType)),
				zap.Error(err))
			return err
		}
		if err := checkSchema(questionSetSchema, payload); err != nil {
			return err
		}

		var parsed struct {
			Questions []rawQuestion `json:"questions"`
		}
		if err := json.Unmarshal(payload, &parsed); err != nil {
			return err
		}
		if !validQuestionSet(parsed.Questions, qType, dist) {
			g.log.Warn("question set has wrong count or distribution",
				zap.Int("attempt", attempt),
				zap.String("type", string(qType)),
				zap.Int("count", len(parsed.Questions)))
			return ErrInvalidDistribution
		}

		out = coerceQuestions(parsed.Questions, qType)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// validQuestionSet checks the exact count, per-question required fields, and
// the difficulty distribution of a generated set.
func validQuestionSet(questions []rawQuestion, qType types.QuestionType, dist map[types.Difficulty]int) bool {
	want := 0
	for _, n := range dist {
		want += n
	}
	if len(questions) != want {
		return false
	}

	counts := make(map[types.Difficulty]int, len(dist))
	for _, q := range questions {
		difficulty := types.Difficulty(strings.ToLower(strings.TrimSpace(q.Difficulty)))
		if _, ok := dist[difficulty]; !ok {
			return false
		}
		if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.Context) == "" {
			return false
		}
		if !strings.EqualFold(strings.TrimSpace(q.Type), string(qType)) {
			return false
		}
		if len(q.ExpectedTopics) == 0 {
			return false
		}
		counts[difficulty]++
	}

	for difficulty, n := range dist {
		if counts[difficulty] != n {
			return false
		}
	}
	return true
}

// coerceQuestions trims fields and tags every question with its set type.
func coerceQuestions(questions []rawQuestion, qType types.QuestionType) []types.InterviewQuestion {
	out := make([]types.InterviewQuestion, 0, len(questions))
	for _, q := range questions {
		out = append(out, types.InterviewQuestion{
			Question:       strings.TrimSpace(q.Question),
			Context:        strings.TrimSpace(q.Context),
			Type:           qType,
			Difficulty:     types.Difficulty(strings.ToLower(strings.TrimSpace(q.Difficulty))),
			ExpectedTopics: trimmed(q.ExpectedTopics),
		})
	}
	return out
}

// promptData builds the shared template values for question generation.
func (g *Generator) promptData(req *types.JobRequirements) map[string]string {
	reqJSON, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		reqJSON = []byte("{}")
	}
	return map[string]string{
		"Seniority":    req.Seniority,
		"Technologies": strings.Join(req.MainTechnologies, ", "),
		"Requirements": string(reqJSON),
	}
}
