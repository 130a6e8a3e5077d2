package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/alfie-app/interview-coach/internal/prompts"
	"github.com/alfie-app/interview-coach/internal/types"
)

const (
	quizSize    = 10
	quizOptions = 4
)

// rawQuizQuestion keeps every field loose: quiz items are repaired with
// defaults instead of rejected, so any shape must unmarshal.
type rawQuizQuestion struct {
	Question      any `json:"question"`
	Options       any `json:"options"`
	CorrectAnswer any `json:"correctAnswer"`
	Explanation   any `json:"explanation"`
	Type          any `json:"type"`
	Difficulty    any `json:"difficulty"`
	Topic         any `json:"topic"`
}

// QuizQuestions generates the 10-question multiple-choice quiz. Unlike the
// other generators, per-item defects are repaired with safe defaults rather
// than failing the request; only the top-level count is a hard failure, which
// triggers a full re-generation through the quiz retry policy.
func (g *Generator) QuizQuestions(ctx context.Context, req *types.JobRequirements) ([]types.QuizQuestion, error) {
	prompt := prompts.Format(prompts.MustGet(promptFile, "quiz-questions"), g.promptData(req))

	fallbackTopic := ""
	if len(req.MainTechnologies) > 0 {
		fallbackTopic = req.MainTechnologies[0]
	}

	var out []types.QuizQuestion
	err := g.quizPolicy.Do(ctx, func(attempt int) error {
		payload, err := g.extractor.Extract(ctx, prompt)
		if err != nil {
			g.log.Warn("quiz attempt failed", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		if err := checkSchema(questionSetSchema, payload); err != nil {
			return err
		}

		var parsed struct {
			Questions []rawQuizQuestion `json:"questions"`
		}
		if err := json.Unmarshal(payload, &parsed); err != nil {
			return err
		}

		questions := make([]types.QuizQuestion, 0, len(parsed.Questions))
		for i, raw := range parsed.Questions {
			questions = append(questions, coerceQuizQuestion(raw, i, fallbackTopic))
		}
		if len(questions) != quizSize {
			g.log.Warn("quiz has wrong question count",
				zap.Int("attempt", attempt),
				zap.Int("count", len(questions)))
			return fmt.Errorf("%w: got %d questions", ErrInvalidDistribution, len(questions))
		}

		out = questions
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// coerceQuizQuestion repairs a single raw item field by field: missing text
// gets placeholders, options are padded or cut to exactly four, out-of-range
// answers fall back to the first option, and unknown enum values get safe
// defaults.
func coerceQuizQuestion(raw rawQuizQuestion, index int, fallbackTopic string) types.QuizQuestion {
	question := strings.TrimSpace(asString(raw.Question))
	if question == "" {
		question = fmt.Sprintf("Question %d", index+1)
	}

	options := asStringList(raw.Options)
	for len(options) < quizOptions {
		options = append(options, fmt.Sprintf("Option %d", len(options)+1))
	}
	options = options[:quizOptions]

	answer := 0
	if n, ok := asNumber(raw.CorrectAnswer); ok {
		if i := int(n); float64(i) == n && i >= 0 && i < quizOptions {
			answer = i
		}
	}

	explanation := strings.TrimSpace(asString(raw.Explanation))
	if explanation == "" {
		explanation = "Explanation not provided"
	}

	qType := types.TypeTechnical
	if t := strings.ToLower(strings.TrimSpace(asString(raw.Type))); t == string(types.TypeBehavioral) {
		qType = types.TypeBehavioral
	}

	difficulty := types.DifficultyMedium
	switch d := strings.ToLower(strings.TrimSpace(asString(raw.Difficulty))); types.Difficulty(d) {
	case types.DifficultyEasy, types.DifficultyHard:
		difficulty = types.Difficulty(d)
	}

	topic := strings.TrimSpace(asString(raw.Topic))
	if topic == "" {
		topic = fallbackTopic
	}

	return types.QuizQuestion{
		Question:      question,
		Options:       options,
		CorrectAnswer: answer,
		Explanation:   explanation,
		Type:          qType,
		Difficulty:    difficulty,
		Topic:         topic,
	}
}
