package generate

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alfie-app/interview-coach/internal/types"
)

func TestQuizQuestions(t *testing.T) {
	extractor := &fakeExtractor{payloads: []json.RawMessage{quizPayload(10)}}
	g := newTestGenerator(extractor)

	questions, err := g.QuizQuestions(context.Background(), testRequirements())
	if err != nil {
		t.Fatalf("QuizQuestions() error = %v", err)
	}
	if len(questions) != 10 {
		t.Fatalf("QuizQuestions() = %d questions, want 10", len(questions))
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			t.Errorf("question %d failed validation: %v", i, err)
		}
	}
	if extractor.calls != 1 {
		t.Errorf("extractor called %d times, want 1", extractor.calls)
	}
}

func TestQuizQuestions_RetriesWrongCount(t *testing.T) {
	extractor := &fakeExtractor{payloads: []json.RawMessage{
		quizPayload(9),
		quizPayload(10),
	}}
	g := newTestGenerator(extractor)

	questions, err := g.QuizQuestions(context.Background(), testRequirements())
	if err != nil {
		t.Fatalf("QuizQuestions() error = %v", err)
	}
	if len(questions) != 10 {
		t.Errorf("QuizQuestions() = %d questions, want 10", len(questions))
	}
	if extractor.calls != 2 {
		t.Errorf("extractor called %d times, want 2", extractor.calls)
	}
}

func TestQuizQuestions_ExhaustsAttempts(t *testing.T) {
	extractor := &fakeExtractor{payloads: []json.RawMessage{
		quizPayload(9), quizPayload(11), quizPayload(0),
	}}
	g := newTestGenerator(extractor)

	_, err := g.QuizQuestions(context.Background(), testRequirements())
	if !errors.Is(err, ErrInvalidDistribution) {
		t.Fatalf("QuizQuestions() = %v, want ErrInvalidDistribution", err)
	}
	if extractor.calls != 3 {
		t.Errorf("extractor called %d times, want 3", extractor.calls)
	}
}

func TestCoerceQuizQuestion_RepairsDefects(t *testing.T) {
	tests := []struct {
		name  string
		raw   rawQuizQuestion
		check func(t *testing.T, q types.QuizQuestion)
	}{
		{
			name: "missing question text gets placeholder",
			raw:  rawQuizQuestion{Options: []any{"a", "b", "c", "d"}},
			check: func(t *testing.T, q types.QuizQuestion) {
				if q.Question != "Question 3" {
					t.Errorf("Question = %q, want placeholder with position", q.Question)
				}
			},
		},
		{
			name: "short option list is padded to four",
			raw:  rawQuizQuestion{Question: "q", Options: []any{"only", "two"}},
			check: func(t *testing.T, q types.QuizQuestion) {
				if len(q.Options) != 4 {
					t.Fatalf("Options = %d, want 4", len(q.Options))
				}
				if q.Options[2] != "Option 3" || q.Options[3] != "Option 4" {
					t.Errorf("padded options = %v", q.Options)
				}
			},
		},
		{
			name: "long option list is cut to four",
			raw:  rawQuizQuestion{Question: "q", Options: []any{"a", "b", "c", "d", "e", "f"}},
			check: func(t *testing.T, q types.QuizQuestion) {
				if len(q.Options) != 4 {
					t.Errorf("Options = %d, want 4", len(q.Options))
				}
			},
		},
		{
			name: "out of range answer falls back to zero",
			raw:  rawQuizQuestion{Question: "q", CorrectAnswer: float64(7)},
			check: func(t *testing.T, q types.QuizQuestion) {
				if q.CorrectAnswer != 0 {
					t.Errorf("CorrectAnswer = %d, want 0", q.CorrectAnswer)
				}
			},
		},
		{
			name: "negative answer falls back to zero",
			raw:  rawQuizQuestion{Question: "q", CorrectAnswer: float64(-1)},
			check: func(t *testing.T, q types.QuizQuestion) {
				if q.CorrectAnswer != 0 {
					t.Errorf("CorrectAnswer = %d, want 0", q.CorrectAnswer)
				}
			},
		},
		{
			name: "quoted numeric answer is accepted",
			raw:  rawQuizQuestion{Question: "q", CorrectAnswer: "2"},
			check: func(t *testing.T, q types.QuizQuestion) {
				if q.CorrectAnswer != 2 {
					t.Errorf("CorrectAnswer = %d, want 2", q.CorrectAnswer)
				}
			},
		},
		{
			name: "missing explanation gets default",
			raw:  rawQuizQuestion{Question: "q"},
			check: func(t *testing.T, q types.QuizQuestion) {
				if q.Explanation != "Explanation not provided" {
					t.Errorf("Explanation = %q", q.Explanation)
				}
			},
		},
		{
			name: "unknown type defaults to technical",
			raw:  rawQuizQuestion{Question: "q", Type: "puzzle"},
			check: func(t *testing.T, q types.QuizQuestion) {
				if q.Type != types.TypeTechnical {
					t.Errorf("Type = %q, want technical", q.Type)
				}
			},
		},
		{
			name: "behavioral type survives",
			raw:  rawQuizQuestion{Question: "q", Type: "Behavioral"},
			check: func(t *testing.T, q types.QuizQuestion) {
				if q.Type != types.TypeBehavioral {
					t.Errorf("Type = %q, want behavioral", q.Type)
				}
			},
		},
		{
			name: "unknown difficulty defaults to medium",
			raw:  rawQuizQuestion{Question: "q", Difficulty: "extreme"},
			check: func(t *testing.T, q types.QuizQuestion) {
				if q.Difficulty != types.DifficultyMedium {
					t.Errorf("Difficulty = %q, want medium", q.Difficulty)
				}
			},
		},
		{
			name: "known difficulty survives",
			raw:  rawQuizQuestion{Question: "q", Difficulty: "Hard"},
			check: func(t *testing.T, q types.QuizQuestion) {
				if q.Difficulty != types.DifficultyHard {
					t.Errorf("Difficulty = %q, want hard", q.Difficulty)
				}
			},
		},
		{
			name: "missing topic falls back to main technology",
			raw:  rawQuizQuestion{Question: "q"},
			check: func(t *testing.T, q types.QuizQuestion) {
				if q.Topic != "Go" {
					t.Errorf("Topic = %q, want Go", q.Topic)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := coerceQuizQuestion(tt.raw, 2, "Go")
			tt.check(t, q)
		})
	}
}

func TestQuizQuestions_RepairedItemsStillCount(t *testing.T) {
	// Ten items, every one defective in some way, still yields a full quiz.
	items := make([]map[string]any, 10)
	for i := range items {
		items[i] = map[string]any{"correctAnswer": 99}
	}
	payload, _ := json.Marshal(map[string]any{"questions": items})

	extractor := &fakeExtractor{payloads: []json.RawMessage{payload}}
	g := newTestGenerator(extractor)

	questions, err := g.QuizQuestions(context.Background(), testRequirements())
	if err != nil {
		t.Fatalf("QuizQuestions() error = %v", err)
	}
	if len(questions) != 10 {
		t.Fatalf("QuizQuestions() = %d questions, want 10", len(questions))
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			t.Errorf("repaired question %d failed validation: %v", i, err)
		}
		if q.Topic != "Go" {
			t.Errorf("question %d topic = %q, want fallback Go", i, q.Topic)
		}
	}
}
