// Package types defines the immutable domain value objects produced by the
// interview generators: job requirements, interview and quiz questions, and
// per-answer and final feedback.
package types

import (
	"github.com/go-playground/validator/v10"
)

// QuestionType classifies a question as technical or behavioral.
type QuestionType string

// Question type constants
const (
	TypeTechnical  QuestionType = "technical"
	TypeBehavioral QuestionType = "behavioral"
)

// Difficulty is the difficulty level of a generated question.
type Difficulty string

// Difficulty constants
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// validate is the shared validator instance for domain invariants.
var validate = validator.New(validator.WithRequiredStructEnabled())

// JobRequirements is the structured summary extracted from a job posting.
type JobRequirements struct {
	Description      string   `json:"description" validate:"max=200"`
	Requirements     []string `json:"requirements" validate:"min=3,max=10,dive,required"`
	JobType          string   `json:"jobType"`
	Seniority        string   `json:"seniority"`
	MainTechnologies []string `json:"mainTechnologies" validate:"min=1,max=5,dive,required"`
}

// Validate checks the construction invariants of the requirements object.
func (r *JobRequirements) Validate() error {
	return validate.Struct(r)
}

// InterviewQuestion is a single open-ended interview question.
type InterviewQuestion struct {
	Question       string       `json:"question" validate:"required"`
	Context        string       `json:"context" validate:"required"`
	Type           QuestionType `json:"type" validate:"required,oneof=technical behavioral"`
	Difficulty     Difficulty   `json:"difficulty" validate:"required,oneof=easy medium hard"`
	ExpectedTopics []string     `json:"expectedTopics" validate:"min=1,dive,required"`
}

// Validate checks the construction invariants of the question.
func (q *InterviewQuestion) Validate() error {
	return validate.Struct(q)
}

// QuizQuestion is a single multiple-choice question with exactly four options.
type QuizQuestion struct {
	Question      string       `json:"question" validate:"required"`
	Options       []string     `json:"options" validate:"len=4,dive,required"`
	CorrectAnswer int          `json:"correctAnswer" validate:"min=0,max=3"`
	Explanation   string       `json:"explanation" validate:"required"`
	Type          QuestionType `json:"type" validate:"oneof=technical behavioral"`
	Difficulty    Difficulty   `json:"difficulty" validate:"oneof=easy medium hard"`
	Topic         string       `json:"topic"`
}

// Validate checks the construction invariants of the quiz question.
func (q *QuizQuestion) Validate() error {
	return validate.Struct(q)
}

// InterviewFeedback is the scored evaluation of a single answer.
type InterviewFeedback struct {
	Feedback    string   `json:"feedback" validate:"required"`
	Score       float64  `json:"score" validate:"min=0,max=10"`
	Suggestions []string `json:"suggestions"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
}

// Validate checks the construction invariants of the feedback object.
func (f *InterviewFeedback) Validate() error {
	return validate.Struct(f)
}

// FinalAnalysis is the aggregate evaluation over a whole interview session.
type FinalAnalysis struct {
	Analysis     string   `json:"analysis" validate:"required"`
	FinalScore   float64  `json:"finalScore" validate:"min=0,max=10"`
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
	Improvements []string `json:"improvements"`
}

// Validate checks the construction invariants of the final analysis.
func (a *FinalAnalysis) Validate() error {
	return validate.Struct(a)
}

// HistoryEntry is one answered question with its feedback, as recorded in the
// session history and fed into the final analysis.
type HistoryEntry struct {
	ID       string            `json:"id"`
	Question string            `json:"question"`
	Answer   string            `json:"answer"`
	Feedback InterviewFeedback `json:"feedback"`
}
