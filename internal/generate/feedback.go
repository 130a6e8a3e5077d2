package generate

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/alfie-app/interview-coach/internal/prompts"
	"github.com/alfie-app/interview-coach/internal/types"
)

type rawFeedback struct {
	Feedback    any `json:"feedback"`
	Score       any `json:"score"`
	Suggestions any `json:"suggestions"`
	Strengths   any `json:"strengths"`
	Weaknesses  any `json:"weaknesses"`
}

type rawFinalAnalysis struct {
	Analysis     any `json:"analysis"`
	FinalScore   any `json:"finalScore"`
	Strengths    any `json:"strengths"`
	Weaknesses   any `json:"weaknesses"`
	Improvements any `json:"improvements"`
}

// AnalyzeFeedback scores a single answer against the job context. All five
// response fields are required; a payload missing any of them fails with
// MissingFieldsError instead of being patched with defaults.
func (g *Generator) AnalyzeFeedback(ctx context.Context, question, answer string, req *types.JobRequirements) (*types.InterviewFeedback, error) {
	data := g.promptData(req)
	data["Question"] = question
	data["Answer"] = answer
	prompt := prompts.Format(prompts.MustGet(promptFile, "analyze-feedback"), data)

	payload, err := g.extractor.Extract(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if err := checkSchema(feedbackSchema, payload); err != nil {
		return nil, err
	}

	var raw rawFeedback
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, err
	}

	score, _ := asNumber(raw.Score)
	feedback := &types.InterviewFeedback{
		Feedback:    strings.TrimSpace(asString(raw.Feedback)),
		Score:       score,
		Suggestions: asStringList(raw.Suggestions),
		Strengths:   asStringList(raw.Strengths),
		Weaknesses:  asStringList(raw.Weaknesses),
	}
	if err := feedback.Validate(); err != nil {
		return nil, err
	}
	return feedback, nil
}

// FinalAnalysis aggregates the whole question/answer/feedback history into an
// overall evaluation. Field requirements mirror AnalyzeFeedback.
func (g *Generator) FinalAnalysis(ctx context.Context, history []types.HistoryEntry, req *types.JobRequirements) (*types.FinalAnalysis, error) {
	historyJSON, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return nil, err
	}

	data := g.promptData(req)
	data["History"] = string(historyJSON)
	prompt := prompts.Format(prompts.MustGet(promptFile, "final-analysis"), data)

	payload, err := g.extractor.Extract(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if err := checkSchema(finalAnalysisSchema, payload); err != nil {
		return nil, err
	}

	var raw rawFinalAnalysis
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, err
	}

	score, _ := asNumber(raw.FinalScore)
	analysis := &types.FinalAnalysis{
		Analysis:     strings.TrimSpace(asString(raw.Analysis)),
		FinalScore:   score,
		Strengths:    asStringList(raw.Strengths),
		Weaknesses:   asStringList(raw.Weaknesses),
		Improvements: asStringList(raw.Improvements),
	}
	if err := analysis.Validate(); err != nil {
		return nil, err
	}
	return analysis, nil
}
