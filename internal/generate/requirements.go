package generate

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/alfie-app/interview-coach/internal/fetch"
	"github.com/alfie-app/interview-coach/internal/prompts"
	"github.com/alfie-app/interview-coach/internal/sanitize"
	"github.com/alfie-app/interview-coach/internal/types"
)

// maxDescriptionLength caps the extracted position summary.
const maxDescriptionLength = 200

// rawRequirements mirrors the expected response with loose field types so a
// sloppy payload still unmarshals and can be coerced.
type rawRequirements struct {
	Description      any `json:"description"`
	Requirements     any `json:"requirements"`
	JobType          any `json:"jobType"`
	Seniority        any `json:"seniority"`
	MainTechnologies any `json:"mainTechnologies"`
}

// ExtractRequirements turns pasted job text or a posting URL into validated
// JobRequirements. Fetch errors propagate unchanged so the caller can tell
// the user to paste the text directly. Business-rule failures (too few
// requirements, no technologies) are not retried here; the caller may
// re-invoke with better input.
func (g *Generator) ExtractRequirements(ctx context.Context, jobInfo string) (*types.JobRequirements, error) {
	jobText := jobInfo
	if fetch.IsURL(jobInfo) {
		text, err := fetch.Text(ctx, strings.TrimSpace(jobInfo), g.fetchOpts)
		if err != nil {
			return nil, err
		}
		g.log.Debug("extracted text from URL", zap.Int("length", len(text)))
		jobText = text
	}

	if len(strings.TrimSpace(jobText)) < minJobTextLength {
		return nil, ErrInputTooShort
	}

	prompt := prompts.Format(prompts.MustGet(promptFile, "extract-requirements"), map[string]string{
		"JobText": sanitize.Text(jobText),
	})

	payload, err := g.extractor.Extract(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if err := checkSchema(requirementsSchema, payload); err != nil {
		return nil, err
	}

	var raw rawRequirements
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, err
	}

	req := &types.JobRequirements{
		Description:      truncateRunes(strings.TrimSpace(asString(raw.Description)), maxDescriptionLength),
		Requirements:     limit(asStringList(raw.Requirements), 10),
		JobType:          strings.TrimSpace(asString(raw.JobType)),
		Seniority:        strings.TrimSpace(asString(raw.Seniority)),
		MainTechnologies: limit(asStringList(raw.MainTechnologies), 5),
	}

	if len(req.Requirements) < 3 {
		return nil, ErrInsufficientRequirements
	}
	if len(req.MainTechnologies) < 1 {
		return nil, ErrNoTechnologies
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}
