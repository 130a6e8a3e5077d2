package generate

// Response schemas checked against every normalized payload before coercion.
// They only pin down presence and coarse shape; field-level repair and type
// coercion happen afterwards, so loose value types are accepted here.
const (
	requirementsSchema = `{
		"type": "object",
		"required": ["description", "requirements", "jobType", "seniority", "mainTechnologies"]
	}`

	questionSetSchema = `{
		"type": "object",
		"required": ["questions"],
		"properties": {
			"questions": {"type": "array"}
		}
	}`

	feedbackSchema = `{
		"type": "object",
		"required": ["feedback", "score", "suggestions", "strengths", "weaknesses"]
	}`

	finalAnalysisSchema = `{
		"type": "object",
		"required": ["analysis", "finalScore", "strengths", "weaknesses", "improvements"]
	}`
)
