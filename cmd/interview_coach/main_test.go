package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfie-app/interview-coach/internal/types"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRequirements(t *testing.T) {
	path := writeTempFile(t, "req.json", `{
		"description": "Backend engineer",
		"requirements": ["Go", "SQL", "APIs"],
		"jobType": "Full-time",
		"seniority": "Senior",
		"mainTechnologies": ["Go"]
	}`)

	req, err := loadRequirements(path)
	require.NoError(t, err)
	assert.Equal(t, "Senior", req.Seniority)
	assert.Len(t, req.Requirements, 3)
}

func TestLoadRequirements_MissingFile(t *testing.T) {
	_, err := loadRequirements(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadRequirements_InvalidJSON(t *testing.T) {
	path := writeTempFile(t, "req.json", "{not json")
	_, err := loadRequirements(path)
	assert.Error(t, err)
}

func TestLoadRequirements_FailsValidation(t *testing.T) {
	// Two requirements is below the minimum the extractor guarantees.
	path := writeTempFile(t, "req.json", `{
		"description": "Backend engineer",
		"requirements": ["Go", "SQL"],
		"jobType": "Full-time",
		"seniority": "Senior",
		"mainTechnologies": ["Go"]
	}`)
	_, err := loadRequirements(path)
	assert.Error(t, err)
}

func TestWriteJSON_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	in := types.InterviewFeedback{Feedback: "good", Score: 7}
	require.NoError(t, writeJSON(path, in))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out types.InterviewFeedback
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func resetRequirementsFlags() {
	reqTextFile = ""
	reqURL = ""
	reqText = ""
	reqOutFile = ""
}

func TestRunRequirements_NoSource(t *testing.T) {
	resetRequirementsFlags()
	err := runRequirements(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be provided")
}

func TestRunRequirements_ConflictingSources(t *testing.T) {
	resetRequirementsFlags()
	reqText = "some pasted text"
	reqURL = "https://example.com/job"
	defer resetRequirementsFlags()

	err := runRequirements(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestRunRequirements_TextTooShort(t *testing.T) {
	resetRequirementsFlags()
	reqText = "too short"
	defer resetRequirementsFlags()

	err := runRequirements(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}
