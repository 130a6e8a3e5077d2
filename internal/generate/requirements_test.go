package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alfie-app/interview-coach/internal/fetch"
)

const jobText = "We are hiring a senior backend engineer with strong Go experience to build our payments platform."

func requirementsPayload(mutate func(map[string]any)) json.RawMessage {
	m := map[string]any{
		"description":      "Senior backend engineer on the payments platform",
		"requirements":     []string{"5 years of Go", "REST API design", "SQL databases", "CI/CD pipelines"},
		"jobType":          "Full-time",
		"seniority":        "Senior",
		"mainTechnologies": []string{"Go", "PostgreSQL", "Docker"},
	}
	if mutate != nil {
		mutate(m)
	}
	payload, _ := json.Marshal(m)
	return payload
}

func TestExtractRequirements(t *testing.T) {
	extractor := &fakeExtractor{payloads: []json.RawMessage{requirementsPayload(nil)}}
	g := newTestGenerator(extractor)

	req, err := g.ExtractRequirements(context.Background(), jobText)
	if err != nil {
		t.Fatalf("ExtractRequirements() error = %v", err)
	}
	if req.Seniority != "Senior" {
		t.Errorf("Seniority = %q, want Senior", req.Seniority)
	}
	if len(req.Requirements) != 4 {
		t.Errorf("Requirements = %d items, want 4", len(req.Requirements))
	}
	if len(req.MainTechnologies) != 3 {
		t.Errorf("MainTechnologies = %d items, want 3", len(req.MainTechnologies))
	}

	if len(extractor.prompts) != 1 {
		t.Fatalf("extractor called %d times, want 1", len(extractor.prompts))
	}
	if !strings.Contains(extractor.prompts[0], "senior backend engineer") {
		t.Errorf("prompt does not contain the job text: %q", extractor.prompts[0])
	}
}

func TestExtractRequirements_InputTooShort(t *testing.T) {
	extractor := &fakeExtractor{}
	g := newTestGenerator(extractor)

	_, err := g.ExtractRequirements(context.Background(), "too short")
	if !errors.Is(err, ErrInputTooShort) {
		t.Fatalf("ExtractRequirements() = %v, want ErrInputTooShort", err)
	}
	if extractor.calls != 0 {
		t.Errorf("extractor called %d times for short input, want 0", extractor.calls)
	}
}

func TestExtractRequirements_TruncatesAndLimits(t *testing.T) {
	longDescription := strings.Repeat("x", 250)
	manyRequirements := make([]string, 12)
	for i := range manyRequirements {
		manyRequirements[i] = "requirement"
	}
	manyTechnologies := []string{"Go", "Rust", "Python", "Java", "C", "C++"}

	extractor := &fakeExtractor{payloads: []json.RawMessage{requirementsPayload(func(m map[string]any) {
		m["description"] = longDescription
		m["requirements"] = manyRequirements
		m["mainTechnologies"] = manyTechnologies
	})}}
	g := newTestGenerator(extractor)

	req, err := g.ExtractRequirements(context.Background(), jobText)
	if err != nil {
		t.Fatalf("ExtractRequirements() error = %v", err)
	}
	if len(req.Description) != 200 {
		t.Errorf("Description length = %d, want 200", len(req.Description))
	}
	if len(req.Requirements) != 10 {
		t.Errorf("Requirements = %d items, want capped at 10", len(req.Requirements))
	}
	if len(req.MainTechnologies) != 5 {
		t.Errorf("MainTechnologies = %d items, want capped at 5", len(req.MainTechnologies))
	}
}

func TestExtractRequirements_InsufficientRequirements(t *testing.T) {
	extractor := &fakeExtractor{payloads: []json.RawMessage{requirementsPayload(func(m map[string]any) {
		m["requirements"] = []string{"only one", "and two"}
	})}}
	g := newTestGenerator(extractor)

	_, err := g.ExtractRequirements(context.Background(), jobText)
	if !errors.Is(err, ErrInsufficientRequirements) {
		t.Fatalf("ExtractRequirements() = %v, want ErrInsufficientRequirements", err)
	}
}

func TestExtractRequirements_NoTechnologies(t *testing.T) {
	extractor := &fakeExtractor{payloads: []json.RawMessage{requirementsPayload(func(m map[string]any) {
		m["mainTechnologies"] = []string{}
	})}}
	g := newTestGenerator(extractor)

	_, err := g.ExtractRequirements(context.Background(), jobText)
	if !errors.Is(err, ErrNoTechnologies) {
		t.Fatalf("ExtractRequirements() = %v, want ErrNoTechnologies", err)
	}
}

func TestExtractRequirements_MissingFields(t *testing.T) {
	extractor := &fakeExtractor{payloads: []json.RawMessage{[]byte(`{"description": "only one field"}`)}}
	g := newTestGenerator(extractor)

	_, err := g.ExtractRequirements(context.Background(), jobText)
	var merr *MissingFieldsError
	if !errors.As(err, &merr) {
		t.Fatalf("ExtractRequirements() = %v, want *MissingFieldsError", err)
	}
	if len(merr.Fields) == 0 {
		t.Error("MissingFieldsError should list the missing fields")
	}
}

func TestExtractRequirements_FromURL(t *testing.T) {
	page := "<html><body><h1>Job</h1><p>" + strings.Repeat(jobText+" ", 3) + "</p></body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	extractor := &fakeExtractor{payloads: []json.RawMessage{requirementsPayload(nil)}}
	g := newTestGenerator(extractor)

	req, err := g.ExtractRequirements(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ExtractRequirements() error = %v", err)
	}
	if req == nil {
		t.Fatal("ExtractRequirements() returned nil requirements")
	}
	if !strings.Contains(extractor.prompts[0], "senior backend engineer") {
		t.Errorf("prompt does not contain the fetched page text: %q", extractor.prompts[0])
	}
}

func TestExtractRequirements_FetchErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	extractor := &fakeExtractor{}
	g := newTestGenerator(extractor)

	_, err := g.ExtractRequirements(context.Background(), srv.URL)
	if !errors.Is(err, fetch.ErrAccessBlocked) {
		t.Fatalf("ExtractRequirements() = %v, want fetch.ErrAccessBlocked", err)
	}
	if extractor.calls != 0 {
		t.Errorf("extractor called %d times after fetch failure, want 0", extractor.calls)
	}
}
