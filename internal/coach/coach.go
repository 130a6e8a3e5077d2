// Package coach is the inbound surface of the interview practice core. A UI
// collaborator hands it raw text and a credential; it returns validated
// domain objects or classified errors, never raw provider failures.
package coach

import (
	"context"

	"go.uber.org/zap"

	"github.com/alfie-app/interview-coach/internal/generate"
	"github.com/alfie-app/interview-coach/internal/llm"
	"github.com/alfie-app/interview-coach/internal/session"
	"github.com/alfie-app/interview-coach/internal/types"
)

// completionClient is what the service needs from the provider client.
type completionClient interface {
	llm.Completer
	ListModels(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}

// clientFactory builds a provider client for a credential and model.
type clientFactory func(ctx context.Context, apiKey, model string, log *zap.Logger) (completionClient, error)

// Service exposes the generation operations over a session.
type Service struct {
	session   *session.Session
	history   *session.History
	log       *zap.Logger
	newClient clientFactory
}

// New creates a service. The store backs the feedback history; nil means
// in-memory only.
func New(store session.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		session: session.New(llm.DefaultModel),
		history: session.NewHistory(store),
		log:     log,
		newClient: func(ctx context.Context, apiKey, model string, log *zap.Logger) (completionClient, error) {
			return llm.NewClient(ctx, apiKey, model, log)
		},
	}
}

// SetCredential stores the API key for the session. Fails on a blank key.
func (s *Service) SetCredential(key string) error {
	return s.session.SetCredential(key)
}

// Configured reports whether a credential has been set.
func (s *Service) Configured() bool {
	return s.session.Configured()
}

// History returns the bounded feedback history.
func (s *Service) History() *session.History {
	return s.history
}

// ExtractRequirements turns pasted job text or a posting URL into validated
// requirements.
func (s *Service) ExtractRequirements(ctx context.Context, jobInfo string) (*types.JobRequirements, error) {
	gen, closer, err := s.generator(ctx)
	if err != nil {
		return nil, err
	}
	defer closer()
	return gen.ExtractRequirements(ctx, jobInfo)
}

// GenerateQuestions produces the full 10-question interview set.
func (s *Service) GenerateQuestions(ctx context.Context, req *types.JobRequirements) ([]types.InterviewQuestion, error) {
	gen, closer, err := s.generator(ctx)
	if err != nil {
		return nil, err
	}
	defer closer()
	return gen.Questions(ctx, req)
}

// GenerateQuizQuestions produces the 10-question multiple-choice quiz.
func (s *Service) GenerateQuizQuestions(ctx context.Context, req *types.JobRequirements) ([]types.QuizQuestion, error) {
	gen, closer, err := s.generator(ctx)
	if err != nil {
		return nil, err
	}
	defer closer()
	return gen.QuizQuestions(ctx, req)
}

// AnalyzeFeedback scores one answer and records it in the session history.
func (s *Service) AnalyzeFeedback(ctx context.Context, question, answer string, req *types.JobRequirements) (*types.InterviewFeedback, error) {
	gen, closer, err := s.generator(ctx)
	if err != nil {
		return nil, err
	}
	defer closer()

	feedback, err := gen.AnalyzeFeedback(ctx, question, answer, req)
	if err != nil {
		return nil, err
	}
	if err := s.history.Add(types.HistoryEntry{
		Question: question,
		Answer:   answer,
		Feedback: *feedback,
	}); err != nil {
		s.log.Warn("failed to record feedback history", zap.Error(err))
	}
	return feedback, nil
}

// GenerateFinalAnalysis aggregates the interview history into an overall
// evaluation.
func (s *Service) GenerateFinalAnalysis(ctx context.Context, history []types.HistoryEntry, req *types.JobRequirements) (*types.FinalAnalysis, error) {
	gen, closer, err := s.generator(ctx)
	if err != nil {
		return nil, err
	}
	defer closer()
	return gen.FinalAnalysis(ctx, history, req)
}

// generator builds a domain generator over a fresh provider client for the
// session's credential and model.
func (s *Service) generator(ctx context.Context) (*generate.Generator, func(), error) {
	if !s.session.Configured() {
		return nil, nil, llm.ErrNoCredential
	}
	client, err := s.newClient(ctx, s.session.Credential(), s.session.Model(), s.log)
	if err != nil {
		return nil, nil, err
	}
	closer := func() { _ = client.Close() }
	return generate.New(client, s.log), closer, nil
}
