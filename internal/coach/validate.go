package coach

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/alfie-app/interview-coach/internal/llm"
)

// ValidateCredential performs a live check of the candidate key. A blank key
// (argument and session both empty) returns false without any network call.
// It distinguishes an invalid key from a key lacking API permission and from
// the target model being unavailable; any of those surface as errors. Other
// provider failures just report the key as unusable.
//
// Finding a concrete model from the target family updates the session's
// active model as a side effect, so later generation calls use it.
func (s *Service) ValidateCredential(ctx context.Context, key string) (bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		key = strings.TrimSpace(s.session.Credential())
	}
	if key == "" {
		return false, nil
	}

	client, err := s.newClient(ctx, key, s.session.Model(), s.log)
	if err != nil {
		return false, err
	}
	defer func() { _ = client.Close() }()

	names, err := client.ListModels(ctx)
	if err != nil {
		if errors.Is(err, llm.ErrPermissionDenied) {
			return false, err
		}
		s.log.Warn("model listing failed", zap.Error(err))
		return false, nil
	}

	selected := ""
	for _, name := range names {
		if strings.Contains(name, llm.DefaultModel) {
			selected = name[strings.LastIndex(name, "/")+1:]
			break
		}
	}
	if selected == "" {
		s.log.Error("target model not offered to this key",
			zap.String("family", llm.DefaultModel),
			zap.Strings("available", names))
		return false, llm.ErrModelUnavailable
	}
	s.session.SetModel(selected)

	// The liveness check runs against the freshly selected model.
	pinger, err := s.newClient(ctx, key, selected, s.log)
	if err != nil {
		return false, err
	}
	defer func() { _ = pinger.Close() }()

	switch err := pinger.Ping(ctx); {
	case err == nil:
		return true, nil
	case errors.Is(err, llm.ErrInvalidCredential), errors.Is(err, llm.ErrPermissionDenied):
		return false, err
	default:
		s.log.Warn("credential liveness check failed", zap.Error(err))
		return false, nil
	}
}
