package impl

import (
	"context"
	"io"
	"log/slog"

	"dezapego/config"
	"dezapego/internal/domain/repository"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(maxActiveSessions int) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        12,
			MaxActiveSessions: maxActiveSessions,
		},
	}
}

// passthroughTxManager runs the transactional function directly against a
// fixed repository factory, so tests observe the calls made inside the
// transaction and the error the function returns.
type passthroughTxManager struct {
	factory repository.RepositoryFactory
}

func (m *passthroughTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}
