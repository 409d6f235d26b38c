package serverapp

import (
	"context"
	"log/slog"

	"biomed-graphql/internal/logging"
)

// cleanupStack releases resources in reverse order of acquisition. Each
// entry is named so shutdown progress shows up in the logs.
type cleanupStack struct {
	entries []cleanupEntry
}

type cleanupEntry struct {
	name string
	fn   func(context.Context) error
}

func (s *cleanupStack) push(name string, fn func(context.Context) error) {
	s.entries = append(s.entries, cleanupEntry{name: name, fn: fn})
}

// run drains the stack. Cleanup errors are logged, never propagated: a
// failing component must not keep the remaining ones from releasing.
func (s *cleanupStack) run(ctx context.Context, logger *logging.Logger) {
	for len(s.entries) > 0 {
		last := len(s.entries) - 1
		entry := s.entries[last]
		s.entries = s.entries[:last]

		if logger != nil {
			logger.Info("shutting down " + entry.name)
		}
		if err := entry.fn(ctx); err != nil && logger != nil {
			logger.Warn("cleanup error",
				slog.String("component", entry.name),
				slog.String("error", err.Error()),
			)
		}
	}
}

// Shutdown releases everything Init acquired. Repeat calls are no-ops.
func (a *App) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a.shutdownOnce.Do(func() {
		a.stateMu.Lock()
		cleanup := a.cleanup
		a.started = false
		a.stateMu.Unlock()

		cleanup.run(ctx, a.logger)
	})

	return nil
}
