package worker

import (
	"context"
	"log/slog"
	"time"
)

// SessionExpirer drops operator sessions idle for longer than ttl and
// returns the removed ids.
type SessionExpirer interface {
	ExpireIdle(ttl time.Duration) []string
}

type SessionExpirationWorker struct {
	store        SessionExpirer
	ttl          time.Duration
	tickInterval time.Duration
	logger       *slog.Logger
}

func NewSessionExpirationWorker(store SessionExpirer, ttl time.Duration, logger *slog.Logger) *SessionExpirationWorker {
	if logger == nil {
		logger = slog.Default()
	}
	tick := time.Minute // Roda a cada 1 min
	if ttl < tick {
		tick = ttl / 2
	}
	if tick <= 0 {
		tick = time.Second
	}
	return &SessionExpirationWorker{
		store:        store,
		ttl:          ttl,
		tickInterval: tick,
		logger:       logger,
	}
}

func (w *SessionExpirationWorker) Start(ctx context.Context) {
	w.logger.Info("worker de expiração de sessões iniciado", "ttl", w.ttl.String())

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.expireIdleSessions()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker de expiração de sessões encerrado")
			return
		case <-ticker.C:
			w.expireIdleSessions()
		}
	}
}

func (w *SessionExpirationWorker) expireIdleSessions() int {
	expired := w.store.ExpireIdle(w.ttl)
	if len(expired) > 0 {
		w.logger.Info("sessões ociosas removidas", "count", len(expired), "ids", expired)
	}
	return len(expired)
}
