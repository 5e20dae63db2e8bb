package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/auth"
	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
)

const (
	defaultRefreshInterval     = 30 * time.Second
	defaultRefreshBeforeExpiry = 2 * time.Minute
)

// sessionRefreshJob refreshes the provider's session shortly before its
// access token expires.
type sessionRefreshJob struct {
	provider auth.Provider
	interval time.Duration
	before   time.Duration
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewSessionRefreshJob creates a job that wakes up every
// cfg.SessionRefreshInterval and refreshes the session when it expires
// within cfg.RefreshBeforeExpiry. The job is idle until Start is called.
func NewSessionRefreshJob(provider auth.Provider, cfg config.ClientWorkers, logger *logger.Logger) Worker {
	interval := cfg.SessionRefreshInterval
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	before := cfg.RefreshBeforeExpiry
	if before <= 0 {
		before = defaultRefreshBeforeExpiry
	}

	return &sessionRefreshJob{
		provider: provider,
		interval: interval,
		before:   before,
		now:      time.Now,
		logger:   logger,
	}
}

func (j *sessionRefreshJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

func (j *sessionRefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// tick refreshes a held session that is expired or about to expire.
// Sessions without a refresh token are left to expire.
func (j *sessionRefreshJob) tick(ctx context.Context) {
	session, valid := j.provider.Session()
	if session.AccessToken == "" || session.RefreshToken == "" {
		return
	}
	if valid && !session.ExpiresWithin(j.now(), j.before) {
		return
	}

	err := j.provider.Refresh(ctx)
	if errors.Is(err, auth.ErrSessionChanged) {
		j.logger.Debug().Str("provider", j.provider.Name()).Msg("session replaced during refresh")
		return
	}
	if err != nil {
		j.logger.Warn().Err(err).
			Str("func", "*sessionRefreshJob.tick").
			Str("provider", j.provider.Name()).
			Msg("background session refresh failed")
		return
	}
	j.logger.Debug().Str("provider", j.provider.Name()).Msg("session refreshed")
}
