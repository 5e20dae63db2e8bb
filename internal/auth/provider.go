package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/models"
)

// NewProvider builds the provider selected by cfg.Provider. A nil store
// disables persistence.
func NewProvider(cfg config.ClientAuth, timeout time.Duration, store SessionStore, log *logger.Logger) (Provider, error) {
	var client grantClient
	switch cfg.Provider {
	case config.ProviderIdentity:
		client = newIdentityClient(cfg.Identity, timeout)
	case config.ProviderSession:
		client = newSessionClient(cfg.Session, timeout)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}

	return newProvider(client, store, log), nil
}

type provider struct {
	client grantClient
	store  SessionStore
	logger *logger.Logger
	now    func() time.Time

	// storeMu orders session replacement with its store write.
	storeMu sync.Mutex

	mu      sync.RWMutex
	session *models.Session
	gen     uint64
	loading bool
	err     error

	subMu       sync.Mutex
	subscribers map[int]func(models.AuthStateChange)
	nextSubID   int
}

func newProvider(client grantClient, store SessionStore, log *logger.Logger) *provider {
	if store == nil {
		store = nopStore{}
	}
	return &provider{
		client:      client,
		store:       store,
		logger:      log,
		now:         time.Now,
		loading:     true,
		subscribers: make(map[int]func(models.AuthStateChange)),
	}
}

func (p *provider) Name() string {
	return p.client.name()
}

func (p *provider) IsAuthenticated() bool {
	_, ok := p.Session()
	return ok
}

func (p *provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

func (p *provider) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

func (p *provider) Session() (models.Session, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.session == nil {
		return models.Session{}, false
	}
	return *p.session, p.session.Valid(p.now())
}

func (p *provider) Login(ctx context.Context, creds models.Credentials) error {
	p.setLoading(true)

	session, err := p.client.password(ctx, creds)
	if err != nil {
		p.logger.Err(err).Str("func", "provider.Login").Str("provider", p.Name()).Msg("login failed")
		p.finish(nil, err)
		return err
	}

	p.replace(ctx, &session, nil)
	p.emit(models.AuthEventSignedIn, session)
	return nil
}

func (p *provider) Logout(ctx context.Context) error {
	p.mu.RLock()
	held := p.session
	p.mu.RUnlock()

	var revokeErr error
	if held != nil {
		revokeErr = p.client.revoke(ctx, *held)
		if revokeErr != nil {
			p.logger.Err(revokeErr).Str("func", "provider.Logout").Str("provider", p.Name()).Msg("revoke failed, signing out locally")
		}
	}

	p.signOut(ctx)
	return revokeErr
}

func (p *provider) Restore(ctx context.Context) error {
	p.setLoading(true)

	session, found, err := p.store.Load(ctx, p.Name())
	if err != nil {
		p.logger.Err(err).Str("func", "provider.Restore").Msg("error loading persisted session")
		p.finish(nil, err)
		return err
	}
	if !found {
		p.finish(nil, nil)
		return nil
	}

	if session.Valid(p.now()) {
		p.finish(&session, nil)
		p.emit(models.AuthEventSignedIn, session)
		return nil
	}

	if session.RefreshToken == "" {
		p.logger.Info().Str("provider", p.Name()).Msg("persisted session expired")
		p.replace(ctx, nil, nil)
		return nil
	}

	p.mu.Lock()
	p.session = &session
	p.gen++
	p.mu.Unlock()
	return p.Refresh(ctx)
}

func (p *provider) Refresh(ctx context.Context) error {
	p.mu.RLock()
	held, gen := p.session, p.gen
	p.mu.RUnlock()

	if held == nil {
		return ErrNoSession
	}
	if held.RefreshToken == "" {
		return ErrNoRefreshToken
	}

	session, err := p.client.refresh(ctx, *held)
	if err != nil {
		p.logger.Err(err).Str("func", "provider.Refresh").Str("provider", p.Name()).Msg("token refresh failed")
		if errors.Is(err, ErrInvalidCredentials) {
			if p.commit(ctx, gen, nil, err) {
				p.emit(models.AuthEventSignedOut, models.Session{})
			}
			return err
		}
		p.mu.Lock()
		if p.gen == gen {
			p.err = err
			p.loading = false
		}
		p.mu.Unlock()
		return err
	}

	if session.RefreshToken == "" {
		session.RefreshToken = held.RefreshToken
	}
	if session.UserID == "" {
		session.UserID, session.Email = held.UserID, held.Email
	}

	if !p.commit(ctx, gen, &session, nil) {
		p.logger.Info().Str("provider", p.Name()).Msg("session changed during refresh, result discarded")
		return ErrSessionChanged
	}
	p.emit(models.AuthEventTokenRefreshed, session)
	return nil
}

func (p *provider) Subscribe(fn func(models.AuthStateChange)) func() {
	p.subMu.Lock()
	defer p.subMu.Unlock()

	id := p.nextSubID
	p.nextSubID++
	p.subscribers[id] = fn

	return func() {
		p.subMu.Lock()
		defer p.subMu.Unlock()
		delete(p.subscribers, id)
	}
}

func (p *provider) signOut(ctx context.Context) {
	p.replace(ctx, nil, nil)
	p.emit(models.AuthEventSignedOut, models.Session{})
}

// replace installs session, or signs out when it is nil, and writes the
// change through to the store. Refreshes started before the call are
// discarded.
func (p *provider) replace(ctx context.Context, session *models.Session, err error) {
	p.storeMu.Lock()
	defer p.storeMu.Unlock()

	p.mu.Lock()
	p.gen++
	p.session, p.err, p.loading = session, err, false
	p.mu.Unlock()

	p.write(ctx, session)
}

// commit is replace for a result computed from the session seen at gen.
// It reports false and changes nothing when the session was replaced since.
func (p *provider) commit(ctx context.Context, gen uint64, session *models.Session, err error) bool {
	p.storeMu.Lock()
	defer p.storeMu.Unlock()

	p.mu.Lock()
	if p.gen != gen {
		p.mu.Unlock()
		return false
	}
	p.gen++
	p.session, p.err, p.loading = session, err, false
	p.mu.Unlock()

	p.write(ctx, session)
	return true
}

func (p *provider) write(ctx context.Context, session *models.Session) {
	if session == nil {
		p.drop(ctx)
		return
	}
	p.persist(ctx, *session)
}

func (p *provider) setLoading(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = v
}

func (p *provider) finish(session *models.Session, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.session = session
	p.err = err
	p.loading = false
}

func (p *provider) persist(ctx context.Context, session models.Session) {
	if err := p.store.Save(ctx, session); err != nil {
		p.logger.Err(err).Str("func", "provider.persist").Msg("error saving session")
	}
}

func (p *provider) drop(ctx context.Context) {
	if err := p.store.Delete(ctx, p.Name()); err != nil {
		p.logger.Err(err).Str("func", "provider.drop").Msg("error deleting persisted session")
	}
}

// emit calls subscribers outside of both locks, so a subscriber may call
// back into the provider.
func (p *provider) emit(event models.AuthEvent, session models.Session) {
	p.subMu.Lock()
	subs := make([]func(models.AuthStateChange), 0, len(p.subscribers))
	for _, fn := range p.subscribers {
		subs = append(subs, fn)
	}
	p.subMu.Unlock()

	change := models.AuthStateChange{Event: event, Session: session}
	for _, fn := range subs {
		fn(change)
	}
}

type nopStore struct{}

func (nopStore) Load(context.Context, string) (models.Session, bool, error) {
	return models.Session{}, false, nil
}

func (nopStore) Save(context.Context, models.Session) error { return nil }

func (nopStore) Delete(context.Context, string) error { return nil }
