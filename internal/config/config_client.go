package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// SessionKey seals the persisted session.
	SessionKey string
	// Version is shown in the about overlay.
	Version string
}

// ClientAuth selects the auth provider and carries both provider settings.
type ClientAuth struct {
	Provider string
	Identity Identity
	Session  SessionAuth
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the notes API base URL.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientCache holds the query cache settings.
type ClientCache struct {
	StaleTime time.Duration
	GCTime    time.Duration
	SizeBytes int
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// SessionDSN is the SQLite file holding the persisted session.
	SessionDSN string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	SessionRefreshInterval time.Duration
	RefreshBeforeExpiry    time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Auth    ClientAuth
	Adapter ClientAdapter
	Cache   ClientCache
	Storage ClientStorage
	Workers ClientWorkers
	Log     Log
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			SessionKey: cfg.App.SessionKey,
			Version:    cfg.App.Version,
		},
		Auth: ClientAuth{
			Provider: cfg.Auth.Provider,
			Identity: cfg.Auth.Identity,
			Session:  cfg.Auth.Session,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Cache: ClientCache{
			StaleTime: cfg.Cache.StaleTime,
			GCTime:    cfg.Cache.GCTime,
			SizeBytes: cfg.Cache.SizeBytes,
		},
		Storage: ClientStorage{
			SessionDSN: cfg.Storage.Session.DSN,
		},
		Workers: ClientWorkers{
			SessionRefreshInterval: cfg.Workers.SessionRefreshInterval,
			RefreshBeforeExpiry:    cfg.Workers.RefreshBeforeExpiry,
		},
		Log: cfg.Log,
	}
}
