package config

import "time"

// Provider names accepted in Auth.Provider.
const (
	ProviderIdentity = "identity"
	ProviderSession  = "session"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Auth: Auth{
			Provider: ProviderSession,
			Identity: Identity{
				Scope: "openid profile email offline_access",
			},
			JWT: JWT{
				Audience: "authenticated",
			},
		},
		Storage: Storage{
			Session: SessionDB{DSN: "notes-keeper.db"},
		},
		Server: Server{
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Adapter: Adapter{
			RequestTimeout: 30 * time.Second,
		},
		Cache: Cache{
			StaleTime: time.Minute,
			GCTime:    5 * time.Minute,
			SizeBytes: 32 * 1024 * 1024,
		},
		Workers: Workers{
			SessionRefreshInterval: 30 * time.Second,
			RefreshBeforeExpiry:    2 * time.Minute,
		},
		Log: Log{
			MaxSizeMB:  10,
			MaxBackups: 3,
			Level:      "debug",
		},
	}
}
