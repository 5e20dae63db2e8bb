package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of [StructuredConfig].
type StructuredJSONConfig struct {
	App struct {
		SessionKey string `json:"session_key"`
		Version    string `json:"version"`
	} `json:"app,omitempty"`

	Auth struct {
		Provider string `json:"provider"`
		Identity struct {
			Domain   string `json:"domain"`
			ClientID string `json:"client_id"`
			Audience string `json:"audience"`
			Realm    string `json:"realm"`
			Scope    string `json:"scope"`
		} `json:"identity,omitempty"`
		Session struct {
			URL     string `json:"url"`
			AnonKey string `json:"anon_key"`
		} `json:"session,omitempty"`
		JWT struct {
			Secret   string `json:"secret"`
			Issuer   string `json:"issuer"`
			Audience string `json:"audience"`
		} `json:"jwt,omitempty"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		Session struct {
			DSN string `json:"dsn"`
		} `json:"session,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Cache struct {
		StaleTime Duration `json:"stale_time"`
		GCTime    Duration `json:"gc_time"`
		SizeBytes int      `json:"size_bytes"`
	} `json:"cache,omitempty"`

	Workers struct {
		SessionRefreshInterval Duration `json:"session_refresh_interval"`
		RefreshBeforeExpiry    Duration `json:"refresh_before_expiry"`
	} `json:"workers,omitempty"`

	Log struct {
		FilePath   string `json:"file"`
		MaxSizeMB  int    `json:"max_size_mb"`
		MaxBackups int    `json:"max_backups"`
		Level      string `json:"level"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			SessionKey: jsonCfg.App.SessionKey,
			Version:    jsonCfg.App.Version,
		},
		Auth: Auth{
			Provider: jsonCfg.Auth.Provider,
			Identity: Identity{
				Domain:   jsonCfg.Auth.Identity.Domain,
				ClientID: jsonCfg.Auth.Identity.ClientID,
				Audience: jsonCfg.Auth.Identity.Audience,
				Realm:    jsonCfg.Auth.Identity.Realm,
				Scope:    jsonCfg.Auth.Identity.Scope,
			},
			Session: SessionAuth{
				URL:     jsonCfg.Auth.Session.URL,
				AnonKey: jsonCfg.Auth.Session.AnonKey,
			},
			JWT: JWT{
				Secret:   jsonCfg.Auth.JWT.Secret,
				Issuer:   jsonCfg.Auth.JWT.Issuer,
				Audience: jsonCfg.Auth.JWT.Audience,
			},
		},
		Storage: Storage{
			DB:      DB{DSN: jsonCfg.Storage.DB.DSN},
			Session: SessionDB{DSN: jsonCfg.Storage.Session.DSN},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Cache: Cache{
			StaleTime: time.Duration(jsonCfg.Cache.StaleTime),
			GCTime:    time.Duration(jsonCfg.Cache.GCTime),
			SizeBytes: jsonCfg.Cache.SizeBytes,
		},
		Workers: Workers{
			SessionRefreshInterval: time.Duration(jsonCfg.Workers.SessionRefreshInterval),
			RefreshBeforeExpiry:    time.Duration(jsonCfg.Workers.RefreshBeforeExpiry),
		},
		Log: Log{
			FilePath:   jsonCfg.Log.FilePath,
			MaxSizeMB:  jsonCfg.Log.MaxSizeMB,
			MaxBackups: jsonCfg.Log.MaxBackups,
			Level:      jsonCfg.Log.Level,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
