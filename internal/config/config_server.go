package config

import (
	"fmt"
	"strings"
)

// ServerConfig is the notes API configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	App     App
	Server  Server
	Storage DB
	JWT     JWT
}

// GetServerConfig builds and validates the server config view. When no JWT
// issuer is configured it is derived from the session provider URL.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := newServerConfig(cfg)
	return serverCfg, serverCfg.validate()
}

func newServerConfig(cfg *StructuredConfig) *ServerConfig {
	jwtCfg := cfg.Auth.JWT
	if jwtCfg.Issuer == "" && cfg.Auth.Session.URL != "" {
		jwtCfg.Issuer = strings.TrimRight(cfg.Auth.Session.URL, "/") + "/auth/v1"
	}

	return &ServerConfig{
		App:     cfg.App,
		Server:  cfg.Server,
		Storage: cfg.Storage.DB,
		JWT:     jwtCfg,
	}
}
