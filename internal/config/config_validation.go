// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks the merged [StructuredConfig] for values that are wrong
// for every binary. Per-binary requirements are checked by the views.
func (cfg *StructuredConfig) validate() error {
	if cfg.Cache.StaleTime < 0 || cfg.Cache.GCTime < 0 || cfg.Cache.SizeBytes < 0 {
		return ErrInvalidCacheConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.SessionDSN == "" || strings.Contains(cfg.Storage.SessionDSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Cache.StaleTime <= 0 || cfg.Cache.SizeBytes <= 0 {
		return ErrInvalidCacheConfigs
	}

	if cfg.Workers.SessionRefreshInterval <= 0 || cfg.Workers.RefreshBeforeExpiry < 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.SessionKey == "" {
		return ErrInvalidAppConfigs
	}

	switch cfg.Auth.Provider {
	case ProviderIdentity:
		if cfg.Auth.Identity.Domain == "" || cfg.Auth.Identity.ClientID == "" {
			return fmt.Errorf("%w: identity provider needs domain and client id", ErrInvalidAuthConfigs)
		}
	case ProviderSession:
		if cfg.Auth.Session.URL == "" || cfg.Auth.Session.AnonKey == "" {
			return fmt.Errorf("%w: session provider needs url and anon key", ErrInvalidAuthConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidAuthConfigs, cfg.Auth.Provider)
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.JWT.Secret == "" || cfg.JWT.Issuer == "" || cfg.JWT.Audience == "" {
		return ErrInvalidAuthConfigs
	}

	return nil
}
