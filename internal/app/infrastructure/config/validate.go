package config

import (
	"errors"
	"fmt"
	"net"
)

func validate(cfg *Config) error {
	// app
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = "info"
	}
	if !validLevels[cfg.App.LogLevel] {
		return fmt.Errorf("app.log_level must be one of debug, info, warn, error; got %s", cfg.App.LogLevel)
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if cfg.App.GinMode == "" {
		cfg.App.GinMode = "release"
	}
	if !validModes[cfg.App.GinMode] {
		return fmt.Errorf("app.gin_mode must be one of debug, release, test; got %s", cfg.App.GinMode)
	}

	if cfg.App.Listen == "" {
		return errors.New("app.listen is required")
	}
	if _, _, err := net.SplitHostPort(cfg.App.Listen); err != nil {
		return fmt.Errorf("app.listen: %w", err)
	}

	// proxy
	if cfg.Proxy != nil {
		if cfg.Proxy.Address == "" {
			return errors.New("proxy.address is required when proxy is set")
		}
		if cfg.Proxy.Port <= 0 || cfg.Proxy.Port > 65535 {
			return fmt.Errorf("proxy.port must be [1,65535]; got %d", cfg.Proxy.Port)
		}
	}

	// fetch
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = defaultUserAgent
	}
	if cfg.Fetch.Timeout < 0 {
		return errors.New("fetch.timeout must not be negative")
	}
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = Duration(defaultTimeout)
	}

	// storage
	if cfg.Storage.Driver != "file" && cfg.Storage.Driver != "sqlite" {
		return fmt.Errorf("storage.driver must be 'file' or 'sqlite'; got %q", cfg.Storage.Driver)
	}
	if cfg.Storage.Path == "" {
		return errors.New("storage.path is required")
	}

	// session
	if cfg.Session.FetchMode == "" {
		cfg.Session.FetchMode = "replace"
	}
	if cfg.Session.FetchMode != "replace" && cfg.Session.FetchMode != "append" {
		return fmt.Errorf("session.fetch_mode must be 'replace' or 'append'; got %q", cfg.Session.FetchMode)
	}

	return nil
}
