// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"

	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

const (
	defaultLogLevel       = "debug"
	defaultPublicURL      = "http://localhost:3000"
	defaultSessionMaxAge  = 24 * time.Hour
	defaultHTTPAddress    = ":3000"
	defaultRequestTimeout = 30 * time.Second
	defaultDBDriver       = DriverSQLite
	defaultSQLiteDSN      = "file:postdesk.db?_foreign_keys=on"
	defaultServiceName    = "postdesk"
	defaultHealthInterval = 30 * time.Second
	defaultClientBaseURL  = "http://localhost:3000"
	defaultClientTimeout  = 15 * time.Second
	defaultSessionFile    = ".postdesk-session.json"
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.Environment == "" {
		cfg.App.Environment = EnvironmentDevelopment
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = defaultLogLevel
	}
	if cfg.App.PublicURL == "" {
		cfg.App.PublicURL = defaultPublicURL
	}
	cfg.App.PublicURL = strings.TrimRight(cfg.App.PublicURL, "/")
	if cfg.App.SessionMaxAge == 0 {
		cfg.App.SessionMaxAge = defaultSessionMaxAge
	}
	if cfg.App.IsProduction() {
		cfg.App.SecureCookies = true
	}

	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}

	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = defaultDBDriver
	}
	if cfg.Storage.DB.DSN == "" && cfg.Storage.DB.Driver == DriverSQLite {
		cfg.Storage.DB.DSN = defaultSQLiteDSN
	}

	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = defaultServiceName
	}

	if cfg.Workers.HealthInterval == 0 {
		cfg.Workers.HealthInterval = defaultHealthInterval
	}
}

func (cfg *StructuredConfig) applyClientDefaults() {
	if cfg.Client.BaseURL == "" {
		cfg.Client.BaseURL = defaultClientBaseURL
	}
	if cfg.Client.RequestTimeout == 0 {
		cfg.Client.RequestTimeout = defaultClientTimeout
	}
	if cfg.Client.SessionFile == "" {
		cfg.Client.SessionFile = defaultSessionFilePath()
	}
}

func defaultSessionFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultSessionFile
	}
	return filepath.Join(home, defaultSessionFile)
}

// validate checks the merged server configuration before startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Identity.URL == "" || cfg.Identity.AnonKey == "" || cfg.Identity.ServiceRoleKey == "" {
		return fmt.Errorf("%w: url, anon key and service role key are required", ErrInvalidIdentityConfigs)
	}
	if !isHTTPURL(cfg.Identity.URL) {
		return fmt.Errorf("%w: %q is not an http(s) URL", ErrInvalidIdentityConfigs, cfg.Identity.URL)
	}

	if cfg.App.Environment != EnvironmentDevelopment && cfg.App.Environment != EnvironmentProduction {
		return fmt.Errorf("%w: unknown environment %q", ErrInvalidAppConfigs, cfg.App.Environment)
	}
	if !isHTTPURL(cfg.App.PublicURL) {
		return fmt.Errorf("%w: %q is not an http(s) URL", ErrInvalidAppConfigs, cfg.App.PublicURL)
	}
	if cfg.App.SessionMaxAge < 0 {
		return fmt.Errorf("%w: negative session max age", ErrInvalidAppConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	if cfg.Workers.HealthInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (c Client) validate() error {
	if !isHTTPURL(c.BaseURL) {
		return fmt.Errorf("%w: %q is not an http(s) URL", ErrInvalidClientConfigs, c.BaseURL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidClientConfigs)
	}
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
