// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration of the server.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env: environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application behaviour: environment, cookies, reset policy.
	App App `envPrefix:"APP_"`

	// Identity points at the hosted auth backend.
	Identity Identity `envPrefix:"IDENTITY_"`

	// Storage holds the settings/posts database connection.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses and request timeouts.
	Server Server `envPrefix:"SERVER_"`

	// Telemetry configures OpenTelemetry tracing. Tracing is off when
	// OTLPEndpoint is empty.
	Telemetry Telemetry `envPrefix:"TELEMETRY_"`

	// Workers configures background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// Client configures the command-line client.
	Client Client `envPrefix:"CLIENT_"`

	// JSONFilePath is the optional path to a JSON config file.
	// Env: CONFIG, flags: -c, -config.
	JSONFilePath string `env:"CONFIG"`

	// DotEnvPath is the .env file loaded before env parsing.
	// Env: DOTENV_PATH. Defaults to ".env"; a missing file is ignored.
	DotEnvPath string `env:"DOTENV_PATH"`
}

// App holds application-level settings.
type App struct {
	// Environment is "development" or "production".
	// Env: APP_ENV
	Environment string `env:"ENV"`

	// LogLevel is a zerolog level name.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// PublicURL is the externally visible base URL used to build the
	// redirect links embedded in confirmation and recovery emails.
	// Env: APP_PUBLIC_URL
	PublicURL string `env:"PUBLIC_URL"`

	// SecureCookies forces the Secure attribute on the session cookie.
	// Production always sets it.
	// Env: APP_SECURE_COOKIES
	SecureCookies bool `env:"SECURE_COOKIES"`

	// SessionMaxAge is the Max-Age of the session cookie.
	// Env: APP_SESSION_MAX_AGE
	SessionMaxAge time.Duration `env:"SESSION_MAX_AGE"`

	// ResetCheckUserExists makes the reset request look the email up and
	// answer 404 for unknown accounts. The lookup pages through the
	// provider's user list, one admin request per 50 accounts. Off by default.
	// Env: APP_RESET_CHECK_USER_EXISTS
	ResetCheckUserExists bool `env:"RESET_CHECK_USER_EXISTS"`

	// SettingsEncryptionKey seals integration API keys at rest. Empty keeps
	// them in plain text.
	// Env: APP_SETTINGS_ENCRYPTION_KEY
	SettingsEncryptionKey string `env:"SETTINGS_ENCRYPTION_KEY"`

	// Version overrides the build version reported by /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// IsProduction reports whether the app runs in production mode.
func (a App) IsProduction() bool {
	return a.Environment == EnvironmentProduction
}

// Identity holds the hosted auth backend settings.
type Identity struct {
	// URL is the project base URL, e.g. https://xyz.supabase.co.
	// Env: IDENTITY_URL
	URL string `env:"URL"`

	// AnonKey is the unprivileged API key.
	// Env: IDENTITY_ANON_KEY
	AnonKey string `env:"ANON_KEY"`

	// ServiceRoleKey is the elevated API key. It never leaves the server.
	// Env: IDENTITY_SERVICE_ROLE_KEY
	ServiceRoleKey string `env:"SERVICE_ROLE_KEY"`

	// RequestTimeout bounds each call to the backend. Zero means no timeout.
	// Env: IDENTITY_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the relational database connection.
type DB struct {
	// Driver is "pgx" or "sqlite3".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the connection string for Driver.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds inbound transport settings.
type Server struct {
	// HTTPAddress is the HTTP listen address in host:port form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the gRPC health listen address. Empty disables gRPC.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout caps the time a handler may spend on one request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Telemetry configures trace export.
type Telemetry struct {
	// OTLPEndpoint is the OTLP/gRPC collector address, e.g. localhost:4317.
	// Env: TELEMETRY_OTLP_ENDPOINT
	OTLPEndpoint string `env:"OTLP_ENDPOINT"`

	// Insecure disables TLS towards the collector.
	// Env: TELEMETRY_INSECURE
	Insecure bool `env:"INSECURE"`

	// ServiceName is reported as service.name.
	// Env: TELEMETRY_SERVICE_NAME
	ServiceName string `env:"SERVICE_NAME"`
}

// Workers configures background jobs.
type Workers struct {
	// HealthInterval is how often the identity backend is probed.
	// Env: WORKERS_HEALTH_INTERVAL
	HealthInterval time.Duration `env:"HEALTH_INTERVAL"`
}

// Client configures the command-line client.
type Client struct {
	// BaseURL is the postdesk server the CLI talks to.
	// Env: CLIENT_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds each CLI request.
	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// SessionFile is where the CLI keeps its session between invocations.
	// Env: CLIENT_SESSION_FILE
	SessionFile string `env:"SESSION_FILE"`
}

// GetStructuredConfig loads the server configuration from all sources,
// fills defaults and validates the result.
func GetStructuredConfig() (*StructuredConfig, error) {
	return loadServerConfig(osArgs())
}

func loadServerConfig(args []string) (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags(args).
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return cfg, cfg.validate()
}

// GetClientConfig loads the CLI configuration. Flags are left to the CLI
// itself, so only .env, environment and the JSON file are consulted.
func GetClientConfig() (*Client, error) {
	cfg, err := newConfigBuilder().
		withDotEnv().
		withEnv().
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	cfg.applyClientDefaults()
	return &cfg.Client, cfg.Client.validate()
}
