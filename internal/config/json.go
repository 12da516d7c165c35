package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		Environment           string   `json:"environment"`
		LogLevel              string   `json:"log_level"`
		PublicURL             string   `json:"public_url"`
		SecureCookies         bool     `json:"secure_cookies"`
		SessionMaxAge         Duration `json:"session_max_age"`
		ResetCheckUserExists  bool     `json:"reset_check_user_exists"`
		SettingsEncryptionKey string   `json:"settings_encryption_key"`
		Version               string   `json:"version"`
	} `json:"app,omitempty"`

	Identity struct {
		URL            string   `json:"url"`
		AnonKey        string   `json:"anon_key"`
		ServiceRoleKey string   `json:"service_role_key"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"identity,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Telemetry struct {
		OTLPEndpoint string `json:"otlp_endpoint"`
		Insecure     bool   `json:"insecure"`
		ServiceName  string `json:"service_name"`
	} `json:"telemetry,omitempty"`

	Workers struct {
		HealthInterval Duration `json:"health_interval"`
	} `json:"workers,omitempty"`

	Client struct {
		BaseURL        string   `json:"base_url"`
		RequestTimeout Duration `json:"request_timeout"`
		SessionFile    string   `json:"session_file"`
	} `json:"client,omitempty"`
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
			Environment:           jsonCfg.App.Environment,
			LogLevel:              jsonCfg.App.LogLevel,
			PublicURL:             jsonCfg.App.PublicURL,
			SecureCookies:         jsonCfg.App.SecureCookies,
			SessionMaxAge:         time.Duration(jsonCfg.App.SessionMaxAge),
			ResetCheckUserExists:  jsonCfg.App.ResetCheckUserExists,
			SettingsEncryptionKey: jsonCfg.App.SettingsEncryptionKey,
			Version:               jsonCfg.App.Version,
		},
		Identity: Identity{
			URL:            jsonCfg.Identity.URL,
			AnonKey:        jsonCfg.Identity.AnonKey,
			ServiceRoleKey: jsonCfg.Identity.ServiceRoleKey,
			RequestTimeout: time.Duration(jsonCfg.Identity.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Telemetry: Telemetry{
			OTLPEndpoint: jsonCfg.Telemetry.OTLPEndpoint,
			Insecure:     jsonCfg.Telemetry.Insecure,
			ServiceName:  jsonCfg.Telemetry.ServiceName,
		},
		Workers: Workers{
			HealthInterval: time.Duration(jsonCfg.Workers.HealthInterval),
		},
		Client: Client{
			BaseURL:        jsonCfg.Client.BaseURL,
			RequestTimeout: time.Duration(jsonCfg.Client.RequestTimeout),
			SessionFile:    jsonCfg.Client.SessionFile,
		},
	}

	return cfg, nil
}

// Duration accepts both "1h30m" strings and integer nanoseconds in JSON.
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
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
