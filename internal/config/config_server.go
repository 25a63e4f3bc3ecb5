package config

import (
	"fmt"
	"time"
)

// ServerConfig is the view of StructuredConfig consumed by the reference
// task server.
type ServerConfig struct {
	App    ServerApp
	Server ServerHTTP
}

type ServerApp struct {
	Version string
}

type ServerHTTP struct {
	// HTTPAddress is the listen address, host:port.
	HTTPAddress string
	// RequestTimeout bounds request handling.
	RequestTimeout time.Duration
	// ShutdownTimeout bounds graceful shutdown after a stop signal.
	ShutdownTimeout time.Duration
}

// GetServerConfig assembles the server view from all configuration sources,
// fills unset fields with defaults and validates the result.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error getting structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		App: ServerApp{
			Version: cfg.App.Version,
		},
		Server: ServerHTTP{
			HTTPAddress:     cfg.Server.HTTPAddress,
			RequestTimeout:  cfg.Server.RequestTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
		},
	}
	serverCfg.applyDefaults()

	if err := serverCfg.validate(); err != nil {
		return nil, fmt.Errorf("error validating server configs: %w", err)
	}

	return serverCfg, nil
}

func (c *ServerConfig) applyDefaults() {
	if c.App.Version == "" {
		c.App.Version = DefaultAppVersion
	}
	if c.Server.HTTPAddress == "" {
		c.Server.HTTPAddress = DefaultServerAddress
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = DefaultRequestTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
}
