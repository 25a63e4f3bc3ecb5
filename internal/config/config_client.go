package config

import (
	"fmt"
	"time"
)

// ClientConfig is the view of StructuredConfig consumed by the client
// application: local storage, remote endpoint and background workers.
type ClientConfig struct {
	App     ClientApp
	Storage ClientStorage
	Remote  ClientRemote
	Workers ClientWorkers
}

type ClientApp struct {
	Version string
}

type ClientStorage struct {
	DB ClientDB
}

type ClientDB struct {
	// Path is the location of the SQLite database file. Created on first run.
	Path string
}

type ClientRemote struct {
	// HTTPAddress is the base address of the remote task server, host:port.
	HTTPAddress string
	// RequestTimeout bounds every single HTTP request to the remote.
	RequestTimeout time.Duration
	// SubscribeRetryInterval is the pause before redialing a dropped
	// snapshot subscription.
	SubscribeRetryInterval time.Duration
}

type ClientWorkers struct {
	// StartupSyncTimeout bounds the initial fetch-and-merge at startup.
	// When it expires the client proceeds with local data only.
	StartupSyncTimeout time.Duration
	// NetResampleInterval is how often connectivity is re-checked in
	// addition to push notifications from the platform.
	NetResampleInterval time.Duration
}

// GetClientConfig assembles the client view from all configuration sources,
// fills unset fields with defaults and validates the result.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error getting structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Version: cfg.App.Version,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				Path: cfg.Storage.DB.Path,
			},
		},
		Remote: ClientRemote{
			HTTPAddress:            cfg.Remote.HTTPAddress,
			RequestTimeout:         cfg.Remote.RequestTimeout,
			SubscribeRetryInterval: cfg.Remote.SubscribeRetryInterval,
		},
		Workers: ClientWorkers{
			StartupSyncTimeout:  cfg.Workers.StartupSyncTimeout,
			NetResampleInterval: cfg.Workers.NetResampleInterval,
		},
	}
	clientCfg.applyDefaults()

	if err := clientCfg.validate(); err != nil {
		return nil, fmt.Errorf("error validating client configs: %w", err)
	}

	return clientCfg, nil
}

func (c *ClientConfig) applyDefaults() {
	if c.App.Version == "" {
		c.App.Version = DefaultAppVersion
	}
	if c.Storage.DB.Path == "" {
		c.Storage.DB.Path = DefaultDatabasePath
	}
	if c.Remote.HTTPAddress == "" {
		c.Remote.HTTPAddress = DefaultRemoteAddress
	}
	if c.Remote.RequestTimeout == 0 {
		c.Remote.RequestTimeout = DefaultRequestTimeout
	}
	if c.Remote.SubscribeRetryInterval == 0 {
		c.Remote.SubscribeRetryInterval = DefaultSubscribeRetryInterval
	}
	if c.Workers.StartupSyncTimeout == 0 {
		c.Workers.StartupSyncTimeout = DefaultStartupSyncTimeout
	}
	if c.Workers.NetResampleInterval == 0 {
		c.Workers.NetResampleInterval = DefaultNetResampleInterval
	}
}
