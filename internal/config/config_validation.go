// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strings"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Currently a no-op placeholder; per-view rules live on [ClientConfig] and
// [ServerConfig] and run after defaults have been applied.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.Path == "" {
		return fmt.Errorf("%w: empty database path", ErrInvalidStorageConfigs)
	}
	// queued operations must survive restarts, an in-memory database cannot
	if strings.Contains(cfg.Storage.DB.Path, "memory") {
		return fmt.Errorf("%w: in-memory database is not durable", ErrInvalidStorageConfigs)
	}

	if cfg.Remote.HTTPAddress == "" {
		return fmt.Errorf("%w: empty remote address", ErrInvalidRemoteConfigs)
	}
	if cfg.Remote.RequestTimeout <= 0 {
		return fmt.Errorf("%w: non-positive request timeout", ErrInvalidRemoteConfigs)
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidServerConfigs)
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: non-positive shutdown timeout", ErrInvalidServerConfigs)
	}

	return nil
}
