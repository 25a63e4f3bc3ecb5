package service

import (
	"fmt"

	"github.com/tasksync-dev/tasksync/internal/adapter"
	"github.com/tasksync-dev/tasksync/internal/config"
	"github.com/tasksync-dev/tasksync/internal/logger"
	"github.com/tasksync-dev/tasksync/internal/store"
)

// ClientServices bundles everything the client UI and workers consume.
type ClientServices struct {
	Engine  SyncEngine
	AppInfo AppInfoService

	// Events is the broadcaster the engine publishes to; UI components
	// subscribe here.
	Events *Broadcaster
}

func NewClientServices(
	storages *store.ClientStorages,
	remote adapter.RemoteClient,
	cfg *config.ClientConfig,
	log *logger.Logger,
) (*ClientServices, error) {
	appInfo, err := NewAppInfoService(cfg.App.Version, log)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	events := NewBroadcaster()
	engine := NewSyncEngine(storages, remote, events, cfg.Workers, log)

	return &ClientServices{
		Engine:  engine,
		AppInfo: appInfo,
		Events:  events,
	}, nil
}
