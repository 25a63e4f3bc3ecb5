package http

import (
	"github.com/tasksync-dev/tasksync/internal/logger"
	"github.com/tasksync-dev/tasksync/internal/store"
)

type Handler struct {
	directory *store.TaskDirectory
	hub       *WatchHub
	version   string

	logger *logger.Logger
}

func NewHandler(directory *store.TaskDirectory, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		directory: directory,
		hub:       newWatchHub(logger),
		version:   version,
		logger:    logger,
	}
}
