package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/tasksync-dev/tasksync/internal/adapter"
	"github.com/tasksync-dev/tasksync/internal/logger"
	"github.com/tasksync-dev/tasksync/internal/netmon"
	"github.com/tasksync-dev/tasksync/internal/service"
	"github.com/tasksync-dev/tasksync/internal/tui"
	"github.com/tasksync-dev/tasksync/internal/workers"
	"github.com/tasksync-dev/tasksync/models"
)

type App struct {
	services *service.ClientServices
	remote   adapter.RemoteClient
	monitor  *netmon.Monitor
	tui      *tui.TUI

	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func NewApp(services *service.ClientServices, remote adapter.RemoteClient, monitor *netmon.Monitor, ui *tui.TUI, buildInfo models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	if services == nil || remote == nil || monitor == nil || ui == nil {
		return nil, errMissingDependency
	}

	return &App{
		services:  services,
		remote:    remote,
		monitor:   monitor,
		tui:       ui,
		buildInfo: buildInfo,
		logger:    logger,
	}, nil
}

// Run bootstraps the sync engine, starts the background workers and hands the
// terminal over to the TUI. Workers are stopped once the user quits.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(a.logger.WithContext(context.Background()))
	defer cancel()

	if err := a.services.Engine.Bootstrap(ctx); err != nil {
		return fmt.Errorf("bootstrap sync engine: %w", err)
	}

	background := workers.NewWorkers(
		workers.WorkerFunc(func(ctx context.Context) { _ = a.monitor.Run(ctx) }),
		workers.WorkerFunc(a.services.Engine.Run),
		workers.WorkerFunc(a.watchNetwork),
		workers.WorkerFunc(a.subscribeSnapshots),
	)
	background.Run(ctx)

	runErr := a.tui.Run(ctx, a.buildInfo)

	cancel()
	background.Wait()

	if runErr != nil {
		return fmt.Errorf("run tui: %w", runErr)
	}

	a.logger.Info().Msg("client stopped")
	return nil
}

// watchNetwork forwards connectivity transitions from the monitor to the sync
// engine until ctx is cancelled.
func (a *App) watchNetwork(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case online := <-a.monitor.Updates():
			a.services.Engine.SetOnline(online)
		}
	}
}

// subscribeSnapshots keeps the push subscription to the server alive; every
// received snapshot is handed to the engine for merging.
func (a *App) subscribeSnapshots(ctx context.Context) {
	err := a.remote.Subscribe(ctx, func(tasks []models.Task) {
		if handleErr := a.services.Engine.HandleSnapshot(ctx, tasks); handleErr != nil {
			a.logger.Err(handleErr).Str("func", "App.subscribeSnapshots").Msg("failed to apply pushed snapshot")
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Err(err).Str("func", "App.subscribeSnapshots").Msg("snapshot subscription stopped")
	}
}
