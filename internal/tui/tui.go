// Package tui implements the terminal user interface of the task client.
//
// The interface is a single task-list screen with inline add/edit forms and a
// status bar driven by sync engine events. All mutations go through the sync
// engine, so the UI stays responsive while offline and converges once the
// network returns.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tasksync-dev/tasksync/internal/logger"
	"github.com/tasksync-dev/tasksync/internal/service"
	"github.com/tasksync-dev/tasksync/models"
)

type TUI struct {
	services *service.ClientServices
}

func New(services *service.ClientServices, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services}, nil
}

// Run starts the task list screen and blocks until the user quits or the
// program is killed. The engine event subscription lives exactly as long as
// the program run.
func (t *TUI) Run(ctx context.Context, buildInfo models.AppBuildInfo) error {
	sub := t.services.Events.Subscribe()
	defer sub.Close()

	model := newTaskListModel(ctx, t.services, sub, buildInfo)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return runErr
	}

	if _, ok := finalModel.(taskListModel); !ok {
		return tea.ErrProgramKilled
	}
	return nil
}
