package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tasksync-dev/tasksync/internal/service"
	"github.com/tasksync-dev/tasksync/models"
)

type tasksLoadedMsg struct {
	tasks []models.Task
	err   error
}

type pendingCountMsg struct {
	count int
	err   error
}

type taskSavedMsg struct {
	err error
}

type taskDeletedMsg struct {
	err error
}

type engineEventMsg struct {
	event models.Event
}

type eventStreamClosedMsg struct{}

// waitForEvent blocks on the engine event subscription and converts the next
// event into a bubbletea message. The handler of engineEventMsg must re-arm
// it to keep the stream flowing.
func waitForEvent(sub *service.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case event, ok := <-sub.C():
			if !ok {
				return eventStreamClosedMsg{}
			}
			return engineEventMsg{event: event}
		case <-sub.Done():
			return eventStreamClosedMsg{}
		}
	}
}
