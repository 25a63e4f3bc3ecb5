package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tasksync-dev/tasksync/internal/service"
	"github.com/tasksync-dev/tasksync/models"
)

const listHotKeys = "a: add │ e: edit │ space: toggle done │ ctrl+d: delete │ s: sync │ v: about │ q: quit"

type taskListModel struct {
	ctx       context.Context
	services  *service.ClientServices
	sub       *service.Subscription
	buildInfo models.AppBuildInfo
	version   string

	tasks   []models.Task
	idx     int
	loading bool

	online  bool
	syncing bool
	pending int
	spinner spinner.Model

	status string
	errMsg string

	form       formMode
	formInputs []textinput.Model
	formFocus  int
	formTask   models.Task
	saving     bool

	showBuildInfo bool
}

func newTaskListModel(ctx context.Context, services *service.ClientServices, sub *service.Subscription, buildInfo models.AppBuildInfo) taskListModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return taskListModel{
		ctx:       ctx,
		services:  services,
		sub:       sub,
		buildInfo: buildInfo,
		version:   services.AppInfo.GetAppVersion(ctx),
		loading:   true,
		online:    services.Engine.Online(),
		spinner:   s,
	}
}

func (m taskListModel) Init() tea.Cmd {
	return tea.Batch(m.cmdLoadTasks(), m.cmdPendingCount(), waitForEvent(m.sub))
}

func (m taskListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.tasks = msg.tasks
		m.clampCursor()
		return m, nil

	case pendingCountMsg:
		if msg.err == nil {
			m.pending = msg.count
		}
		return m, nil

	case taskSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("save failed: %v", msg.err)
			return m, nil
		}
		m.closeForm()
		m.status = "Task saved"
		m.errMsg = ""
		m.loading = true
		return m, tea.Batch(m.cmdLoadTasks(), m.cmdPendingCount())

	case taskDeletedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("delete failed: %v", msg.err)
			return m, nil
		}
		m.status = "Task deleted"
		m.errMsg = ""
		m.loading = true
		return m, tea.Batch(m.cmdLoadTasks(), m.cmdPendingCount())

	case engineEventMsg:
		return m.applyEngineEvent(msg.event)

	case eventStreamClosedMsg:
		return m, nil

	case spinner.TickMsg:
		if !m.syncing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.form != formNone {
			return m.updateForm(msg)
		}
		return m, nil
	}

	if keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showBuildInfo {
		if key.Matches(keyMsg, keys.esc) || key.Matches(keyMsg, keys.version) {
			m.showBuildInfo = false
		}
		return m, nil
	}

	if m.form != formNone {
		return m.updateForm(msg)
	}

	switch {
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit

	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}

	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.tasks)-1 {
			m.idx++
		}

	case key.Matches(keyMsg, keys.add):
		m.openAddForm()
		return m, textinput.Blink

	case key.Matches(keyMsg, keys.edit):
		task, ok := m.current()
		if !ok {
			m.status = "No tasks"
			return m, nil
		}
		m.openEditForm(task)
		return m, textinput.Blink

	case key.Matches(keyMsg, keys.toggle):
		task, ok := m.current()
		if !ok {
			m.status = "No tasks"
			return m, nil
		}
		task.Done = !task.Done
		return m, m.cmdSaveTask(task)

	case key.Matches(keyMsg, keys.delete):
		task, ok := m.current()
		if !ok {
			m.status = "No tasks"
			return m, nil
		}
		return m, m.cmdDeleteTask(task.ID)

	case key.Matches(keyMsg, keys.sync):
		m.status = "Sync requested"
		return m, m.cmdTriggerSync()

	case key.Matches(keyMsg, keys.version):
		m.showBuildInfo = true
	}

	return m, nil
}

// applyEngineEvent folds one sync engine event into the model and re-arms the
// event subscription.
func (m taskListModel) applyEngineEvent(event models.Event) (tea.Model, tea.Cmd) {
	next := waitForEvent(m.sub)

	switch event.Kind {
	case models.EventStatusChanged:
		m.online = event.Online
		if event.Online {
			m.status = "Back online"
		} else {
			m.status = "Connection lost, mutations are queued locally"
		}
		return m, next

	case models.EventSyncStarted:
		m.syncing = true
		return m, tea.Batch(m.spinner.Tick, next)

	case models.EventSyncCompleted:
		m.syncing = false
		m.pending = event.Remaining
		if event.Remaining == 0 {
			m.status = "Synced"
		} else {
			m.status = fmt.Sprintf("Sync finished, %d change(s) still queued", event.Remaining)
		}
		return m, next

	case models.EventSyncError:
		m.errMsg = event.Message
		return m, next

	case models.EventTasksSynced:
		m.tasks = event.Records
		m.clampCursor()
		m.status = "Tasks updated from server"
		return m, tea.Batch(next, m.cmdPendingCount())

	default:
		return m, next
	}
}

func (m taskListModel) View() string {
	if m.showBuildInfo {
		return renderBuildInfoWindow(m.buildInfo)
	}

	switch m.form {
	case formAdd:
		return m.viewForm("NEW TASK")
	case formEdit:
		return m.viewForm("EDIT TASK")
	}

	out := m.statusBarView() + "\n"

	if m.loading {
		out += "Loading tasks...\n"
		return renderPage("TASKS", strings.TrimRight(out, "\n"), listHotKeys)
	}

	if m.errMsg != "" {
		out += errorStyle.Render("Error: "+m.errMsg) + "\n"
	}
	if m.status != "" {
		out += helpStyle.Render(m.status) + "\n"
	}

	if len(m.tasks) == 0 {
		out += "\nNo tasks yet. Press a to add one.\n"
	} else {
		out += "\n"
		out += "   # │ Done │ Task                        │ Updated\n"
		out += "─────┼──────┼─────────────────────────────┼──────────────────\n"
		for i, task := range m.tasks {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}

			out += fmt.Sprintf(
				"%s %-3d│  %s   │ %-27s │ %s\n",
				cursor,
				i+1,
				doneIcon(task.Done),
				fitText(task.Title, 27),
				task.UpdatedAt.Local().Format("2006-01-02 15:04"),
			)
		}
	}

	return renderPage("TASKS", strings.TrimRight(out, "\n"), listHotKeys)
}

// statusBarView renders the connectivity segment of the list screen.
func (m taskListModel) statusBarView() string {
	version := helpStyle.Render("v" + valueOrNA(m.version))

	var state string
	switch {
	case m.syncing:
		state = syncingStyle.Render(fmt.Sprintf("%s syncing (%d)", m.spinner.View(), m.pending))
	case !m.online:
		state = offlineStyle.Render(fmt.Sprintf("offline (%d queued)", m.pending))
	case m.pending > 0:
		state = syncingStyle.Render(fmt.Sprintf("pending (%d)", m.pending))
	default:
		state = onlineStyle.Render("synced")
	}

	return state + "  " + version
}

func (m taskListModel) current() (models.Task, bool) {
	if len(m.tasks) == 0 || m.idx < 0 || m.idx >= len(m.tasks) {
		return models.Task{}, false
	}
	return m.tasks[m.idx], true
}

func (m *taskListModel) clampCursor() {
	if m.idx >= len(m.tasks) {
		m.idx = len(m.tasks) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m taskListModel) cmdLoadTasks() tea.Cmd {
	ctx := m.ctx
	engine := m.services.Engine

	return func() tea.Msg {
		tasks, err := engine.LocalTasks(ctx, models.TaskFilter{})
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m taskListModel) cmdPendingCount() tea.Cmd {
	ctx := m.ctx
	engine := m.services.Engine

	return func() tea.Msg {
		count, err := engine.PendingCount(ctx)
		return pendingCountMsg{count: count, err: err}
	}
}

func (m taskListModel) cmdSaveTask(task models.Task) tea.Cmd {
	ctx := m.ctx
	engine := m.services.Engine

	return func() tea.Msg {
		_, err := engine.QueueSave(ctx, task)
		return taskSavedMsg{err: err}
	}
}

func (m taskListModel) cmdDeleteTask(id string) tea.Cmd {
	ctx := m.ctx
	engine := m.services.Engine

	return func() tea.Msg {
		err := engine.QueueDelete(ctx, id)
		return taskDeletedMsg{err: err}
	}
}

func (m taskListModel) cmdTriggerSync() tea.Cmd {
	engine := m.services.Engine

	return func() tea.Msg {
		engine.TriggerReplay()
		return nil
	}
}
