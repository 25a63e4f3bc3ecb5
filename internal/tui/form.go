package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tasksync-dev/tasksync/models"
)

type formMode int

const (
	formNone formMode = iota
	formAdd
	formEdit
)

func newFormInputs(title, notes string) []textinput.Model {
	titleInput := textinput.New()
	titleInput.Placeholder = "Title"
	titleInput.Width = 40
	titleInput.SetValue(title)
	titleInput.Focus()

	notesInput := textinput.New()
	notesInput.Placeholder = "Notes (optional)"
	notesInput.Width = 40
	notesInput.SetValue(notes)

	return []textinput.Model{titleInput, notesInput}
}

func (m *taskListModel) openAddForm() {
	m.form = formAdd
	m.formTask = models.Task{}
	m.formInputs = newFormInputs("", "")
	m.formFocus = 0
	m.saving = false
	m.errMsg = ""
}

func (m *taskListModel) openEditForm(task models.Task) {
	m.form = formEdit
	m.formTask = task
	m.formInputs = newFormInputs(task.Title, task.Notes)
	m.formFocus = 0
	m.saving = false
	m.errMsg = ""
}

func (m *taskListModel) closeForm() {
	m.form = formNone
	m.formInputs = nil
	m.formFocus = 0
	m.saving = false
}

func (m taskListModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.closeForm()
			m.errMsg = ""
			return m, nil

		case key.Matches(keyMsg, keys.tab):
			m.formInputs[m.formFocus].Blur()
			m.formFocus = (m.formFocus + 1) % len(m.formInputs)
			m.formInputs[m.formFocus].Focus()
			return m, nil

		case key.Matches(keyMsg, keys.backtab):
			m.formInputs[m.formFocus].Blur()
			m.formFocus = (m.formFocus - 1 + len(m.formInputs)) % len(m.formInputs)
			m.formInputs[m.formFocus].Focus()
			return m, nil

		case key.Matches(keyMsg, keys.enter):
			if m.saving {
				return m, nil
			}

			title := strings.TrimSpace(m.formInputs[0].Value())
			notes := strings.TrimSpace(m.formInputs[1].Value())
			if title == "" {
				m.errMsg = "Title is required"
				return m, nil
			}

			task := m.formTask
			task.Title = title
			task.Notes = notes

			m.errMsg = ""
			m.saving = true
			return m, m.cmdSaveTask(task)
		}
	}

	var cmd tea.Cmd
	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	return m, cmd
}

func (m taskListModel) viewForm(title string) string {
	out := "Field   │ Value\n"
	out += "────────┼──────────────────────────────────────────\n"
	out += "Title   │ [ " + m.formInputs[0].View() + " ]\n"
	out += "Notes   │ [ " + m.formInputs[1].View() + " ]\n"
	if m.saving {
		out += "Action  │ [Saving...]\n"
	} else {
		out += "Action  │ [Save]\n"
	}
	if m.errMsg != "" {
		out += "Error   │ " + m.errMsg + "\n"
	}

	return renderPage(title, strings.TrimRight(out, "\n"), "tab: next field │ shift+tab: previous field │ enter: save │ esc: cancel")
}
