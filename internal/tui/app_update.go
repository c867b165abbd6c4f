package tui

import (
	"context"

	"feedlog-cli/internal/form"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadRecords(), m.spin.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeList()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case recordsLoadedMsg:
		m.loadingList = false
		if msg.err != nil {
			// A stale list is a lesser failure than a lost write: show it in
			// the status line, never as a blocking modal.
			m.notice = "List refresh failed: " + msg.err.Error()
			m.noticeErr = true
			return m, nil
		}
		m.setRecords(msg.records)
		return m, nil

	case saveDoneMsg:
		if msg.err != nil {
			m.form.SubmitFailed()
			m.modal = modalNotice
			m.noticeModal = "Save failed: " + msg.err.Error()
			return m, nil
		}
		m.form.SubmitSucceeded()
		m.syncInputsFromDraft()
		m.notice = ""
		m.noticeErr = false
		m.loadingList = true
		return m, m.loadRecords()

	case deleteDoneMsg:
		if msg.err != nil {
			m.modal = modalNotice
			m.noticeModal = "Delete failed: " + msg.err.Error()
			return m, nil
		}
		m.notice = ""
		m.noticeErr = false
		m.loadingList = true
		return m, m.loadRecords()

	case tea.KeyMsg:
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		if m.pane == paneForm {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		switch m.focus {
		case focusDate:
			m.setFocus(focusTime)
		case focusTime:
			m.setFocus(focusWeight)
		case focusWeight:
			m.setFocus(focusAnimal)
		case focusAnimal:
			m.pane = paneList
		}
		return m, nil

	case "shift+tab":
		switch m.focus {
		case focusDate:
			m.pane = paneList
		case focusTime:
			m.setFocus(focusDate)
		case focusWeight:
			m.setFocus(focusTime)
		case focusAnimal:
			m.setFocus(focusWeight)
		}
		return m, nil

	case "enter":
		return m.submitForm()

	case "esc":
		if m.form.Mode() == form.ModeEditing {
			m.form.EditCanceled()
			m.syncInputsFromDraft()
			m.setFocus(focusDate)
		}
		m.notice = ""
		m.noticeErr = false
		return m, nil
	}

	if m.focus == focusAnimal {
		switch msg.String() {
		case "left", "h":
			m.cycleAnimal(-1)
			return m, nil
		case "right", "l", " ":
			m.cycleAnimal(1)
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusDate:
		m.dateInput, cmd = m.dateInput.Update(msg)
	case focusTime:
		m.timeInput, cmd = m.timeInput.Update(msg)
	case focusWeight:
		m.weightInput, cmd = m.weightInput.Update(msg)
	}
	// Changing a field never re-runs validation; that happens on submit only.
	m.syncDraftFromInputs()
	return m, cmd
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the user types a filter, every key belongs to the list.
	if m.recordsList.SettingFilter() {
		var cmd tea.Cmd
		m.recordsList, cmd = m.recordsList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab":
		m.pane = paneForm
		m.setFocus(focusDate)
		return m, nil

	case "shift+tab":
		m.pane = paneForm
		m.setFocus(focusAnimal)
		return m, nil

	case "e", "enter":
		rec, ok := m.selectedRecord()
		if !ok {
			return m, nil
		}
		m.form.EditRequested(rec)
		m.syncInputsFromDraft()
		m.pane = paneForm
		m.setFocus(focusDate)
		m.notice = ""
		m.noticeErr = false
		return m, nil

	case "d":
		rec, ok := m.selectedRecord()
		if !ok {
			return m, nil
		}
		m.modal = modalConfirmDelete
		m.modalFocus = confirmFocusConfirm
		m.deleteTargetID = rec.ID
		return m, nil

	case "r":
		m.loadingList = true
		return m, m.loadRecords()

	case "?":
		m.modal = modalHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.recordsList, cmd = m.recordsList.Update(msg)
	return m, cmd
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalConfirmDelete:
		switch msg.String() {
		case "tab", "left", "right":
			if m.modalFocus == confirmFocusConfirm {
				m.modalFocus = confirmFocusCancel
			} else {
				m.modalFocus = confirmFocusConfirm
			}
			return m, nil
		case "y":
			return m.confirmDelete()
		case "n", "esc", "ctrl+g":
			// Declining performs no request and leaves state unchanged.
			m.modal = modalNone
			m.deleteTargetID = ""
			return m, nil
		case "enter":
			if m.modalFocus == confirmFocusConfirm {
				return m.confirmDelete()
			}
			m.modal = modalNone
			m.deleteTargetID = ""
			return m, nil
		}
		return m, nil

	case modalHelp:
		switch msg.String() {
		case "esc", "q", "?", "enter":
			m.modal = modalNone
		}
		return m, nil

	case modalNotice:
		switch msg.String() {
		case "esc", "q", "enter", " ":
			m.modal = modalNone
			m.noticeModal = ""
		}
		return m, nil
	}

	m.modal = modalNone
	return m, nil
}

func (m appModel) confirmDelete() (tea.Model, tea.Cmd) {
	id := m.deleteTargetID
	m.modal = modalNone
	m.deleteTargetID = ""
	return m, m.deleteRecord(id)
}

func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	if m.form.InFlight() {
		m.notice = "A save is already in progress."
		m.noticeErr = false
		return m, nil
	}
	m.syncDraftFromInputs()
	sub, ok := m.form.Submit()
	if !ok {
		// Field errors are now published; the view renders them inline.
		return m, nil
	}
	m.notice = ""
	m.noticeErr = false
	return m, m.saveRecord(sub)
}

func (m appModel) loadRecords() tea.Cmd {
	client := m.client
	timeout := m.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		recs, err := client.List(ctx)
		return recordsLoadedMsg{records: recs, err: err}
	}
}

func (m appModel) saveRecord(sub form.Submission) tea.Cmd {
	client := m.client
	timeout := m.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		var err error
		if sub.Update {
			_, err = client.Update(ctx, sub.ID, sub.Payload)
		} else {
			_, err = client.Create(ctx, sub.Payload)
		}
		return saveDoneMsg{err: err}
	}
}

func (m appModel) deleteRecord(id string) tea.Cmd {
	client := m.client
	timeout := m.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return deleteDoneMsg{err: client.Delete(ctx, id)}
	}
}

func (m *appModel) resizeList() {
	w := m.width - 2
	if w < 20 {
		w = 20
	}
	// The form section above the list has a fixed height; give the list the rest.
	h := m.height - formSectionHeight - 4
	if h < 3 {
		h = 3
	}
	m.recordsList.SetSize(w, h)
}
