package tui

import (
	"strings"

	"feedlog-cli/internal/form"
	"feedlog-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// formSectionHeight is the vertical budget of everything above the list:
// header, four fields with room for inline errors, the save hint.
const formSectionHeight = 13

func (m appModel) View() string {
	w := m.width
	if w <= 0 {
		w = 80
	}

	switch m.modal {
	case modalConfirmDelete:
		return m.placeCentered(renderConfirmModal(
			w,
			"Delete record",
			"Are you sure you want to delete this record?",
			"Delete",
			"Cancel",
			m.modalFocus,
		))
	case modalHelp:
		return m.placeCentered(renderHelpModal(w))
	case modalNotice:
		return m.placeCentered(renderModalBox(w, "Request failed",
			styleError().Width(modalBodyWidth(w)).Render(m.noticeModal)+"\n\n"+styleMuted().Render("enter: dismiss")))
	}

	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("Feeder records")
	b.WriteString(title)
	b.WriteString("\n\n")

	errs := m.form.Errors()
	focusedForm := m.pane == paneForm

	b.WriteString(m.renderField("Date", m.dateInput.View(), errs[form.FieldDate], focusedForm && m.focus == focusDate))
	b.WriteString(m.renderField("Time", m.timeInput.View(), errs[form.FieldTime], focusedForm && m.focus == focusTime))
	b.WriteString(m.renderField("Weight (g)", m.weightInput.View(), errs[form.FieldWeight], focusedForm && m.focus == focusWeight))
	b.WriteString(m.renderField("Animal", m.animalSelectorView(focusedForm && m.focus == focusAnimal), errs[form.FieldAnimal], focusedForm && m.focus == focusAnimal))

	b.WriteString(m.saveHint())
	b.WriteString("\n\n")

	listTitle := "Records"
	if m.pane == paneList {
		listTitle = lipgloss.NewStyle().Bold(true).Render(listTitle)
	}
	if m.loadingList {
		listTitle += " " + m.spin.View()
	}
	b.WriteString(listTitle)
	b.WriteString("\n")
	b.WriteString(m.recordsList.View())
	b.WriteString("\n")

	if m.notice != "" {
		st := styleMuted()
		if m.noticeErr {
			st = styleError()
		}
		b.WriteString(st.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString(styleMuted().Render("tab: fields/list   enter: save   e: edit   d: delete   r: reload   ?: help   q: quit"))
	return b.String()
}

func (m appModel) renderField(label, inputView, fieldErr string, focused bool) string {
	var b strings.Builder
	b.WriteString(styleFieldLabel(focused).Width(12).Render(label))
	b.WriteString(" ")
	b.WriteString(renderInputLine(18, inputView))
	b.WriteString("\n")
	if fieldErr != "" {
		b.WriteString(strings.Repeat(" ", 13))
		b.WriteString(styleError().Render(fieldErr))
		b.WriteString("\n")
	}
	return b.String()
}

func (m appModel) animalSelectorView(focused bool) string {
	animal := string(model.Animals()[m.animalIdx])
	if focused {
		return "< " + animal + " >"
	}
	return "  " + animal
}

func (m appModel) saveHint() string {
	label := "enter: add record"
	if m.form.Mode() == form.ModeEditing {
		label = "enter: save changes to " + m.form.EditTargetID() + "   esc: cancel edit"
	}
	hint := styleMuted().Render(label)
	if m.form.InFlight() {
		hint += " " + m.spin.View() + styleMuted().Render(" saving…")
	}
	return "\n" + hint
}
