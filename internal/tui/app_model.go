package tui

import (
	"time"

	"feedlog-cli/internal/form"
	"feedlog-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
)

type pane int

const (
	paneForm pane = iota
	paneList
)

type focusField int

const (
	focusDate focusField = iota
	focusTime
	focusWeight
	focusAnimal
)

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmDelete
	modalHelp
	// modalNotice blocks until dismissed; used for failed writes, which must
	// not scroll by unnoticed the way a stale-list warning may.
	modalNotice
)

type appModel struct {
	client RecordsAPI
	form   *form.Manager

	width  int
	height int

	pane  pane
	focus focusField

	dateInput   textinput.Model
	timeInput   textinput.Model
	weightInput textinput.Model
	// animalIdx indexes model.Animals(); the animal field is a selector, not
	// free text, so the UI restricts input to the fixed set (the validator
	// re-checks membership anyway).
	animalIdx int

	recordsList list.Model
	loadingList bool

	spin spinner.Model

	// notice is the status-line message: request failures and other
	// non-field feedback. Field-level validation errors render inline next to
	// their inputs instead.
	notice    string
	noticeErr bool

	modal          modalKind
	modalFocus     confirmModalFocus
	deleteTargetID string
	noticeModal    string

	requestTimeout time.Duration
}

func newAppModel(client RecordsAPI, mgr *form.Manager) appModel {
	m := appModel{
		client:         client,
		form:           mgr,
		requestTimeout: 10 * time.Second,
	}

	m.dateInput = textinput.New()
	m.dateInput.Placeholder = "YYYY-MM-DD"
	m.dateInput.CharLimit = 10
	m.dateInput.Width = 12
	m.dateInput.Prompt = ""

	m.timeInput = textinput.New()
	m.timeInput.Placeholder = "HH:MM:SS"
	m.timeInput.CharLimit = 8
	m.timeInput.Width = 10
	m.timeInput.Prompt = ""

	m.weightInput = textinput.New()
	m.weightInput.Placeholder = "grams"
	m.weightInput.CharLimit = 8
	m.weightInput.Width = 10
	m.weightInput.Prompt = ""

	m.recordsList = newList(nil)
	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.loadingList = true

	m.syncInputsFromDraft()
	m.setFocus(focusDate)
	return m
}

// syncInputsFromDraft makes the visible inputs mirror the manager's draft
// (after reset, edit prefill, or cancel).
func (m *appModel) syncInputsFromDraft() {
	d := m.form.Draft()
	m.dateInput.SetValue(d.Date)
	m.timeInput.SetValue(d.Time)
	m.weightInput.SetValue(d.Weight)

	m.animalIdx = 0
	for i, a := range model.Animals() {
		if string(a) == d.Animal {
			m.animalIdx = i
			break
		}
	}
}

// syncDraftFromInputs pushes the visible input values into the manager before
// any transition that reads the draft.
func (m *appModel) syncDraftFromInputs() {
	m.form.SetField(form.FieldDate, m.dateInput.Value())
	m.form.SetField(form.FieldTime, m.timeInput.Value())
	m.form.SetField(form.FieldWeight, m.weightInput.Value())
	m.form.SetField(form.FieldAnimal, string(model.Animals()[m.animalIdx]))
}

func (m *appModel) setFocus(f focusField) {
	m.focus = f
	m.dateInput.Blur()
	m.timeInput.Blur()
	m.weightInput.Blur()
	switch f {
	case focusDate:
		m.dateInput.Focus()
	case focusTime:
		m.timeInput.Focus()
	case focusWeight:
		m.weightInput.Focus()
	}
}

func (m *appModel) setRecords(recs []model.Record) {
	items := make([]list.Item, 0, len(recs))
	for _, rec := range recs {
		items = append(items, recordItem{rec: rec})
	}
	m.recordsList.SetItems(items)
}

func (m appModel) selectedRecord() (model.Record, bool) {
	it, ok := m.recordsList.SelectedItem().(recordItem)
	if !ok {
		return model.Record{}, false
	}
	return it.rec, true
}

func (m *appModel) cycleAnimal(delta int) {
	animals := model.Animals()
	m.animalIdx = (m.animalIdx + delta + len(animals)) % len(animals)
	m.form.SetField(form.FieldAnimal, string(animals[m.animalIdx]))
}
