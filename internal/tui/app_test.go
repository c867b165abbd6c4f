package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"feedlog-cli/internal/form"
	"feedlog-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeAPI struct {
	mu sync.Mutex

	records []model.Record

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int

	failSave   error
	failDelete error

	lastCreate   model.RecordPayload
	lastUpdateID string
	lastDeleteID string
}

func (f *fakeAPI) List(ctx context.Context) ([]model.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.records, nil
}

func (f *fakeAPI) Create(ctx context.Context, p model.RecordPayload) (model.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.lastCreate = p
	if f.failSave != nil {
		return model.Record{}, f.failSave
	}
	return model.Record{ID: "new", Timestamp: p.Timestamp, Weight: p.Weight, Animal: p.Animal}, nil
}

func (f *fakeAPI) Update(ctx context.Context, id string, p model.RecordPayload) (model.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.lastUpdateID = id
	if f.failSave != nil {
		return model.Record{}, f.failSave
	}
	return model.Record{ID: id, Timestamp: p.Timestamp, Weight: p.Weight, Animal: p.Animal}, nil
}

func (f *fakeAPI) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	f.lastDeleteID = id
	return f.failDelete
}

var tuiTestNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestModel(fake *fakeAPI) appModel {
	mgr := form.NewManager(
		form.WithClock(func() time.Time { return tuiTestNow }),
		form.WithLocation(time.UTC),
	)
	m := newAppModel(fake, mgr)
	m.width = 100
	m.height = 40
	m.resizeList()
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func withRecords(t *testing.T, m appModel, recs []model.Record) appModel {
	t.Helper()
	mAny, _ := m.Update(recordsLoadedMsg{records: recs})
	return mAny.(appModel)
}

func sampleRecords() []model.Record {
	return []model.Record{
		{ID: "7", Timestamp: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC), Weight: 300, Animal: model.AnimalDog},
		{ID: "8", Timestamp: time.Date(2024, 1, 15, 6, 30, 0, 0, time.UTC), Weight: 250, Animal: model.AnimalCat},
	}
}

func TestSubmit_InvalidWeight_NoNetworkCall(t *testing.T) {
	fake := &fakeAPI{}
	m := newTestModel(fake)
	m.weightInput.SetValue("-5")

	mAny, cmd := m.Update(keyMsg("enter"))
	m2 := mAny.(appModel)

	if cmd != nil {
		t.Fatalf("expected no command for invalid submit")
	}
	if fake.createCalls != 0 {
		t.Fatalf("create called %d times, want 0", fake.createCalls)
	}
	if m2.form.Mode() != form.ModeCreating {
		t.Fatalf("mode changed on invalid submit")
	}
	if !strings.Contains(m2.View(), "Weight must be a positive number.") {
		t.Fatalf("expected inline weight error in view")
	}
}

func TestSubmit_ValidCreate_CallsAPIAndResets(t *testing.T) {
	fake := &fakeAPI{}
	m := newTestModel(fake)
	m.dateInput.SetValue("2024-01-15")
	m.timeInput.SetValue("08:30:00")
	m.weightInput.SetValue("250")

	mAny, cmd := m.Update(keyMsg("enter"))
	m2 := mAny.(appModel)
	if cmd == nil {
		t.Fatalf("expected a save command")
	}
	if !m2.form.InFlight() {
		t.Fatalf("expected in-flight after valid submit")
	}

	msg := cmd()
	if fake.createCalls != 1 {
		t.Fatalf("create called %d times, want 1", fake.createCalls)
	}
	want := time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)
	if !fake.lastCreate.Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", fake.lastCreate.Timestamp, want)
	}

	mAny, cmd = m2.Update(msg)
	m3 := mAny.(appModel)
	if m3.form.InFlight() {
		t.Fatalf("still in flight after success")
	}
	if d := m3.form.Draft(); d.Weight != "" || d.Animal != "cat" || d.Date != "2024-06-01" {
		t.Fatalf("draft not reset: %+v", d)
	}
	if m3.weightInput.Value() != "" {
		t.Fatalf("weight input not cleared")
	}

	// Success triggers a full list reload.
	if cmd == nil {
		t.Fatalf("expected reload command after save")
	}
	cmd()
	if fake.listCalls != 1 {
		t.Fatalf("list called %d times, want 1", fake.listCalls)
	}
}

func TestSubmit_RefusedWhileInFlight(t *testing.T) {
	fake := &fakeAPI{}
	m := newTestModel(fake)
	m.dateInput.SetValue("2024-01-15")
	m.timeInput.SetValue("08:30:00")
	m.weightInput.SetValue("250")

	mAny, cmd := m.Update(keyMsg("enter"))
	m2 := mAny.(appModel)
	if cmd == nil {
		t.Fatalf("expected a save command")
	}

	// A second enter before the first settles must not produce a request.
	mAny, cmd2 := m2.Update(keyMsg("enter"))
	m3 := mAny.(appModel)
	if cmd2 != nil {
		t.Fatalf("expected no command while in flight")
	}
	if !strings.Contains(m3.View(), "A save is already in progress.") {
		t.Fatalf("expected in-flight notice")
	}
}

func TestSubmit_FailureKeepsDraftAndShowsNotice(t *testing.T) {
	fake := &fakeAPI{failSave: errors.New("Weight cannot exceed 10000 grams.")}
	m := newTestModel(fake)
	m.dateInput.SetValue("2024-01-15")
	m.timeInput.SetValue("08:30:00")
	m.weightInput.SetValue("250")

	mAny, cmd := m.Update(keyMsg("enter"))
	m2 := mAny.(appModel)
	msg := cmd()

	mAny, _ = m2.Update(msg)
	m3 := mAny.(appModel)
	if m3.form.InFlight() {
		t.Fatalf("in-flight not released on failure")
	}
	if d := m3.form.Draft(); d.Weight != "250" {
		t.Fatalf("draft lost on failure: %+v", d)
	}
	if m3.modal != modalNotice {
		t.Fatalf("expected blocking notice modal, got %v", m3.modal)
	}
	if !strings.Contains(m3.View(), "Save failed: Weight cannot exceed 10000 grams.") {
		t.Fatalf("expected failure notice, view:\n%s", m3.View())
	}

	// Dismissing returns to the untouched form.
	mAny, _ = m3.Update(keyMsg("enter"))
	m4 := mAny.(appModel)
	if m4.modal != modalNone {
		t.Fatalf("notice modal did not dismiss")
	}
	if d := m4.form.Draft(); d.Weight != "250" {
		t.Fatalf("draft lost on dismiss: %+v", d)
	}
}

func TestEdit_PrefillsFormAndSubmitsUpdate(t *testing.T) {
	fake := &fakeAPI{}
	m := newTestModel(fake)
	m = withRecords(t, m, sampleRecords())
	m.pane = paneList

	mAny, _ := m.Update(keyMsg("e"))
	m2 := mAny.(appModel)

	if m2.form.Mode() != form.ModeEditing || m2.form.EditTargetID() != "7" {
		t.Fatalf("expected editing record 7, got mode=%v id=%q", m2.form.Mode(), m2.form.EditTargetID())
	}
	if m2.pane != paneForm {
		t.Fatalf("expected focus back on the form")
	}
	if m2.dateInput.Value() != "2024-02-01" || m2.timeInput.Value() != "10:00:00" {
		t.Fatalf("prefill = (%q, %q)", m2.dateInput.Value(), m2.timeInput.Value())
	}
	if m2.weightInput.Value() != "300" {
		t.Fatalf("weight prefill = %q", m2.weightInput.Value())
	}

	mAny, cmd := m2.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatalf("expected a save command")
	}
	cmd()
	if fake.updateCalls != 1 || fake.lastUpdateID != "7" {
		t.Fatalf("update calls=%d id=%q, want 1 call for 7", fake.updateCalls, fake.lastUpdateID)
	}
	if fake.createCalls != 0 {
		t.Fatalf("edit submit must not create")
	}
	_ = mAny
}

func TestEdit_EscCancelsBackToCreating(t *testing.T) {
	fake := &fakeAPI{}
	m := newTestModel(fake)
	m = withRecords(t, m, sampleRecords())
	m.pane = paneList

	mAny, _ := m.Update(keyMsg("e"))
	m2 := mAny.(appModel)
	mAny, _ = m2.Update(keyMsg("esc"))
	m3 := mAny.(appModel)

	if m3.form.Mode() != form.ModeCreating {
		t.Fatalf("esc did not cancel edit")
	}
	if m3.weightInput.Value() != "" {
		t.Fatalf("inputs not reset after cancel")
	}
}

func TestDelete_DeclinedConfirmationIsNoOp(t *testing.T) {
	fake := &fakeAPI{}
	m := newTestModel(fake)
	m = withRecords(t, m, sampleRecords())
	m.pane = paneList

	mAny, _ := m.Update(keyMsg("d"))
	m2 := mAny.(appModel)
	if m2.modal != modalConfirmDelete {
		t.Fatalf("expected confirm modal")
	}
	if !strings.Contains(m2.View(), "Are you sure") {
		t.Fatalf("expected confirmation prompt in view")
	}

	mAny, cmd := m2.Update(keyMsg("esc"))
	m3 := mAny.(appModel)
	if cmd != nil {
		t.Fatalf("declining must not issue a request")
	}
	if m3.modal != modalNone || m3.deleteTargetID != "" {
		t.Fatalf("modal state not cleared")
	}
	if fake.deleteCalls != 0 {
		t.Fatalf("delete called %d times, want 0", fake.deleteCalls)
	}
}

func TestDelete_ConfirmedIssuesCallAndReloads(t *testing.T) {
	fake := &fakeAPI{}
	m := newTestModel(fake)
	m = withRecords(t, m, sampleRecords())
	m.pane = paneList

	mAny, _ := m.Update(keyMsg("d"))
	m2 := mAny.(appModel)
	mAny, cmd := m2.Update(keyMsg("enter"))
	m3 := mAny.(appModel)
	if cmd == nil {
		t.Fatalf("expected a delete command")
	}

	msg := cmd()
	if fake.deleteCalls != 1 || fake.lastDeleteID != "7" {
		t.Fatalf("delete calls=%d id=%q, want 1 call for 7", fake.deleteCalls, fake.lastDeleteID)
	}

	mAny, cmd = m3.Update(msg)
	if cmd == nil {
		t.Fatalf("expected reload after delete")
	}
	cmd()
	if fake.listCalls != 1 {
		t.Fatalf("list calls=%d, want 1", fake.listCalls)
	}
	_ = mAny
}

func TestListRefreshFailure_NonBlockingNotice(t *testing.T) {
	fake := &fakeAPI{}
	m := newTestModel(fake)

	mAny, _ := m.Update(recordsLoadedMsg{err: errors.New("connection refused")})
	m2 := mAny.(appModel)

	if m2.modal != modalNone {
		t.Fatalf("list failure must not open a modal")
	}
	if !strings.Contains(m2.View(), "List refresh failed: connection refused") {
		t.Fatalf("expected non-blocking notice, view:\n%s", m2.View())
	}
}

func TestAnimalSelector_CyclesFixedSet(t *testing.T) {
	fake := &fakeAPI{}
	m := newTestModel(fake)
	m.setFocus(focusAnimal)

	mAny, _ := m.Update(keyMsg("l"))
	m2 := mAny.(appModel)
	if got := m2.form.Draft().Animal; got != "dog" {
		t.Fatalf("animal = %q, want dog", got)
	}

	mAny, _ = m2.Update(keyMsg("l"))
	m3 := mAny.(appModel)
	if got := m3.form.Draft().Animal; got != "hamster" {
		t.Fatalf("animal = %q, want hamster", got)
	}

	// Wraps around.
	mAny, _ = m3.Update(keyMsg("l"))
	m4 := mAny.(appModel)
	if got := m4.form.Draft().Animal; got != "cat" {
		t.Fatalf("animal = %q, want cat", got)
	}
}

func TestHelpModal_OpensAndCloses(t *testing.T) {
	fake := &fakeAPI{}
	m := newTestModel(fake)
	m.pane = paneList

	mAny, _ := m.Update(keyMsg("?"))
	m2 := mAny.(appModel)
	if m2.modal != modalHelp {
		t.Fatalf("expected help modal")
	}
	mAny, _ = m2.Update(keyMsg("esc"))
	m3 := mAny.(appModel)
	if m3.modal != modalNone {
		t.Fatalf("help modal did not close")
	}
}
