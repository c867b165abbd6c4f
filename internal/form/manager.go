package form

import (
	"strconv"
	"time"

	"feedlog-cli/internal/model"
	"feedlog-cli/internal/timeconv"
)

// Mode is the entry form's state: creating a new record or editing an
// existing one.
type Mode int

const (
	ModeCreating Mode = iota
	ModeEditing
)

// Submission is what a valid submit produces: the normalized payload plus
// whether it updates an existing record.
type Submission struct {
	Payload model.RecordPayload
	Update  bool
	ID      string // set when Update is true
}

// Manager owns the draft, its validation errors, and the create/edit mode.
// All mutation goes through methods; there is no ambient shared state.
//
// Manager issues no network calls itself. Submit hands back the request to
// perform and the caller reports the outcome via SubmitSucceeded or
// SubmitFailed. While a submission is outstanding (in flight), further
// submits are refused.
type Manager struct {
	mode     Mode
	editID   string
	draft    Draft
	errs     Errors
	inFlight bool

	now func() time.Time
	loc *time.Location
}

type Option func(*Manager)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLocation sets the timezone used for wall-clock conversion. Defaults to
// time.Local.
func WithLocation(loc *time.Location) Option {
	return func(m *Manager) { m.loc = loc }
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		now: time.Now,
		loc: time.Local,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.errs = Errors{}
	m.resetDraft()
	return m
}

func (m *Manager) Draft() Draft        { return m.draft }
func (m *Manager) Errors() Errors      { return m.errs }
func (m *Manager) Mode() Mode          { return m.mode }
func (m *Manager) EditTargetID() string { return m.editID }
func (m *Manager) InFlight() bool      { return m.inFlight }

// SetField records an edit to a single field. No validation runs here;
// validation is submit-triggered only.
func (m *Manager) SetField(field, value string) {
	switch field {
	case FieldDate:
		m.draft.Date = value
	case FieldTime:
		m.draft.Time = value
	case FieldWeight:
		m.draft.Weight = value
	case FieldAnimal:
		m.draft.Animal = value
	}
}

// EditRequested prefills the draft from rec and switches to editing mode,
// decomposing the stored instant into the viewer's wall-clock fields.
func (m *Manager) EditRequested(rec model.Record) {
	date, clock := timeconv.SplitLocal(rec.Timestamp, m.loc)
	m.draft = Draft{
		Date:   date,
		Time:   clock,
		Weight: strconv.FormatFloat(rec.Weight, 'f', -1, 64),
		Animal: string(rec.Animal),
	}
	m.mode = ModeEditing
	m.editID = rec.ID
}

// EditCanceled abandons an in-progress edit and returns to a fresh creating
// draft. A no-op outside editing mode.
func (m *Manager) EditCanceled() {
	if m.mode != ModeEditing {
		return
	}
	m.mode = ModeCreating
	m.editID = ""
	m.errs = Errors{}
	m.resetDraft()
}

// Submit validates the draft. On success it marks a request in flight and
// returns the submission to issue; otherwise it publishes field errors and
// returns ok=false. A submit while a request is outstanding is refused
// without touching the error set.
func (m *Manager) Submit() (Submission, bool) {
	if m.inFlight {
		return Submission{}, false
	}

	errs := Validate(m.draft, m.now().In(m.loc))
	if len(errs) > 0 {
		m.errs = errs
		return Submission{}, false
	}
	m.errs = Errors{}

	payload, err := Payload(m.draft, m.loc)
	if err != nil {
		// Unreachable after validation unless the strings are malformed in a
		// way the per-field rules don't catch.
		m.errs = Errors{FieldDate: err.Error()}
		return Submission{}, false
	}

	sub := Submission{
		Payload: payload,
		Update:  m.mode == ModeEditing,
		ID:      m.editID,
	}
	m.inFlight = true
	return sub, true
}

// SubmitSucceeded resets the form for the next entry: fresh today/now draft,
// creating mode, no errors.
func (m *Manager) SubmitSucceeded() {
	m.inFlight = false
	m.mode = ModeCreating
	m.editID = ""
	m.errs = Errors{}
	m.resetDraft()
}

// SubmitFailed keeps the draft, mode, and errors untouched so the user can
// retry; it only releases the in-flight guard.
func (m *Manager) SubmitFailed() {
	m.inFlight = false
}

func (m *Manager) resetDraft() {
	date, clock := timeconv.SplitLocal(m.now(), m.loc)
	m.draft = Draft{
		Date:   date,
		Time:   clock,
		Weight: "",
		Animal: string(model.AnimalCat),
	}
}
