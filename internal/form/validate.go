// Package form owns the draft feeding entry, its validation, and the
// create/edit state machine behind the entry form.
package form

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"feedlog-cli/internal/model"
	"feedlog-cli/internal/timeconv"
)

// Field names used as keys in Errors.
const (
	FieldDate   = "date"
	FieldTime   = "time"
	FieldWeight = "weight"
	FieldAnimal = "animal"
)

// Draft holds unsaved form input exactly as typed. Date and Time are local
// wall-clock strings with no timezone attached.
type Draft struct {
	Date   string // YYYY-MM-DD
	Time   string // HH:MM:SS
	Weight string // grams, raw input
	Animal string
}

// Errors maps a field name to a human-readable message. An empty map means
// the draft is valid.
type Errors map[string]string

// Validate checks d against the record invariant. Fields are evaluated
// independently so every violation is reported at once, and the result is
// recomputed fully on each call (validation is submit-triggered, never
// per-keystroke).
//
// The date comparison against "today" uses now's calendar date in now's
// location; lexicographic comparison is correct because both sides are
// zero-padded YYYY-MM-DD strings.
func Validate(d Draft, now time.Time) Errors {
	errs := Errors{}

	today := now.Format(timeconv.DateLayout)
	date := strings.TrimSpace(d.Date)
	switch {
	case date == "":
		errs[FieldDate] = "Date is required."
	case date > today:
		errs[FieldDate] = "Date cannot be in the future."
	}

	// The time input control already requires a value, but the control must
	// not be the sole enforcement point (same stance as the animal check).
	if strings.TrimSpace(d.Time) == "" {
		errs[FieldTime] = "Time is required."
	}

	weight := strings.TrimSpace(d.Weight)
	if weight == "" {
		errs[FieldWeight] = "Weight is required."
	} else if n, err := strconv.ParseFloat(weight, 64); err != nil || n <= 0 {
		errs[FieldWeight] = "Weight must be a positive number."
	} else if n > model.MaxWeightGrams {
		errs[FieldWeight] = "Weight cannot exceed 10000 grams."
	}

	// The selector restricts input to the fixed set; membership is still
	// checked here so scripted input gets the same rule.
	if !model.Animal(strings.TrimSpace(d.Animal)).Valid() {
		errs[FieldAnimal] = "Unknown animal type."
	}

	return errs
}

// Payload converts a validated draft into the wire payload. Date and Time
// are read as wall-clock values in loc and normalized to a UTC instant.
// Callers must run Validate first; Payload only errors when the strings do
// not form a timestamp at all.
func Payload(d Draft, loc *time.Location) (model.RecordPayload, error) {
	ts, ok := timeconv.ToInstant(strings.TrimSpace(d.Date), strings.TrimSpace(d.Time), loc)
	if !ok {
		return model.RecordPayload{}, errors.New("Date and time do not form a valid timestamp.")
	}
	weight, _ := strconv.ParseFloat(strings.TrimSpace(d.Weight), 64)
	return model.RecordPayload{
		Timestamp: ts,
		Weight:    weight,
		Animal:    model.Animal(strings.TrimSpace(d.Animal)),
	}, nil
}
