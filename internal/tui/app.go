// Package tui is the interactive form-and-list client for the records
// service: a draft entry form on top, the stored records below.
package tui

import (
	"context"

	"feedlog-cli/internal/form"
	"feedlog-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// RecordsAPI is the slice of the records service the TUI needs. *api.Client
// satisfies it; tests substitute a fake.
type RecordsAPI interface {
	List(ctx context.Context) ([]model.Record, error)
	Create(ctx context.Context, p model.RecordPayload) (model.Record, error)
	Update(ctx context.Context, id string, p model.RecordPayload) (model.Record, error)
	Delete(ctx context.Context, id string) error
}

func Run(client RecordsAPI) error {
	applyColorProfilePreference()
	m := newAppModel(client, form.NewManager())
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Messages produced by async network commands.

type recordsLoadedMsg struct {
	records []model.Record
	err     error
}

type saveDoneMsg struct {
	err error
}

type deleteDoneMsg struct {
	err error
}
