package tui

import (
	"fmt"
	"strconv"

	"feedlog-cli/internal/model"
	"feedlog-cli/internal/timeconv"

	"github.com/charmbracelet/bubbles/list"
)

type recordItem struct {
	rec model.Record
}

func (i recordItem) FilterValue() string { return string(i.rec.Animal) }

func (i recordItem) Title() string {
	return fmt.Sprintf("%s · %s g · %s",
		timeconv.ListString(i.rec.Timestamp),
		strconv.FormatFloat(i.rec.Weight, 'f', -1, 64),
		i.rec.Animal)
}

func (i recordItem) Description() string { return i.rec.ID }

func newList(items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	// We render our own header + footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("record", "records")
	// Bubble list defaults to quitting on ESC; here ESC is "back/cancel".
	l.KeyMap.Quit.SetKeys("q")
	// Emacs-style navigation aliases (common muscle memory).
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}
