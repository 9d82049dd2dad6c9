package editsession

import (
	"context"
	"fmt"
	"strings"

	"github.com/looplab/fsm"
)

// TriState is the value of a yes/no flag that may not have been answered yet.
type TriState string

const (
	Unknown TriState = "unknown"
	Yes     TriState = "yes"
	No      TriState = "no"
)

const eventToggle = "toggle"

// ParseTriState accepts the spellings used by page snapshots.
func ParseTriState(s string) (TriState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unknown", "?", "null":
		return Unknown, nil
	case "yes", "y", "true", "1":
		return Yes, nil
	case "no", "n", "false", "0":
		return No, nil
	default:
		return Unknown, fmt.Errorf("%w: flag value %q", ErrInvalidSession, s)
	}
}

// FormValue is the "support_<key>" value the catalog expects. Unknown has none.
func (t TriState) FormValue() (string, bool) {
	switch t {
	case Yes:
		return "1", true
	case No:
		return "0", true
	default:
		return "", false
	}
}

// newFlagMachine builds the toggle cycle unknown -> yes -> no -> yes -> ...
// Unknown has no incoming transition, so it is never re-entered.
func newFlagMachine(initial TriState) *fsm.FSM {
	return fsm.NewFSM(
		string(initial),
		fsm.Events{
			{Name: eventToggle, Src: []string{string(Unknown), string(No)}, Dst: string(Yes)},
			{Name: eventToggle, Src: []string{string(Yes)}, Dst: string(No)},
		},
		fsm.Callbacks{},
	)
}

func toggleFlag(ctx context.Context, m *fsm.FSM) (TriState, error) {
	if err := m.Event(ctx, eventToggle); err != nil {
		return TriState(m.Current()), fmt.Errorf("toggle flag from %s: %w", m.Current(), err)
	}
	return TriState(m.Current()), nil
}
