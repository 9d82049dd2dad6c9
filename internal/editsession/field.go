package editsession

import (
	"fmt"
	"strings"

	"github.com/looplab/fsm"
)

// FieldKind distinguishes plain text attributes from yes/no-with-explanation
// attributes.
type FieldKind string

const (
	KindText  FieldKind = "text"
	KindYesNo FieldKind = "yesno"
)

// ParseFieldKind maps snapshot spellings to a FieldKind. Empty means text.
func ParseFieldKind(s string) (FieldKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "input", "textarea":
		return KindText, nil
	case "yesno", "yes/no", "support":
		return KindYesNo, nil
	default:
		return "", fmt.Errorf("%w: field kind %q", ErrInvalidSession, s)
	}
}

// EditableField is one scalar document attribute.
//
// While open it carries the live draft and the value captured at open time,
// which a cancel restores.
type EditableField struct {
	key   string
	kind  FieldKind
	value string
	dirty bool
	flag  *fsm.FSM

	open     bool
	draft    string
	captured string
}

func newField(key string, kind FieldKind, value string, exists TriState) *EditableField {
	f := &EditableField{key: key, kind: kind, value: strings.TrimSpace(value)}
	if kind == KindYesNo {
		f.flag = newFlagMachine(exists)
	}
	return f
}

func (f EditableField) Key() string     { return f.key }
func (f EditableField) Kind() FieldKind { return f.kind }
func (f EditableField) Value() string   { return f.value }
func (f EditableField) Dirty() bool     { return f.dirty }
func (f EditableField) Editing() bool   { return f.open }

// Draft is the live text of an open editor; empty when closed.
func (f EditableField) Draft() string { return f.draft }

// Exists reports the yes/no flag. Text fields always report Unknown.
func (f EditableField) Exists() TriState {
	if f.flag == nil {
		return Unknown
	}
	return TriState(f.flag.Current())
}

func (f *EditableField) openEditor() {
	f.open = true
	f.dirty = true
	f.captured = f.value
	f.draft = f.value
}

func (f *EditableField) closeEditor(accept bool) {
	if accept {
		f.value = strings.TrimSpace(f.draft)
	} else {
		f.value = f.captured
	}
	f.open = false
	f.draft = ""
	f.captured = ""
}

// discard closes the editor and clears the value, used when a flag goes to no.
func (f *EditableField) discard() {
	f.open = false
	f.draft = ""
	f.captured = ""
	f.value = ""
}
