// Package view renders an edit session one way: model state in, CSS state
// classes and terminal text out. Nothing here mutates the session.
package view

import (
	"slices"

	"github.com/dmitrijs2005/dbdbedit/internal/editsession"
)

// State classes shared with the catalog's stylesheet.
const (
	ClassEditing   = "editing"
	ClassEdited    = "edited"
	ClassSelection = "selection"

	ClassUnknown = "question-check"
	ClassYes     = "green-check"
	ClassNo      = "grey-check"
)

// FlagClass maps a yes/no flag to its check icon.
func FlagClass(t editsession.TriState) string {
	switch t {
	case editsession.Yes:
		return ClassYes
	case editsession.No:
		return ClassNo
	default:
		return ClassUnknown
	}
}

// FieldClasses returns the classes of a field's container.
func FieldClasses(f editsession.EditableField) []string {
	var out []string
	if f.Editing() {
		out = append(out, ClassEditing)
	}
	if f.Dirty() {
		out = append(out, ClassEdited)
	}
	if f.Kind() == editsession.KindYesNo {
		out = append(out, FlagClass(f.Exists()))
	}
	return out
}

// TagSetClasses returns the classes of a tag set's container.
func TagSetClasses(t editsession.TagSetField) []string {
	var out []string
	if t.Editing() {
		out = append(out, ClassEditing)
	}
	if len(t.PendingAdds()) > 0 || len(t.PendingRemoves()) > 0 {
		out = append(out, ClassEdited)
	}
	return out
}

// TagClasses returns the classes of one tag inside a tag set's picker.
// Selected tags carry the selection class.
func TagClasses(t editsession.TagSetField, tag string) []string {
	if slices.Contains(t.Selected(), tag) {
		return []string{ClassSelection}
	}
	return nil
}
