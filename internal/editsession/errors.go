package editsession

import "errors"

var (
	ErrUnknownField   = errors.New("unknown field")
	ErrUnknownTagSet  = errors.New("unknown tag set")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrNotEditing     = errors.New("editor is not open")
	ErrNotYesNo       = errors.New("field has no yes/no flag")
	ErrSessionClosed  = errors.New("edit session closed")
	ErrNothingToSave  = errors.New("nothing to save")
	ErrInvalidSession = errors.New("invalid session content")

	// tag-set errors
	ErrTagNotAvailable = errors.New("tag is not in the available list")
	ErrTagNotSelected  = errors.New("tag is not selected")

	// citation errors
	ErrCitationNotFound  = errors.New("citation not found")
	ErrDuplicateCitation = errors.New("citation number already issued")
)
