package editsession

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// EditorKind tells which kind of editor is open.
type EditorKind string

const (
	EditorNone   EditorKind = ""
	EditorField  EditorKind = "field"
	EditorTagSet EditorKind = "tagset"
)

type editor struct {
	kind EditorKind
	key  string
}

// Options tune behaviour the page variants disagree on.
type Options struct {
	// ReplaceSingle makes selecting a tag in an occupied single-valued set
	// stage removal of the prior tag. When false the selection is ignored.
	ReplaceSingle bool
}

// Session is the aggregate root of one page view's staged edits.
type Session struct {
	id       string
	dbName   string
	pagePath string
	opts     Options

	fields     map[string]*EditableField
	fieldOrder []string
	tagSets    map[string]*TagSetField
	tagOrder   []string

	citations       []Citation
	highestIssued   int
	citationAdds    map[int]Citation
	citationRemoves []int
	draft           CitationDraft

	image          *PendingImage
	versionMessage string

	open        editor
	saveVisible bool
	closed      bool
	redirect    string
}

// New creates an empty session for the document dbName edited at pagePath.
func New(dbName, pagePath string, opts Options) *Session {
	return &Session{
		id:           uuid.NewString(),
		dbName:       dbName,
		pagePath:     pagePath,
		opts:         opts,
		fields:       make(map[string]*EditableField),
		tagSets:      make(map[string]*TagSetField),
		citationAdds: make(map[int]Citation),
	}
}

func (s *Session) ID() string       { return s.id }
func (s *Session) DBName() string   { return s.dbName }
func (s *Session) PagePath() string { return s.pagePath }

// ---- load-time population ----

// AddField registers a scalar attribute as rendered by the page.
func (s *Session) AddField(key string, kind FieldKind, value string, exists TriState) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: empty field key", ErrInvalidSession)
	}
	if _, ok := s.fields[key]; ok {
		return fmt.Errorf("%w: field %q", ErrDuplicateKey, key)
	}
	s.fields[key] = newField(key, kind, value, exists)
	s.fieldOrder = append(s.fieldOrder, key)
	return nil
}

// AddTagSet registers a multi-valued attribute with its selected and
// available options.
func (s *Session) AddTagSet(key string, multiple bool, selected, available []string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: empty tag set key", ErrInvalidSession)
	}
	if _, ok := s.tagSets[key]; ok {
		return fmt.Errorf("%w: tag set %q", ErrDuplicateKey, key)
	}
	s.tagSets[key] = newTagSet(key, multiple, selected, available)
	s.tagOrder = append(s.tagOrder, key)
	return nil
}

// AddCitation registers an existing citation.
func (s *Session) AddCitation(c Citation) error {
	if c.Number <= 0 {
		return fmt.Errorf("%w: citation number %d", ErrInvalidSession, c.Number)
	}
	if s.citationIndex(c.Number) >= 0 {
		return fmt.Errorf("%w: %d", ErrDuplicateCitation, c.Number)
	}
	s.citations = append(s.citations, c)
	s.highestIssued = max(s.highestIssued, c.Number)
	return nil
}

// ---- field editing ----

// OpenField opens the text editor of key. Any other open editor is closed
// first; an open field is committed as accepted. Reopening the same field is
// a no-op.
func (s *Session) OpenField(key string) error {
	if s.closed {
		return ErrSessionClosed
	}
	f, ok := s.fields[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	if s.open == (editor{kind: EditorField, key: key}) {
		return nil
	}
	s.closeOpenEditor()

	f.openEditor()
	s.open = editor{kind: EditorField, key: key}
	s.saveVisible = true
	return nil
}

// SetDraft replaces the live text of the open editor of key.
func (s *Session) SetDraft(key, text string) error {
	if s.closed {
		return ErrSessionClosed
	}
	f, ok := s.fields[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	if !f.open {
		return fmt.Errorf("%w: %q", ErrNotEditing, key)
	}
	f.draft = text
	return nil
}

// CommitField closes the editor of key. On accept the trimmed draft becomes
// the value, on cancel the value captured at open time is restored. The field
// stays dirty either way.
func (s *Session) CommitField(key string, accept bool) error {
	if s.closed {
		return ErrSessionClosed
	}
	f, ok := s.fields[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	if !f.open {
		return fmt.Errorf("%w: %q", ErrNotEditing, key)
	}
	f.closeEditor(accept)
	s.open = editor{}
	return nil
}

// ToggleFlag advances the yes/no flag of key. Yes opens the explanation
// editor, no closes it and clears the explanation.
func (s *Session) ToggleFlag(key string) (TriState, error) {
	if s.closed {
		return Unknown, ErrSessionClosed
	}
	f, ok := s.fields[key]
	if !ok {
		return Unknown, fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	if f.kind != KindYesNo {
		return Unknown, fmt.Errorf("%w: %q", ErrNotYesNo, key)
	}

	state, err := toggleFlag(context.Background(), f.flag)
	if err != nil {
		return state, err
	}
	f.dirty = true
	s.saveVisible = true

	switch state {
	case Yes:
		return state, s.OpenField(key)
	case No:
		if s.open == (editor{kind: EditorField, key: key}) {
			s.open = editor{}
		}
		f.discard()
	}
	return state, nil
}

// ---- tag sets ----

// OpenTagSet opens the option picker of key, closing any other editor.
func (s *Session) OpenTagSet(key string) error {
	if s.closed {
		return ErrSessionClosed
	}
	t, ok := s.tagSets[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTagSet, key)
	}
	if s.open == (editor{kind: EditorTagSet, key: key}) {
		return nil
	}
	s.closeOpenEditor()
	t.open = true
	s.open = editor{kind: EditorTagSet, key: key}
	return nil
}

// CloseTagSet hides the option picker of key if it is open.
func (s *Session) CloseTagSet(key string) error {
	t, ok := s.tagSets[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTagSet, key)
	}
	if t.open {
		t.open = false
		s.open = editor{}
	}
	return nil
}

// SelectTag picks tag for key. It returns false when the pick was ignored
// because a single-valued set is already occupied.
func (s *Session) SelectTag(key, tag string) (bool, error) {
	if s.closed {
		return false, ErrSessionClosed
	}
	t, ok := s.tagSets[key]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownTagSet, key)
	}
	changed, err := t.selectTag(tag, s.opts.ReplaceSingle)
	if err != nil {
		return false, fmt.Errorf("select %q in %q: %w", tag, key, err)
	}
	if changed {
		s.saveVisible = true
	}
	return changed, nil
}

// DeselectTag returns tag of key to the available list.
func (s *Session) DeselectTag(key, tag string) (bool, error) {
	if s.closed {
		return false, ErrSessionClosed
	}
	t, ok := s.tagSets[key]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownTagSet, key)
	}
	changed, err := t.deselectTag(tag)
	if err != nil {
		return false, fmt.Errorf("deselect %q in %q: %w", tag, key, err)
	}
	if changed {
		s.saveVisible = true
	}
	return changed, nil
}

// ---- citations ----

// NextCitationNumber is one past the highest number ever issued.
func (s *Session) NextCitationNumber() int { return s.highestIssued + 1 }

func (s *Session) CitationDraft() CitationDraft { return s.draft }

func (s *Session) SetCitationDraft(d CitationDraft) error {
	if s.closed {
		return ErrSessionClosed
	}
	s.draft = d
	return nil
}

// CitationAdded records a citation the catalog has just created from d and
// clears the sub-form.
func (s *Session) CitationAdded(number int, text, link string, d CitationDraft) (Citation, error) {
	if s.closed {
		return Citation{}, ErrSessionClosed
	}
	if number <= s.highestIssued {
		return Citation{}, fmt.Errorf("%w: %d", ErrDuplicateCitation, number)
	}
	c := citationFrom(number, text, link, d)
	s.citations = append(s.citations, c)
	s.citationAdds[number] = c
	s.highestIssued = number
	s.draft = CitationDraft{}
	return c, nil
}

// RemoveCitation drops citation n from the list and stages its deletion.
// Remaining citations keep their numbers.
func (s *Session) RemoveCitation(n int) error {
	if s.closed {
		return ErrSessionClosed
	}
	i := s.citationIndex(n)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrCitationNotFound, n)
	}
	s.citations = slices.Delete(s.citations, i, i+1)
	delete(s.citationAdds, n)
	s.citationRemoves = append(s.citationRemoves, n)
	s.saveVisible = true
	return nil
}

func (s *Session) citationIndex(n int) int {
	return slices.IndexFunc(s.citations, func(c Citation) bool { return c.Number == n })
}

// ---- logo and version message ----

// StageLogo replaces the pending logo. Bytes and preview are stored together.
func (s *Session) StageLogo(data []byte, previewURL string) error {
	if s.closed {
		return ErrSessionClosed
	}
	img := PendingImage{Bytes: data, PreviewURL: previewURL}.clone()
	s.image = &img
	s.saveVisible = true
	return nil
}

// SetVersionMessage sets the revision note sent along with the save.
func (s *Session) SetVersionMessage(msg string) error {
	if s.closed {
		return ErrSessionClosed
	}
	s.versionMessage = strings.TrimSpace(msg)
	return nil
}

// ---- lifecycle ----

// CommitOpenEditor closes whatever editor is open, accepting a field's draft.
func (s *Session) CommitOpenEditor() {
	s.closeOpenEditor()
}

// Close ends the session after a successful save.
func (s *Session) Close(redirect string) {
	s.closeOpenEditor()
	s.closed = true
	s.redirect = redirect
}

func (s *Session) closeOpenEditor() {
	switch s.open.kind {
	case EditorField:
		if f, ok := s.fields[s.open.key]; ok && f.open {
			f.closeEditor(true)
		}
	case EditorTagSet:
		if t, ok := s.tagSets[s.open.key]; ok {
			t.open = false
		}
	}
	s.open = editor{}
}

// HasChanges reports whether anything is staged for the next save.
func (s *Session) HasChanges() bool {
	for _, f := range s.fields {
		if f.dirty {
			return true
		}
	}
	for _, t := range s.tagSets {
		if t.hasChanges() {
			return true
		}
	}
	return len(s.citationRemoves) > 0 || s.image != nil
}

// ---- read access ----

func (s *Session) SaveVisible() bool { return s.saveVisible }
func (s *Session) Closed() bool      { return s.closed }
func (s *Session) Redirect() string  { return s.redirect }

// OpenEditor reports the kind and key of the open editor.
func (s *Session) OpenEditor() (EditorKind, string) { return s.open.kind, s.open.key }

func (s *Session) Field(key string) (EditableField, bool) {
	f, ok := s.fields[key]
	if !ok {
		return EditableField{}, false
	}
	return *f, true
}

func (s *Session) Fields() []EditableField {
	out := make([]EditableField, 0, len(s.fieldOrder))
	for _, k := range s.fieldOrder {
		out = append(out, *s.fields[k])
	}
	return out
}

func (s *Session) TagSet(key string) (TagSetField, bool) {
	t, ok := s.tagSets[key]
	if !ok {
		return TagSetField{}, false
	}
	return *t, true
}

func (s *Session) TagSets() []TagSetField {
	out := make([]TagSetField, 0, len(s.tagOrder))
	for _, k := range s.tagOrder {
		out = append(out, *s.tagSets[k])
	}
	return out
}

func (s *Session) Citations() []Citation { return slices.Clone(s.citations) }

// CitationAdds returns the citations created during this session by number.
func (s *Session) CitationAdds() map[int]Citation {
	out := make(map[int]Citation, len(s.citationAdds))
	for k, v := range s.citationAdds {
		out[k] = v
	}
	return out
}

func (s *Session) CitationRemovals() []int { return slices.Clone(s.citationRemoves) }

func (s *Session) Image() (PendingImage, bool) {
	if s.image == nil {
		return PendingImage{}, false
	}
	return s.image.clone(), true
}

func (s *Session) VersionMessage() string { return s.versionMessage }
