// Package services contains application services for the edit client.
// This file defines the edit service: the single owner of a page's edit
// session and the place where catalog responses are reconciled into it.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/dbdbedit/internal/client/catalog"
	"github.com/dmitrijs2005/dbdbedit/internal/editsession"
	"github.com/dmitrijs2005/dbdbedit/internal/logging"
)

var (
	ErrSaveInFlight     = errors.New("a save is already in progress")
	ErrCitationInFlight = errors.New("a citation is still being added")
	ErrEmptyCitation    = errors.New("citation form is empty")
)

// EditService serializes every change to one edit session.
//
// Contract:
//   - Local edits (fields, flags, tags, logo, message) apply synchronously.
//   - AddCitation and Save start a Task. Their responses are applied under the
//     same lock as local edits.
//   - Failures are logged and returned through the task. The session is left
//     as it was, so nothing staged is lost.
//   - Only one save and one citation add may be pending, and never both at
//     once: each is refused while the other is pending.
type EditService struct {
	mu      sync.Mutex
	session *editsession.Session
	client  catalog.Client
	log     logging.Logger

	saving  bool
	citing  bool
	lastErr error

	// closed once a save succeeds
	done chan struct{}
}

func NewEditService(s *editsession.Session, c catalog.Client, log logging.Logger) *EditService {
	e := &EditService{
		session: s,
		client:  c,
		log:     log.With("session_id", s.ID(), "db", s.DBName()),
		done:    make(chan struct{}),
	}
	if s.Closed() {
		close(e.done)
	}
	return e
}

// Done is closed once the session has been saved and closed.
func (e *EditService) Done() <-chan struct{} {
	return e.done
}

// Read calls fn with the session under the service lock. fn must not keep
// the pointer.
func (e *EditService) Read(fn func(s *editsession.Session)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.session)
}

// Pending reports which network calls are outstanding.
func (e *EditService) Pending() (saving, citing bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving, e.citing
}

// LastError returns the most recent network failure, nil after a success.
func (e *EditService) LastError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

func (e *EditService) apply(fn func(s *editsession.Session) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

func (e *EditService) OpenField(key string) error {
	return e.apply(func(s *editsession.Session) error { return s.OpenField(key) })
}

func (e *EditService) SetDraft(key, text string) error {
	return e.apply(func(s *editsession.Session) error { return s.SetDraft(key, text) })
}

func (e *EditService) CommitField(key string, accept bool) error {
	return e.apply(func(s *editsession.Session) error { return s.CommitField(key, accept) })
}

func (e *EditService) ToggleFlag(key string) (editsession.TriState, error) {
	var st editsession.TriState
	err := e.apply(func(s *editsession.Session) (err error) {
		st, err = s.ToggleFlag(key)
		return err
	})
	return st, err
}

func (e *EditService) OpenTagSet(key string) error {
	return e.apply(func(s *editsession.Session) error { return s.OpenTagSet(key) })
}

func (e *EditService) CloseTagSet(key string) error {
	return e.apply(func(s *editsession.Session) error { return s.CloseTagSet(key) })
}

func (e *EditService) SelectTag(key, tag string) (bool, error) {
	var changed bool
	err := e.apply(func(s *editsession.Session) (err error) {
		changed, err = s.SelectTag(key, tag)
		return err
	})
	return changed, err
}

func (e *EditService) DeselectTag(key, tag string) (bool, error) {
	var changed bool
	err := e.apply(func(s *editsession.Session) (err error) {
		changed, err = s.DeselectTag(key, tag)
		return err
	})
	return changed, err
}

func (e *EditService) RemoveCitation(n int) error {
	return e.apply(func(s *editsession.Session) error { return s.RemoveCitation(n) })
}

func (e *EditService) StageLogo(data []byte, previewURL string) error {
	return e.apply(func(s *editsession.Session) error { return s.StageLogo(data, previewURL) })
}

func (e *EditService) SetVersionMessage(msg string) error {
	return e.apply(func(s *editsession.Session) error { return s.SetVersionMessage(msg) })
}

// Payload previews what Save would send, without committing an open editor.
func (e *EditService) Payload() (editsession.Payload, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.BuildSavePayload()
}

// AddCitation submits draft to the catalog under the next citation number.
// The draft stays in the sub-form until the catalog accepts it.
func (e *EditService) AddCitation(ctx context.Context, draft editsession.CitationDraft) (*Task[editsession.Citation], error) {
	draft = draft.Trimmed()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.Closed() {
		return nil, editsession.ErrSessionClosed
	}
	if e.citing {
		return nil, ErrCitationInFlight
	}
	if e.saving {
		return nil, ErrSaveInFlight
	}
	if draft.IsZero() {
		return nil, ErrEmptyCitation
	}
	if err := e.session.SetCitationDraft(draft); err != nil {
		return nil, err
	}

	req := catalog.PublicationRequest{
		Number:  e.session.NextCitationNumber(),
		DBName:  e.session.DBName(),
		Authors: draft.Authors,
		Title:   draft.Title,
		Journal: draft.Journal,
		Volume:  draft.Volume,
		Year:    draft.Year,
		Pages:   draft.Pages,
		Link:    draft.Link,
	}
	e.citing = true

	task := newTask[editsession.Citation]()
	go func() {
		pub, err := e.client.AddPublication(ctx, req)
		task.finish(e.citationDone(ctx, req.Number, draft, pub, err))
	}()
	return task, nil
}

func (e *EditService) citationDone(ctx context.Context, number int, draft editsession.CitationDraft,
	pub catalog.Publication, err error) (editsession.Citation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.citing = false

	if err != nil {
		e.lastErr = err
		e.log.Error(ctx, "add citation failed", "number", number, "err", err)
		return editsession.Citation{}, fmt.Errorf("add citation: %w", err)
	}

	c, err := e.session.CitationAdded(number, pub.Cite, pub.Link, draft)
	if err != nil {
		e.lastErr = err
		e.log.Error(ctx, "add citation reconcile failed", "number", number, "err", err)
		return editsession.Citation{}, err
	}
	e.lastErr = nil
	e.log.Info(ctx, "citation added", "number", number)
	return c, nil
}

// Save commits any open editor, builds the payload and posts it. On success
// the session is closed with the catalog's redirect.
func (e *EditService) Save(ctx context.Context) (*Task[string], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.Closed() {
		return nil, editsession.ErrSessionClosed
	}
	if e.saving {
		return nil, ErrSaveInFlight
	}
	if e.citing {
		return nil, ErrCitationInFlight
	}

	e.session.CommitOpenEditor()
	payload, err := e.session.BuildSavePayload()
	if err != nil {
		return nil, err
	}
	e.saving = true

	pagePath := e.session.PagePath()
	form := payload.Values()
	e.log.Debug(ctx, "saving document", "path", pagePath, "keys", payload.Keys())

	task := newTask[string]()
	go func() {
		redirect, err := e.client.SaveDocument(ctx, pagePath, form)
		task.finish(e.saveDone(ctx, redirect, err))
	}()
	return task, nil
}

func (e *EditService) saveDone(ctx context.Context, redirect string, err error) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving = false

	if err != nil {
		e.lastErr = err
		e.log.Error(ctx, "save failed", "path", e.session.PagePath(), "err", err)
		return "", fmt.Errorf("save: %w", err)
	}
	e.lastErr = nil
	e.session.Close(redirect)
	close(e.done)
	e.log.Info(ctx, "document saved", "redirect", redirect)
	return redirect, nil
}

// Autocomplete proxies a search suggestion query.
func (e *EditService) Autocomplete(ctx context.Context, query string) ([]string, error) {
	res, err := e.client.Autocomplete(ctx, query)
	if err != nil {
		e.log.Warn(ctx, "autocomplete failed", "err", err)
		return nil, err
	}
	return res, nil
}

// Prime asks the catalog for a CSRF cookie. A failure is logged and returned;
// later requests still go out with whatever token is configured.
func (e *EditService) Prime(ctx context.Context) error {
	if err := e.client.Prime(ctx, e.session.PagePath()); err != nil {
		e.log.Warn(ctx, "could not prime csrf cookie", "err", err)
		return err
	}
	if e.client.CSRFToken() == "" {
		e.log.Warn(ctx, "catalog issued no csrf token")
	}
	return nil
}
