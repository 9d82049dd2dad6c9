package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/dmitrijs2005/dbdbedit/internal/client/services"
	"github.com/dmitrijs2005/dbdbedit/internal/client/view"
	"github.com/dmitrijs2005/dbdbedit/internal/editsession"
	"github.com/dmitrijs2005/dbdbedit/internal/filex"
)

var errNothingOpen = errors.New("no editor is open")

func (a *App) Show(ctx context.Context) error {
	saving, citing := a.svc.Pending()
	st := view.Status{Saving: saving, Citing: citing, LastErr: a.svc.LastError()}

	var buf bytes.Buffer
	var err error
	a.svc.Read(func(s *editsession.Session) { err = view.Render(&buf, s, st) })
	if err != nil {
		return err
	}
	_, err = a.out.Write(buf.Bytes())
	return err
}

func (a *App) Open(ctx context.Context, key string) error {
	if err := a.svc.OpenField(key); err != nil {
		return err
	}
	var draft string
	a.svc.Read(func(s *editsession.Session) {
		f, _ := s.Field(key)
		draft = f.Draft()
	})
	a.println(fmt.Sprintf("Editing %s: %s", key, draft))
	return nil
}

// openField returns the key of the open field editor.
func (a *App) openField() (string, error) {
	var kind editsession.EditorKind
	var key string
	a.svc.Read(func(s *editsession.Session) { kind, key = s.OpenEditor() })
	if kind != editsession.EditorField {
		return "", errNothingOpen
	}
	return key, nil
}

func (a *App) Type(ctx context.Context, text string) error {
	key, err := a.openField()
	if err != nil {
		return err
	}
	return a.svc.SetDraft(key, text)
}

func (a *App) Accept(ctx context.Context) error {
	return a.commit(true)
}

func (a *App) Cancel(ctx context.Context) error {
	return a.commit(false)
}

func (a *App) commit(accept bool) error {
	key, err := a.openField()
	if err != nil {
		return err
	}
	if err := a.svc.CommitField(key, accept); err != nil {
		return err
	}
	var value string
	a.svc.Read(func(s *editsession.Session) {
		f, _ := s.Field(key)
		value = f.Value()
	})
	a.println(fmt.Sprintf("%s: %s", key, value))
	return nil
}

func (a *App) Toggle(ctx context.Context, key string) error {
	st, err := a.svc.ToggleFlag(key)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("%s: %s (%s)", key, st, view.FlagClass(st))
	if st == editsession.Yes {
		msg += ", explain with type/accept"
	}
	a.println(msg)
	return nil
}

func (a *App) Tags(ctx context.Context, key string) error {
	if err := a.svc.OpenTagSet(key); err != nil {
		return err
	}
	var ts editsession.TagSetField
	a.svc.Read(func(s *editsession.Session) { ts, _ = s.TagSet(key) })
	a.println(fmt.Sprintf("%s selected: %s", key, strings.Join(ts.Selected(), ", ")))
	a.println(fmt.Sprintf("%s available: %s", key, strings.Join(ts.Available(), ", ")))
	return nil
}

func (a *App) Select(ctx context.Context, key string, tags []string) error {
	for _, tag := range tags {
		changed, err := a.svc.SelectTag(key, tag)
		if err != nil {
			return err
		}
		if !changed {
			a.println(fmt.Sprintf("%s: %s not added, the set takes a single tag", key, tag))
		}
	}
	return nil
}

func (a *App) Deselect(ctx context.Context, key string, tags []string) error {
	for _, tag := range tags {
		if _, err := a.svc.DeselectTag(key, tag); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) Done(ctx context.Context) error {
	var kind editsession.EditorKind
	var key string
	a.svc.Read(func(s *editsession.Session) { kind, key = s.OpenEditor() })

	switch kind {
	case editsession.EditorField:
		return a.commit(true)
	case editsession.EditorTagSet:
		return a.svc.CloseTagSet(key)
	default:
		return errNothingOpen
	}
}

// Cite prompts for the citation form and submits it in the background.
func (a *App) Cite(ctx context.Context) error {
	if saving, _ := a.svc.Pending(); saving {
		return services.ErrSaveInFlight
	}

	var prev editsession.CitationDraft
	a.svc.Read(func(s *editsession.Session) { prev = s.CitationDraft() })

	draft, err := GetCitationDraft(a.reader, a.out, prev)
	if err != nil {
		return err
	}
	task, err := a.svc.AddCitation(ctx, draft)
	if err != nil {
		return err
	}
	a.println("Adding citation...")

	a.tasks.Go(func() error {
		c, err := task.Wait(ctx)
		if err != nil {
			a.println("Add citation failed:", err, "(form kept, run cite to retry)")
			return nil
		}
		a.println(fmt.Sprintf("Citation [%d] added: %s", c.Number, c.Text))
		return nil
	})
	return nil
}

func (a *App) Uncite(ctx context.Context, n int) error {
	return a.svc.RemoveCitation(n)
}

func (a *App) Logo(ctx context.Context, path string) error {
	data, preview, err := filex.ReadImage(path)
	if err != nil {
		return err
	}
	if err := a.svc.StageLogo(data, preview); err != nil {
		return err
	}
	a.println(fmt.Sprintf("Logo staged (%s)", humanize.Bytes(uint64(len(data)))))
	return nil
}

func (a *App) Message(ctx context.Context, text string) error {
	return a.svc.SetVersionMessage(text)
}

// Payload prints what save would send right now. JSON blocks are indented
// and the logo is summarized by size.
func (a *App) Payload(ctx context.Context) error {
	p, err := a.svc.Payload()
	if err != nil {
		return err
	}
	for _, key := range p.Keys() {
		v := p[key]
		switch key {
		case editsession.KeyImage:
			n := gjson.Get(v, "#").Int()
			a.println(fmt.Sprintf("%s: <%s>", key, humanize.Bytes(uint64(n))))
		case editsession.KeyModelStuff, editsession.KeyCitations:
			a.println(key + ":")
			a.println(strings.TrimRight(string(pretty.Pretty([]byte(v))), "\n"))
		default:
			a.println(fmt.Sprintf("%s: %q", key, v))
		}
	}
	return nil
}

// Save submits the page in the background. The REPL ends once the catalog
// accepts it.
func (a *App) Save(ctx context.Context) error {
	task, err := a.svc.Save(ctx)
	if err != nil {
		return err
	}
	a.println("Saving...")

	a.tasks.Go(func() error {
		redirect, err := task.Wait(ctx)
		if err != nil {
			a.println("Save failed:", err, "(changes kept, run save to retry)")
			return nil
		}
		a.println("Saved. Continue at", redirect)
		return nil
	})
	return nil
}

func (a *App) Search(ctx context.Context, query string) error {
	res, err := a.svc.Autocomplete(ctx, query)
	if err != nil {
		return err
	}
	if len(res) == 0 {
		a.println("(no suggestions)")
		return nil
	}
	for _, r := range res {
		a.println("  " + r)
	}
	return nil
}
