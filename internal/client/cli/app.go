package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/dbdbedit/internal/client/catalog"
	"github.com/dmitrijs2005/dbdbedit/internal/client/config"
	"github.com/dmitrijs2005/dbdbedit/internal/client/services"
	"github.com/dmitrijs2005/dbdbedit/internal/editsession"
	"github.com/dmitrijs2005/dbdbedit/internal/logging"
)

type App struct {
	config      *config.Config
	svc         *services.EditService
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	interactive bool

	// background waits on catalog calls
	tasks errgroup.Group
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	session, err := editsession.LoadSnapshotFile(c.SnapshotFile, editsession.Options{ReplaceSingle: c.ReplaceSingle})
	if err != nil {
		return nil, fmt.Errorf("load page: %w", err)
	}

	client, err := catalog.NewHTTPClient(c.CatalogURL,
		catalog.WithTimeout(c.RequestTimeout),
		catalog.WithCSRFToken(c.CSRFToken),
		catalog.WithMinQueryLength(c.AutocompleteMinLength),
		catalog.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	svc := services.NewEditService(session, client, log)
	a := newApp(c, svc, log, os.Stdin, os.Stdout)
	a.interactive = isTerminal(int(os.Stdin.Fd()))
	return a, nil
}

func newApp(c *config.Config, svc *services.EditService, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		svc:    svc,
		log:    log,
		reader: bufio.NewReader(in),
		out:    &syncWriter{w: out},
	}
}

// Run primes the CSRF cookie and runs the REPL. It returns once the REPL has
// ended and every pending catalog call has reported.
func (a *App) Run(ctx context.Context) error {
	if err := a.svc.Prime(ctx); err != nil {
		a.println("Warning: catalog unreachable, edits can be staged but not sent yet")
	}

	var name string
	a.svc.Read(func(s *editsession.Session) { name = s.DBName() })
	a.println(fmt.Sprintf("Editing %s (type 'help' for commands)", name))

	runREPL(ctx, a, a.status, a.reader, a.interactive)
	return a.tasks.Wait()
}

func (a *App) closed() bool {
	var closed bool
	a.svc.Read(func(s *editsession.Session) { closed = s.Closed() })
	return closed
}

func (a *App) sessionDone() <-chan struct{} {
	return a.svc.Done()
}

// status is shown in the prompt: the open editor, unsaved changes and
// pending requests.
func (a *App) status() string {
	saving, citing := a.svc.Pending()

	var parts []string
	a.svc.Read(func(s *editsession.Session) {
		if kind, key := s.OpenEditor(); kind != editsession.EditorNone {
			parts = append(parts, "["+key+"]")
		}
		if s.HasChanges() {
			parts = append(parts, "*")
		}
	})
	if saving {
		parts = append(parts, "saving")
	}
	if citing {
		parts = append(parts, "citing")
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// syncWriter serializes writes from the REPL and background task reporters.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
