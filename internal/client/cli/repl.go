package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

const helpText = `Commands:
  show                         render the page
  open <field>                 open a field editor
  type <text>                  replace the open editor's text
  accept | cancel              close the open field editor
  toggle <field>               cycle a yes/no flag
  tags <set>                   open a tag picker
  select <set> <tag>[, <tag>]  pick tags
  deselect <set> <tag>[, ...]  drop tags
  done                         close whatever editor is open
  cite                         add a citation (prompts for fields)
  uncite <n>                   remove citation n
  logo <path>                  stage a logo image
  message <text>               set the revision message
  payload                      preview what save would send
  save                         save the page
  search <query>               catalog autocomplete
  exit | quit                  leave without saving`

type inputLine struct {
	text string
	err  error
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	closed() bool
	// sessionDone is closed once the page has been saved.
	sessionDone() <-chan struct{}

	Show(ctx context.Context) error
	Open(ctx context.Context, key string) error
	Type(ctx context.Context, text string) error
	Accept(ctx context.Context) error
	Cancel(ctx context.Context) error
	Toggle(ctx context.Context, key string) error
	Tags(ctx context.Context, key string) error
	Select(ctx context.Context, key string, tags []string) error
	Deselect(ctx context.Context, key string, tags []string) error
	Done(ctx context.Context) error
	Cite(ctx context.Context) error
	Uncite(ctx context.Context, n int) error
	Logo(ctx context.Context, path string) error
	Message(ctx context.Context, text string) error
	Payload(ctx context.Context) error
	Save(ctx context.Context) error
	Search(ctx context.Context, query string) error
}

// runREPL starts a read–eval–print loop over lines from reader.
//
// The first word of a line is the command; the rest is its argument, with
// inner spacing kept for free text. Handler errors are printed and the loop
// carries on. The loop exits on EOF, on "exit" or "quit", when ctx ends, or
// once the page has been saved, even while it waits for input.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, prompt bool) {
	for {
		if a.closed() {
			return
		}
		if prompt {
			printlnFn(fmt.Sprintf("edit %s> ", statusFn()))
		}

		// one read per turn, so command handlers can prompt on the same reader
		lines := make(chan inputLine, 1)
		go func() {
			l, err := readLine(reader)
			lines <- inputLine{text: l, err: err}
		}()

		var line string
		select {
		case in := <-lines:
			if in.err != nil {
				return
			}
			line = in.text
		case <-a.sessionDone():
			return
		case <-ctx.Done():
			return
		}
		cmd, rest := splitCommand(line)
		if cmd == "" {
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "show":
			cmdErr = a.Show(ctx)

		case "open":
			if rest == "" {
				printlnFn("Usage: open <field>")
				continue
			}
			cmdErr = a.Open(ctx, rest)

		case "type":
			cmdErr = a.Type(ctx, rest)

		case "accept":
			cmdErr = a.Accept(ctx)

		case "cancel":
			cmdErr = a.Cancel(ctx)

		case "toggle":
			if rest == "" {
				printlnFn("Usage: toggle <field>")
				continue
			}
			cmdErr = a.Toggle(ctx, rest)

		case "tags":
			if rest == "" {
				printlnFn("Usage: tags <set>")
				continue
			}
			cmdErr = a.Tags(ctx, rest)

		case "select", "deselect":
			key, tagList := splitCommand(rest)
			tags := splitTags(tagList)
			if key == "" || len(tags) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <set> <tag>[, <tag>]", cmd))
				continue
			}
			if cmd == "select" {
				cmdErr = a.Select(ctx, key, tags)
			} else {
				cmdErr = a.Deselect(ctx, key, tags)
			}

		case "done":
			cmdErr = a.Done(ctx)

		case "cite":
			cmdErr = a.Cite(ctx)

		case "uncite":
			n, err := strconv.Atoi(rest)
			if err != nil {
				printlnFn("Usage: uncite <n>")
				continue
			}
			cmdErr = a.Uncite(ctx, n)

		case "logo":
			if rest == "" {
				printlnFn("Usage: logo <path>")
				continue
			}
			cmdErr = a.Logo(ctx, rest)

		case "message":
			cmdErr = a.Message(ctx, rest)

		case "payload":
			cmdErr = a.Payload(ctx)

		case "save":
			cmdErr = a.Save(ctx)

		case "search":
			cmdErr = a.Search(ctx, rest)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
