package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/dbdbedit/internal/editsession"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	return readLine(reader)
}

// readLine reads one line without its line ending. A final line without a
// newline is returned with a nil error.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetCitationDraft prompts for each field of the add-citation form. prev
// holds the values kept from a failed attempt: an empty answer keeps the
// previous value and "-" clears it.
func GetCitationDraft(reader *bufio.Reader, w io.Writer, prev editsession.CitationDraft) (editsession.CitationDraft, error) {
	d := prev
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Authors", &d.Authors},
		{"Title", &d.Title},
		{"Journal", &d.Journal},
		{"Volume", &d.Volume},
		{"Year", &d.Year},
		{"Pages", &d.Pages},
		{"Link", &d.Link},
	}
	for _, f := range fields {
		prompt := f.prompt
		if *f.dst != "" {
			prompt += " [" + *f.dst + "]"
		}
		v, err := GetSimpleText(reader, prompt, w)
		if err != nil {
			return editsession.CitationDraft{}, err
		}
		switch v {
		case "":
		case "-":
			*f.dst = ""
		default:
			*f.dst = v
		}
	}
	return d, nil
}

// splitTags parses "a, b c, d" into ["a", "b c", "d"].
func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// splitCommand returns the first word of line and the rest with its inner
// spacing kept.
func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	cmd, rest, _ := strings.Cut(line, " ")
	return cmd, strings.TrimSpace(rest)
}
