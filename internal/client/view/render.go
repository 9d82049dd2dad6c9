package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/dbdbedit/internal/editsession"
)

// Status is what the page shows besides the model: pending requests and the
// last failure.
type Status struct {
	Saving  bool
	Citing  bool
	LastErr error
}

// Render writes a plain-text rendering of the session.
func Render(w io.Writer, s *editsession.Session, st Status) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\t%s\n", s.DBName(), s.PagePath())
	if s.Closed() {
		fmt.Fprintf(tw, "saved, continue at %s\n", s.Redirect())
		return tw.Flush()
	}

	fmt.Fprintln(tw, "\nFIELDS")
	for _, f := range s.Fields() {
		value := f.Value()
		if f.Editing() {
			value = f.Draft() + "_"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", f.Key(), classList(FieldClasses(f)), oneLine(value))
	}

	if ts := s.TagSets(); len(ts) > 0 {
		fmt.Fprintln(tw, "\nTAGS")
		for _, t := range ts {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", t.Key(), classList(TagSetClasses(t)), strings.Join(t.Selected(), ", "))
			if t.Editing() {
				fmt.Fprintf(tw, "  \tavailable\t%s\n", strings.Join(t.Available(), ", "))
			}
			if pending := pendingTags(t); pending != "" {
				fmt.Fprintf(tw, "  \tpending\t%s\n", pending)
			}
		}
	}

	fmt.Fprintln(tw, "\nCITATIONS")
	for _, c := range s.Citations() {
		line := c.Text
		if c.Link != "" {
			line += " <" + c.Link + ">"
		}
		fmt.Fprintf(tw, "  [%d]\t%s\n", c.Number, oneLine(line))
	}
	if d := s.CitationDraft(); !d.IsZero() {
		fmt.Fprintf(tw, "  next [%d]\tdraft\t%s\n", s.NextCitationNumber(), oneLine(d.Authors+" "+d.Title))
	}

	if img, ok := s.Image(); ok {
		fmt.Fprintf(tw, "\nLOGO\t%s staged\n", humanize.Bytes(uint64(len(img.Bytes))))
	}
	if msg := s.VersionMessage(); msg != "" {
		fmt.Fprintf(tw, "\nMESSAGE\t%s\n", oneLine(msg))
	}

	fmt.Fprintln(tw)
	switch {
	case st.Saving:
		fmt.Fprintln(tw, "[saving...]")
	case s.SaveVisible():
		fmt.Fprintln(tw, "[save]")
	}
	if st.Citing {
		fmt.Fprintln(tw, "[adding citation...]")
	}
	if st.LastErr != nil {
		fmt.Fprintf(tw, "error: %v\n", st.LastErr)
	}
	return tw.Flush()
}

func pendingTags(t editsession.TagSetField) string {
	var parts []string
	for _, a := range t.PendingAdds() {
		parts = append(parts, "+"+a)
	}
	for _, r := range t.PendingRemoves() {
		parts = append(parts, "-"+r)
	}
	return strings.Join(parts, " ")
}

func classList(classes []string) string {
	if len(classes) == 0 {
		return "-"
	}
	return strings.Join(classes, " ")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
