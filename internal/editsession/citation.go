package editsession

import "strings"

// Citation is one bibliographic reference attached to the document. Number is
// assigned by the catalog and never changes.
type Citation struct {
	Number  int    `json:"number" yaml:"number"`
	Text    string `json:"cite" yaml:"cite"`
	Authors string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`
	Volume  string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Year    string `json:"year,omitempty" yaml:"year,omitempty"`
	Pages   string `json:"pages,omitempty" yaml:"pages,omitempty"`
	Link    string `json:"link,omitempty" yaml:"link,omitempty"`
}

// CitationDraft is the content of the add-citation sub-form.
type CitationDraft struct {
	Authors string
	Title   string
	Journal string
	Volume  string
	Year    string
	Pages   string
	Link    string
}

// Trimmed returns the draft with surrounding whitespace removed from every field.
func (d CitationDraft) Trimmed() CitationDraft {
	return CitationDraft{
		Authors: strings.TrimSpace(d.Authors),
		Title:   strings.TrimSpace(d.Title),
		Journal: strings.TrimSpace(d.Journal),
		Volume:  strings.TrimSpace(d.Volume),
		Year:    strings.TrimSpace(d.Year),
		Pages:   strings.TrimSpace(d.Pages),
		Link:    strings.TrimSpace(d.Link),
	}
}

func (d CitationDraft) IsZero() bool {
	return d.Trimmed() == CitationDraft{}
}

// citationFrom combines the submitted draft with what the catalog returned.
func citationFrom(number int, text, link string, d CitationDraft) Citation {
	if link == "" {
		link = d.Link
	}
	return Citation{
		Number:  number,
		Text:    text,
		Authors: d.Authors,
		Title:   d.Title,
		Journal: d.Journal,
		Volume:  d.Volume,
		Year:    d.Year,
		Pages:   d.Pages,
		Link:    link,
	}
}
