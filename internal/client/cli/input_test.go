package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/dbdbedit/internal/editsession"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetCitationDraft(t *testing.T) {
	var out bytes.Buffer
	in := rdr("D. R. Hipp\nSQLite\nSelf\n\n2000\n1-2\nsqlite.org\n")

	d, err := GetCitationDraft(in, &out, editsession.CitationDraft{})
	require.NoError(t, err)
	assert.Equal(t, editsession.CitationDraft{
		Authors: "D. R. Hipp",
		Title:   "SQLite",
		Journal: "Self",
		Year:    "2000",
		Pages:   "1-2",
		Link:    "sqlite.org",
	}, d)
}

func TestGetCitationDraft_KeepsPrevious(t *testing.T) {
	var out bytes.Buffer
	prev := editsession.CitationDraft{Authors: "Hipp", Title: "Old", Journal: "J"}
	in := rdr("\nNew\n-\n\n\n\n\n")

	d, err := GetCitationDraft(in, &out, prev)
	require.NoError(t, err)
	assert.Equal(t, editsession.CitationDraft{Authors: "Hipp", Title: "New"}, d)
	assert.Contains(t, out.String(), "Authors [Hipp]")
}

func TestGetCitationDraft_ShortInput(t *testing.T) {
	var out bytes.Buffer
	_, err := GetCitationDraft(rdr("only authors\n"), &out, editsession.CitationDraft{})
	require.Error(t, err)
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Linux", []string{"Linux"}},
		{"Linux, Mac OS X ,Windows", []string{"Linux", "Mac OS X", "Windows"}},
		{" , ,", nil},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitTags(tt.in), tt.in)
	}
}

func TestSplitCommand(t *testing.T) {
	cmd, rest := splitCommand("  type  two  spaces ")
	assert.Equal(t, "type", cmd)
	assert.Equal(t, "two  spaces", rest)

	cmd, rest = splitCommand("show")
	assert.Equal(t, "show", cmd)
	assert.Empty(t, rest)
}
