package editsession

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sqliteSnapshot = `
db_name: SQLite
page_path: /db/sqlite/edit/3f2a
fields:
  - key: description
    value: "  Embedded SQL engine.  "
  - key: license
    kind: yesno
    exists: "yes"
    value: Public domain
  - key: logging
    kind: yesno
tag_sets:
  - key: oses
    selected: [Linux]
    available: [Linux, Windows, macOS]
  - key: project_type
    multiple: false
    available: [Academic, Commercial]
citations:
  - number: 1
    cite: 'D. R. Hipp. "SQLite". 2000.'
  - number: 5
    cite: 'Later paper.'
`

func TestLoadSnapshot(t *testing.T) {
	s, err := LoadSnapshot(strings.NewReader(sqliteSnapshot), Options{})
	require.NoError(t, err)

	assert.Equal(t, "SQLite", s.DBName())
	assert.Equal(t, "/db/sqlite/edit/3f2a", s.PagePath())
	assert.NotEmpty(t, s.ID())

	d, ok := s.Field("description")
	require.True(t, ok)
	assert.Equal(t, KindText, d.Kind())
	assert.Equal(t, "Embedded SQL engine.", d.Value())
	assert.False(t, d.Dirty())

	l, _ := s.Field("license")
	assert.Equal(t, Yes, l.Exists())
	lg, _ := s.Field("logging")
	assert.Equal(t, Unknown, lg.Exists())

	oses, ok := s.TagSet("oses")
	require.True(t, ok)
	assert.True(t, oses.AllowsMultiple(), "multiple defaults to true")
	assert.Equal(t, []string{"Linux"}, oses.Selected())
	assert.Equal(t, []string{"Windows", "macOS"}, oses.Available())

	pt, _ := s.TagSet("project_type")
	assert.False(t, pt.AllowsMultiple())

	assert.Len(t, s.Citations(), 2)
	assert.Equal(t, 6, s.NextCitationNumber())
	assert.False(t, s.SaveVisible())
}

func TestLoadSnapshot_JSON(t *testing.T) {
	doc := `{"db_name":"Redis","page_path":"/db/redis/edit/k","fields":[{"key":"developer","value":"antirez"}]}`
	s, err := LoadSnapshot(strings.NewReader(doc), Options{})
	require.NoError(t, err)
	f, ok := s.Field("developer")
	require.True(t, ok)
	assert.Equal(t, "antirez", f.Value())
}

func TestLoadSnapshot_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty", doc: ""},
		{name: "missing page path", doc: "db_name: x\n"},
		{name: "bad kind", doc: "page_path: /e\nfields:\n  - key: a\n    kind: slider\n"},
		{name: "bad flag", doc: "page_path: /e\nfields:\n  - key: a\n    kind: yesno\n    exists: maybe\n"},
		{name: "duplicate field", doc: "page_path: /e\nfields:\n  - key: a\n  - key: a\n"},
		{name: "bad citation", doc: "page_path: /e\ncitations:\n  - number: 0\n"},
		{name: "not yaml", doc: "page_path: [unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSnapshot(strings.NewReader(tt.doc), Options{})
			require.Error(t, err)
		})
	}
}

func TestLoadSnapshotFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sqliteSnapshot), 0o600))

	s, err := LoadSnapshotFile(path, Options{ReplaceSingle: true})
	require.NoError(t, err)
	assert.Equal(t, "SQLite", s.DBName())

	_, err = LoadSnapshotFile(filepath.Join(t.TempDir(), "missing.yaml"), Options{})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseTriState(t *testing.T) {
	for in, want := range map[string]TriState{"": Unknown, "?": Unknown, "YES": Yes, "1": Yes, "false": No, "n": No} {
		got, err := ParseTriState(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseTriState("perhaps")
	require.ErrorIs(t, err, ErrInvalidSession)
}
