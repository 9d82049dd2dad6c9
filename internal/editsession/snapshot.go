package editsession

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Snapshot mirrors the initial page content a session is built from. It is
// read from YAML; JSON documents are accepted as well.
//
//	db_name: SQLite
//	page_path: /db/sqlite/edit/3f2a
//	fields:
//	  - key: description
//	    value: Embedded SQL engine.
//	  - key: license
//	    kind: yesno
//	    exists: yes
//	    value: Public domain
//	tag_sets:
//	  - key: oses
//	    selected: [Linux]
//	    available: [Windows, macOS]
//	citations:
//	  - number: 1
//	    cite: 'D. R. Hipp. "SQLite". 2000.'
type Snapshot struct {
	DBName    string           `yaml:"db_name"`
	PagePath  string           `yaml:"page_path"`
	Fields    []FieldSnapshot  `yaml:"fields"`
	TagSets   []TagSetSnapshot `yaml:"tag_sets"`
	Citations []Citation       `yaml:"citations"`
}

type FieldSnapshot struct {
	Key    string `yaml:"key"`
	Kind   string `yaml:"kind"`
	Value  string `yaml:"value"`
	Exists string `yaml:"exists"`
}

type TagSetSnapshot struct {
	Key string `yaml:"key"`
	// Multiple defaults to true, matching pages that omit the attribute.
	Multiple  *bool    `yaml:"multiple"`
	Selected  []string `yaml:"selected"`
	Available []string `yaml:"available"`
}

// LoadSnapshot decodes a snapshot from r and builds a session from it.
func LoadSnapshot(r io.Reader, opts Options) (*Session, error) {
	var snap Snapshot
	if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty snapshot", ErrInvalidSession)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	return FromSnapshot(snap, opts)
}

// LoadSnapshotFile is LoadSnapshot over a file.
func LoadSnapshotFile(path string, opts Options) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	return LoadSnapshot(f, opts)
}

// FromSnapshot builds a session from an already decoded snapshot.
func FromSnapshot(snap Snapshot, opts Options) (*Session, error) {
	if snap.PagePath == "" {
		return nil, fmt.Errorf("%w: page_path is required", ErrInvalidSession)
	}

	s := New(snap.DBName, snap.PagePath, opts)

	for _, fs := range snap.Fields {
		kind, err := ParseFieldKind(fs.Kind)
		if err != nil {
			return nil, err
		}
		exists, err := ParseTriState(fs.Exists)
		if err != nil {
			return nil, err
		}
		if err := s.AddField(fs.Key, kind, fs.Value, exists); err != nil {
			return nil, err
		}
	}

	for _, ts := range snap.TagSets {
		multiple := true
		if ts.Multiple != nil {
			multiple = *ts.Multiple
		}
		if err := s.AddTagSet(ts.Key, multiple, ts.Selected, ts.Available); err != nil {
			return nil, err
		}
	}

	for _, c := range snap.Citations {
		if err := s.AddCitation(c); err != nil {
			return nil, err
		}
	}

	return s, nil
}
