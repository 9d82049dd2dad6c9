package editsession

import (
	"slices"
	"strings"
)

// TagSetField is a multi-valued categorical attribute such as the languages a
// system is written in. Selected and Available keep insertion order.
type TagSetField struct {
	key       string
	multiple  bool
	selected  []string
	available []string
	adds      []string
	removes   []string
	open      bool
}

func newTagSet(key string, multiple bool, selected, available []string) *TagSetField {
	t := &TagSetField{key: key, multiple: multiple}
	for _, tag := range selected {
		tag = strings.TrimSpace(tag)
		if tag != "" && !slices.Contains(t.selected, tag) {
			t.selected = append(t.selected, tag)
		}
	}
	for _, tag := range available {
		tag = strings.TrimSpace(tag)
		if tag != "" && !slices.Contains(t.selected, tag) && !slices.Contains(t.available, tag) {
			t.available = append(t.available, tag)
		}
	}
	return t
}

func (t TagSetField) Key() string              { return t.key }
func (t TagSetField) AllowsMultiple() bool     { return t.multiple }
func (t TagSetField) Editing() bool            { return t.open }
func (t TagSetField) Selected() []string       { return slices.Clone(t.selected) }
func (t TagSetField) Available() []string      { return slices.Clone(t.available) }
func (t TagSetField) PendingAdds() []string    { return slices.Clone(t.adds) }
func (t TagSetField) PendingRemoves() []string { return slices.Clone(t.removes) }

func (t TagSetField) hasChanges() bool {
	return len(t.adds) > 0 || len(t.removes) > 0
}

// selectTag moves tag from available to selected. It reports false without
// an error when a single-valued set is occupied and replace is off.
func (t *TagSetField) selectTag(tag string, replace bool) (bool, error) {
	tag = strings.TrimSpace(tag)
	if !slices.Contains(t.available, tag) {
		return false, ErrTagNotAvailable
	}
	if !t.multiple && len(t.selected) > 0 {
		if !replace {
			return false, nil
		}
		for _, prior := range t.Selected() {
			if _, err := t.deselectTag(prior); err != nil {
				return false, err
			}
		}
	}

	t.available = removeFrom(t.available, tag)
	t.selected = append(t.selected, tag)

	if slices.Contains(t.removes, tag) {
		t.removes = removeFrom(t.removes, tag)
	} else {
		t.adds = append(t.adds, tag)
	}
	return true, nil
}

// deselectTag moves tag back to the available list. An empty tag is ignored.
func (t *TagSetField) deselectTag(tag string) (bool, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false, nil
	}
	if !slices.Contains(t.selected, tag) {
		return false, ErrTagNotSelected
	}

	t.selected = removeFrom(t.selected, tag)
	t.available = append(t.available, tag)

	if slices.Contains(t.adds, tag) {
		t.adds = removeFrom(t.adds, tag)
	} else {
		t.removes = append(t.removes, tag)
	}
	return true, nil
}

func removeFrom(list []string, elem string) []string {
	i := slices.Index(list, elem)
	if i < 0 {
		return list
	}
	return slices.Delete(list, i, i+1)
}
