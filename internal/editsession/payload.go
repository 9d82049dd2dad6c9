package editsession

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// Keys of the structured blocks in a save payload.
const (
	KeyModelStuff     = "model_stuff"
	KeyCitations      = "citations"
	KeyImage          = "image"
	KeyVersionMessage = "version_message"

	supportPrefix     = "support_"
	descriptionPrefix = "description_"
)

// Payload is the flat key/value body of one save request.
type Payload map[string]string

// Values converts p to form values.
func (p Payload) Values() url.Values {
	v := make(url.Values, len(p))
	for k, val := range p {
		v.Set(k, val)
	}
	return v
}

// Keys returns the payload keys in sorted order.
func (p Payload) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// OptionChanges is the model_stuff block: staged tag-set edits per key.
type OptionChanges struct {
	Adds    map[string][]string `json:"adds"`
	Removes map[string][]string `json:"removes"`
}

// CitationChanges is the citations block.
type CitationChanges struct {
	Adds    map[string]Citation `json:"adds"`
	Removes []int               `json:"removes"`
}

// BuildSavePayload reconciles the staged edits into one payload. It has no
// side effects; an open editor's draft is not included until committed.
func (s *Session) BuildSavePayload() (Payload, error) {
	if !s.HasChanges() {
		return nil, ErrNothingToSave
	}

	p := make(Payload)

	for _, key := range s.fieldOrder {
		f := s.fields[key]
		if !f.dirty {
			continue
		}
		if f.kind != KindYesNo {
			p[key] = f.value
			continue
		}
		p[descriptionPrefix+key] = f.value
		if v, ok := f.Exists().FormValue(); ok {
			p[supportPrefix+key] = v
		}
	}

	options := OptionChanges{
		Adds:    make(map[string][]string, len(s.tagSets)),
		Removes: make(map[string][]string, len(s.tagSets)),
	}
	for _, key := range s.tagOrder {
		t := s.tagSets[key]
		options.Adds[key] = append([]string{}, t.adds...)
		options.Removes[key] = append([]string{}, t.removes...)
	}
	if err := putJSON(p, KeyModelStuff, options); err != nil {
		return nil, err
	}

	citations := CitationChanges{
		Adds:    make(map[string]Citation, len(s.citationAdds)),
		Removes: append([]int{}, s.citationRemoves...),
	}
	for n, c := range s.citationAdds {
		citations.Adds[strconv.Itoa(n)] = c
	}
	if err := putJSON(p, KeyCitations, citations); err != nil {
		return nil, err
	}

	if s.image != nil {
		raw := make([]int, len(s.image.Bytes))
		for i, b := range s.image.Bytes {
			raw[i] = int(b)
		}
		if err := putJSON(p, KeyImage, raw); err != nil {
			return nil, err
		}
	}

	if s.versionMessage != "" {
		p[KeyVersionMessage] = s.versionMessage
	}

	return p, nil
}

func putJSON(p Payload, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	p[key] = string(b)
	return nil
}
