package listing

import (
	"bytes"
	"encoding/json"
)

// Tag is one element of a tag-like array. Stored data mixes plain strings
// with objects exposing a label, name or value.
type Tag struct {
	Label string
}

// UnmarshalJSON accepts "text" or {"label"|"name"|"value": "text"}.
// Unknown shapes decode to an empty tag instead of failing the record.
func (t *Tag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*t = Tag{}
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			t.Label = s
		}
	case '{':
		var obj struct {
			Label *string `json:"label"`
			Name  *string `json:"name"`
			Value any     `json:"value"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil
		}
		switch {
		case obj.Label != nil:
			t.Label = *obj.Label
		case obj.Name != nil:
			t.Label = *obj.Name
		default:
			if s, ok := obj.Value.(string); ok {
				t.Label = s
			}
		}
	}
	return nil
}

// MarshalJSON writes the tag as a plain string.
func (t Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Label)
}

// Labels returns the non-empty labels of tags in order.
func Labels(tags []Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t.Label != "" {
			out = append(out, t.Label)
		}
	}
	return out
}

// StringTags builds tags from plain strings.
func StringTags(labels ...string) []Tag {
	out := make([]Tag, len(labels))
	for i, l := range labels {
		out[i] = Tag{Label: l}
	}
	return out
}
