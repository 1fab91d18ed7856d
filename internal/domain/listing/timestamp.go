package listing

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Timestamp is a creation time read from RFC 3339 strings, epoch milliseconds,
// or {"seconds": n} objects. Unreadable values decode to the zero time.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON never fails the enclosing record.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*ts = Timestamp{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			ts.Time = t.UTC()
		}
	case '{':
		var obj struct {
			Seconds int64 `json:"seconds"`
		}
		if err := json.Unmarshal(data, &obj); err == nil && obj.Seconds > 0 {
			ts.Time = time.Unix(obj.Seconds, 0).UTC()
		}
	default:
		if ms, err := strconv.ParseInt(string(data), 10, 64); err == nil && ms > 0 {
			ts.Time = time.UnixMilli(ms).UTC()
		}
	}
	return nil
}

// MarshalJSON writes RFC 3339, or null for the zero time.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.Format(time.RFC3339))
}
