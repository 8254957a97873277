package stripe

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// Timestamp is an instant carried on the wire as Unix epoch seconds.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to whole seconds.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Truncate(time.Second)}
}

// Unix returns a Timestamp for the given epoch seconds, in UTC.
func Unix(sec int64) Timestamp {
	return Timestamp{Time: time.Unix(sec, 0).UTC()}
}

// MarshalJSON writes the epoch seconds, or null for the zero time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, t.Unix(), 10), nil
}

// UnmarshalJSON accepts epoch seconds as a JSON number or null.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	sec, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("stripe: invalid timestamp %s: %w", data, err)
	}
	*t = Unix(sec)
	return nil
}
