package stripe

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_JSON(t *testing.T) {
	type wrapper struct {
		At   Timestamp  `json:"at"`
		Opt  *Timestamp `json:"opt,omitempty"`
		Zero Timestamp  `json:"zero"`
	}

	in := wrapper{At: NewTimestamp(time.Date(2024, 3, 1, 12, 0, 0, 999, time.UTC))}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":1709294400,"zero":null}`, string(data))

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, in.At.Equal(out.At.Time))
	assert.Nil(t, out.Opt)
	assert.True(t, out.Zero.IsZero())
}

func TestTimestamp_UnmarshalInvalid(t *testing.T) {
	var ts Timestamp
	err := json.Unmarshal([]byte(`"2024-03-01"`), &ts)
	assert.ErrorContains(t, err, "invalid timestamp")
}

func TestUnix(t *testing.T) {
	ts := Unix(0)
	assert.Equal(t, time.UTC, ts.Location())
	assert.Equal(t, int64(0), ts.Unix())
}
