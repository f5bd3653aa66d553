package envelope

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// Decodes the marshalled event the way a connected board would.
func TestChangeRoundTrip(t *testing.T) {
	env, err := NewChange(KindUpdate, "pins",
		record{ID: "p1", Nickname: "after"},
		record{ID: "p1", Nickname: "before"},
	)
	require.NoError(t, err)
	assert.NotEmpty(t, env.ID)
	assert.NotZero(t, env.Timestamp)

	raw, err := env.Marshal()
	require.NoError(t, err)

	var decoded Envelope
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, KindUpdate, decoded.Kind)
	assert.Equal(t, "pins", decoded.Table)

	var rec record
	require.NoError(t, json.Unmarshal(decoded.Record, &rec))
	assert.Equal(t, "after", rec.Nickname)
}

func TestInsertHasNoPreviousRecord(t *testing.T) {
	env, err := NewChange(KindInsert, "pins", record{ID: "p1"}, nil)
	require.NoError(t, err)

	raw, err := env.Marshal()
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "previous_record")
}

func TestDeleteCarriesOnlyPrevious(t *testing.T) {
	env, err := NewChange(KindDelete, "pins", nil, record{ID: "p1"})
	require.NoError(t, err)

	assert.Nil(t, env.Record)
	assert.NotNil(t, env.Previous)
}
