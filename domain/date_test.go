package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15", d.String())

	_, err = ParseDate("15/06/2025")
	assert.Error(t, err)
}

func TestDateTruncatesTime(t *testing.T) {
	noon := time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)
	midnight := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.True(t, NewDate(noon).Equal(NewDate(midnight)))
	assert.False(t, NewDate(noon).Before(NewDate(midnight)))
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2025-01-31")
	require.NoError(t, err)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-31"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.Equal(d))

	var zero Date
	raw, err = json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}
