package format

import (
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateFormatter(t *testing.T) {
	utc, err := NewDateFormatter("UTC")
	require.NoError(t, err)
	lima, err := NewDateFormatter("America/Lima")
	require.NoError(t, err)

	assert.Equal(t, "05/01/2024 10:00:00", utc.Date("2024-01-05T10:00:00Z"))
	assert.Equal(t, "05/01/2024 05:00:00", lima.Date("2024-01-05T10:00:00Z"))
	assert.Equal(t, "05/01/2024 10:00:00", lima.Date("2024-01-05T10:00:00"))
	assert.Equal(t, "05/01/2024 10:00:00", utc.Date("2024-01-05T10:00:00.123456"))
	assert.Equal(t, "05/01/2024 00:00:00", utc.Date("2024-01-05"))

	assert.Equal(t, InvalidDate, utc.Date("not-a-date"))
	assert.Equal(t, InvalidDate, utc.Date(""))
}

func TestNewDateFormatterRejectsUnknownZone(t *testing.T) {
	_, err := NewDateFormatter("Mars/Olympus")
	assert.Error(t, err)

	local, err := NewDateFormatter("")
	require.NoError(t, err)
	assert.NotEqual(t, InvalidDate, local.Date("2024-01-05T10:00:00Z"))
}

func TestPrice(t *testing.T) {
	assert.Equal(t, "55.50", Price(55.5))
}
