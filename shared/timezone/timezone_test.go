package timezone_test

import (
	"hotelpms/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowAndLocation(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
	assert.Equal(t, timezone.GetLocation(), timezone.Now().Location())
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	assert.Zero(t, today.Hour())
	assert.Zero(t, today.Minute())
	assert.Equal(t, timezone.Now().Day(), today.Day())
}

func TestParseAndFormatDate(t *testing.T) {
	parsed, err := timezone.ParseDate("2024-02-29")
	require.NoError(t, err)

	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.February, parsed.Month())
	assert.Equal(t, 29, parsed.Day())
	assert.Equal(t, "2024-02-29", timezone.FormatDate(parsed))

	_, err = timezone.ParseDate("2023-02-29")
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	local := time.Date(2024, 8, 14, 18, 45, 10, 0, timezone.GetLocation())
	start := timezone.StartOfDay(local)

	assert.Equal(t, time.Date(2024, 8, 14, 0, 0, 0, 0, timezone.GetLocation()), start)
}
