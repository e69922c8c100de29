package tzoffset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("fixed offset zone", func(t *testing.T) {
		offset, err := Resolve("Asia/Hong_Kong", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, "+08:00", offset)
	})

	t.Run("utc", func(t *testing.T) {
		offset, err := Resolve("UTC", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, "+00:00", offset)
	})

	t.Run("dst-aware zone changes with date", func(t *testing.T) {
		winter, err := Resolve("Europe/Berlin", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		summer, err := Resolve("Europe/Berlin", time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Equal(t, "+01:00", winter)
		assert.Equal(t, "+02:00", summer)
	})

	t.Run("negative offset", func(t *testing.T) {
		offset, err := Resolve("America/New_York", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, "-05:00", offset)
	})

	t.Run("unknown zone", func(t *testing.T) {
		_, err := Resolve("Mars/Olympus", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
		assert.Error(t, err)
	})
}

func TestLocation(t *testing.T) {
	loc := Location("Asia/Hong_Kong")
	assert.Equal(t, "Asia/Hong_Kong", loc.String())

	// Неизвестная зона деградирует в UTC
	assert.Equal(t, time.UTC, Location("Mars/Olympus"))
	assert.Equal(t, time.UTC, Location(""))
}
