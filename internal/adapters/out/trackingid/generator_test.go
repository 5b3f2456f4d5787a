package trackingid_test

import (
	"regexp"
	"testing"
	"time"

	"parceltrack/internal/adapters/out/trackingid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestGenerator_Generate(t *testing.T) {
	clock := fixedClock{now: time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)}
	generator := trackingid.NewGenerator(clock)

	t.Run("should produce well formed ids with the clock date", func(t *testing.T) {
		pattern := regexp.MustCompile(`^TRK-20260831-[A-Z0-9]{8}$`)

		for i := 0; i < 100; i++ {
			id, err := generator.Generate()

			require.NoError(t, err)
			assert.Regexp(t, pattern, id.String())
		}
	})

	t.Run("should use the utc date", func(t *testing.T) {
		// 23:30 on Aug 31 in UTC+2 is still Aug 31 in UTC.
		loc := time.FixedZone("UTC+2", 2*60*60)
		generator := trackingid.NewGenerator(fixedClock{
			now: time.Date(2026, 9, 1, 1, 30, 0, 0, loc),
		})

		id, err := generator.Generate()

		require.NoError(t, err)
		assert.Contains(t, id.String(), "TRK-20260831-")
	})

	t.Run("should vary the random suffix", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			id, err := generator.Generate()
			require.NoError(t, err)
			seen[id.String()] = true
		}

		assert.Greater(t, len(seen), 1)
	})
}
