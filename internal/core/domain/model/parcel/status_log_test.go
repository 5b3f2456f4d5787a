package parcel_test

import (
	"strings"
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatusLogEntry(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	actorID := kernel.NewUUID()

	t.Run("valid", func(t *testing.T) {
		entry, err := parcel.NewStatusLogEntry(parcel.Approved, actorID, "Looks fine", now)

		require.NoError(t, err)
		require.NoError(t, entry.Validate())
		assert.Equal(t, parcel.Approved, entry.Status())
		assert.True(t, entry.UpdatedBy().IsEqual(actorID))
		assert.Equal(t, "Looks fine", entry.Note())
		assert.Equal(t, now, entry.CreatedAt())
	})

	t.Run("empty note is allowed", func(t *testing.T) {
		_, err := parcel.NewStatusLogEntry(parcel.Picked, actorID, "", now)
		require.NoError(t, err)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := parcel.NewStatusLogEntry(parcel.UnknownStatus, actorID, "", now)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero actor id", func(t *testing.T) {
		_, err := parcel.NewStatusLogEntry(parcel.Approved, kernel.UUID{}, "", now)
		require.Error(t, err)
	})

	t.Run("note too long", func(t *testing.T) {
		_, err := parcel.NewStatusLogEntry(parcel.Approved, actorID,
			strings.Repeat("x", parcel.MaxNoteLength+1), now)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero timestamp", func(t *testing.T) {
		_, err := parcel.NewStatusLogEntry(parcel.Approved, actorID, "", time.Time{})
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestStatusLogEntryValidate(t *testing.T) {
	var zero parcel.StatusLogEntry
	assert.ErrorIs(t, zero.Validate(), errs.ErrValueIsRequired)
}
