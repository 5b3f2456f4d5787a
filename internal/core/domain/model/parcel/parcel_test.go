package parcel_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTrackingID(t *testing.T) kernel.TrackingID {
	t.Helper()

	id, err := kernel.TrackingIDFromString("TRK-20260831-7F3K9Q2M")
	require.NoError(t, err)
	return id
}

func mustReceiver(t *testing.T) parcel.Receiver {
	t.Helper()

	r, err := parcel.NewReceiver(
		"Jane Roe", "+15550101", "12 Harbor Lane, Springfield", "jane.roe@example.com")
	require.NoError(t, err)
	return r
}

func mustPackageDetails(t *testing.T) parcel.PackageDetails {
	t.Helper()

	d, err := parcel.NewPackageDetails(parcel.Package, 2.5, "Books")
	require.NoError(t, err)
	return d
}

func TestNewParcel(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	senderID := kernel.NewUUID()

	t.Run("valid", func(t *testing.T) {
		p, err := parcel.NewParcel(
			mustTrackingID(t), senderID, mustReceiver(t), mustPackageDetails(t), 12.5, nil, now)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, parcel.Requested, p.CurrentStatus())
		assert.False(t, p.IsBlocked())
		assert.Nil(t, p.ActualDeliveryDate())
		assert.Equal(t, now, p.CreatedAt())

		log := p.StatusLog()
		require.Len(t, log, 1)
		assert.Equal(t, parcel.Requested, log[0].Status())
		assert.True(t, log[0].UpdatedBy().IsEqual(senderID))
		assert.Equal(t, parcel.CreatedNote, log[0].Note())
	})

	t.Run("invalid tracking id", func(t *testing.T) {
		_, err := parcel.NewParcel(
			kernel.TrackingID{}, senderID, mustReceiver(t), mustPackageDetails(t), 12.5, nil, now)
		require.Error(t, err)
	})

	t.Run("unconstructed receiver", func(t *testing.T) {
		_, err := parcel.NewParcel(
			mustTrackingID(t), senderID, parcel.Receiver{}, mustPackageDetails(t), 12.5, nil, now)
		require.Error(t, err)
	})

	t.Run("negative fee", func(t *testing.T) {
		_, err := parcel.NewParcel(
			mustTrackingID(t), senderID, mustReceiver(t), mustPackageDetails(t), -1, nil, now)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("fee above limit", func(t *testing.T) {
		_, err := parcel.NewParcel(
			mustTrackingID(t), senderID, mustReceiver(t), mustPackageDetails(t),
			parcel.MaxFee+1, nil, now)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestRestoreParcel(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	senderID := kernel.NewUUID()

	seed, err := parcel.NewStatusLogEntry(parcel.Requested, senderID, parcel.CreatedNote, now)
	require.NoError(t, err)
	approved, err := parcel.NewStatusLogEntry(parcel.Approved, kernel.NewUUID(), "", now.Add(time.Hour))
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		p, restoreErr := parcel.RestoreParcel(
			mustTrackingID(t), senderID, mustReceiver(t), mustPackageDetails(t), 12.5,
			parcel.Approved, []parcel.StatusLogEntry{seed, approved},
			true, nil, nil, now)

		require.NoError(t, restoreErr)
		assert.Equal(t, parcel.Approved, p.CurrentStatus())
		assert.True(t, p.IsBlocked())
		assert.Len(t, p.StatusLog(), 2)
	})

	t.Run("empty status log", func(t *testing.T) {
		_, restoreErr := parcel.RestoreParcel(
			mustTrackingID(t), senderID, mustReceiver(t), mustPackageDetails(t), 12.5,
			parcel.Requested, nil, false, nil, nil, now)

		assert.ErrorIs(t, restoreErr, parcel.ErrStatusLogIsEmpty)
	})

	t.Run("status does not match last log entry", func(t *testing.T) {
		_, restoreErr := parcel.RestoreParcel(
			mustTrackingID(t), senderID, mustReceiver(t), mustPackageDetails(t), 12.5,
			parcel.Delivered, []parcel.StatusLogEntry{seed, approved},
			false, nil, nil, now)

		assert.ErrorIs(t, restoreErr, parcel.ErrStatusLogMismatch)
	})

	t.Run("unconstructed log entry", func(t *testing.T) {
		_, restoreErr := parcel.RestoreParcel(
			mustTrackingID(t), senderID, mustReceiver(t), mustPackageDetails(t), 12.5,
			parcel.Requested, []parcel.StatusLogEntry{{}}, false, nil, nil, now)

		require.Error(t, restoreErr)
	})
}

func TestParcelValidate(t *testing.T) {
	var p *parcel.Parcel
	assert.ErrorIs(t, p.Validate(), parcel.ErrParcelIsNotConstructed)

	zero := &parcel.Parcel{}
	assert.ErrorIs(t, zero.Validate(), parcel.ErrParcelIsNotConstructed)
}

func TestParcelStatusLogReturnsCopy(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	p, err := parcel.NewParcel(
		mustTrackingID(t), kernel.NewUUID(), mustReceiver(t), mustPackageDetails(t), 12.5, nil, now)
	require.NoError(t, err)

	log := p.StatusLog()
	log[0] = parcel.StatusLogEntry{}

	require.Len(t, p.StatusLog(), 1)
	assert.NoError(t, p.StatusLog()[0].Validate())
}
