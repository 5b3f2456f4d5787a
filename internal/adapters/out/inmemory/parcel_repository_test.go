package inmemory_test

import (
	"sync"
	"testing"
	"time"

	"parceltrack/internal/adapters/out/inmemory"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParcel(t *testing.T, trackingID string) *parcel.Parcel {
	t.Helper()

	id, err := kernel.TrackingIDFromString(trackingID)
	require.NoError(t, err)

	receiver, err := parcel.NewReceiver(
		"Jane Roe", "+15550101", "12 Harbor Lane, Springfield", "jane.roe@example.com")
	require.NoError(t, err)

	details, err := parcel.NewPackageDetails(parcel.Package, 2.5, "Books")
	require.NoError(t, err)

	p, err := parcel.NewParcel(id, kernel.NewUUID(), receiver, details, 12.5, nil,
		time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	return p
}

func TestParcelRepository_AddGetExists(t *testing.T) {
	ctx := t.Context()
	repo := inmemory.NewParcelRepository()
	created := newTestParcel(t, "TRK-20260831-AAAA1111")

	exists, err := repo.Exists(ctx, created.TrackingID())
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Add(ctx, created))

	exists, err = repo.Exists(ctx, created.TrackingID())
	require.NoError(t, err)
	assert.True(t, exists)

	loaded, err := repo.Get(ctx, created.TrackingID())
	require.NoError(t, err)
	assert.True(t, loaded.IsEqual(created))

	err = repo.Add(ctx, newTestParcel(t, "TRK-20260831-AAAA1111"))
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestParcelRepository_ConditionalUpdate(t *testing.T) {
	ctx := t.Context()
	repo := inmemory.NewParcelRepository()
	created := newTestParcel(t, "TRK-20260831-AAAA1111")
	require.NoError(t, repo.Add(ctx, created))

	now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)
	adminID := kernel.NewUUID()
	entry, err := parcel.NewStatusLogEntry(parcel.Approved, adminID, "", now)
	require.NoError(t, err)

	var fields parcel.FieldSet
	fields.Set(parcel.FieldCurrentStatus, parcel.Approved)
	fields.Set(parcel.FieldFee, 30.0)
	fields.Set(parcel.FieldReceiverName, "John Smith")

	updated, err := repo.ConditionalUpdate(ctx, created.TrackingID(), fields, &entry)

	require.NoError(t, err)
	assert.Equal(t, parcel.Approved, updated.CurrentStatus())
	assert.Equal(t, 30.0, updated.Fee())
	assert.Equal(t, "John Smith", updated.Receiver().Name())
	require.Len(t, updated.StatusLog(), 2)
	assert.Equal(t, parcel.Approved, updated.StatusLog()[1].Status())

	// Untouched fields survive the rebuild.
	assert.Equal(t, created.Receiver().Email(), updated.Receiver().Email())
	assert.Equal(t, created.CreatedAt(), updated.CreatedAt())
}

func TestParcelRepository_ConditionalUpdate_Missing(t *testing.T) {
	ctx := t.Context()
	repo := inmemory.NewParcelRepository()
	id, err := kernel.TrackingIDFromString("TRK-20260831-ZZZZ9999")
	require.NoError(t, err)

	var fields parcel.FieldSet
	fields.Set(parcel.FieldFee, 1.0)

	updated, err := repo.ConditionalUpdate(ctx, id, fields, nil)

	require.Error(t, err)
	assert.Nil(t, updated)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestParcelRepository_ConditionalUpdate_ConcurrentAppendsKeepLogConsistent(t *testing.T) {
	ctx := t.Context()
	repo := inmemory.NewParcelRepository()
	created := newTestParcel(t, "TRK-20260831-AAAA1111")
	require.NoError(t, repo.Add(ctx, created))

	const writers = 16
	base := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			entry, entryErr := parcel.NewStatusLogEntry(
				parcel.Approved, kernel.NewUUID(), "", base.Add(time.Duration(i)*time.Second))
			if entryErr != nil {
				return
			}

			var fields parcel.FieldSet
			fields.Set(parcel.FieldCurrentStatus, parcel.Approved)
			_, _ = repo.ConditionalUpdate(ctx, created.TrackingID(), fields, &entry)
		}(i)
	}
	wg.Wait()

	loaded, err := repo.Get(ctx, created.TrackingID())
	require.NoError(t, err)
	assert.Len(t, loaded.StatusLog(), 1+writers)
	assert.Equal(t, parcel.Approved, loaded.CurrentStatus())
}
