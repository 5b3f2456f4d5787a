package parcel_test

import (
	"strings"
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

func statusPtr(s parcel.Status) *parcel.Status { return &s }

func typePtr(t parcel.PackageType) *parcel.PackageType { return &t }

func TestMutationIsEmpty(t *testing.T) {
	assert.True(t, parcel.Mutation{}.IsEmpty())
	assert.True(t, parcel.Mutation{Note: strPtr("just a note")}.IsEmpty())
	assert.True(t, parcel.Mutation{Receiver: &parcel.ReceiverPatch{}}.IsEmpty())

	assert.False(t, parcel.Mutation{Fee: floatPtr(5)}.IsEmpty())
	assert.False(t, parcel.Mutation{CurrentStatus: statusPtr(parcel.Approved)}.IsEmpty())
	assert.False(t, parcel.Mutation{
		Receiver: &parcel.ReceiverPatch{Name: strPtr("Jane Roe")},
	}.IsEmpty())
	assert.False(t, parcel.Mutation{IsBlocked: boolPtr(true)}.IsEmpty())
}

func TestMutationFieldClassification(t *testing.T) {
	receiverOnly := parcel.Mutation{Receiver: &parcel.ReceiverPatch{Name: strPtr("Jane Roe")}}
	statusOnly := parcel.Mutation{CurrentStatus: statusPtr(parcel.Cancelled)}
	feeChange := parcel.Mutation{Fee: floatPtr(5)}

	assert.True(t, receiverOnly.HasReceiver())
	assert.False(t, receiverOnly.HasFieldsBeyondReceiverAndStatus())
	assert.True(t, receiverOnly.HasFieldsBeyondStatus())

	assert.False(t, statusOnly.HasReceiver())
	assert.False(t, statusOnly.HasFieldsBeyondReceiverAndStatus())
	assert.False(t, statusOnly.HasFieldsBeyondStatus())

	assert.True(t, feeChange.HasFieldsBeyondReceiverAndStatus())
	assert.True(t, feeChange.HasFieldsBeyondStatus())
}

func TestMutationNoteOr(t *testing.T) {
	assert.Equal(t, "fallback", parcel.Mutation{}.NoteOr("fallback"))
	assert.Equal(t, "custom", parcel.Mutation{Note: strPtr("custom")}.NoteOr("fallback"))
	assert.Equal(t, "", parcel.Mutation{Note: strPtr("")}.NoteOr("fallback"))
}

func TestMutationValidate(t *testing.T) {
	t.Run("valid full mutation", func(t *testing.T) {
		deadline := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
		m := parcel.Mutation{
			Receiver: &parcel.ReceiverPatch{
				Name:    strPtr("John Smith"),
				Phone:   strPtr("+15550102"),
				Address: strPtr("7 Mill Road, Springfield"),
				Email:   strPtr("john.smith@example.com"),
			},
			PackageDetails: &parcel.PackageDetailsPatch{
				Type:        typePtr(parcel.Fragile),
				Weight:      floatPtr(1.2),
				Description: strPtr("Glassware"),
			},
			Fee:                  floatPtr(25),
			ExpectedDeliveryDate: &deadline,
			IsBlocked:            boolPtr(false),
			CurrentStatus:        statusPtr(parcel.Approved),
			Note:                 strPtr("all fields at once"),
		}

		assert.NoError(t, m.Validate())
	})

	t.Run("receiver name too short", func(t *testing.T) {
		m := parcel.Mutation{Receiver: &parcel.ReceiverPatch{Name: strPtr("J")}}
		assert.ErrorIs(t, m.Validate(), errs.ErrValueIsOutOfRange)
	})

	t.Run("empty receiver phone", func(t *testing.T) {
		m := parcel.Mutation{Receiver: &parcel.ReceiverPatch{Phone: strPtr("")}}
		assert.ErrorIs(t, m.Validate(), errs.ErrValueIsRequired)
	})

	t.Run("malformed receiver email", func(t *testing.T) {
		m := parcel.Mutation{Receiver: &parcel.ReceiverPatch{Email: strPtr("not-an-email")}}
		assert.ErrorIs(t, m.Validate(), errs.ErrValueIsInvalid)
	})

	t.Run("invalid package type", func(t *testing.T) {
		m := parcel.Mutation{PackageDetails: &parcel.PackageDetailsPatch{
			Type: typePtr(parcel.UnknownPackageType),
		}}
		assert.ErrorIs(t, m.Validate(), errs.ErrValueIsInvalid)
	})

	t.Run("weight out of range", func(t *testing.T) {
		m := parcel.Mutation{PackageDetails: &parcel.PackageDetailsPatch{
			Weight: floatPtr(parcel.MaxWeightKg + 1),
		}}
		assert.ErrorIs(t, m.Validate(), errs.ErrValueIsOutOfRange)
	})

	t.Run("negative fee", func(t *testing.T) {
		m := parcel.Mutation{Fee: floatPtr(-1)}
		assert.ErrorIs(t, m.Validate(), errs.ErrValueIsOutOfRange)
	})

	t.Run("invalid status", func(t *testing.T) {
		m := parcel.Mutation{CurrentStatus: statusPtr(parcel.UnknownStatus)}
		assert.ErrorIs(t, m.Validate(), errs.ErrValueIsInvalid)
	})

	t.Run("note too long", func(t *testing.T) {
		m := parcel.Mutation{Note: strPtr(strings.Repeat("x", parcel.MaxNoteLength+1))}
		assert.ErrorIs(t, m.Validate(), errs.ErrValueIsOutOfRange)
	})
}
