package parcel

import (
	"net/mail"
	"time"

	"parceltrack/internal/pkg/errs"
)

// FieldPath is the logical path of a mutable parcel field. The repository
// adapter translates paths to its native partial-update mechanism (columns
// for the relational adapter); the core never deals with storage names.
type FieldPath string

const (
	FieldReceiverName         FieldPath = "receiver.name"
	FieldReceiverPhone        FieldPath = "receiver.phone"
	FieldReceiverAddress      FieldPath = "receiver.address"
	FieldReceiverEmail        FieldPath = "receiver.email"
	FieldPackageType          FieldPath = "packageDetails.type"
	FieldPackageWeight        FieldPath = "packageDetails.weight"
	FieldPackageDescription   FieldPath = "packageDetails.description"
	FieldFee                  FieldPath = "fee"
	FieldExpectedDeliveryDate FieldPath = "expectedDeliveryDate"
	FieldIsBlocked            FieldPath = "isBlocked"
	FieldCurrentStatus        FieldPath = "currentStatus"
	FieldActualDeliveryDate   FieldPath = "actualDeliveryDate"
)

// Field is one logical field assignment produced by the transition policy.
type Field struct {
	Path  FieldPath
	Value any
}

// FieldSet is an ordered list of field assignments. Order is preserved so
// repository adapters apply assignments deterministically.
type FieldSet []Field

// Set appends an assignment to the field set.
func (fs *FieldSet) Set(path FieldPath, value any) {
	*fs = append(*fs, Field{Path: path, Value: value})
}

// IsEmpty reports whether the field set contains no assignments.
func (fs FieldSet) IsEmpty() bool {
	return len(fs) == 0
}

// Get returns the value assigned to the given path and whether it is present.
func (fs FieldSet) Get(path FieldPath) (any, bool) {
	for _, f := range fs {
		if f.Path == path {
			return f.Value, true
		}
	}
	return nil, false
}

// ReceiverPatch carries proposed changes to receiver contact fields.
// Nil members are left untouched.
type ReceiverPatch struct {
	Name    *string
	Phone   *string
	Address *string
	Email   *string
}

// IsZero reports whether the patch proposes no changes.
func (p ReceiverPatch) IsZero() bool {
	return p.Name == nil && p.Phone == nil && p.Address == nil && p.Email == nil
}

// PackageDetailsPatch carries proposed changes to package fields.
// Nil members are left untouched.
type PackageDetailsPatch struct {
	Type        *PackageType
	Weight      *float64
	Description *string
}

// IsZero reports whether the patch proposes no changes.
func (p PackageDetailsPatch) IsZero() bool {
	return p.Type == nil && p.Weight == nil && p.Description == nil
}

// Mutation is the proposed change a caller submits for a parcel: optional
// field patches, an optional target status, and an optional note for the log
// entry. Which parts an actor may apply is decided by the transition policy;
// Mutation itself only knows structural validity.
type Mutation struct {
	Receiver             *ReceiverPatch
	PackageDetails       *PackageDetailsPatch
	Fee                  *float64
	ExpectedDeliveryDate *time.Time
	IsBlocked            *bool
	CurrentStatus        *Status
	Note                 *string
}

// IsEmpty reports whether the mutation proposes no field changes at all.
// A note by itself does not count: notes only annotate transitions.
func (m Mutation) IsEmpty() bool {
	return (m.Receiver == nil || m.Receiver.IsZero()) &&
		(m.PackageDetails == nil || m.PackageDetails.IsZero()) &&
		m.Fee == nil &&
		m.ExpectedDeliveryDate == nil &&
		m.IsBlocked == nil &&
		m.CurrentStatus == nil
}

// HasReceiver reports whether the mutation patches any receiver field.
func (m Mutation) HasReceiver() bool {
	return m.Receiver != nil && !m.Receiver.IsZero()
}

// HasFieldsBeyondReceiverAndStatus reports whether the mutation touches
// anything a sender is never allowed to change.
func (m Mutation) HasFieldsBeyondReceiverAndStatus() bool {
	return (m.PackageDetails != nil && !m.PackageDetails.IsZero()) ||
		m.Fee != nil ||
		m.ExpectedDeliveryDate != nil ||
		m.IsBlocked != nil
}

// HasFieldsBeyondStatus reports whether the mutation touches anything other
// than the target status and note.
func (m Mutation) HasFieldsBeyondStatus() bool {
	return m.HasReceiver() || m.HasFieldsBeyondReceiverAndStatus()
}

// NoteOr returns the mutation note, or the given default when none was supplied.
func (m Mutation) NoteOr(def string) string {
	if m.Note != nil {
		return *m.Note
	}
	return def
}

// Validate re-checks the structural constraints the external schema layer
// already enforces. A mutation that fails here is malformed regardless of
// who submits it or what state the parcel is in.
func (m Mutation) Validate() error {
	if m.Receiver != nil {
		if err := m.validateReceiverPatch(); err != nil {
			return err
		}
	}

	if m.PackageDetails != nil {
		if err := m.validatePackagePatch(); err != nil {
			return err
		}
	}

	if m.Fee != nil && (*m.Fee < 0 || *m.Fee > MaxFee) {
		return errs.NewValueIsOutOfRangeError("fee", *m.Fee, 0, MaxFee)
	}

	if m.CurrentStatus != nil {
		if err := m.CurrentStatus.Validate(); err != nil {
			return err
		}
	}

	if m.Note != nil && len(*m.Note) > MaxNoteLength {
		return errs.NewValueIsOutOfRangeError("note length", len(*m.Note), 0, MaxNoteLength)
	}

	return nil
}

func (m Mutation) validateReceiverPatch() error {
	p := m.Receiver

	if p.Name != nil && (len(*p.Name) < MinReceiverNameLength || len(*p.Name) > MaxReceiverNameLength) {
		return errs.NewValueIsOutOfRangeError(
			"receiver name length", len(*p.Name), MinReceiverNameLength, MaxReceiverNameLength)
	}

	if p.Phone != nil && *p.Phone == "" {
		return errs.NewValueIsRequiredError("receiver phone")
	}

	if p.Address != nil && (len(*p.Address) < MinReceiverAddressLength || len(*p.Address) > MaxReceiverAddressLength) {
		return errs.NewValueIsOutOfRangeError(
			"receiver address length", len(*p.Address), MinReceiverAddressLength, MaxReceiverAddressLength)
	}

	if p.Email != nil {
		if len(*p.Email) < MinReceiverEmailLength || len(*p.Email) > MaxReceiverEmailLength {
			return errs.NewValueIsOutOfRangeError(
				"receiver email length", len(*p.Email), MinReceiverEmailLength, MaxReceiverEmailLength)
		}
		if _, err := mail.ParseAddress(*p.Email); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("receiver email", err)
		}
	}

	return nil
}

func (m Mutation) validatePackagePatch() error {
	p := m.PackageDetails

	if p.Type != nil {
		if err := p.Type.Validate(); err != nil {
			return err
		}
	}

	if p.Weight != nil && (*p.Weight <= 0 || *p.Weight > MaxWeightKg) {
		return errs.NewValueIsOutOfRangeError("weight", *p.Weight, 0, MaxWeightKg)
	}

	if p.Description != nil && len(*p.Description) > MaxDescriptionLength {
		return errs.NewValueIsOutOfRangeError(
			"description length", len(*p.Description), 0, MaxDescriptionLength)
	}

	return nil
}
