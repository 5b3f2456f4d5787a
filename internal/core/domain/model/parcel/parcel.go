package parcel

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// MaxFee bounds the delivery fee.
const MaxFee = 10000.0

// CreatedNote is the note recorded on the seed log entry of every parcel.
const CreatedNote = "Parcel created"

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not created
	// through NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

	// ErrStatusLogIsEmpty is returned when restoring a parcel without any log
	// entries. Every parcel records at least the initial Requested transition.
	ErrStatusLogIsEmpty = errors.New("status log must contain at least the initial entry")

	// ErrStatusLogMismatch is returned when the last log entry's status does not
	// match the parcel's current status.
	ErrStatusLogMismatch = errors.New("current status must equal the last status log entry")
)

// Parcel is the aggregate root of the delivery domain. It is created by a
// sender (or an administrator on a sender's behalf) and then mutated
// exclusively through policy-authorized updates; parcels are never deleted,
// cancellation and return are terminal states rather than removals.
//
// Parcel maintains these invariants:
//   - The tracking id is assigned exactly once, at creation
//   - The status log is never empty; its first entry records the Requested
//     transition by the sender
//   - The current status always equals the last log entry's status
//   - The actual delivery date is stamped by the system, never by callers
type Parcel struct {
	trackingID           kernel.TrackingID
	senderID             kernel.UUID
	receiver             Receiver
	packageDetails       PackageDetails
	fee                  float64
	currentStatus        Status
	statusLog            []StatusLogEntry
	isBlocked            bool
	expectedDeliveryDate *time.Time
	actualDeliveryDate   *time.Time
	createdAt            time.Time

	isConstructed bool
}

// NewParcel creates a new delivery request in Requested status.
// The status log is seeded with a single entry recording the Requested
// transition by the sender, noted with CreatedNote.
func NewParcel(
	trackingID kernel.TrackingID,
	senderID kernel.UUID,
	receiver Receiver,
	packageDetails PackageDetails,
	fee float64,
	expectedDeliveryDate *time.Time,
	now time.Time,
) (*Parcel, error) {
	p := &Parcel{isConstructed: true}

	if err := errors.Join(
		p.setTrackingID(trackingID),
		p.setSenderID(senderID),
		p.setReceiver(receiver),
		p.setPackageDetails(packageDetails),
		p.setFee(fee),
	); err != nil {
		return nil, err
	}

	seed, err := NewStatusLogEntry(Requested, senderID, CreatedNote, now)
	if err != nil {
		return nil, err
	}

	p.currentStatus = Requested
	p.statusLog = []StatusLogEntry{seed}
	p.expectedDeliveryDate = expectedDeliveryDate
	p.createdAt = now

	return p, nil
}

// RestoreParcel reconstructs a parcel from persistence, re-checking the
// aggregate invariants so corrupted rows surface as errors instead of
// propagating through the policy.
func RestoreParcel(
	trackingID kernel.TrackingID,
	senderID kernel.UUID,
	receiver Receiver,
	packageDetails PackageDetails,
	fee float64,
	currentStatus Status,
	statusLog []StatusLogEntry,
	isBlocked bool,
	expectedDeliveryDate *time.Time,
	actualDeliveryDate *time.Time,
	createdAt time.Time,
) (*Parcel, error) {
	p := &Parcel{isConstructed: true}

	if err := errors.Join(
		p.setTrackingID(trackingID),
		p.setSenderID(senderID),
		p.setReceiver(receiver),
		p.setPackageDetails(packageDetails),
		p.setFee(fee),
	); err != nil {
		return nil, err
	}

	if err := currentStatus.Validate(); err != nil {
		return nil, err
	}

	if len(statusLog) == 0 {
		return nil, ErrStatusLogIsEmpty
	}

	for _, entry := range statusLog {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
	}

	if statusLog[len(statusLog)-1].Status() != currentStatus {
		return nil, ErrStatusLogMismatch
	}

	p.currentStatus = currentStatus
	p.statusLog = statusLog
	p.isBlocked = isBlocked
	p.expectedDeliveryDate = expectedDeliveryDate
	p.actualDeliveryDate = actualDeliveryDate
	p.createdAt = createdAt

	return p, nil
}

// Validate ensures the Parcel instance was properly constructed.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares two parcels by their tracking identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.trackingID.IsEqual(other.trackingID)
}

// TrackingID returns the parcel's public identifier.
func (p *Parcel) TrackingID() kernel.TrackingID {
	return p.trackingID
}

// SenderID returns the id of the user who created the delivery request.
func (p *Parcel) SenderID() kernel.UUID {
	return p.senderID
}

// Receiver returns the receiver contact information.
func (p *Parcel) Receiver() Receiver {
	return p.receiver
}

// PackageDetails returns the package classification, weight and description.
func (p *Parcel) PackageDetails() PackageDetails {
	return p.packageDetails
}

// Fee returns the delivery fee.
func (p *Parcel) Fee() float64 {
	return p.fee
}

// CurrentStatus returns the current lifecycle status.
func (p *Parcel) CurrentStatus() Status {
	return p.currentStatus
}

// StatusLog returns a copy of the append-only transition log, in insertion
// order. The copy keeps callers from mutating the audit trail.
func (p *Parcel) StatusLog() []StatusLogEntry {
	log := make([]StatusLogEntry, len(p.statusLog))
	copy(log, p.statusLog)
	return log
}

// IsBlocked reports whether an administrator has blocked the parcel.
// Blocked parcels reject all non-administrative mutations.
func (p *Parcel) IsBlocked() bool {
	return p.isBlocked
}

// ExpectedDeliveryDate returns the promised delivery date, if one was set.
func (p *Parcel) ExpectedDeliveryDate() *time.Time {
	return p.expectedDeliveryDate
}

// ActualDeliveryDate returns when the parcel was delivered, or nil while it
// has not been. The date is stamped automatically on the Delivered
// transition and never accepted from caller input.
func (p *Parcel) ActualDeliveryDate() *time.Time {
	return p.actualDeliveryDate
}

// CreatedAt returns when the delivery request was filed.
func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Parcel) setTrackingID(trackingID kernel.TrackingID) error {
	if err := trackingID.Validate(); err != nil {
		return err
	}
	p.trackingID = trackingID
	return nil
}

func (p *Parcel) setSenderID(senderID kernel.UUID) error {
	if err := senderID.Validate(); err != nil {
		return err
	}
	p.senderID = senderID
	return nil
}

func (p *Parcel) setReceiver(receiver Receiver) error {
	if err := receiver.Validate(); err != nil {
		return err
	}
	p.receiver = receiver
	return nil
}

func (p *Parcel) setPackageDetails(packageDetails PackageDetails) error {
	if err := packageDetails.Validate(); err != nil {
		return err
	}
	p.packageDetails = packageDetails
	return nil
}

func (p *Parcel) setFee(fee float64) error {
	if fee < 0 || fee > MaxFee {
		return errs.NewValueIsOutOfRangeError("fee", fee, 0, MaxFee)
	}
	p.fee = fee
	return nil
}
