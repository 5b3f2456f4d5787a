package services

import (
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
)

// Default note recorded when a sender cancels without supplying one.
const cancelledBySenderNote = "Cancelled by sender"

// Statuses a delivery man is allowed to set.
var deliveryManStatuses = map[parcel.Status]bool{
	parcel.Picked:    true,
	parcel.InTransit: true,
	parcel.Delivered: true,
}

// Decision is the closed result type of a policy evaluation: either
// Authorized with the exact field assignments and optional log entry to
// persist, or Rejected with a business-rule reason. Business rejections are
// values, not errors; the application layer translates Rejected into the
// forbidden error kind.
type Decision interface {
	isDecision()
}

// Authorized carries the mutations the actor is allowed to apply.
// LogEntry is non-nil exactly when the mutation includes a status transition.
type Authorized struct {
	FieldSet parcel.FieldSet
	LogEntry *parcel.StatusLogEntry
}

func (Authorized) isDecision() {}

// Rejected carries the reason the mutation was refused.
type Rejected struct {
	Reason string
}

func (Rejected) isDecision() {}

// TransitionPolicy is the domain service deciding which role may move a
// parcel between which states and which fields each role may write. It is a
// pure function of its arguments: it never mutates the parcel or the
// mutation, performs no I/O, and takes the current time as a parameter.
//
// Role matrix:
//   - ADMIN / SUPER_ADMIN: any field, any target status; a log entry is
//     appended only when the mutation includes a status
//   - SENDER: receiver fields while the parcel is still REQUESTED, and
//     cancellation while REQUESTED; nothing else
//   - DELIVERY_MAN: status only, restricted to PICKED, IN_TRANSIT and
//     DELIVERED; delivering stamps the actual delivery date
//   - RECEIVER and unrecognized roles: always rejected
//
// Blocked parcels reject every non-administrative mutation. Transitions out
// of a terminal state are rejected for non-administrative roles.
type TransitionPolicy struct{}

// NewTransitionPolicy creates a new TransitionPolicy instance.
func NewTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{}
}

// Decide evaluates a proposed mutation against the role matrix.
//
// The parcel passed in is the current persisted state; the returned field
// set references only logical field paths, leaving storage mapping to the
// repository adapter. Decide never returns an error: structural validation
// happens before the policy, and business violations come back as Rejected.
func (p TransitionPolicy) Decide(actor user.Actor, prc *parcel.Parcel, m parcel.Mutation, now time.Time) Decision {
	if err := prc.Validate(); err != nil {
		return Rejected{Reason: err.Error()}
	}

	if m.IsEmpty() {
		return Rejected{Reason: "nothing to update"}
	}

	switch actor.Role {
	case user.Admin, user.SuperAdmin:
		return p.decideAdmin(actor, prc, m, now)
	case user.Sender:
		return p.decideSender(actor, prc, m, now)
	case user.DeliveryMan:
		return p.decideDeliveryMan(actor, prc, m, now)
	default:
		return Rejected{Reason: fmt.Sprintf("role %s is not allowed to update parcels", actor.Role)}
	}
}

// decideAdmin authorizes every field present in the mutation. Administrators
// are exempt from the blocked flag and from terminal-state restrictions:
// they are the only way to correct a parcel once it has stopped moving.
func (p TransitionPolicy) decideAdmin(actor user.Actor, prc *parcel.Parcel, m parcel.Mutation, now time.Time) Decision {
	var fs parcel.FieldSet

	appendReceiverFields(&fs, m.Receiver)
	appendPackageFields(&fs, m.PackageDetails)

	if m.Fee != nil {
		fs.Set(parcel.FieldFee, *m.Fee)
	}
	if m.ExpectedDeliveryDate != nil {
		fs.Set(parcel.FieldExpectedDeliveryDate, *m.ExpectedDeliveryDate)
	}
	if m.IsBlocked != nil {
		fs.Set(parcel.FieldIsBlocked, *m.IsBlocked)
	}

	if m.CurrentStatus == nil {
		return Authorized{FieldSet: fs}
	}

	fs.Set(parcel.FieldCurrentStatus, *m.CurrentStatus)
	if *m.CurrentStatus == parcel.Delivered && prc.ActualDeliveryDate() == nil {
		fs.Set(parcel.FieldActualDeliveryDate, now)
	}

	entry, err := parcel.NewStatusLogEntry(*m.CurrentStatus, actor.ID, m.NoteOr(""), now)
	if err != nil {
		return Rejected{Reason: err.Error()}
	}

	return Authorized{FieldSet: fs, LogEntry: &entry}
}

// decideSender authorizes receiver retargeting and cancellation, both only
// while the parcel is still in Requested status, and only on the sender's
// own parcels.
func (p TransitionPolicy) decideSender(actor user.Actor, prc *parcel.Parcel, m parcel.Mutation, now time.Time) Decision {
	if !prc.SenderID().IsEqual(actor.ID) {
		return Rejected{Reason: "you can only update your own parcels"}
	}

	if prc.IsBlocked() {
		return Rejected{Reason: "parcel is blocked"}
	}

	if m.HasFieldsBeyondReceiverAndStatus() {
		return Rejected{Reason: "senders may only change the receiver or cancel the parcel"}
	}

	if !m.HasReceiver() && m.CurrentStatus == nil {
		return Rejected{Reason: "senders may only change the receiver or cancel the parcel"}
	}

	var fs parcel.FieldSet

	if m.HasReceiver() {
		if prc.CurrentStatus() != parcel.Requested {
			return Rejected{Reason: "receiver can only be changed while the parcel is requested"}
		}
		appendReceiverFields(&fs, m.Receiver)
	}

	if m.CurrentStatus == nil {
		return Authorized{FieldSet: fs}
	}

	if *m.CurrentStatus != parcel.Cancelled {
		return Rejected{Reason: fmt.Sprintf("senders may not set status %s", *m.CurrentStatus)}
	}
	if prc.CurrentStatus() != parcel.Requested {
		return Rejected{Reason: "you can only cancel requested parcels"}
	}

	fs.Set(parcel.FieldCurrentStatus, parcel.Cancelled)

	entry, err := parcel.NewStatusLogEntry(parcel.Cancelled, actor.ID, m.NoteOr(cancelledBySenderNote), now)
	if err != nil {
		return Rejected{Reason: err.Error()}
	}

	return Authorized{FieldSet: fs, LogEntry: &entry}
}

// decideDeliveryMan authorizes forward progress only: the status field,
// restricted to the pickup/transit/delivery set, always with a log entry.
func (p TransitionPolicy) decideDeliveryMan(actor user.Actor, prc *parcel.Parcel, m parcel.Mutation, now time.Time) Decision {
	if prc.IsBlocked() {
		return Rejected{Reason: "parcel is blocked"}
	}

	if m.CurrentStatus == nil || m.HasFieldsBeyondStatus() {
		return Rejected{Reason: "delivery men may only update the parcel status"}
	}

	if prc.CurrentStatus().IsTerminal() {
		return Rejected{Reason: fmt.Sprintf("parcel is already %s", prc.CurrentStatus())}
	}

	if !deliveryManStatuses[*m.CurrentStatus] {
		return Rejected{Reason: fmt.Sprintf("delivery men may not set status %s", *m.CurrentStatus)}
	}

	var fs parcel.FieldSet
	fs.Set(parcel.FieldCurrentStatus, *m.CurrentStatus)

	if *m.CurrentStatus == parcel.Delivered && prc.ActualDeliveryDate() == nil {
		fs.Set(parcel.FieldActualDeliveryDate, now)
	}

	entry, err := parcel.NewStatusLogEntry(*m.CurrentStatus, actor.ID, m.NoteOr(""), now)
	if err != nil {
		return Rejected{Reason: err.Error()}
	}

	return Authorized{FieldSet: fs, LogEntry: &entry}
}

func appendReceiverFields(fs *parcel.FieldSet, patch *parcel.ReceiverPatch) {
	if patch == nil {
		return
	}
	if patch.Name != nil {
		fs.Set(parcel.FieldReceiverName, *patch.Name)
	}
	if patch.Phone != nil {
		fs.Set(parcel.FieldReceiverPhone, *patch.Phone)
	}
	if patch.Address != nil {
		fs.Set(parcel.FieldReceiverAddress, *patch.Address)
	}
	if patch.Email != nil {
		fs.Set(parcel.FieldReceiverEmail, *patch.Email)
	}
}

func appendPackageFields(fs *parcel.FieldSet, patch *parcel.PackageDetailsPatch) {
	if patch == nil {
		return
	}
	if patch.Type != nil {
		fs.Set(parcel.FieldPackageType, *patch.Type)
	}
	if patch.Weight != nil {
		fs.Set(parcel.FieldPackageWeight, *patch.Weight)
	}
	if patch.Description != nil {
		fs.Set(parcel.FieldPackageDescription, *patch.Description)
	}
}
