// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// Pagination bounds for parcel listings.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var ErrListParcelsQueryIsNotConstructed = errors.New(
	"ListParcelsQuery must be created via NewListParcelsQuery constructor",
)

// ListParcelsQuery retrieves parcels visible to the querying actor, newest
// first, with status filtering and pagination.
//
// Visibility scoping:
//   - ADMIN / SUPER_ADMIN see every parcel and may additionally filter by sender
//   - SENDER sees parcels they filed
//   - every other role sees parcels addressed to their account email
//
// Example:
//
//	query, err := NewListParcelsQuery(actor, actorEmail, nil, nil, 1, 20)
//	if err != nil {
//	    return err
//	}
//
//	page, err := handler.Handle(ctx, query)
//	fmt.Printf("showing %d of %d parcels\n", len(page.Items), page.Total)
type ListParcelsQuery struct { //nolint:recvcheck //using for validation
	actor         user.Actor
	actorEmail    string
	statusFilter  *parcel.Status
	senderFilter  *kernel.UUID
	blockedFilter *bool
	page          int
	pageSize      int

	guard guard.ConstructorGuard
}

// NewListParcelsQuery creates a validated listing query. Page defaults to 1
// and pageSize to DefaultPageSize when zero. Actors outside the admin and
// sender roles must supply their account email, since email is their only
// link to parcels.
func NewListParcelsQuery(
	actor user.Actor,
	actorEmail string,
	statusFilter *parcel.Status,
	senderFilter *kernel.UUID,
	blockedFilter *bool,
	page int,
	pageSize int,
) (ListParcelsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListParcelsQuery{}, err
	}

	if !actor.Role.IsAdministrative() && actor.Role != user.Sender && actorEmail == "" {
		return ListParcelsQuery{}, errs.NewValueIsRequiredError("actor email")
	}

	if statusFilter != nil {
		if err := statusFilter.Validate(); err != nil {
			return ListParcelsQuery{}, err
		}
	}

	if senderFilter != nil {
		if err := senderFilter.Validate(); err != nil {
			return ListParcelsQuery{}, err
		}
		if !actor.Role.IsAdministrative() {
			return ListParcelsQuery{}, errs.NewForbiddenError(
				"only administrators can filter by sender")
		}
	}

	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		return ListParcelsQuery{}, errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded")
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return ListParcelsQuery{}, errs.NewValueIsOutOfRangeError("pageSize", pageSize, 1, MaxPageSize)
	}

	return ListParcelsQuery{
		actor:         actor,
		actorEmail:    actorEmail,
		statusFilter:  statusFilter,
		senderFilter:  senderFilter,
		blockedFilter: blockedFilter,
		page:          page,
		pageSize:      pageSize,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListParcelsQueryIsNotConstructed)
}

// Actor returns the querying principal.
func (q ListParcelsQuery) Actor() user.Actor {
	return q.actor
}

// ActorEmail returns the querying account's email address.
func (q ListParcelsQuery) ActorEmail() string {
	return q.actorEmail
}

// StatusFilter returns the optional status to filter by.
func (q ListParcelsQuery) StatusFilter() *parcel.Status {
	return q.statusFilter
}

// SenderFilter returns the optional sender id to filter by (admin only).
func (q ListParcelsQuery) SenderFilter() *kernel.UUID {
	return q.senderFilter
}

// BlockedFilter returns the optional block-flag filter.
func (q ListParcelsQuery) BlockedFilter() *bool {
	return q.blockedFilter
}

// Page returns the 1-based page number.
func (q ListParcelsQuery) Page() int {
	return q.page
}

// PageSize returns the number of items per page.
func (q ListParcelsQuery) PageSize() int {
	return q.pageSize
}

// ParcelSummaryResponse is one row of a parcel listing. The status log is
// omitted from summaries; use the track query for the full audit trail.
type ParcelSummaryResponse struct {
	TrackingID           string
	SenderID             kernel.UUID
	ReceiverName         string
	ReceiverEmail        string
	Status               string
	Fee                  float64
	IsBlocked            bool
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time
	CreatedAt            time.Time
}

// ListParcelsQueryResponse is one page of parcel summaries with the total
// count for the applied scope and filters.
type ListParcelsQueryResponse struct {
	Items    []ParcelSummaryResponse
	Total    int64
	Page     int
	PageSize int
}
