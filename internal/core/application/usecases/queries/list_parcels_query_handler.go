package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListParcelsQueryHandler retrieves parcel listings from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern;
// the role scope and filters are compiled into a single WHERE clause.
type ListParcelsQueryHandler struct {
	db *gorm.DB
}

// NewListParcelsQueryHandler creates a handler for parcel listing queries.
// Requires a GORM database connection for query execution.
func NewListParcelsQueryHandler(db *gorm.DB) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{db: db}
}

// Handle executes the listing query. Returns one page of summaries ordered by
// creation time, newest first, plus the total row count for the scope.
func (h ListParcelsQueryHandler) Handle(
	ctx context.Context,
	query ListParcelsQuery,
) (ListParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListParcelsQueryResponse{}, err
	}

	where, args := buildParcelScope(query)

	var total int64
	if err := h.db.WithContext(ctx).
		Raw(`SELECT count(*) FROM parcels WHERE `+where, args...).
		Scan(&total).Error; err != nil {
		return ListParcelsQueryResponse{}, errs.NewUnavailableError("count parcels", err)
	}

	response := ListParcelsQueryResponse{
		Items:    make([]ParcelSummaryResponse, 0),
		Total:    total,
		Page:     query.Page(),
		PageSize: query.PageSize(),
	}

	offset := (query.Page() - 1) * query.PageSize()
	listArgs := append(args, query.PageSize(), offset)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			tracking_id,
			sender_id,
			receiver_name,
			receiver_email,
			status,
			fee,
			is_blocked,
			expected_delivery_date,
			actual_delivery_date,
			created_at
		FROM parcels
		WHERE `+where+`
		ORDER BY created_at DESC, tracking_id
		LIMIT ? OFFSET ?
	`, listArgs...).Rows()
	if err != nil {
		return ListParcelsQueryResponse{}, errs.NewUnavailableError("list parcels", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item ParcelSummaryResponse
		var senderID uuid.UUID

		err = rows.Scan(
			&item.TrackingID,
			&senderID,
			&item.ReceiverName,
			&item.ReceiverEmail,
			&item.Status,
			&item.Fee,
			&item.IsBlocked,
			&item.ExpectedDeliveryDate,
			&item.ActualDeliveryDate,
			&item.CreatedAt,
		)
		if err != nil {
			return ListParcelsQueryResponse{}, errs.NewUnavailableError("list parcels", err)
		}

		id, idErr := kernel.UUIDFromBytes(senderID[:])
		if idErr != nil {
			return ListParcelsQueryResponse{}, idErr
		}
		item.SenderID = id

		response.Items = append(response.Items, item)
	}

	if err = rows.Err(); err != nil {
		return ListParcelsQueryResponse{}, errs.NewUnavailableError("list parcels", err)
	}

	return response, nil
}

// buildParcelScope compiles the actor's visibility scope and the optional
// filters into a WHERE fragment with positional arguments.
func buildParcelScope(query ListParcelsQuery) (string, []any) {
	where := "1=1"
	args := make([]any, 0, 3)

	actor := query.Actor()
	switch {
	case actor.Role.IsAdministrative():
		// full visibility
	case actor.Role == user.Sender:
		where += " AND sender_id = ?"
		args = append(args, actor.ID.Bytes())
	default:
		where += " AND receiver_email = ?"
		args = append(args, query.ActorEmail())
	}

	if query.StatusFilter() != nil {
		where += " AND status = ?"
		args = append(args, query.StatusFilter().String())
	}

	if query.SenderFilter() != nil {
		where += " AND sender_id = ?"
		args = append(args, query.SenderFilter().Bytes())
	}

	if query.BlockedFilter() != nil {
		where += " AND is_blocked = ?"
		args = append(args, *query.BlockedFilter())
	}

	return where, args
}
