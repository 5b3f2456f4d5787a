package queries

import (
	"context"

	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOverdueParcelsQueryHandler retrieves overdue parcels from the database.
// A parcel is overdue when its expected delivery date has passed and it has
// not reached a terminal status.
type GetOverdueParcelsQueryHandler struct {
	db *gorm.DB
}

// NewGetOverdueParcelsQueryHandler creates a handler for overdue parcel queries.
// Requires a GORM database connection for query execution.
func NewGetOverdueParcelsQueryHandler(db *gorm.DB) GetOverdueParcelsQueryHandler {
	return GetOverdueParcelsQueryHandler{db: db}
}

// Handle executes the overdue query. Results are ordered by how long the
// parcel has been overdue, longest first.
func (h GetOverdueParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueParcelsQuery,
) ([]OverdueParcelResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	overdue := make([]OverdueParcelResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			tracking_id,
			status,
			receiver_email,
			expected_delivery_date
		FROM parcels
		WHERE expected_delivery_date IS NOT NULL
		  AND expected_delivery_date < ?
		  AND status NOT IN ('DELIVERED', 'CANCELLED', 'RETURNED')
		ORDER BY expected_delivery_date
	`, query.AsOf()).Rows()
	if err != nil {
		return nil, errs.NewUnavailableError("list overdue parcels", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item OverdueParcelResponse

		err = rows.Scan(
			&item.TrackingID,
			&item.Status,
			&item.ReceiverEmail,
			&item.ExpectedDeliveryDate,
		)
		if err != nil {
			return nil, errs.NewUnavailableError("list overdue parcels", err)
		}

		overdue = append(overdue, item)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewUnavailableError("list overdue parcels", err)
	}

	return overdue, nil
}
