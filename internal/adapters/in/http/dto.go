package http

import (
	"time"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/parcel"
)

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ReceiverBody is the receiver contact block of a create request.
type ReceiverBody struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// PackageBody is the package block of a create request.
type PackageBody struct {
	Type        string  `json:"type"`
	WeightKg    float64 `json:"weightKg"`
	Description string  `json:"description"`
}

// CreateParcelRequest is the body of POST /api/v1/parcels.
type CreateParcelRequest struct {
	SenderID             string       `json:"senderId"`
	Receiver             ReceiverBody `json:"receiver"`
	Package              PackageBody  `json:"package"`
	Fee                  float64      `json:"fee"`
	ExpectedDeliveryDate *time.Time   `json:"expectedDeliveryDate,omitempty"`
}

// ReceiverPatchBody carries optional receiver changes in an update request.
type ReceiverPatchBody struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Email   *string `json:"email,omitempty"`
}

// PackagePatchBody carries optional package changes in an update request.
type PackagePatchBody struct {
	Type        *string  `json:"type,omitempty"`
	WeightKg    *float64 `json:"weightKg,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// UpdateParcelRequest is the body of PATCH /api/v1/parcels/:trackingId.
// All members are optional; absent members are left untouched.
type UpdateParcelRequest struct {
	Receiver             *ReceiverPatchBody `json:"receiver,omitempty"`
	Package              *PackagePatchBody  `json:"package,omitempty"`
	Fee                  *float64           `json:"fee,omitempty"`
	ExpectedDeliveryDate *time.Time         `json:"expectedDeliveryDate,omitempty"`
	IsBlocked            *bool              `json:"isBlocked,omitempty"`
	Status               *string            `json:"status,omitempty"`
	Note                 *string            `json:"note,omitempty"`
}

// StatusLogEntryResponse is one audit-trail record in a parcel response.
type StatusLogEntryResponse struct {
	Status    string    `json:"status"`
	UpdatedBy string    `json:"updatedBy"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ParcelResponse is the full parcel representation returned by create, update
// and track endpoints.
type ParcelResponse struct {
	TrackingID           string                   `json:"trackingId"`
	SenderID             string                   `json:"senderId"`
	Receiver             ReceiverBody             `json:"receiver"`
	Package              PackageBody              `json:"package"`
	Fee                  float64                  `json:"fee"`
	Status               string                   `json:"status"`
	IsBlocked            bool                     `json:"isBlocked"`
	ExpectedDeliveryDate *time.Time               `json:"expectedDeliveryDate,omitempty"`
	ActualDeliveryDate   *time.Time               `json:"actualDeliveryDate,omitempty"`
	CreatedAt            time.Time                `json:"createdAt"`
	StatusLog            []StatusLogEntryResponse `json:"statusLog"`
}

// ParcelSummaryResponse is one row of a parcel listing.
type ParcelSummaryResponse struct {
	TrackingID           string     `json:"trackingId"`
	SenderID             string     `json:"senderId"`
	ReceiverName         string     `json:"receiverName"`
	ReceiverEmail        string     `json:"receiverEmail"`
	Status               string     `json:"status"`
	Fee                  float64    `json:"fee"`
	IsBlocked            bool       `json:"isBlocked"`
	ExpectedDeliveryDate *time.Time `json:"expectedDeliveryDate,omitempty"`
	ActualDeliveryDate   *time.Time `json:"actualDeliveryDate,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
}

// ListParcelsResponse is one page of parcel summaries.
type ListParcelsResponse struct {
	Items    []ParcelSummaryResponse `json:"items"`
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"pageSize"`
}

func toParcelResponse(p *parcel.Parcel) ParcelResponse {
	log := make([]StatusLogEntryResponse, 0, len(p.StatusLog()))
	for _, entry := range p.StatusLog() {
		log = append(log, StatusLogEntryResponse{
			Status:    entry.Status().String(),
			UpdatedBy: entry.UpdatedBy().String(),
			Note:      entry.Note(),
			CreatedAt: entry.CreatedAt(),
		})
	}

	return ParcelResponse{
		TrackingID: p.TrackingID().String(),
		SenderID:   p.SenderID().String(),
		Receiver: ReceiverBody{
			Name:    p.Receiver().Name(),
			Phone:   p.Receiver().Phone(),
			Address: p.Receiver().Address(),
			Email:   p.Receiver().Email(),
		},
		Package: PackageBody{
			Type:        p.PackageDetails().Type().String(),
			WeightKg:    p.PackageDetails().Weight(),
			Description: p.PackageDetails().Description(),
		},
		Fee:                  p.Fee(),
		Status:               p.CurrentStatus().String(),
		IsBlocked:            p.IsBlocked(),
		ExpectedDeliveryDate: p.ExpectedDeliveryDate(),
		ActualDeliveryDate:   p.ActualDeliveryDate(),
		CreatedAt:            p.CreatedAt(),
		StatusLog:            log,
	}
}

func toTrackedParcelResponse(r queries.TrackParcelQueryResponse) ParcelResponse {
	log := make([]StatusLogEntryResponse, 0, len(r.StatusLog))
	for _, entry := range r.StatusLog {
		log = append(log, StatusLogEntryResponse{
			Status:    entry.Status,
			UpdatedBy: entry.UpdatedBy.String(),
			Note:      entry.Note,
			CreatedAt: entry.CreatedAt,
		})
	}

	return ParcelResponse{
		TrackingID: r.TrackingID,
		SenderID:   r.SenderID.String(),
		Receiver: ReceiverBody{
			Name:    r.ReceiverName,
			Phone:   r.ReceiverPhone,
			Address: r.ReceiverAddress,
			Email:   r.ReceiverEmail,
		},
		Package: PackageBody{
			Type:        r.PackageType,
			WeightKg:    r.PackageWeight,
			Description: r.PackageDescription,
		},
		Fee:                  r.Fee,
		Status:               r.Status,
		IsBlocked:            r.IsBlocked,
		ExpectedDeliveryDate: r.ExpectedDeliveryDate,
		ActualDeliveryDate:   r.ActualDeliveryDate,
		CreatedAt:            r.CreatedAt,
		StatusLog:            log,
	}
}

func toListParcelsResponse(r queries.ListParcelsQueryResponse) ListParcelsResponse {
	items := make([]ParcelSummaryResponse, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, ParcelSummaryResponse{
			TrackingID:           item.TrackingID,
			SenderID:             item.SenderID.String(),
			ReceiverName:         item.ReceiverName,
			ReceiverEmail:        item.ReceiverEmail,
			Status:               item.Status,
			Fee:                  item.Fee,
			IsBlocked:            item.IsBlocked,
			ExpectedDeliveryDate: item.ExpectedDeliveryDate,
			ActualDeliveryDate:   item.ActualDeliveryDate,
			CreatedAt:            item.CreatedAt,
		})
	}

	return ListParcelsResponse{
		Items:    items,
		Total:    r.Total,
		Page:     r.Page,
		PageSize: r.PageSize,
	}
}
