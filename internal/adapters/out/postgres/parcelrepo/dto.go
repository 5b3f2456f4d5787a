// Package parcelrepo provides data transfer objects and mapping functions for parcel persistence.
// This package implements the repository pattern for the parcel aggregate, handling
// the conversion between domain entities and database representations.
package parcelrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
// The tracking id is the primary key; the status log lives in a child table
// keyed by (parcel_tracking_id, seq) so the append order survives round trips.
type ParcelDTO struct {
	TrackingID           string      `gorm:"type:varchar(21);primaryKey"`
	SenderID             uuid.UUID   `gorm:"type:uuid;index"`
	Receiver             ReceiverDTO `gorm:"embedded;embeddedPrefix:receiver_"`
	Package              PackageDTO  `gorm:"embedded;embeddedPrefix:package_"`
	Fee                  float64
	Status               string `gorm:"type:varchar(20);index"`
	IsBlocked            bool
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time
	CreatedAt            time.Time

	StatusLog []StatusLogDTO `gorm:"foreignKey:ParcelTrackingID;references:TrackingID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// ReceiverDTO represents the embedded receiver contact columns within the parcel table.
type ReceiverDTO struct {
	Name    string `gorm:"type:varchar(50)"`
	Phone   string `gorm:"type:varchar(30)"`
	Address string `gorm:"type:varchar(200)"`
	Email   string `gorm:"type:varchar(100);index"`
}

// PackageDTO represents the embedded package description columns within the parcel table.
type PackageDTO struct {
	Type        string `gorm:"type:varchar(10)"`
	Weight      float64
	Description string `gorm:"type:varchar(500)"`
}

// StatusLogDTO represents one status transition record in the audit-trail table.
type StatusLogDTO struct {
	ParcelTrackingID string    `gorm:"type:varchar(21);primaryKey"`
	Seq              int       `gorm:"primaryKey"`
	Status           string    `gorm:"type:varchar(20)"`
	UpdatedBy        uuid.UUID `gorm:"type:uuid"`
	Note             string    `gorm:"type:varchar(500)"`
	CreatedAt        time.Time
}

// TableName specifies the database table name for status log entries.
func (StatusLogDTO) TableName() string {
	return "parcel_status_logs"
}

// fromDomain converts a parcel domain aggregate to its database representation.
// Log entries are numbered from 1 in append order.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	trackingID := aggregate.TrackingID().String()

	log := aggregate.StatusLog()
	logDTOs := make([]StatusLogDTO, 0, len(log))
	for i, entry := range log {
		logDTOs = append(logDTOs, StatusLogDTO{
			ParcelTrackingID: trackingID,
			Seq:              i + 1,
			Status:           entry.Status().String(),
			UpdatedBy:        entry.UpdatedBy().Bytes(),
			Note:             entry.Note(),
			CreatedAt:        entry.CreatedAt(),
		})
	}

	return ParcelDTO{
		TrackingID: trackingID,
		SenderID:   aggregate.SenderID().Bytes(),
		Receiver: ReceiverDTO{
			Name:    aggregate.Receiver().Name(),
			Phone:   aggregate.Receiver().Phone(),
			Address: aggregate.Receiver().Address(),
			Email:   aggregate.Receiver().Email(),
		},
		Package: PackageDTO{
			Type:        aggregate.PackageDetails().Type().String(),
			Weight:      aggregate.PackageDetails().Weight(),
			Description: aggregate.PackageDetails().Description(),
		},
		Fee:                  aggregate.Fee(),
		Status:               aggregate.CurrentStatus().String(),
		IsBlocked:            aggregate.IsBlocked(),
		ExpectedDeliveryDate: aggregate.ExpectedDeliveryDate(),
		ActualDeliveryDate:   aggregate.ActualDeliveryDate(),
		CreatedAt:            aggregate.CreatedAt(),
		StatusLog:            logDTOs,
	}
}

// toDomain converts a database DTO to a parcel domain aggregate.
// The status log must already be ordered by seq.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	trackingID, err := kernel.TrackingIDFromString(dto.TrackingID)
	if err != nil {
		return nil, err
	}

	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}

	receiver, err := parcel.NewReceiver(
		dto.Receiver.Name, dto.Receiver.Phone, dto.Receiver.Address, dto.Receiver.Email)
	if err != nil {
		return nil, err
	}

	packageType, err := parcel.PackageTypeFromString(dto.Package.Type)
	if err != nil {
		return nil, err
	}
	packageDetails, err := parcel.NewPackageDetails(packageType, dto.Package.Weight, dto.Package.Description)
	if err != nil {
		return nil, err
	}

	currentStatus, err := parcel.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	log := make([]parcel.StatusLogEntry, 0, len(dto.StatusLog))
	for _, entryDTO := range dto.StatusLog {
		status, entryErr := parcel.StatusFromString(entryDTO.Status)
		if entryErr != nil {
			return nil, entryErr
		}

		updatedBy, entryErr := kernel.UUIDFromBytes(entryDTO.UpdatedBy[:])
		if entryErr != nil {
			return nil, entryErr
		}

		entry, entryErr := parcel.NewStatusLogEntry(status, updatedBy, entryDTO.Note, entryDTO.CreatedAt)
		if entryErr != nil {
			return nil, entryErr
		}

		log = append(log, entry)
	}

	return parcel.RestoreParcel(
		trackingID,
		senderID,
		receiver,
		packageDetails,
		dto.Fee,
		currentStatus,
		log,
		dto.IsBlocked,
		dto.ExpectedDeliveryDate,
		dto.ActualDeliveryDate,
		dto.CreatedAt,
	)
}
