package jobs

import (
	"context"
	"log/slog"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// OverdueParcelJob periodically flags parcels whose expected delivery date has
// passed while they are still moving. Runs every minute and logs one warning
// per overdue parcel so operators can chase the delivery.
type OverdueParcelJob struct {
	handler queries.GetOverdueParcelsQueryHandler
	clock   ports.Clock
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOverdueParcelJob creates a new job for overdue parcel detection.
func NewOverdueParcelJob(
	handler queries.GetOverdueParcelsQueryHandler,
	clock ports.Clock,
	logger *slog.Logger,
) *OverdueParcelJob {
	return &OverdueParcelJob{
		handler: handler,
		clock:   clock,
		cron:    cron.New(),
		logger:  logger.With("component", "overdue_parcel_job"),
	}
}

// Start begins the overdue parcel job to run every minute.
func (j *OverdueParcelJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue parcel job started (running every minute)")
	return nil
}

// Stop stops the overdue parcel job.
func (j *OverdueParcelJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue parcel job stopped")
}

func (j *OverdueParcelJob) run() {
	ctx := context.Background()

	query, err := queries.NewGetOverdueParcelsQuery(j.clock.Now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to build overdue parcels query", "error", err)
		return
	}

	overdue, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue parcel job failed", "error", err)
		return
	}

	for _, p := range overdue {
		j.logger.WarnContext(ctx, "Parcel is overdue",
			"trackingId", p.TrackingID,
			"status", p.Status,
			"receiverEmail", p.ReceiverEmail,
			"expectedDeliveryDate", p.ExpectedDeliveryDate)
	}
}
