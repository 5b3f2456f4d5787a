package cmd

import (
	"log/slog"
	"time"

	"parceltrack/internal/adapters/in/http"
	"parceltrack/internal/adapters/out/kafka"
	"parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/adapters/out/trackingid"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      ports.Clock
	publisher  ports.StatusPublisher
	logger     *slog.Logger
	closers    []func() error
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	root := &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      systemClock{},
		publisher:  kafka.NoopStatusPublisher{},
		logger:     logger,
	}

	if config.KafkaHost != "" {
		publisher, err := kafka.NewStatusPublisher(
			[]string{config.KafkaHost}, config.KafkaParcelStatusTopic, logger)
		if err != nil {
			logger.Warn("Kafka unavailable, status change events will not be published", "error", err)
		} else {
			root.publisher = publisher
			root.closers = append(root.closers, publisher.Close)
		}
	}

	return root
}

// Close releases resources owned by the composition root.
func (c *CompositionRoot) Close() {
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			c.logger.Warn("Failed to close resource", "error", err)
		}
	}
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateParcelCommandHandler(f, trackingid.NewGenerator(c.clock), c.clock)
}

func (c *CompositionRoot) CreateUpdateParcelCommandHandler() commands.UpdateParcelCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateParcelCommandHandler(
		f, services.NewTransitionPolicy(), c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateListParcelsQueryHandler() queries.ListParcelsQueryHandler {
	return queries.NewListParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackParcelQueryHandler() queries.TrackParcelQueryHandler {
	return queries.NewTrackParcelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOverdueParcelsQueryHandler() queries.GetOverdueParcelsQueryHandler {
	return queries.NewGetOverdueParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateCreateParcelCommandHandler(),
		c.CreateUpdateParcelCommandHandler(),
		c.CreateListParcelsQueryHandler(),
		c.CreateTrackParcelQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetOverdueParcelsQueryHandler(), c.clock, c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
