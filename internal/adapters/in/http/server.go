// Package http exposes the parcel operations over a REST API.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"net/http"
	"strconv"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/labstack/echo/v4"
)

// Server handles the parcel REST endpoints.
type Server struct {
	// Command handlers
	createParcelHandler commands.CreateParcelCommandHandler
	updateParcelHandler commands.UpdateParcelCommandHandler

	// Query handlers
	listParcelsHandler queries.ListParcelsQueryHandler
	trackParcelHandler queries.TrackParcelQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createParcelHandler commands.CreateParcelCommandHandler,
	updateParcelHandler commands.UpdateParcelCommandHandler,
	listParcelsHandler queries.ListParcelsQueryHandler,
	trackParcelHandler queries.TrackParcelQueryHandler,
) *Server {
	return &Server{
		createParcelHandler: createParcelHandler,
		updateParcelHandler: updateParcelHandler,
		listParcelsHandler:  listParcelsHandler,
		trackParcelHandler:  trackParcelHandler,
	}
}

// RegisterRoutes wires the parcel endpoints into the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/parcels", s.CreateParcel)
	api.PATCH("/parcels/:trackingId", s.UpdateParcel)
	api.GET("/parcels", s.ListParcels)
	api.GET("/parcels/track/:trackingId", s.TrackParcel)
}

// CreateParcel handles POST /api/v1/parcels - files a new delivery request.
func (s *Server) CreateParcel(ctx echo.Context) error {
	actor, _, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req CreateParcelRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	senderID, err := kernel.UUIDFromString(req.SenderID)
	if err != nil {
		return writeError(ctx, err)
	}

	receiver, err := parcel.NewReceiver(
		req.Receiver.Name, req.Receiver.Phone, req.Receiver.Address, req.Receiver.Email)
	if err != nil {
		return writeError(ctx, err)
	}

	packageType, err := parcel.PackageTypeFromString(req.Package.Type)
	if err != nil {
		return writeError(ctx, err)
	}

	details, err := parcel.NewPackageDetails(packageType, req.Package.WeightKg, req.Package.Description)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateParcelCommand(
		actor, senderID, receiver, details, req.Fee, req.ExpectedDeliveryDate)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toParcelResponse(created))
}

// UpdateParcel handles PATCH /api/v1/parcels/:trackingId - applies a partial
// update. Which fields and status targets are permitted depends on the
// caller's role.
func (s *Server) UpdateParcel(ctx echo.Context) error {
	actor, _, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	trackingID, err := kernel.TrackingIDFromString(ctx.Param("trackingId"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req UpdateParcelRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	mutation, err := toMutation(req)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateParcelCommand(actor, trackingID, mutation)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcelResponse(updated))
}

// ListParcels handles GET /api/v1/parcels - lists parcels visible to the
// caller, newest first. Supports status and sender filters plus pagination.
func (s *Server) ListParcels(ctx echo.Context) error {
	actor, actorEmail, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var statusFilter *parcel.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status, statusErr := parcel.StatusFromString(raw)
		if statusErr != nil {
			return writeError(ctx, statusErr)
		}
		statusFilter = &status
	}

	var senderFilter *kernel.UUID
	if raw := ctx.QueryParam("senderId"); raw != "" {
		senderID, senderErr := kernel.UUIDFromString(raw)
		if senderErr != nil {
			return writeError(ctx, senderErr)
		}
		senderFilter = &senderID
	}

	var blockedFilter *bool
	if raw := ctx.QueryParam("isBlocked"); raw != "" {
		blocked, blockedErr := strconv.ParseBool(raw)
		if blockedErr != nil {
			return writeBadRequest(ctx, "Invalid isBlocked parameter")
		}
		blockedFilter = &blocked
	}

	page, err := queryParamInt(ctx, "page")
	if err != nil {
		return writeBadRequest(ctx, "Invalid page parameter")
	}

	pageSize, err := queryParamInt(ctx, "pageSize")
	if err != nil {
		return writeBadRequest(ctx, "Invalid pageSize parameter")
	}

	query, err := queries.NewListParcelsQuery(
		actor, actorEmail, statusFilter, senderFilter, blockedFilter, page, pageSize)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.listParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toListParcelsResponse(response))
}

// TrackParcel handles GET /api/v1/parcels/track/:trackingId - returns the
// full parcel detail including the status history. The route is public: no
// identity headers are required, holding the tracking id grants access.
func (s *Server) TrackParcel(ctx echo.Context) error {
	trackingID, err := kernel.TrackingIDFromString(ctx.Param("trackingId"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewTrackParcelQuery(trackingID)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.trackParcelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTrackedParcelResponse(response))
}

func toMutation(req UpdateParcelRequest) (parcel.Mutation, error) {
	m := parcel.Mutation{
		Fee:                  req.Fee,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		IsBlocked:            req.IsBlocked,
		Note:                 req.Note,
	}

	if req.Receiver != nil {
		m.Receiver = &parcel.ReceiverPatch{
			Name:    req.Receiver.Name,
			Phone:   req.Receiver.Phone,
			Address: req.Receiver.Address,
			Email:   req.Receiver.Email,
		}
	}

	if req.Package != nil {
		patch := &parcel.PackageDetailsPatch{
			Weight:      req.Package.WeightKg,
			Description: req.Package.Description,
		}
		if req.Package.Type != nil {
			packageType, err := parcel.PackageTypeFromString(*req.Package.Type)
			if err != nil {
				return parcel.Mutation{}, err
			}
			patch.Type = &packageType
		}
		m.PackageDetails = patch
	}

	if req.Status != nil {
		status, err := parcel.StatusFromString(*req.Status)
		if err != nil {
			return parcel.Mutation{}, err
		}
		m.CurrentStatus = &status
	}

	return m, nil
}

func queryParamInt(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
