package transport

import (
	"net/http"

	"tourdesk/infras/otel"
	"tourdesk/internal/domains/transport/model"
	"tourdesk/internal/domains/transport/model/dto"
	"tourdesk/internal/domains/transport/service"
	"tourdesk/shared/constant"
	gDto "tourdesk/shared/dto"
	"tourdesk/shared/validator"
	"tourdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Transport
	otel    otel.Otel
}

func New(service service.Transport, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/transports", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTransport)
		routerGroup.Get("/", handler.GetTransports)
		routerGroup.Get("/{id}", handler.GetTransportByID)
		routerGroup.Put("/{id}", handler.UpdateTransport)
		routerGroup.Delete("/{id}", handler.DeleteTransport)
	})
}

// CreateTransport adds a transport option to the catalog.
// @Summary Create a transport option
// @Tags Transport
// @Accept json
// @Produce json
// @Param request body dto.CreateTransportRequest true "Transport"
// @Success 201 {object} response.Data[dto.TransportResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/transports [post]
// @Security BearerAuth
func (handler *Handler) CreateTransport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTransport")
	defer scope.End()

	var req dto.CreateTransportRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	transport, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create transport")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Transport created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, transport)
}

// GetTransports lists transport options.
// @Summary Get all transport options
// @Tags Transport
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param vehicle_type query string false "Filter by vehicle type"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetTransportsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/transports [get]
func (handler *Handler) GetTransports(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTransports")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldName, Operator: gDto.FilterOperatorLike, Value: query.Get(model.FieldName), Table: model.TableName},
			gDto.Filter{Field: model.FieldVehicleType, Operator: gDto.FilterOperatorLike, Value: query.Get(model.FieldVehicleType), Table: model.TableName},
		},
	}

	if status := query.Get(model.FieldStatus); status != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	transports, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get transports")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, transports)
}

// GetTransportByID returns one transport option.
// @Summary Get a transport option by ID
// @Tags Transport
// @Produce json
// @Param id path string true "Transport ID"
// @Success 200 {object} response.Data[dto.TransportResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/transports/{id} [get]
func (handler *Handler) GetTransportByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTransportByID")
	defer scope.End()

	transport, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get transport by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, transport)
}

// UpdateTransport updates a transport option.
// @Summary Update a transport option
// @Tags Transport
// @Accept json
// @Produce json
// @Param id path string true "Transport ID"
// @Param request body dto.UpdateTransportRequest true "Transport"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/transports/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateTransport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTransport")
	defer scope.End()

	var req dto.UpdateTransportRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update transport")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Transport updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Transport updated successfully")
}

// DeleteTransport removes a transport option.
// @Summary Delete a transport option
// @Tags Transport
// @Produce json
// @Param id path string true "Transport ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/transports/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTransport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTransport")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete transport")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Transport deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Transport deleted successfully")
}
