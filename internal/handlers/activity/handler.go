package activity

import (
	"net/http"

	"tourdesk/infras/otel"
	"tourdesk/internal/domains/activity/model"
	"tourdesk/internal/domains/activity/model/dto"
	"tourdesk/internal/domains/activity/service"
	"tourdesk/shared/constant"
	gDto "tourdesk/shared/dto"
	"tourdesk/shared/validator"
	"tourdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Activity
	otel    otel.Otel
}

func New(service service.Activity, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/activities", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateActivity)
		routerGroup.Get("/", handler.GetActivities)
		routerGroup.Get("/{id}", handler.GetActivityByID)
		routerGroup.Put("/{id}", handler.UpdateActivity)
		routerGroup.Delete("/{id}", handler.DeleteActivity)
	})
}

// CreateActivity creates an activity.
// @Summary Create an activity
// @Tags Activity
// @Accept json
// @Produce json
// @Param request body dto.CreateActivityRequest true "Activity"
// @Success 201 {object} response.Data[dto.ActivityResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/activities [post]
// @Security BearerAuth
func (handler *Handler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateActivity")
	defer scope.End()

	var req dto.CreateActivityRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	activity, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create activity")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Activity created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, activity)
}

// GetActivities lists activities.
// @Summary Get all activities
// @Tags Activity
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param location query string false "Filter by location"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetActivitiesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/activities [get]
func (handler *Handler) GetActivities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActivities")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldName, Operator: gDto.FilterOperatorLike, Value: query.Get(model.FieldName), Table: model.TableName},
			gDto.Filter{Field: model.FieldLocation, Operator: gDto.FilterOperatorLike, Value: query.Get(model.FieldLocation), Table: model.TableName},
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

	activities, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get activities")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, activities)
}

// @Summary Get an activity by ID
// @Tags Activity
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} response.Data[dto.ActivityResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/activities/{id} [get]
func (handler *Handler) GetActivityByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActivityByID")
	defer scope.End()

	activity, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get activity by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, activity)
}

// @Summary Update an activity
// @Tags Activity
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param request body dto.UpdateActivityRequest true "Activity"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/activities/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateActivity")
	defer scope.End()

	var req dto.UpdateActivityRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update activity")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Activity updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Activity updated successfully")
}

// @Summary Delete an activity
// @Tags Activity
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/activities/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteActivity")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete activity")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Activity deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Activity deleted successfully")
}
