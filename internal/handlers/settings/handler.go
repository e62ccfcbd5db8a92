package settings

import (
	"net/http"

	"tourdesk/infras/otel"
	"tourdesk/internal/domains/settings/model/dto"
	"tourdesk/internal/domains/settings/service"
	"tourdesk/shared/constant"
	"tourdesk/shared/validator"
	"tourdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Settings
	otel    otel.Otel
}

func New(service service.Settings, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/settings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSettings)
		routerGroup.Put("/", handler.UpsertSettings)
	})
}

// GetSettings returns the agency settings, or null data when none have been saved.
// @Summary Get agency settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Data[dto.SettingsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/settings [get]
func (handler *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSettings")
	defer scope.End()

	settings, err := handler.service.Get(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get settings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, settings)
}

// UpsertSettings creates or replaces the agency settings.
// @Summary Save agency settings
// @Description The logo may be sent as a data URI; it is stored in object storage.
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.UpsertSettingsRequest true "Settings"
// @Success 200 {object} response.Data[dto.SettingsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings [put]
// @Security BearerAuth
func (handler *Handler) UpsertSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertSettings")
	defer scope.End()

	var req dto.UpsertSettingsRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	settings, err := handler.service.Upsert(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save settings")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Settings saved by user " + user)

	response.WithJSON(w, http.StatusOK, settings)
}
