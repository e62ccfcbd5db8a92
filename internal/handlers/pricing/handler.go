package pricing

import (
	"net/http"

	"tourdesk/infras/otel"
	"tourdesk/internal/domains/pricing/dto"
	"tourdesk/internal/domains/pricing/service"
	"tourdesk/shared/constant"
	"tourdesk/shared/validator"
	"tourdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Pricing
	otel    otel.Otel
}

func New(service service.Pricing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/pricing", func(routerGroup chi.Router) {
		routerGroup.Post("/quote", handler.Quote)
		routerGroup.Get("/flat/{propertyID}", handler.Flat)
	})
}

// Quote prices a room type stay on the seasonal path.
// @Summary Quote a room stay
// @Description Season is resolved from the check-in date and applies to every night.
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Stay"
// @Success 200 {object} response.Data[dto.QuoteResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/pricing/quote [post]
func (handler *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Quote")
	defer scope.End()

	var req dto.QuoteRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	quote, err := handler.service.Quote(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to quote stay")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, quote)
}

// Flat returns the flat nightly rate of a property.
// @Summary Flat property rate
// @Tags Pricing
// @Produce json
// @Param propertyID path string true "Property ID"
// @Success 200 {object} response.Data[dto.FlatRateResponse]
// @Failure 404 {object} response.Error
// @Router /v1/pricing/flat/{propertyID} [get]
func (handler *Handler) Flat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Flat")
	defer scope.End()

	rate, err := handler.service.Flat(ctx, chi.URLParam(r, constant.RequestParamPropertyID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get flat rate")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rate)
}
