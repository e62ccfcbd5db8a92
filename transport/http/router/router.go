package router

import (
	"tourdesk/internal/handlers/activity"
	"tourdesk/internal/handlers/document"
	"tourdesk/internal/handlers/pricing"
	"tourdesk/internal/handlers/property"
	"tourdesk/internal/handlers/settings"
	"tourdesk/internal/handlers/transport"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Property  property.Handler
	Transport transport.Handler
	Activity  activity.Handler
	Settings  settings.Handler
	Pricing   pricing.Handler
	Document  document.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Property.Router(routerGroup)
		r.DomainHandlers.Transport.Router(routerGroup)
		r.DomainHandlers.Activity.Router(routerGroup)
		r.DomainHandlers.Settings.Router(routerGroup)
		r.DomainHandlers.Pricing.Router(routerGroup)
		r.DomainHandlers.Document.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
