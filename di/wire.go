//go:build wireinject
// +build wireinject

package di

import (
	"tourdesk/config"
	"tourdesk/infras/jwt"
	"tourdesk/infras/kafka"
	"tourdesk/infras/otel"
	"tourdesk/infras/postgres"
	"tourdesk/infras/redis"
	"tourdesk/infras/s3"
	"tourdesk/permissions"
	"tourdesk/shared/cache"
	"tourdesk/transport/http"
	"tourdesk/transport/http/middleware"
	"tourdesk/transport/http/router"

	activityRepository "tourdesk/internal/domains/activity/repository"
	activityService "tourdesk/internal/domains/activity/service"
	documentRepository "tourdesk/internal/domains/document/repository"
	documentService "tourdesk/internal/domains/document/service"
	"tourdesk/internal/domains/document/worker"
	pricingService "tourdesk/internal/domains/pricing/service"
	propertyRepository "tourdesk/internal/domains/property/repository"
	propertyService "tourdesk/internal/domains/property/service"
	settingsRepository "tourdesk/internal/domains/settings/repository"
	settingsService "tourdesk/internal/domains/settings/service"
	transportRepository "tourdesk/internal/domains/transport/repository"
	transportService "tourdesk/internal/domains/transport/service"

	activityHandler "tourdesk/internal/handlers/activity"
	documentHandler "tourdesk/internal/handlers/document"
	pricingHandler "tourdesk/internal/handlers/pricing"
	propertyHandler "tourdesk/internal/handlers/property"
	settingsHandler "tourdesk/internal/handlers/settings"
	transportHandler "tourdesk/internal/handlers/transport"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var catalogDomain = wire.NewSet(
	propertyRepository.New,
	propertyRepository.NewRoomType,
	propertyRepository.NewSeasonalPricing,
	propertyService.New,
	transportRepository.New,
	transportService.New,
	activityRepository.New,
	activityService.New,
)

var pricingDomain = wire.NewSet(
	newCalculator,
	pricingService.New,
)

var documentDomain = wire.NewSet(
	settingsRepository.New,
	settingsService.New,
	documentRepository.New,
	documentService.New,
)

var domains = wire.NewSet(
	catalogDomain,
	pricingDomain,
	documentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	propertyHandler.New,
	transportHandler.New,
	activityHandler.New,
	settingsHandler.New,
	pricingHandler.New,
	documentHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *worker.Archiver {
	wire.Build(
		config.Get,
		infrastructures,
		sharedHelpers,
		domains,
		worker.New,
	)

	return &worker.Archiver{}
}
