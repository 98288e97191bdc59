//go:build wireinject
// +build wireinject

package di

import (
	"atrium/config"
	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/infras/redis"
	"atrium/shared/cache"
	"atrium/transport/http"
	"atrium/transport/http/middleware"
	"atrium/transport/http/router"

	bookingRepository "atrium/internal/domains/booking/repository"
	bookingService "atrium/internal/domains/booking/service"
	guestRepository "atrium/internal/domains/guest/repository"
	guestService "atrium/internal/domains/guest/service"
	roomRepository "atrium/internal/domains/room/repository"
	roomService "atrium/internal/domains/room/service"

	bookingHandler "atrium/internal/handlers/booking"
	guestHandler "atrium/internal/handlers/guest"
	roomHandler "atrium/internal/handlers/room"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var guestDomain = wire.NewSet(
	guestRepository.New,
	guestService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	roomDomain,
	guestDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	guestHandler.New,
	bookingHandler.New,
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
