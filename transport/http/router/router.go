package router

import (
	"net/http"

	"atrium/config"
	"atrium/internal/handlers/booking"
	"atrium/internal/handlers/guest"
	"atrium/internal/handlers/room"
	"atrium/shared/constant"
	"atrium/transport/http/middleware"
	"atrium/transport/http/response"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "atrium/docs"
)

type DomainHandlers struct {
	Room    room.Handler
	Guest   guest.Handler
	Booking booking.Handler
}

type Router struct {
	Config         *config.Config
	DomainHandlers DomainHandlers
	AppMiddleware  middleware.AppMiddleware
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.AppMiddleware.Tracing)
	router.Use(r.AppMiddleware.CORS)
	router.Use(r.AppMiddleware.RateLimit())

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.WithMessage(w, http.StatusOK, "OK")
	})

	if r.Config.Server.Env == constant.ServerEnvDevelopment {
		router.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.DomainHandlers.Room.Router(router)
	r.DomainHandlers.Guest.Router(router)
	r.DomainHandlers.Booking.Router(router)
}

func New(cfg *config.Config, domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware) Router {
	return Router{
		Config:         cfg,
		DomainHandlers: domainHandlers,
		AppMiddleware:  appMiddleware,
	}
}
