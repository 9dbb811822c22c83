package http

import (
	"bwh/core-api/internal/infrastructure/config"

	"github.com/gofiber/fiber/v2"
)

type RouteConfig struct {
	Config  *config.Config
	Server  *fiber.App
	Handler *Handler
}

const (
	routeGroup = "/provider-configs"
)

func (r *RouteConfig) Setup() {
	providers := r.Server.Group(routeGroup)
	providers.Get("/", r.Handler.ReadProviderConfig)
	providers.Post("/", r.Handler.CreateProviderConfig)
	providers.Get("/:id", r.Handler.ReadProviderConfigDetail)
}
