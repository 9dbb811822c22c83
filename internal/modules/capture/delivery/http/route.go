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
	routeGroup = "/capture-index"
)

func (r *RouteConfig) Setup() {
	index := r.Server.Group(routeGroup)
	index.Post("/", r.Handler.IndexCapture)
}
