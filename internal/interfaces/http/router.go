package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/herramientas-api/internal/application/dto"
	"github.com/jhoicas/herramientas-api/internal/application/inventory"
	"github.com/jhoicas/herramientas-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Tools   *inventory.ToolUseCase
	Ping    func(ctx context.Context) error
	Log     *logger.Logger
	AppName string
	Driver  string
}

// NewApp crea la app Fiber con vistas, middlewares y rutas.
func NewApp(deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:               deps.AppName,
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 60,
		Views:                 NewViews(),
		ViewsLayout:           LayoutName,
		ErrorHandler:          ErrorHandler(deps.Log),
		DisableStartupMessage: true,
	})
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(RequestLogger(deps.Log))
	app.Use(recover.New())

	Router(app, deps)
	return app
}

// Router registra las rutas de la aplicación.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps))

	h := NewToolHandler(deps.Tools, deps.Log)
	app.Get("/", h.Dashboard)
	app.Get("/reset", h.Reset)

	tools := app.Group("/tools")
	tools.Post("/", h.Create)
	tools.Post("/:id/movements/:kind", h.RegisterMovement)
	tools.Get("/:id/history", h.History)
	tools.Get("/:id/edit", h.EditForm)
	tools.Post("/:id/edit", h.Edit)
	tools.Post("/:id/delete", h.Delete)
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp := dto.HealthResponse{Status: "ok", Service: deps.AppName, Driver: deps.Driver}
		if deps.Ping != nil {
			if err := deps.Ping(c.Context()); err != nil {
				deps.Log.Error().Err(err).Msg("health: almacén no disponible")
				resp.Status = "unavailable"
				return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
			}
		}
		return c.JSON(resp)
	}
}
