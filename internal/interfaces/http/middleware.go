package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/herramientas-api/pkg/logger"
)

// RequestID devuelve el id asignado por el middleware requestid ("" si no corrió).
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return id
}

// RequestLogger registra método, ruta, estado, latencia e id de cada petición.
// Si la cadena devuelve error, invoca aquí el ErrorHandler para registrar el estado real.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", RequestID(c)).
			Msg("request")
		return nil
	}
}

// ErrorHandler responde 404 y 500 en texto plano; los 5xx se registran con su causa.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		msg := "Error interno del servidor"
		switch {
		case code == fiber.StatusNotFound:
			msg = "No encontrado"
		case code < fiber.StatusInternalServerError:
			msg = fe.Message
		default:
			log.Error().Err(err).Str("path", c.Path()).Str("request_id", RequestID(c)).Msg("error no controlado")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(code).SendString(msg)
	}
}
