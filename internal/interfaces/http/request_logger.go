package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestMetrics destino opcional de las métricas por petición.
type RequestMetrics interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// RequestLogger registra cada petición con zerolog y alimenta las métricas.
// La ruta se reporta como el patrón registrado (/api/categories/:id) para acotar la cardinalidad.
func RequestLogger(log zerolog.Logger, metrics RequestMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		var ev *zerolog.Event
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		if err, ok := c.Locals(LocalError).(error); ok {
			ev = ev.Err(err)
		}
		if id, ok := c.Locals(LocalRequestID).(string); ok {
			ev = ev.Str("request_id", id)
		}
		if adminID := GetAdminID(c); adminID != 0 {
			ev = ev.Int64("admin_id", adminID)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("http request")

		if metrics != nil {
			metrics.ObserveRequest(c.Method(), route, status, elapsed)
		}
		return nil
	}
}
