package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Tagihan-api/pkg/logger"
)

// LocalLogger logger de la petición (con request_id).
const LocalLogger = "logger"

// RequestLogger guarda el request_id en el UserContext (lo recogen los casos
// de uso con logger.Scoped) y en Locals un sublogger; registra cada petición
// al terminar. Va después de requestid.New().
func RequestLogger(base zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		ctx := logger.ContextWithRequestID(c.UserContext(), c.GetRespHeader(fiber.HeaderXRequestID))
		c.SetUserContext(ctx)
		l := logger.Scoped(ctx, base)
		c.Locals(LocalLogger, l)

		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}
		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}

// LoggerFrom logger de la petición; Nop si RequestLogger no está montado.
func LoggerFrom(c *fiber.Ctx) zerolog.Logger {
	if l, ok := c.Locals(LocalLogger).(zerolog.Logger); ok {
		return l
	}
	return zerolog.Nop()
}
