package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LoggingMiddleware logs one line per request with a colored method and status.
func LoggingMiddleware(logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		method := c.Method()

		logger.Printf("%s %s%s%s %s %s%d%s %v",
			c.IP(),
			methodColor(method), method, colorReset,
			c.Path(),
			statusColor(status), status, colorReset,
			time.Since(start),
		)

		return err
	}
}

const colorReset = "\033[0m"

func statusColor(status int) string {
	switch {
	case status >= 500:
		return "\033[31m" // red
	case status >= 400:
		return "\033[33m" // yellow
	case status >= 300:
		return "\033[36m" // cyan
	case status >= 200:
		return "\033[32m" // green
	default:
		return "\033[37m" // white
	}
}

func methodColor(method string) string {
	switch method {
	case "GET":
		return "\033[34m" // blue
	case "POST":
		return "\033[33m" // yellow
	case "PUT":
		return "\033[36m" // cyan
	case "DELETE":
		return "\033[31m" // red
	case "PATCH":
		return "\033[32m" // green
	default:
		return "\033[37m" // white
	}
}
