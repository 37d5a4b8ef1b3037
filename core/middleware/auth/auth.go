// Package auth implements API key validation for the Fiber application.
package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// Config holds settings for the auth middleware.
type Config struct {
	// ApiKey is the expected key. If empty, the middleware rejects every
	// request: an unset key must fail closed, not open.
	ApiKey string
	// Header is the header carrying the key. Defaults to X-Api-Key.
	Header string
}

// New returns a middleware that validates the API key header.
func New(cfg Config) fiber.Handler {
	header := cfg.Header
	if header == "" {
		header = "X-Api-Key"
	}

	return func(c *fiber.Ctx) error {
		got := c.Get(header)
		if cfg.ApiKey == "" || subtle.ConstantTimeCompare([]byte(got), []byte(cfg.ApiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing api key",
			})
		}
		return c.Next()
	}
}
