// utils/http.go - Request helpers shared by the handlers
package utils

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestContext derives the engine's per-call budget from the request.
// Operations fail closed when the deadline passes: no partial awards,
// no partial leaderboards. Budget comes from REQUEST_TIMEOUT_MS
// (default 5000).
func RequestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	timeout := 5000
	if v := os.Getenv("REQUEST_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = n
		}
	}
	return context.WithTimeout(c.UserContext(), time.Duration(timeout)*time.Millisecond)
}

// ParseIntDefault parses a query parameter, falling back on bad input.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// ClampInt bounds v to [min, max].
func ClampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
