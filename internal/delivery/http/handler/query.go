package handler

import (
	"fmt"
	"strconv"

	"resume-match/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}

func parsePage(c fiber.Ctx) (int, int, error) {
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return 0, 0, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return 0, 0, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return limit, offset, nil
}
