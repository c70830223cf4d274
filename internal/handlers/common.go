package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// errUnauthenticated means the auth middleware did not run or did not
// leave a usable user_id local on the request.
var errUnauthenticated = errors.New("no authenticated user on request")

func currentUserID(c *fiber.Ctx) (int64, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return 0, errUnauthenticated
	}
	id, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, errUnauthenticated
	}
	return id, nil
}

func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}
