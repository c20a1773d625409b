package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/callboard/callboard/internal/config"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB)
}

// CurrentUserID reads the acting user's id from the auth proxy header.
// Returns 0 when the header is absent or not a positive integer.
func CurrentUserID(c *fiber.Ctx) uint64 {
	id, err := strconv.ParseUint(c.Get(HeaderUserID), 10, 64)
	if err != nil {
		return 0
	}

	return id
}
