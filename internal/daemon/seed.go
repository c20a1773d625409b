package daemon

import (
	"gorm.io/gorm"

	"github.com/callboard/callboard/internal/config"
	"github.com/callboard/callboard/internal/db/models"
)

func seed(_ *config.Config, db *gorm.DB) {
	// Seed initial data if user table is empty

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count == 0 {
		// Create a bootstrap account; the password must be changed on first login.

		db.Create(
			&models.User{
				Email:       "admin@localhost",
				DisplayName: "Admin",
				Password:    models.HashPassword("changeme"),
			},
		)
	}
}
