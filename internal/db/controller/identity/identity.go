// Package identity provides account signup and authentication, including the
// reactivation grace window for soft-deleted accounts.
package identity

import (
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/callboard/callboard/internal/db/models"
)

const emailQueryPattern = "email = ?"

// Signup registers a new account with an Argon2id hashed password.
func Signup(db *gorm.DB, email, displayName, password string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if email == "" {
		return nil, ErrEmailEmpty
	}

	var existing int64
	if err := db.Model(&models.User{}).
		Where(emailQueryPattern, email).Count(&existing).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to check email")
	}
	if existing > 0 {
		return nil, ErrEmailTaken
	}

	user := &models.User{
		Email:       email,
		DisplayName: displayName,
		Password:    models.HashPassword(password),
	}
	if err := db.Create(user).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create user")
	}

	return user, nil
}

// Authenticate verifies the credentials and applies the reactivation policy:
// a soft-deleted account authenticating within graceWindow is reactivated,
// beyond it authentication is refused.
func Authenticate(db *gorm.DB, email, password string, graceWindow time.Duration) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var user models.User
	if err := db.Where(emailQueryPattern, email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, pkgerrors.Wrap(err, "failed to load user")
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}

	if user.IsDeleted() {
		if time.Since(*user.DeletedAt) > graceWindow {
			return nil, ErrGracePeriodExpired
		}

		result := db.Model(&models.User{}).Where("id = ?", user.ID).
			Update("deleted_at", gorm.Expr("NULL"))
		if result.Error != nil {
			return nil, pkgerrors.Wrap(result.Error, "failed to reactivate user")
		}

		user.DeletedAt = nil
		log.Info().Uint64("userId", user.ID).Msg("account reactivated within grace window")
	}

	return &user, nil
}
