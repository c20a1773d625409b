package account

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/callboard/callboard/internal/db/controller/identity"
	"github.com/callboard/callboard/internal/db/models"
	"github.com/callboard/callboard/internal/web/handler"
)

const (
	// RouteSignup is the route for registering an account.
	RouteSignup = handler.RootPath + "account/signup"
	// RouteLogin is the route for verifying credentials.
	RouteLogin = handler.RootPath + "account/login"

	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = "Email is already registered"
	// ErrBadCredentials is returned for unknown email or wrong password.
	ErrBadCredentials = "Invalid credentials"
	// ErrGraceExpired is returned when a deleted account authenticates after
	// the reactivation window closed.
	ErrGraceExpired = "Account deleted and no longer reactivatable"
	// ErrAuthFailed indicates an unexpected error during signup or login.
	ErrAuthFailed = "Authentication failed"
)

// signupInput is the body of the signup request.
type signupInput struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	DisplayName string `json:"displayName" validate:"required,max=100"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
}

// loginInput is the body of the login request.
type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// userOutput is the JSON shape of an account.
type userOutput struct {
	ID          uint64 `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// graceWindow converts the configured reactivation window to a duration.
func (s *Service) graceWindow() time.Duration {
	return time.Duration(s.cfg.Account.GraceWindowDays) * 24 * time.Hour
}

// Signup registers a new account.
func (s *Service) Signup(c *fiber.Ctx) error {
	var input signupInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	user, err := identity.Signup(s.db, input.Email, input.DisplayName, input.Password)
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).SendString(ErrEmailTaken)
		}

		log.Error().Err(err).Msg("signup failed")

		return c.Status(fiber.StatusInternalServerError).SendString(ErrAuthFailed)
	}

	return c.Status(fiber.StatusCreated).JSON(toUserOutput(user))
}

// Login verifies credentials. A soft-deleted account authenticating within the
// configured grace window is reactivated.
func (s *Service) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	user, err := identity.Authenticate(s.db, input.Email, input.Password, s.graceWindow())
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).SendString(ErrBadCredentials)
		case errors.Is(err, identity.ErrGracePeriodExpired):
			return c.Status(fiber.StatusGone).SendString(ErrGraceExpired)
		}

		log.Error().Err(err).Msg("login failed")

		return c.Status(fiber.StatusInternalServerError).SendString(ErrAuthFailed)
	}

	return c.JSON(toUserOutput(user))
}

func toUserOutput(u *models.User) userOutput {
	return userOutput{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	}
}
