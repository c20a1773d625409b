// Package account provides handlers for account removal: previewing the blast
// radius of a deletion and executing it with the caller's decisions.
package account

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/callboard/callboard/internal/config"
	"github.com/callboard/callboard/internal/db/controller/deletion"
	"github.com/callboard/callboard/internal/web/handler"
)

const (
	// Path is the base path for account deletion.
	Path = handler.RootPath + "account/deletion"
	// RoutePreview is the route for previewing a deletion.
	RoutePreview = Path + "/preview"

	// ErrPreviewFailed indicates an unexpected error while computing the preview.
	ErrPreviewFailed = "Failed to compute deletion preview"
	// ErrExecuteFailed indicates an unexpected error while executing the deletion.
	ErrExecuteFailed = "Failed to execute account deletion"
	// ErrUserGone is returned when the account does not exist.
	ErrUserGone = "Account not found"
	// ErrAlreadyDeleted is returned when the account was already removed.
	ErrAlreadyDeleted = "Account already deleted"
	// ErrConflict is returned when a referenced row vanished between preview and
	// execution; the caller should fetch a fresh preview and retry.
	ErrConflict = "State changed since preview, fetch a new preview and retry"
	// ErrValidationPrefix prefixes decision validation error messages.
	ErrValidationPrefix = "Invalid decisions: "
)

// decisionInput is one caller decision for a sole-admin group.
type decisionInput struct {
	Action     string `json:"action" validate:"required,oneof=transfer delete"`
	GroupID    uint   `json:"groupId" validate:"required"`
	NewAdminID uint64 `json:"newAdminId" validate:"required_if=Action transfer"`
}

// executeInput is the body of the execute request.
type executeInput struct {
	Decisions []decisionInput `json:"decisions" validate:"dive"`
}

// Service provides the account deletion endpoints.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()

	// Routes
	app.Post(RouteSignup, s.Signup)
	app.Post(RouteLogin, s.Login)
	app.Get(RoutePreview, s.Preview)
	app.Post(Path, s.Execute)
}

// Preview returns how every group the user belongs to is affected by removal.
func (s *Service) Preview(c *fiber.Ctx) error {
	userID := handler.CurrentUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).SendString(handler.ErrMissingUser)
	}

	preview, err := deletion.ComputeDeletionPreview(s.db, userID)
	if err != nil {
		switch {
		case errors.Is(err, deletion.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).SendString(ErrUserGone)
		case errors.Is(err, deletion.ErrUserDeleted):
			return c.Status(fiber.StatusGone).SendString(ErrAlreadyDeleted)
		}

		log.Error().Err(err).Uint64("userId", userID).Msg("deletion preview failed")

		return c.Status(fiber.StatusInternalServerError).SendString(ErrPreviewFailed)
	}

	return c.JSON(preview)
}

// Execute runs the deletion with the caller's decisions.
func (s *Service) Execute(c *fiber.Ctx) error {
	userID := handler.CurrentUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).SendString(handler.ErrMissingUser)
	}

	var input executeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(input); err != nil {
		log.Warn().Err(err).Uint64("userId", userID).Msg("validation failed for deletion execute")

		return c.Status(fiber.StatusBadRequest).SendString(ErrValidationPrefix + err.Error())
	}

	decisions := make([]deletion.Decision, 0, len(input.Decisions))
	for i := range input.Decisions {
		decisions = append(decisions, deletion.Decision{
			Action:     deletion.DecisionAction(input.Decisions[i].Action),
			GroupID:    input.Decisions[i].GroupID,
			NewAdminID: input.Decisions[i].NewAdminID,
		})
	}

	if err := deletion.ExecuteDeletion(s.db, userID, decisions); err != nil {
		switch {
		case deletion.IsValidation(err):
			return c.Status(fiber.StatusBadRequest).SendString(ErrValidationPrefix + err.Error())
		case errors.Is(err, deletion.ErrUserDeleted):
			return c.Status(fiber.StatusGone).SendString(ErrAlreadyDeleted)
		case deletion.IsNotFound(err):
			return c.Status(fiber.StatusConflict).SendString(ErrConflict)
		}

		log.Error().Err(err).Uint64("userId", userID).Msg("deletion execute failed")

		return c.Status(fiber.StatusInternalServerError).SendString(ErrExecuteFailed)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
