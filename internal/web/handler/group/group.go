// Package group provides handlers for creating groups, joining them by invite
// code, and managing members.
package group

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/callboard/callboard/internal/config"
	groupctl "github.com/callboard/callboard/internal/db/controller/group"
	"github.com/callboard/callboard/internal/db/models"
	"github.com/callboard/callboard/internal/web/handler"
)

const (
	// Path is the base path for groups.
	Path = handler.RootPath + "group"
	// RouteJoin is the route for joining by invite code.
	RouteJoin = Path + "/join"
	// RouteMembers is the route for listing members.
	RouteMembers = Path + "/:id/members"
	// RouteMember addresses a single member.
	RouteMember = RouteMembers + "/:userId"

	// ErrGroupGone is returned when the group or invite code does not exist.
	ErrGroupGone = "Group not found"
	// ErrMemberGone is returned when the addressed member is not in the group.
	ErrMemberGone = "Not a member of this group"
	// ErrAlreadyMember is returned on a duplicate join.
	ErrAlreadyMember = "Already a member of this group"
	// ErrLastAdmin is returned when an operation would leave the group adminless.
	ErrLastAdmin = "Group would be left without an admin"
	// ErrInternal is the generic failure message.
	ErrInternal = "Group operation failed"
)

// createInput is the body of the create request.
type createInput struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=1000"`
}

// joinInput is the body of the join request.
type joinInput struct {
	InviteCode string `json:"inviteCode" validate:"required,len=8"`
}

// roleInput is the body of the role change request.
type roleInput struct {
	Role string `json:"role" validate:"required,oneof=admin member"`
}

// groupOutput is the JSON shape of a group.
type groupOutput struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	InviteCode  string `json:"inviteCode"`
}

// memberOutput is the JSON shape of one membership row.
type memberOutput struct {
	UserID      uint64    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// Service provides the group endpoints.
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
	app.Post(Path, s.Create)
	app.Post(RouteJoin, s.Join)
	app.Get(RouteMembers, s.Members)
	app.Put(RouteMember+"/role", s.SetRole)
	app.Delete(RouteMember, s.RemoveMember)
}

// Create creates a group with the caller as its first admin.
func (s *Service) Create(c *fiber.Ctx) error {
	userID := handler.CurrentUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).SendString(handler.ErrMissingUser)
	}

	var input createInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	g, err := groupctl.Create(s.db, input.Name, input.Description, userID)
	if err != nil {
		log.Error().Err(err).Uint64("userId", userID).Msg("group create failed")

		return c.Status(fiber.StatusInternalServerError).SendString(ErrInternal)
	}

	return c.Status(fiber.StatusCreated).JSON(toGroupOutput(g))
}

// Join adds the caller to the group behind the invite code.
func (s *Service) Join(c *fiber.Ctx) error {
	userID := handler.CurrentUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).SendString(handler.ErrMissingUser)
	}

	var input joinInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	g, err := groupctl.Join(s.db, input.InviteCode, userID)
	if err != nil {
		switch {
		case errors.Is(err, groupctl.ErrInviteCodeNotFound):
			return c.Status(fiber.StatusNotFound).SendString(ErrGroupGone)
		case errors.Is(err, groupctl.ErrAlreadyMember):
			return c.Status(fiber.StatusConflict).SendString(ErrAlreadyMember)
		}

		log.Error().Err(err).Uint64("userId", userID).Msg("group join failed")

		return c.Status(fiber.StatusInternalServerError).SendString(ErrInternal)
	}

	return c.JSON(toGroupOutput(g))
}

// Members lists the group's members in join order.
func (s *Service) Members(c *fiber.Ctx) error {
	userID := handler.CurrentUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).SendString(handler.ErrMissingUser)
	}

	groupID, err := c.ParamsInt("id")
	if err != nil || groupID <= 0 {
		return c.Status(fiber.StatusBadRequest).SendString(ErrGroupGone)
	}

	memberships, err := groupctl.Members(s.db, uint(groupID))
	if err != nil {
		if errors.Is(err, groupctl.ErrGroupNotFound) {
			return c.Status(fiber.StatusNotFound).SendString(ErrGroupGone)
		}

		log.Error().Err(err).Int("groupId", groupID).Msg("member list failed")

		return c.Status(fiber.StatusInternalServerError).SendString(ErrInternal)
	}

	out := make([]memberOutput, 0, len(memberships))
	for i := range memberships {
		out = append(out, memberOutput{
			UserID:      memberships[i].UserID,
			DisplayName: memberships[i].User.DisplayName,
			Role:        string(memberships[i].Role),
			JoinedAt:    memberships[i].CreatedAt,
		})
	}

	return c.JSON(out)
}

// SetRole changes a member's role.
func (s *Service) SetRole(c *fiber.Ctx) error {
	userID := handler.CurrentUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).SendString(handler.ErrMissingUser)
	}

	groupID, err := c.ParamsInt("id")
	if err != nil || groupID <= 0 {
		return c.Status(fiber.StatusBadRequest).SendString(ErrGroupGone)
	}

	targetID, err := c.ParamsInt("userId")
	if err != nil || targetID <= 0 {
		return c.Status(fiber.StatusBadRequest).SendString(ErrMemberGone)
	}

	var input roleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(handler.ErrInvalidBody)
	}

	if err := s.validator.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	err = groupctl.SetRole(s.db, uint(groupID), uint64(targetID), models.MembershipRole(input.Role))
	if err != nil {
		return s.memberErrorStatus(c, err, groupID)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveMember removes a member from the group.
func (s *Service) RemoveMember(c *fiber.Ctx) error {
	userID := handler.CurrentUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).SendString(handler.ErrMissingUser)
	}

	groupID, err := c.ParamsInt("id")
	if err != nil || groupID <= 0 {
		return c.Status(fiber.StatusBadRequest).SendString(ErrGroupGone)
	}

	targetID, err := c.ParamsInt("userId")
	if err != nil || targetID <= 0 {
		return c.Status(fiber.StatusBadRequest).SendString(ErrMemberGone)
	}

	if err := groupctl.RemoveMember(s.db, uint(groupID), uint64(targetID)); err != nil {
		return s.memberErrorStatus(c, err, groupID)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// memberErrorStatus maps membership controller errors to HTTP statuses.
func (s *Service) memberErrorStatus(c *fiber.Ctx, err error, groupID int) error {
	switch {
	case errors.Is(err, groupctl.ErrNotMember):
		return c.Status(fiber.StatusNotFound).SendString(ErrMemberGone)
	case errors.Is(err, groupctl.ErrLastAdmin):
		return c.Status(fiber.StatusConflict).SendString(ErrLastAdmin)
	}

	log.Error().Err(err).Int("groupId", groupID).Msg("member operation failed")

	return c.Status(fiber.StatusInternalServerError).SendString(ErrInternal)
}

func toGroupOutput(g *models.Group) groupOutput {
	return groupOutput{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		InviteCode:  g.InviteCode,
	}
}
