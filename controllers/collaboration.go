package controllers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/skifte/skifte-server/access"
	"github.com/skifte/skifte-server/config"
	"github.com/skifte/skifte-server/models"
	"github.com/skifte/skifte-server/providers/email"
	"github.com/skifte/skifte-server/repos"
	"github.com/skifte/skifte-server/utils-go"
	"go.uber.org/fx"
)

type inviteRequest struct {
	EstateId string `json:"estate_id" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=viewer editor admin"`
}

type addCommentRequest struct {
	Content string  `json:"content" validate:"required,min=1,max=4096"`
	TaskId  *string `json:"task_id"`
}

type CollaborationController struct {
	fx.In

	EstateRepo  *repos.EstateRepo
	RoleRepo    *repos.RoleRepo
	CommentRepo *repos.CommentRepo
	Mailer      *email.Mailer
}

func RegisterCollaborationController(r *utils.Router, config *config.Config, c CollaborationController) {
	protected := utils.Protected(standardRoute)

	r.Post("/invite", protected, c.invite)
	r.Post("/accept-invite/:estateId", protected, c.acceptInvite)
	r.Get("/roles/:estateId", protected, c.getRoles)
	r.Post("/comments/:estateId", protected, c.addComment)
	r.Get("/comments/:estateId", protected, c.getComments)
}

func (r *CollaborationController) invite(c *fiber.Ctx) error {
	req := new(inviteRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validator.New().Struct(*req)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	estate, _, err := authorizeEstate(c, r.EstateRepo, r.RoleRepo, req.EstateId, access.Admin)
	if err != nil {
		return standardError(c, err)
	}

	role := models.Role{
		EstateId:  req.EstateId,
		Email:     req.Email,
		Role:      req.Role,
		Status:    models.RoleStatusPending,
		InvitedBy: principal(c),
		InvitedAt: time.Now().UTC(),
	}

	if err := r.RoleRepo.Add(c.Context(), req.EstateId, role); err != nil {
		return standardError(c, err)
	}

	// The invitation stands even if the email cannot be delivered; the
	// invitee can still accept through the link format.
	go func() {
		if err := r.Mailer.SendInvitation(estate, role); err != nil {
			log.Warn().Err(err).Str("email", role.Email).Msg("Failed to send invitation email")
		}
	}()

	return c.JSON(fiber.Map{
		"message":    "Invitation sent successfully",
		"invitation": role,
	})
}

// acceptInvite binds the caller to the pending invitation addressed to the
// email in the accept link. No estate permission is required: the invitee has
// none yet.
func (r *CollaborationController) acceptInvite(c *fiber.Ctx) error {
	inviteEmail := c.Query("email")
	if inviteEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing email",
		})
	}

	role, err := r.RoleRepo.Accept(c.Context(), c.Params("estateId"), principal(c), inviteEmail)
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Invitation accepted successfully",
		"role":    role,
	})
}

func (r *CollaborationController) getRoles(c *fiber.Ctx) error {
	estateId := c.Params("estateId")

	if _, _, err := authorizeEstate(c, r.EstateRepo, r.RoleRepo, estateId, access.Read); err != nil {
		return standardError(c, err)
	}

	roles, _, err := r.RoleRepo.List(c.Context(), estateId)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.JSON(fiber.Map{
		"estate_id": estateId,
		"roles":     roles,
	})
}

func (r *CollaborationController) addComment(c *fiber.Ctx) error {
	req := new(addCommentRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validator.New().Struct(*req)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	estateId := c.Params("estateId")
	if _, _, err := authorizeEstate(c, r.EstateRepo, r.RoleRepo, estateId, access.Read); err != nil {
		return standardError(c, err)
	}

	comment := models.Comment{
		Id:        "comment_" + uuid.NewString(),
		EstateId:  estateId,
		TaskId:    req.TaskId,
		UserId:    principal(c),
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.CommentRepo.Add(c.Context(), comment); err != nil {
		return standardError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (r *CollaborationController) getComments(c *fiber.Ctx) error {
	estateId := c.Params("estateId")

	if _, _, err := authorizeEstate(c, r.EstateRepo, r.RoleRepo, estateId, access.Read); err != nil {
		return standardError(c, err)
	}

	var taskId *string
	if v := c.Query("task_id"); v != "" {
		taskId = &v
	}

	comments, err := r.CommentRepo.List(c.Context(), estateId, taskId)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.JSON(fiber.Map{
		"estate_id": estateId,
		"comments":  comments,
	})
}
