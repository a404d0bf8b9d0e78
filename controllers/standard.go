package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/skifte/skifte-server/access"
	"github.com/skifte/skifte-server/ingest"
	"github.com/skifte/skifte-server/models"
	"github.com/skifte/skifte-server/providers/payment"
	"github.com/skifte/skifte-server/repos"
	"github.com/skifte/skifte-server/storage"
	"github.com/skifte/skifte-server/utils-go"
)

var standardRoute = utils.JwtMiddlewareConfig{
	ReadFrom: "header",
	Subject:  "access",
	Scopes:   []string{"basic"},
}

func principal(c *fiber.Ctx) string {
	return c.Locals("user").(string)
}

// standardError maps the error taxonomy onto HTTP statuses. Anything
// unrecognized is an internal error.
func standardError(c *fiber.Ctx, err error) error {
	var stageErr *ingest.StageError
	if errors.As(err, &stageErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, repos.ErrEstateNotFound),
		errors.Is(err, repos.ErrInvitationNotFound),
		errors.Is(err, repos.ErrTransactionNotFound),
		errors.Is(err, repos.ErrCancellationNotFound),
		errors.Is(err, storage.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, access.ErrForbidden), errors.Is(err, payment.ErrNotOwner):
		status = fiber.StatusForbidden
	case errors.Is(err, storage.ErrConflict):
		status = fiber.StatusConflict
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// authorizeEstate loads the estate and its role list, then runs the access
// evaluator. Every estate-scoped handler goes through here.
func authorizeEstate(c *fiber.Ctx, estates *repos.EstateRepo, roles *repos.RoleRepo, estateId string, level access.Level) (*models.Estate, int64, error) {
	estate, rev, err := estates.Get(c.Context(), estateId)
	if err != nil {
		return nil, 0, err
	}

	roleList, _, err := roles.List(c.Context(), estateId)
	if err != nil {
		return nil, 0, err
	}

	if err := access.Authorize(principal(c), estate, roleList, level); err != nil {
		return nil, 0, err
	}

	return estate, rev, nil
}
