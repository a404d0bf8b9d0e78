package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/skifte/skifte-server/access"
	"github.com/skifte/skifte-server/config"
	"github.com/skifte/skifte-server/models"
	"github.com/skifte/skifte-server/repos"
	"github.com/skifte/skifte-server/utils-go"
	"go.uber.org/fx"
)

// updateEstateRequest is a partial update: only non-nil fields are applied.
type updateEstateRequest struct {
	Deceased     *models.Person   `json:"deceased"`
	Heirs        *[]models.Person `json:"heirs"`
	Assets       *[]models.Asset  `json:"assets"`
	Debts        *[]models.Debt   `json:"debts"`
	Status       *string          `json:"status"`
	CurrentStep  *int             `json:"currentStep"`
	EstateName   *string          `json:"estateName"`
	DeceasedName *string          `json:"deceasedName"`
	Progress     *int             `json:"progress"`
	Tasks        *[]models.Task   `json:"tasks"`
}

type EstatesController struct {
	fx.In

	Repo     *repos.EstateRepo
	RoleRepo *repos.RoleRepo
}

func RegisterEstatesController(r *utils.Router, config *config.Config, c EstatesController) {
	protected := utils.Protected(standardRoute)

	r.Post("/estate", protected, c.createEstate)
	r.Get("/estates", protected, c.listEstates)
	r.Get("/estate/:estateId", protected, c.getEstate)
	r.Put("/estate/:estateId", protected, c.updateEstate)
	r.Delete("/estate/:estateId", protected, c.deleteEstate)
}

func (r *EstatesController) createEstate(c *fiber.Ctx) error {
	estate, err := r.Repo.Create(c.Context(), principal(c))
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(estate)
}

// listEstates returns every estate the caller owns or collaborates on.
func (r *EstatesController) listEstates(c *fiber.Ctx) error {
	estates, err := r.Repo.List(c.Context())
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	visible := make([]models.Estate, 0)
	for i := range estates {
		roles, _, err := r.RoleRepo.List(c.Context(), estates[i].Id)
		if err != nil {
			return utils.StandardInternalError(c, err)
		}

		if access.Authorize(principal(c), &estates[i], roles, access.Read) == nil {
			visible = append(visible, estates[i])
		}
	}

	return c.JSON(fiber.Map{
		"estates": visible,
	})
}

func (r *EstatesController) getEstate(c *fiber.Ctx) error {
	estate, _, err := authorizeEstate(c, r.Repo, r.RoleRepo, c.Params("estateId"), access.Read)
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(estate)
}

func (r *EstatesController) updateEstate(c *fiber.Ctx) error {
	req := new(updateEstateRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	estate, rev, err := authorizeEstate(c, r.Repo, r.RoleRepo, c.Params("estateId"), access.Edit)
	if err != nil {
		return standardError(c, err)
	}

	if req.Deceased != nil {
		estate.Deceased = req.Deceased
	}
	if req.Heirs != nil {
		estate.Heirs = *req.Heirs
	}
	if req.Assets != nil {
		estate.Assets = *req.Assets
	}
	if req.Debts != nil {
		estate.Debts = *req.Debts
	}
	if req.Status != nil {
		estate.Status = *req.Status
	}
	if req.CurrentStep != nil {
		estate.CurrentStep = *req.CurrentStep
	}
	if req.EstateName != nil {
		estate.EstateName = *req.EstateName
	}
	if req.DeceasedName != nil {
		estate.DeceasedName = *req.DeceasedName
	}
	if req.Progress != nil {
		estate.Progress = *req.Progress
	}
	if req.Tasks != nil {
		estate.Tasks = *req.Tasks
	}

	estate.UpdatedAt = time.Now().UTC()

	if err := r.Repo.Put(c.Context(), estate, rev); err != nil {
		return standardError(c, err)
	}

	return c.JSON(estate)
}

func (r *EstatesController) deleteEstate(c *fiber.Ctx) error {
	estateId := c.Params("estateId")

	if _, _, err := authorizeEstate(c, r.Repo, r.RoleRepo, estateId, access.Admin); err != nil {
		return standardError(c, err)
	}

	if err := r.Repo.Delete(c.Context(), estateId); err != nil {
		return standardError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Estate deleted successfully",
	})
}
