package controllers

import (
	"encoding/base64"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/skifte/skifte-server/access"
	"github.com/skifte/skifte-server/config"
	"github.com/skifte/skifte-server/ingest"
	"github.com/skifte/skifte-server/models"
	"github.com/skifte/skifte-server/providers/ai"
	"github.com/skifte/skifte-server/repos"
	"github.com/skifte/skifte-server/utils-go"
	"go.uber.org/fx"
)

type uploadRequest struct {
	// Base64-encoded statement image.
	File string `json:"file" validate:"required"`
}

type cancelRequest struct {
	EstateId      string                 `json:"estate_id" validate:"required"`
	TransactionId string                 `json:"transaction_id" validate:"required"`
	Method        string                 `json:"cancellation_method" validate:"required,oneof=letter email"`
	ContactInfo   map[string]interface{} `json:"contact_info"`
}

type updateCancellationRequest struct {
	Status  string `json:"status" validate:"required"`
	Comment string `json:"comment"`
}

type TransactionsController struct {
	fx.In

	EstateRepo       *repos.EstateRepo
	RoleRepo         *repos.RoleRepo
	TransactionRepo  *repos.TransactionRepo
	CancellationRepo *repos.CancellationRepo
	Pipeline         *ingest.Pipeline
	Ai               *ai.Client
}

func RegisterTransactionsController(r *utils.Router, config *config.Config, c TransactionsController) {
	protected := utils.Protected(standardRoute)

	r.Post("/transactions/upload/:estateId", protected, c.upload)
	r.Get("/transactions/:estateId", protected, c.list)
	r.Post("/transactions/cancel", protected, c.cancelSubscription)
	r.Get("/cancellations/:estateId/:transactionId", protected, c.getCancellationStatus)
	r.Post("/cancellations/:estateId/:transactionId/status", protected, c.updateCancellationStatus)
}

func (r *TransactionsController) upload(c *fiber.Ctx) error {
	req := new(uploadRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validator.New().Struct(*req)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	estateId := c.Params("estateId")
	if _, _, err := authorizeEstate(c, r.EstateRepo, r.RoleRepo, estateId, access.Edit); err != nil {
		return standardError(c, err)
	}

	image, err := base64.StdEncoding.DecodeString(req.File)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid base64 image",
		})
	}

	transactions, skipped, err := r.Pipeline.Run(c.Context(), estateId, image)
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(fiber.Map{
		"estate_id":    estateId,
		"transactions": transactions,
		"skipped":      skipped,
	})
}

func (r *TransactionsController) list(c *fiber.Ctx) error {
	estateId := c.Params("estateId")

	if _, _, err := authorizeEstate(c, r.EstateRepo, r.RoleRepo, estateId, access.Read); err != nil {
		return standardError(c, err)
	}

	transactions, err := r.TransactionRepo.ListByEstate(c.Context(), estateId)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.JSON(fiber.Map{
		"estate_id":    estateId,
		"transactions": transactions,
	})
}

// cancelSubscription drafts a cancellation letter or email for one
// transaction and opens a pending cancellation record for it.
func (r *TransactionsController) cancelSubscription(c *fiber.Ctx) error {
	req := new(cancelRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validator.New().Struct(*req)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	estate, _, err := authorizeEstate(c, r.EstateRepo, r.RoleRepo, req.EstateId, access.Edit)
	if err != nil {
		return standardError(c, err)
	}

	transaction, err := r.TransactionRepo.Find(c.Context(), req.EstateId, req.TransactionId)
	if err != nil {
		return standardError(c, err)
	}

	content, err := r.Ai.GenerateCancellation(c.Context(), transaction, estate, req.Method)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	contactInfo := req.ContactInfo
	if contactInfo == nil {
		contactInfo = make(map[string]interface{})
	}

	now := time.Now().UTC()
	cancellation := &models.Cancellation{
		EstateId:      req.EstateId,
		TransactionId: req.TransactionId,
		Method:        req.Method,
		Content:       content,
		ContactInfo:   contactInfo,
		Status:        models.CancellationStatusPending,
		CreatedAt:     now,
		LastUpdated:   now,
		StatusHistory: []models.CancellationStatusEntry{
			{
				Status:    models.CancellationStatusPending,
				Timestamp: now,
				Comment:   "Cancellation request created",
			},
		},
	}

	if err := r.CancellationRepo.Create(c.Context(), cancellation); err != nil {
		return standardError(c, err)
	}

	response := fiber.Map{
		"estate_id":      req.EstateId,
		"transaction_id": req.TransactionId,
		"contact_info":   cancellation.ContactInfo,
		"status":         cancellation.Status,
	}
	if req.Method == models.CancellationMethodLetter {
		response["cancellation_letter"] = content
	} else {
		response["cancellation_email"] = content
	}

	return c.JSON(response)
}

func (r *TransactionsController) getCancellationStatus(c *fiber.Ctx) error {
	estateId := c.Params("estateId")

	if _, _, err := authorizeEstate(c, r.EstateRepo, r.RoleRepo, estateId, access.Read); err != nil {
		return standardError(c, err)
	}

	cancellation, _, err := r.CancellationRepo.Get(c.Context(), estateId, c.Params("transactionId"))
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(cancellation)
}

func (r *TransactionsController) updateCancellationStatus(c *fiber.Ctx) error {
	req := new(updateCancellationRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validator.New().Struct(*req)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	if !models.ValidCancellationStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid cancellation status",
		})
	}

	estateId := c.Params("estateId")
	if _, _, err := authorizeEstate(c, r.EstateRepo, r.RoleRepo, estateId, access.Edit); err != nil {
		return standardError(c, err)
	}

	cancellation, err := r.CancellationRepo.UpdateStatus(c.Context(), estateId, c.Params("transactionId"), req.Status, req.Comment)
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(cancellation)
}
