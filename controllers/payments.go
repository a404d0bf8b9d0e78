package controllers

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/skifte/skifte-server/access"
	"github.com/skifte/skifte-server/config"
	"github.com/skifte/skifte-server/models"
	"github.com/skifte/skifte-server/providers/payment"
	"github.com/skifte/skifte-server/repos"
	"github.com/skifte/skifte-server/utils-go"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/fx"
	"golang.org/x/net/context"
)

type createIntentRequest struct {
	EstateId string `json:"estate_id" validate:"required"`
}

type PaymentsController struct {
	fx.In

	EstateRepo *repos.EstateRepo
	RoleRepo   *repos.RoleRepo
	Gateway    *payment.Gateway
}

func RegisterPaymentsController(r *utils.Router, config *config.Config, c PaymentsController) {
	protected := utils.Protected(standardRoute)

	r.Post("/payment/create-intent", protected, c.createIntent)
	r.Get("/payment/:intentId/status", protected, c.getStatus)

	// Authenticated by the Stripe signature, not a bearer token.
	r.Post("/payment/webhook", c.webhook)
}

func (r *PaymentsController) createIntent(c *fiber.Ctx) error {
	req := new(createIntentRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validator.New().Struct(*req)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	if _, _, err := authorizeEstate(c, r.EstateRepo, r.RoleRepo, req.EstateId, access.Read); err != nil {
		return standardError(c, err)
	}

	intent, err := r.Gateway.CreateIntent(req.EstateId, principal(c))
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.JSON(fiber.Map{
		"payment_intent_id": intent.Id,
		"client_secret":     intent.ClientSecret,
		"amount":            intent.AmountNOK,
		"currency":          "nok",
	})
}

func (r *PaymentsController) getStatus(c *fiber.Ctx) error {
	intent, err := r.Gateway.GetStatus(c.Params("intentId"), principal(c))
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(fiber.Map{
		"payment_intent_id": intent.Id,
		"status":            intent.Status,
		"amount":            intent.AmountNOK,
		"currency":          "nok",
		"receipt_url":       intent.ReceiptUrl,
	})
}

// webhook flips the estate status on payment_intent.succeeded and
// payment_intent.payment_failed. Other event types are acknowledged and
// ignored.
func (r *PaymentsController) webhook(c *fiber.Ctx) error {
	event, err := r.Gateway.VerifyWebhook(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid signature",
		})
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return utils.StandardInternalError(c, err)
		}

		estateId := intent.Metadata["estate_id"]
		if estateId == "" {
			log.Warn().Str("intent", intent.ID).Msg("Payment intent without estate metadata")
			break
		}

		status := models.EstateStatusPaid
		if event.Type == "payment_intent.payment_failed" {
			status = models.EstateStatusPaymentFailed
		}

		// The status flip must land even if Stripe drops the connection
		// before the response.
		if err := r.EstateRepo.UpdateStatus(context.Background(), estateId, status); err != nil {
			log.Error().Err(err).Str("estate", estateId).Msg("Failed to update estate payment status")
			return utils.StandardInternalError(c, err)
		}

		log.Info().Str("estate", estateId).Str("status", status).Msg("Estate payment status updated")
	}

	return c.JSON(fiber.Map{
		"status": "success",
	})
}
