// Package payment wraps the Stripe SDK: one fixed-price PaymentIntent per
// estate, status lookups gated on the owning user, and webhook verification.
package payment

import (
	"errors"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

// FixedPriceNOK is the one-time settlement fee. Stripe amounts are in øre.
const FixedPriceNOK = 3000

var ErrNotOwner = errors.New("unauthorized access to payment")

type Intent struct {
	Id           string
	ClientSecret string
	Status       string
	AmountNOK    int64
	ReceiptUrl   string
}

type Gateway struct {
	api           *client.API
	webhookSecret string
}

func NewGateway(secretKey, webhookSecret string) *Gateway {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &Gateway{
		api:           api,
		webhookSecret: webhookSecret,
	}
}

// CreateIntent opens a PaymentIntent for the fixed fee, tagged with the
// estate and user so the webhook and status lookup can tie it back.
func (g *Gateway) CreateIntent(estateId, userId string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(FixedPriceNOK * 100),
		Currency: stripe.String(string(stripe.CurrencyNOK)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("estate_id", estateId)
	params.AddMetadata("user_id", userId)

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}

	return &Intent{
		Id:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
		AmountNOK:    FixedPriceNOK,
	}, nil
}

// GetStatus returns the intent's status and, once the charge succeeded, the
// receipt URL. Intents created for another user are ErrNotOwner.
func (g *Gateway) GetStatus(intentId, userId string) (*Intent, error) {
	intent, err := g.api.PaymentIntents.Get(intentId, nil)
	if err != nil {
		return nil, err
	}

	if intent.Metadata["user_id"] != userId {
		return nil, ErrNotOwner
	}

	receiptUrl := ""
	if intent.Status == stripe.PaymentIntentStatusSucceeded && intent.LatestCharge != nil {
		charge, err := g.api.Charges.Get(intent.LatestCharge.ID, nil)
		if err != nil {
			return nil, err
		}
		receiptUrl = charge.ReceiptURL
	}

	return &Intent{
		Id:         intent.ID,
		Status:     string(intent.Status),
		AmountNOK:  intent.Amount / 100,
		ReceiptUrl: receiptUrl,
	}, nil
}

// VerifyWebhook checks the Stripe signature and returns the decoded event.
func (g *Gateway) VerifyWebhook(payload []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signature, g.webhookSecret)
}
