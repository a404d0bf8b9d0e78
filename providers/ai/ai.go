// Package ai wraps the OpenAI chat API for transaction analysis and
// cancellation prose generation.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/skifte/skifte-server/models"
)

const analyzeSystemPrompt = "You are an AI trained to analyze bank transactions and identify subscriptions. " +
	"You have extensive knowledge of Norwegian companies and their subscription services."

const cancellationSystemPrompt = "You are an AI trained to write formal Norwegian cancellation letters and emails. " +
	"You write in a clear, professional tone suitable for business communication."

type Client struct {
	client openai.Client
	model  string
}

func NewClient(apiKey string) *Client {
	return &Client{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.ChatModelGPT4oMini,
	}
}

type analysis struct {
	IsSubscription        bool                `json:"is_subscription"`
	Category              string              `json:"category"`
	SubscriptionFrequency *string             `json:"subscription_frequency"`
	ContactInfo           *models.ContactInfo `json:"contact_info"`
}

// AnalyzeTransaction asks the model to categorize one transaction and fills
// in the answer. Any failure, including an unparsable answer, is returned to
// the caller, which falls back to the static classifier.
func (c *Client) AnalyzeTransaction(ctx context.Context, transaction *models.Transaction) error {
	prompt := fmt.Sprintf(`Analyze this transaction and determine:
1. Is it likely a subscription? (true/false)
2. What category does it belong to?
3. What is the likely subscription frequency if it's a subscription?
4. What is the contact information for cancellation?

Transaction:
Recipient: %s
Amount: %.2f NOK
Date: %s

Respond in this JSON format:
{
    "is_subscription": boolean,
    "category": string,
    "subscription_frequency": string or null,
    "contact_info": {
        "email": string or null,
        "phone": string or null,
        "website": string or null
    }
}
`, transaction.Recipient, transaction.Amount, transaction.Date)

	content, err := c.complete(ctx, analyzeSystemPrompt, prompt)
	if err != nil {
		return err
	}

	var parsed analysis
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &parsed); err != nil {
		return err
	}

	transaction.IsSubscription = parsed.IsSubscription
	transaction.Category = parsed.Category
	transaction.SubscriptionFrequency = parsed.SubscriptionFrequency
	transaction.ContactInfo = parsed.ContactInfo

	return nil
}

// GenerateCancellation writes a Norwegian cancellation letter or email for
// the given subscription on behalf of the estate.
func (c *Client) GenerateCancellation(ctx context.Context, transaction *models.Transaction, estate *models.Estate, method string) (string, error) {
	deceasedName := "[NAVN]"
	dateOfDeath := "[DATO]"
	if estate.Deceased != nil {
		if estate.Deceased.Name != "" {
			deceasedName = estate.Deceased.Name
		}
		if estate.Deceased.DateOfDeath != "" {
			dateOfDeath = estate.Deceased.DateOfDeath
		}
	}

	heirName := "[NAVN]"
	if len(estate.Heirs) > 0 {
		heirName = estate.Heirs[0].Name
	}

	prompt := fmt.Sprintf(`Generate a %s in Norwegian to cancel a subscription.

Details:
- Company: %s
- Service: %s
- Deceased: %s
- Date of Death: %s
- Heir: %s

The %s should:
1. Be formal and professional
2. Explain that the person has passed away
3. Request immediate cancellation of the subscription
4. Mention that you have authority to cancel on behalf of the estate
5. Request confirmation of cancellation
6. Include relevant account or customer numbers if available
`, method, transaction.Recipient, transaction.Category, deceasedName, dateOfDeath, heirName, method)

	content, err := c.complete(ctx, cancellationSystemPrompt, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	res, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", err
	}

	if len(res.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}
	return res.Choices[0].Message.Content, nil
}

// Models occasionally wrap JSON answers in a markdown fence.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
