package ingest

import (
	"strings"

	"github.com/skifte/skifte-server/models"
)

// Static keyword tables used when the AI analyzer is unavailable or returns
// something unparsable. Matching is by recipient substring, lowercased.
var categoryKeywords = map[string][]string{
	"streaming": {"spotify", "netflix", "hbo", "disney", "viaplay"},
	"telecom":   {"telia", "telenor", "ice", "one call"},
	"utilities": {"fortum", "hafslund", "fjordkraft"},
	"groceries": {"kiwi", "rema", "meny", "coop", "spar", "bunnpris"},
	"transport": {"ruter", "vy", "flytoget"},
}

var subscriptionKeywords = []string{"spotify", "netflix", "hbo", "telia", "telenor", "fortum"}

// ClassifyFallback fills in category and subscription fields by keyword
// match, defaulting to "other". Subscriptions default to monthly frequency
// with empty contact info.
func ClassifyFallback(transaction *models.Transaction) {
	recipient := strings.ToLower(transaction.Recipient)

	transaction.Category = "other"
	for category, keywords := range categoryKeywords {
		if containsAny(recipient, keywords) {
			transaction.Category = category
			break
		}
	}

	transaction.IsSubscription = containsAny(recipient, subscriptionKeywords)
	if transaction.IsSubscription {
		frequency := "monthly"
		transaction.SubscriptionFrequency = &frequency
		transaction.ContactInfo = &models.ContactInfo{}
	}
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
