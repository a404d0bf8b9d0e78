package models

type ContactInfo struct {
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Website *string `json:"website"`
}

type Transaction struct {
	Id                    string       `json:"id"`
	Date                  string       `json:"date"`
	Recipient             string       `json:"recipient"`
	Amount                float64      `json:"amount"`
	Category              string       `json:"category"`
	IsSubscription        bool         `json:"is_subscription"`
	SubscriptionFrequency *string      `json:"subscription_frequency"`
	ContactInfo           *ContactInfo `json:"contact_info"`
}

// TransactionBatch is one upload's worth of parsed transactions, stored as a
// single document under transactions/<estateId>/<uploadTimestamp>.
type TransactionBatch struct {
	EstateId     string        `json:"estate_id"`
	Transactions []Transaction `json:"transactions"`
}
