package models

import "time"

const (
	CancellationMethodLetter = "letter"
	CancellationMethodEmail  = "email"
)

// Cancellation statuses form a closed vocabulary; updates outside it are
// rejected rather than stored.
const (
	CancellationStatusPending   = "pending"
	CancellationStatusSent      = "sent"
	CancellationStatusConfirmed = "confirmed"
	CancellationStatusFailed    = "failed"
)

type CancellationStatusEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Comment   string    `json:"comment"`
}

// Cancellation tracks a subscription cancellation request for one transaction.
// StatusHistory is append-only; Status mirrors its last entry.
type Cancellation struct {
	EstateId      string                    `json:"estate_id"`
	TransactionId string                    `json:"transaction_id"`
	Method        string                    `json:"cancellation_method"`
	Content       string                    `json:"cancellation_content"`
	ContactInfo   map[string]interface{}    `json:"contact_info"`
	Status        string                    `json:"status"`
	CreatedAt     time.Time                 `json:"created_at"`
	LastUpdated   time.Time                 `json:"last_updated"`
	StatusHistory []CancellationStatusEntry `json:"status_history"`
}

func ValidCancellationStatus(status string) bool {
	switch status {
	case CancellationStatusPending, CancellationStatusSent,
		CancellationStatusConfirmed, CancellationStatusFailed:
		return true
	}
	return false
}

func ValidCancellationMethod(method string) bool {
	return method == CancellationMethodLetter || method == CancellationMethodEmail
}
