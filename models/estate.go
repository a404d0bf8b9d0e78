package models

import "time"

// Estate statuses. The payment webhook moves an estate between the last two.
const (
	EstateStatusDraft         = "draft"
	EstateStatusInProgress    = "in_progress"
	EstateStatusPaid          = "paid"
	EstateStatusPaymentFailed = "payment_failed"
)

type Address struct {
	Street     string `json:"street"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	Country    string `json:"country"`
}

type Person struct {
	Name        string  `json:"name"`
	Address     Address `json:"address"`
	DateOfDeath string  `json:"dateOfDeath,omitempty"`
}

type Asset struct {
	Id             string  `json:"id"`
	Type           string  `json:"type"`
	Description    string  `json:"description"`
	EstimatedValue float64 `json:"estimatedValue"`
}

type Debt struct {
	Id       string  `json:"id"`
	Type     string  `json:"type"`
	Creditor string  `json:"creditor"`
	Amount   float64 `json:"amount"`
	DueDate  *string `json:"dueDate,omitempty"`
}

type Task struct {
	Id        string  `json:"id"`
	Title     string  `json:"title"`
	Completed bool    `json:"completed"`
	DueDate   *string `json:"dueDate,omitempty"`
}

type Estate struct {
	Id            string            `json:"id"`
	UserId        string            `json:"userId"`
	Deceased      *Person           `json:"deceased"`
	Heirs         []Person          `json:"heirs"`
	Assets        []Asset           `json:"assets"`
	Debts         []Debt            `json:"debts"`
	Status        string            `json:"status"`
	CurrentStep   int               `json:"currentStep"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	EstateName    string            `json:"estateName,omitempty"`
	DeceasedName  string            `json:"deceasedName,omitempty"`
	Progress      int               `json:"progress"`
	Tasks         []Task            `json:"tasks"`
	Collaborators map[string]string `json:"collaborators,omitempty"`
}

// DefaultTasks is the checklist every new estate starts with.
func DefaultTasks() []Task {
	return []Task{
		{Id: "1", Title: "Last opp skifteattest"},
		{Id: "2", Title: "Registrer eiendeler"},
		{Id: "3", Title: "Registrer gjeld"},
		{Id: "4", Title: "Legg til arvinger"},
		{Id: "5", Title: "Gjennomgå transaksjoner"},
	}
}
