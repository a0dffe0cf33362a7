package models

import "time"

// PaymentStatus enumerates the lifecycle states of a monthly payment
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusPaid      PaymentStatus = "paid"
	StatusOverdue   PaymentStatus = "overdue"
	StatusCancelled PaymentStatus = "cancelled"
)

// Valid reports whether s is one of the known payment statuses
func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// Payment represents one monthly rent obligation for a lease.
// Exactly one payment exists per (lease, calendar month); payments are
// historical records and are never deleted.
type Payment struct {
	ID             string        `json:"id"`
	LeaseID        string        `json:"lease_id"`
	Month          string        `json:"month"` // YYYY-MM
	Year           int           `json:"year"`
	MonthName      string        `json:"month_name"`
	RentAmount     float64       `json:"rent_amount"`
	ChargesAmount  float64       `json:"charges_amount"`
	AmountDue      float64       `json:"amount_due"`
	DueDate        time.Time     `json:"due_date"`
	PaymentDate    *time.Time    `json:"payment_date,omitempty"`
	Status         PaymentStatus `json:"status"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	Reference      string        `json:"reference"`
	ReceiptID      *string       `json:"receipt_id,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// IsSettled reports whether the payment has been paid
func (p *Payment) IsSettled() bool {
	return p.Status == StatusPaid
}

// IsOverdue reports whether the payment is unpaid and past its due date
func (p *Payment) IsOverdue(now time.Time) bool {
	return p.Status != StatusPaid && p.Status != StatusCancelled && now.After(p.DueDate)
}

// DelayDays returns the number of whole days the payment was settled after
// its due date, never negative. Zero when the payment is unpaid.
func (p *Payment) DelayDays() int {
	if p.PaymentDate == nil {
		return 0
	}
	days := int(p.PaymentDate.Sub(p.DueDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// PaymentHistory bundles a payment with its derived records
type PaymentHistory struct {
	Payment   *Payment   `json:"payment"`
	Receipt   *Receipt   `json:"receipt,omitempty"`
	Reminders []Reminder `json:"reminders"`
}
