package models

import "time"

// Receipt is the rent receipt (quittance de loyer) derived from a paid
// payment. Immutable once generated, except for the sent-to-tenant pair.
type Receipt struct {
	ID            string     `json:"id"`
	PaymentID     string     `json:"payment_id"`
	LeaseID       string     `json:"lease_id"`
	Reference     string     `json:"reference"`
	Month         string     `json:"month"` // YYYY-MM
	Year          int        `json:"year"`
	RentAmount    float64    `json:"rent_amount"`
	ChargesAmount float64    `json:"charges_amount"`
	TotalAmount   float64    `json:"total_amount"`
	PDFPath       string     `json:"pdf_path,omitempty"` // filled by the document service
	GeneratedAt   time.Time  `json:"generated_at"`
	SentToTenant  bool       `json:"sent_to_tenant"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
}
