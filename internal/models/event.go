package models

import "time"

// EventKind enumerates the notification events emitted by the payment core.
// Rendering and delivery belong to the dispatch layer.
type EventKind string

const (
	EventPaymentReceived  EventKind = "payment_received"
	EventPaymentOverdue   EventKind = "payment_overdue"
	EventReminderSent     EventKind = "reminder_sent"
	EventReceiptGenerated EventKind = "receipt_generated"
	EventRentRevised      EventKind = "rent_revised"
	EventChargesAdjusted  EventKind = "charges_adjusted"
)

// BillingAdjustment describes a change to the recurring amounts of a lease,
// either a rent revision against the reference index or a charges update.
type BillingAdjustment struct {
	LeaseID        string    `json:"lease_id"`
	Kind           EventKind `json:"kind"`
	PreviousAmount float64   `json:"previous_amount"`
	NewAmount      float64   `json:"new_amount"`
	ReferenceIndex float64   `json:"reference_index,omitempty"`
	EffectiveAt    time.Time `json:"effective_at"`
}
