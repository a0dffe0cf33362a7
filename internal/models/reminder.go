package models

import "time"

// ReminderType enumerates the escalation levels of a payment reminder
type ReminderType string

const (
	ReminderFirst  ReminderType = "first"
	ReminderSecond ReminderType = "second"
	ReminderFinal  ReminderType = "final"
)

// Valid reports whether t is one of the known reminder types
func (t ReminderType) Valid() bool {
	switch t {
	case ReminderFirst, ReminderSecond, ReminderFinal:
		return true
	}
	return false
}

// ReminderStatus enumerates delivery states of a reminder
type ReminderStatus string

const (
	ReminderSent      ReminderStatus = "sent"
	ReminderDelivered ReminderStatus = "delivered"
	ReminderFailed    ReminderStatus = "failed"
)

// Reminder is one escalation attempt for a non-paid payment.
// Reminders form an append-only trail and are never mutated after creation.
type Reminder struct {
	ID           string         `json:"id"`
	PaymentID    string         `json:"payment_id"`
	LeaseID      string         `json:"lease_id"`
	TenantID     string         `json:"tenant_id"`
	ReminderType ReminderType   `json:"reminder_type"`
	Message      string         `json:"message"`
	Status       ReminderStatus `json:"status"`
	SentAt       time.Time      `json:"sent_at"`
}
