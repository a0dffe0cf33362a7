package models

import "time"

// PaymentMethod enumerates how a tenant settles the rent
type PaymentMethod string

const (
	MethodVirement    PaymentMethod = "virement"
	MethodCheque      PaymentMethod = "cheque"
	MethodEspeces     PaymentMethod = "especes"
	MethodPrelevement PaymentMethod = "prelevement"
)

// Valid reports whether m is one of the known payment methods
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodVirement, MethodCheque, MethodEspeces, MethodPrelevement:
		return true
	}
	return false
}

// LeasePaymentConfig holds the recurring-obligation parameters of a lease.
// At most one config exists per lease; it is deactivated, never deleted,
// when the lease ends.
type LeasePaymentConfig struct {
	ID             string        `json:"id"`
	LeaseID        string        `json:"lease_id"`
	MonthlyRent    float64       `json:"monthly_rent"`
	MonthlyCharges float64       `json:"monthly_charges"`
	PaymentDay     int           `json:"payment_day"` // 1-31, clamped to month end at generation
	PaymentMethod  PaymentMethod `json:"payment_method"`
	ReferenceIndex float64       `json:"reference_index,omitempty"` // IRL index at the last revision, 0 when never revised
	IsActive       bool          `json:"is_active"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// TotalMonthly returns rent plus charges
func (c *LeasePaymentConfig) TotalMonthly() float64 {
	return c.MonthlyRent + c.MonthlyCharges
}
