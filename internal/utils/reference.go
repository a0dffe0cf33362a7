package utils

import (
	"fmt"
	"math"
)

// ShortLeaseID returns the last 6 characters of a lease identifier, used
// to build human-readable references without a central sequence.
func ShortLeaseID(leaseID string) string {
	if len(leaseID) <= 6 {
		return leaseID
	}
	return leaseID[len(leaseID)-6:]
}

// PaymentReference builds the traceability reference of a payment,
// e.g. "PAY-2025-03-a1b2c3". Unique per (lease, month) by construction.
func PaymentReference(monthKey, leaseID string) string {
	return fmt.Sprintf("PAY-%s-%s", monthKey, ShortLeaseID(leaseID))
}

// ReceiptReference builds the reference printed on a rent receipt,
// e.g. "Quittance #2025-03-a1b2c3".
func ReceiptReference(monthKey, leaseID string) string {
	return fmt.Sprintf("Quittance #%s-%s", monthKey, ShortLeaseID(leaseID))
}

// Round2 rounds a monetary amount or percentage to 2 decimals
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
