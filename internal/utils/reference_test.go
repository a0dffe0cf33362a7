package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentReference(t *testing.T) {
	assert.Equal(t, "PAY-2025-03-a1b2c3", PaymentReference("2025-03", "lease-a1b2c3"))
	assert.Equal(t, "PAY-2025-03-abc", PaymentReference("2025-03", "abc"), "short ids are kept as is")
}

func TestReceiptReference(t *testing.T) {
	assert.Equal(t, "Quittance #2025-03-a1b2c3", ReceiptReference("2025-03", "lease-a1b2c3"))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 717.5, Round2(700*143.5/140))
	assert.Equal(t, 70.0, Round2(700.0/1000.0*100))
	assert.Equal(t, 33.33, Round2(100.0/3))
	assert.Equal(t, 0.0, Round2(0))
}
