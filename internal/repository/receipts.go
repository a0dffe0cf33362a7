package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gestimo/rent-service/internal/models"
)

// ReceiptByPayment retrieves the receipt of a payment. Returns nil when
// no receipt has been generated yet.
func (r *Repository) ReceiptByPayment(ctx context.Context, paymentID string) (*models.Receipt, error) {
	receipt := &models.Receipt{}
	query := `
		SELECT id, payment_id, lease_id, reference, month, year,
			rent_amount, charges_amount, total_amount, pdf_path, generated_at, sent_to_tenant, sent_at
		FROM rent.receipts
		WHERE payment_id = $1`
	err := r.db.QueryRowContext(ctx, query, paymentID).
		Scan(&receipt.ID, &receipt.PaymentID, &receipt.LeaseID, &receipt.Reference,
			&receipt.Month, &receipt.Year, &receipt.RentAmount, &receipt.ChargesAmount,
			&receipt.TotalAmount, &receipt.PDFPath, &receipt.GeneratedAt,
			&receipt.SentToTenant, &receipt.SentAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find receipt: %w", err)
	}
	return receipt, nil
}

// MarkReceiptSent records that the receipt was delivered to the tenant
func (r *Repository) MarkReceiptSent(ctx context.Context, receiptID string, at time.Time) error {
	query := `
		UPDATE rent.receipts
		SET sent_to_tenant = TRUE, sent_at = $2
		WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, receiptID, at); err != nil {
		return fmt.Errorf("failed to mark receipt sent: %w", err)
	}
	return nil
}
