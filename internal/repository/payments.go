package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gestimo/rent-service/internal/models"
)

const paymentColumns = `id, lease_id, month, year, month_name, rent_amount, charges_amount, amount_due,
		due_date, payment_date, status, payment_method, reference, receipt_id, notes, created_at, updated_at`

func scanPayment(scan func(dest ...any) error) (*models.Payment, error) {
	p := &models.Payment{}
	err := scan(&p.ID, &p.LeaseID, &p.Month, &p.Year, &p.MonthName,
		&p.RentAmount, &p.ChargesAmount, &p.AmountDue,
		&p.DueDate, &p.PaymentDate, &p.Status, &p.PaymentMethod,
		&p.Reference, &p.ReceiptID, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// PaymentByID retrieves a payment. Returns nil when it does not exist.
func (r *Repository) PaymentByID(ctx context.Context, id string) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM rent.payments WHERE id = $1`
	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	return p, nil
}

// PaymentExists reports whether a payment already exists for a lease/month pair
func (r *Repository) PaymentExists(ctx context.Context, leaseID, month string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM rent.payments WHERE lease_id = $1 AND month = $2)`
	if err := r.db.QueryRowContext(ctx, query, leaseID, month).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check payment existence: %w", err)
	}
	return exists, nil
}

// CreatePayment inserts a new payment record
func (r *Repository) CreatePayment(ctx context.Context, p *models.Payment) error {
	query := `
		INSERT INTO rent.payments (id, lease_id, month, year, month_name, rent_amount, charges_amount, amount_due,
			due_date, status, payment_method, reference, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.LeaseID, p.Month, p.Year, p.MonthName,
		p.RentAmount, p.ChargesAmount, p.AmountDue,
		p.DueDate, p.Status, p.PaymentMethod, p.Reference, p.Notes).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// PaymentsByLease lists all payments of a lease, newest month first
func (r *Repository) PaymentsByLease(ctx context.Context, leaseID string) ([]models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM rent.payments WHERE lease_id = $1 ORDER BY month DESC`
	return r.listPayments(ctx, query, leaseID)
}

// PaymentsByOwner lists all payments over the leases of an owner
func (r *Repository) PaymentsByOwner(ctx context.Context, ownerID string) ([]models.Payment, error) {
	query := `
		SELECT ` + qualify(paymentColumns, "p") + `
		FROM rent.payments p
		JOIN rent.leases l ON l.id = p.lease_id
		WHERE l.owner_id = $1
		ORDER BY p.month DESC`
	return r.listPayments(ctx, query, ownerID)
}

func (r *Repository) listPayments(ctx context.Context, query string, args ...any) ([]models.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

// SavePaid marks a payment as paid and, when a new receipt is provided,
// inserts it in the same transaction so the two records stay consistent.
// The transition to paid is conditioned on the current status: only the
// caller that actually flips the row may insert a receipt, so concurrent
// validations can never produce two receipts for one payment. Returns
// false when another validation settled the payment first.
func (r *Repository) SavePaid(ctx context.Context, p *models.Payment, receipt *models.Receipt) (bool, error) {
	applied := true
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		update := `
			UPDATE rent.payments
			SET status = $2, payment_date = $3, payment_method = $4, receipt_id = $5, notes = $6,
				updated_at = CURRENT_TIMESTAMP
			WHERE id = $1`
		if receipt == nil {
			// Already-receipted payment: only date, method and notes change.
			update += ` RETURNING updated_at`
			if err := tx.QueryRowContext(ctx, update,
				p.ID, p.Status, p.PaymentDate, p.PaymentMethod, p.ReceiptID, p.Notes).
				Scan(&p.UpdatedAt); err != nil {
				return fmt.Errorf("failed to update payment: %w", err)
			}
			return nil
		}

		update += ` AND status <> 'paid' RETURNING updated_at`
		err := tx.QueryRowContext(ctx, update,
			p.ID, p.Status, p.PaymentDate, p.PaymentMethod, p.ReceiptID, p.Notes).
			Scan(&p.UpdatedAt)
		if err == sql.ErrNoRows {
			applied = false
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}

		insert := `
			INSERT INTO rent.receipts (id, payment_id, lease_id, reference, month, year,
				rent_amount, charges_amount, total_amount, pdf_path, generated_at, sent_to_tenant)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, FALSE)`
		if _, err := tx.ExecContext(ctx, insert,
			receipt.ID, receipt.PaymentID, receipt.LeaseID, receipt.Reference,
			receipt.Month, receipt.Year, receipt.RentAmount, receipt.ChargesAmount,
			receipt.TotalAmount, receipt.PDFPath, receipt.GeneratedAt); err != nil {
			return fmt.Errorf("failed to create receipt: %w", err)
		}
		return nil
	})
	return applied, err
}

// SaveUnpaid restores a payment to a not-yet-paid status
func (r *Repository) SaveUnpaid(ctx context.Context, p *models.Payment) error {
	query := `
		UPDATE rent.payments
		SET status = $2, payment_date = NULL, notes = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`
	if err := r.db.QueryRowContext(ctx, query, p.ID, p.Status, p.Notes).Scan(&p.UpdatedAt); err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return nil
}

// MarkOverdueBefore flips pending payments whose due date has passed to
// overdue. Returns the number of updated rows.
func (r *Repository) MarkOverdueBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE rent.payments
		SET status = 'overdue', updated_at = CURRENT_TIMESTAMP
		WHERE status = 'pending' AND due_date < $1`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue payments: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count overdue payments: %w", err)
	}
	return n, nil
}

// qualify prefixes each column of a comma-separated list with a table alias
func qualify(columns, alias string) string {
	out := ""
	for i, c := range splitColumns(columns) {
		if i > 0 {
			out += ", "
		}
		out += alias + "." + c
	}
	return out
}

func splitColumns(columns string) []string {
	var cols []string
	cur := ""
	for _, r := range columns {
		switch r {
		case ',':
			cols = append(cols, cur)
			cur = ""
		case ' ', '\n', '\t':
		default:
			cur += string(r)
		}
	}
	if cur != "" {
		cols = append(cols, cur)
	}
	return cols
}
