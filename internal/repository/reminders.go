package repository

import (
	"context"
	"fmt"

	"github.com/gestimo/rent-service/internal/models"
)

// CreateReminder appends a reminder to the escalation trail of a payment
func (r *Repository) CreateReminder(ctx context.Context, rm *models.Reminder) error {
	query := `
		INSERT INTO rent.reminders (id, payment_id, lease_id, tenant_id, reminder_type, message, status, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		rm.ID, rm.PaymentID, rm.LeaseID, rm.TenantID,
		rm.ReminderType, rm.Message, rm.Status, rm.SentAt)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

// RemindersByPayment lists the escalation trail of a payment, oldest first
func (r *Repository) RemindersByPayment(ctx context.Context, paymentID string) ([]models.Reminder, error) {
	query := `
		SELECT id, payment_id, lease_id, tenant_id, reminder_type, message, status, sent_at
		FROM rent.reminders
		WHERE payment_id = $1
		ORDER BY sent_at`
	rows, err := r.db.QueryContext(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		var rm models.Reminder
		if err := rows.Scan(&rm.ID, &rm.PaymentID, &rm.LeaseID, &rm.TenantID,
			&rm.ReminderType, &rm.Message, &rm.Status, &rm.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, rm)
	}
	return reminders, rows.Err()
}

// CreateNotification records an in-app notification for a tenant or owner
func (r *Repository) CreateNotification(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO rent.notifications (id, user_id, kind, message, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, n.ID, n.UserID, n.Kind, n.Message, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}
