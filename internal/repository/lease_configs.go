package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gestimo/rent-service/internal/models"
)

// ConfigByLease retrieves the payment config of a lease. Returns nil when
// the lease has no config.
func (r *Repository) ConfigByLease(ctx context.Context, leaseID string) (*models.LeasePaymentConfig, error) {
	cfg := &models.LeasePaymentConfig{}
	query := `
		SELECT id, lease_id, monthly_rent, monthly_charges, payment_day, payment_method, reference_index, is_active, created_at, updated_at
		FROM rent.lease_payment_configs
		WHERE lease_id = $1`
	err := r.db.QueryRowContext(ctx, query, leaseID).
		Scan(&cfg.ID, &cfg.LeaseID, &cfg.MonthlyRent, &cfg.MonthlyCharges,
			&cfg.PaymentDay, &cfg.PaymentMethod, &cfg.ReferenceIndex, &cfg.IsActive, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payment config: %w", err)
	}
	return cfg, nil
}

// UpsertConfig creates or updates the payment config of a lease. The
// lease_id unique constraint enforces at most one config per lease.
func (r *Repository) UpsertConfig(ctx context.Context, cfg *models.LeasePaymentConfig) error {
	query := `
		INSERT INTO rent.lease_payment_configs (id, lease_id, monthly_rent, monthly_charges, payment_day, payment_method, reference_index, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (lease_id) DO UPDATE SET
			monthly_rent = EXCLUDED.monthly_rent,
			monthly_charges = EXCLUDED.monthly_charges,
			payment_day = EXCLUDED.payment_day,
			payment_method = EXCLUDED.payment_method,
			reference_index = EXCLUDED.reference_index,
			is_active = EXCLUDED.is_active,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		cfg.ID, cfg.LeaseID, cfg.MonthlyRent, cfg.MonthlyCharges,
		cfg.PaymentDay, cfg.PaymentMethod, cfg.ReferenceIndex, cfg.IsActive).
		Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert payment config: %w", err)
	}
	return nil
}
