package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gestimo/rent-service/internal/models"
)

// LeaseByID retrieves a lease from the directory. Returns nil when the
// lease does not exist.
func (r *Repository) LeaseByID(ctx context.Context, id string) (*models.Lease, error) {
	lease := &models.Lease{}
	query := `
		SELECT id, owner_id, tenant_id, tenant_name, tenant_email, property_label, is_active, created_at
		FROM rent.leases
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&lease.ID, &lease.OwnerID, &lease.TenantID, &lease.TenantName,
			&lease.TenantEmail, &lease.PropertyLabel, &lease.IsActive, &lease.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find lease: %w", err)
	}
	return lease, nil
}

// ActiveLeases lists every active lease, across all owners. Used by the
// scheduled monthly generation run.
func (r *Repository) ActiveLeases(ctx context.Context) ([]models.Lease, error) {
	query := `
		SELECT id, owner_id, tenant_id, tenant_name, tenant_email, property_label, is_active, created_at
		FROM rent.leases
		WHERE is_active = TRUE
		ORDER BY created_at`
	return r.listLeases(ctx, query)
}

// ActiveLeasesByOwner lists the active leases of an owner
func (r *Repository) ActiveLeasesByOwner(ctx context.Context, ownerID string) ([]models.Lease, error) {
	query := `
		SELECT id, owner_id, tenant_id, tenant_name, tenant_email, property_label, is_active, created_at
		FROM rent.leases
		WHERE owner_id = $1 AND is_active = TRUE
		ORDER BY created_at`
	return r.listLeases(ctx, query, ownerID)
}

func (r *Repository) listLeases(ctx context.Context, query string, args ...any) ([]models.Lease, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leases: %w", err)
	}
	defer rows.Close()

	var leases []models.Lease
	for rows.Next() {
		var lease models.Lease
		if err := rows.Scan(&lease.ID, &lease.OwnerID, &lease.TenantID, &lease.TenantName,
			&lease.TenantEmail, &lease.PropertyLabel, &lease.IsActive, &lease.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lease: %w", err)
		}
		leases = append(leases, lease)
	}
	return leases, rows.Err()
}
