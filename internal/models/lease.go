package models

import "time"

// Lease is a read-only view of a rental contract from the lease directory.
// The directory itself (properties, tenants, contracts) is managed by
// another service; we only resolve leases by id for payment purposes.
type Lease struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	TenantID      string    `json:"tenant_id"`
	TenantName    string    `json:"tenant_name"`
	TenantEmail   string    `json:"tenant_email"`
	PropertyLabel string    `json:"property_label"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}
