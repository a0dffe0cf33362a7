package service

import (
	"context"
	"fmt"

	"github.com/gestimo/rent-service/internal/models"
)

// ConfigInput carries the owner-mutable payment parameters of a lease
type ConfigInput struct {
	MonthlyRent    float64
	MonthlyCharges float64
	PaymentDay     int
	PaymentMethod  models.PaymentMethod
	IsActive       bool
}

// SaveConfig creates or updates the payment config of a lease. A lease
// has at most one config; saving again overwrites it.
func (s *Service) SaveConfig(ctx context.Context, ownerID, leaseID string, in ConfigInput) (*models.LeasePaymentConfig, error) {
	if _, err := s.ownedLease(ctx, ownerID, leaseID); err != nil {
		return nil, err
	}
	if in.MonthlyRent < 0 || in.MonthlyCharges < 0 {
		return nil, fmt.Errorf("%w: amounts cannot be negative", ErrValidation)
	}
	if in.PaymentDay < 1 || in.PaymentDay > 31 {
		return nil, fmt.Errorf("%w: payment_day must be between 1 and 31", ErrValidation)
	}
	if !in.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, in.PaymentMethod)
	}

	cfg, err := s.store.ConfigByLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &models.LeasePaymentConfig{ID: newID(), LeaseID: leaseID}
	}
	cfg.MonthlyRent = in.MonthlyRent
	cfg.MonthlyCharges = in.MonthlyCharges
	cfg.PaymentDay = in.PaymentDay
	cfg.PaymentMethod = in.PaymentMethod
	cfg.IsActive = in.IsActive

	if err := s.store.UpsertConfig(ctx, cfg); err != nil {
		return nil, err
	}
	s.log.Infof("Payment config saved for lease %s (%.2f + %.2f, day %d)", leaseID, cfg.MonthlyRent, cfg.MonthlyCharges, cfg.PaymentDay)
	return cfg, nil
}

// LeaseConfig returns the payment config of a lease, scoped to the owner
func (s *Service) LeaseConfig(ctx context.Context, ownerID, leaseID string) (*models.LeasePaymentConfig, error) {
	if _, err := s.ownedLease(ctx, ownerID, leaseID); err != nil {
		return nil, err
	}
	cfg, err := s.store.ConfigByLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, leaseID)
	}
	return cfg, nil
}

// LeasePayments lists the payment history of a lease, scoped to the owner
func (s *Service) LeasePayments(ctx context.Context, ownerID, leaseID string) ([]models.Payment, error) {
	if _, err := s.ownedLease(ctx, ownerID, leaseID); err != nil {
		return nil, err
	}
	return s.store.PaymentsByLease(ctx, leaseID)
}

// ownedLease resolves a lease and checks it belongs to the owner
func (s *Service) ownedLease(ctx context.Context, ownerID, leaseID string) (*models.Lease, error) {
	lease, err := s.store.LeaseByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil || lease.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: %s", ErrLeaseNotFound, leaseID)
	}
	return lease, nil
}
