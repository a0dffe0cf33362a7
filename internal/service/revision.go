package service

import (
	"context"
	"fmt"

	"github.com/gestimo/rent-service/internal/models"
	"github.com/gestimo/rent-service/internal/utils"
)

// ReviseRent revises the monthly rent of a lease against a new quarterly
// reference index (IRL). The first revision only anchors the index; later
// revisions scale the rent by newIndex/previousIndex. Emits a rent_revised
// billing adjustment and notifies the tenant best-effort.
func (s *Service) ReviseRent(ctx context.Context, ownerID, leaseID string, newIndex float64) (*models.BillingAdjustment, error) {
	if newIndex <= 0 {
		return nil, fmt.Errorf("%w: reference index must be positive", ErrValidation)
	}
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

	previousRent := cfg.MonthlyRent
	if cfg.ReferenceIndex > 0 {
		cfg.MonthlyRent = utils.Round2(cfg.MonthlyRent * newIndex / cfg.ReferenceIndex)
	}
	cfg.ReferenceIndex = newIndex
	if err := s.store.UpsertConfig(ctx, cfg); err != nil {
		return nil, err
	}

	adj := &models.BillingAdjustment{
		LeaseID:        leaseID,
		Kind:           models.EventRentRevised,
		PreviousAmount: previousRent,
		NewAmount:      cfg.MonthlyRent,
		ReferenceIndex: newIndex,
		EffectiveAt:    s.now(),
	}
	s.log.Infof("Rent revised for lease %s: %.2f -> %.2f (index %.2f)", leaseID, previousRent, cfg.MonthlyRent, newIndex)

	s.dispatchAdjustment(ctx, adj)
	return adj, nil
}

// AdjustCharges updates the monthly charges of a lease, typically after
// the yearly charges reconciliation. Emits a charges_adjusted billing
// adjustment and notifies the tenant best-effort.
func (s *Service) AdjustCharges(ctx context.Context, ownerID, leaseID string, newCharges float64) (*models.BillingAdjustment, error) {
	if newCharges < 0 {
		return nil, fmt.Errorf("%w: monthly charges cannot be negative", ErrValidation)
	}
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

	previous := cfg.MonthlyCharges
	cfg.MonthlyCharges = utils.Round2(newCharges)
	if err := s.store.UpsertConfig(ctx, cfg); err != nil {
		return nil, err
	}

	adj := &models.BillingAdjustment{
		LeaseID:        leaseID,
		Kind:           models.EventChargesAdjusted,
		PreviousAmount: previous,
		NewAmount:      cfg.MonthlyCharges,
		EffectiveAt:    s.now(),
	}
	s.log.Infof("Charges adjusted for lease %s: %.2f -> %.2f", leaseID, previous, cfg.MonthlyCharges)

	s.dispatchAdjustment(ctx, adj)
	return adj, nil
}

func (s *Service) dispatchAdjustment(ctx context.Context, adj *models.BillingAdjustment) {
	lease, err := s.store.LeaseByID(ctx, adj.LeaseID)
	if err != nil || lease == nil {
		s.log.Errorf("Cannot notify adjustment for lease %s: %v", adj.LeaseID, err)
		return
	}
	s.notifyInApp(ctx, lease.TenantID, adj.Kind,
		fmt.Sprintf("Votre échéance mensuelle évolue de %.2f € à %.2f €.", adj.PreviousAmount, adj.NewAmount))
	if err := s.mailer.SendAdjustmentEmail(lease, adj); err != nil {
		s.log.Errorf("Failed to send adjustment notice for lease %s to %s: %v", adj.LeaseID, lease.TenantEmail, err)
	}
}
