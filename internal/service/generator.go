package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gestimo/rent-service/internal/models"
	"github.com/gestimo/rent-service/internal/utils"
)

// GenerateForOwner creates the monthly payments of an owner's active
// leases for the target month (YYYY-MM, current month when empty) and
// returns only the newly created records. Re-running for the same month
// is a no-op for leases already generated.
func (s *Service) GenerateForOwner(ctx context.Context, ownerID, monthKey string) ([]models.Payment, error) {
	leases, err := s.store.ActiveLeasesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, leases, monthKey)
}

// GenerateAll creates the monthly payments of every active lease. Driven
// by the scheduled run on the first of the month.
func (s *Service) GenerateAll(ctx context.Context, monthKey string) ([]models.Payment, error) {
	leases, err := s.store.ActiveLeases(ctx)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, leases, monthKey)
}

func (s *Service) generate(ctx context.Context, leases []models.Lease, monthKey string) ([]models.Payment, error) {
	now := s.now()
	year, month := now.Year(), now.Month()
	if monthKey != "" {
		var err error
		year, month, err = utils.ParseMonthKey(monthKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	key := utils.MonthKey(year, month)

	var created []models.Payment
	for _, lease := range leases {
		cfg, err := s.store.ConfigByLease(ctx, lease.ID)
		if err != nil {
			return created, err
		}
		if cfg == nil || !cfg.IsActive {
			// No active config means the lease is not billed. Policy, not an error.
			s.log.Debugf("Skipping lease %s: no active payment config", lease.ID)
			continue
		}

		exists, err := s.store.PaymentExists(ctx, lease.ID, key)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		p := buildPayment(&lease, cfg, year, month, now)
		if err := s.store.CreatePayment(ctx, p); err != nil {
			return created, err
		}
		s.log.Infof("Generated payment %s for lease %s (%s)", p.Reference, lease.ID, key)
		created = append(created, *p)
	}
	return created, nil
}

// buildPayment derives the payment record of a lease for a target month.
// The due day is clamped to the end of the month, and a payment whose due
// date is already past at generation time starts out overdue.
func buildPayment(lease *models.Lease, cfg *models.LeasePaymentConfig, year int, month time.Month, now time.Time) *models.Payment {
	key := utils.MonthKey(year, month)
	due := utils.DueDate(year, month, cfg.PaymentDay)

	status := models.StatusPending
	if due.Before(now) {
		status = models.StatusOverdue
	}

	return &models.Payment{
		ID:            newID(),
		LeaseID:       lease.ID,
		Month:         key,
		Year:          year,
		MonthName:     utils.MonthName(month),
		RentAmount:    cfg.MonthlyRent,
		ChargesAmount: cfg.MonthlyCharges,
		AmountDue:     cfg.TotalMonthly(),
		DueDate:       due,
		Status:        status,
		PaymentMethod: cfg.PaymentMethod,
		Reference:     utils.PaymentReference(key, lease.ID),
	}
}
