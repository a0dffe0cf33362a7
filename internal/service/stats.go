package service

import (
	"context"
	"time"

	"github.com/gestimo/rent-service/internal/models"
	"github.com/gestimo/rent-service/internal/utils"
)

// ComputeStats aggregates collection metrics over a payment set scoped to
// a reporting period. Pure function: the input slice is not mutated.
// Payments are assigned to a period by their creation time.
func ComputeStats(payments []models.Payment, period models.Period, now time.Time) models.PaymentStats {
	from, to := utils.PeriodWindow(string(period), now)

	var stats models.PaymentStats
	var delayTotal, paidCount int
	for _, p := range payments {
		if !utils.InWindow(p.CreatedAt, from, to) {
			continue
		}
		stats.PaymentCount++
		switch p.Status {
		case models.StatusPaid:
			stats.TotalReceived += p.AmountDue
			if p.PaymentDate != nil {
				delayTotal += p.DelayDays()
				paidCount++
			}
		case models.StatusPending:
			stats.TotalPending += p.AmountDue
		case models.StatusOverdue:
			stats.TotalOverdue += p.AmountDue
		}
	}

	billed := stats.TotalReceived + stats.TotalPending + stats.TotalOverdue
	if billed > 0 {
		stats.CollectionRate = utils.Round2(stats.TotalReceived / billed * 100)
	}
	if paidCount > 0 {
		stats.AverageDelay = utils.Round2(float64(delayTotal) / float64(paidCount))
	}
	return stats
}

// OwnerStats computes the collection statistics of an owner's payments
// for the requested period.
func (s *Service) OwnerStats(ctx context.Context, ownerID string, period models.Period) (models.PaymentStats, error) {
	payments, err := s.store.PaymentsByOwner(ctx, ownerID)
	if err != nil {
		return models.PaymentStats{}, err
	}
	return ComputeStats(payments, period, s.now()), nil
}
