package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gestimo/rent-service/internal/models"
	"github.com/gestimo/rent-service/internal/utils"
)

// ValidateInput carries the owner's decision on a payment
type ValidateInput struct {
	Status        string // "paid" or "unpaid"
	PaymentDate   *time.Time
	PaymentMethod models.PaymentMethod
	Notes         string
}

// ValidateResult is the outcome of a validation
type ValidateResult struct {
	Payment  *models.Payment        `json:"payment"`
	Receipt  *models.Receipt        `json:"receipt,omitempty"` // nil when no new receipt was generated
	Notified bool                   `json:"notified"`
	History  *models.PaymentHistory `json:"history"`
}

// ValidatePayment transitions a payment to paid or back to unpaid. This
// is the only path that mutates a payment's status or creates a receipt.
// Email dispatch is fire-and-forget: a delivery failure never rolls back
// the state change.
func (s *Service) ValidatePayment(ctx context.Context, ownerID, paymentID string, in ValidateInput) (*ValidateResult, error) {
	p, err := s.ownedPayment(ctx, ownerID, paymentID)
	if err != nil {
		return nil, err
	}

	var result *ValidateResult
	switch in.Status {
	case "paid":
		result, err = s.markPaid(ctx, p, in)
	case "unpaid":
		result, err = s.markUnpaid(ctx, p)
	default:
		return nil, fmt.Errorf("%w: unrecognized target status %q", ErrInvalidState, in.Status)
	}
	if err != nil {
		return nil, err
	}

	history, err := s.historyFor(ctx, p)
	if err != nil {
		return nil, err
	}
	result.History = history
	return result, nil
}

// ownedPayment resolves a payment and checks it belongs to the owner.
// A payment of another owner is reported as not found rather than
// forbidden, so ids cannot be probed across tenants.
func (s *Service) ownedPayment(ctx context.Context, ownerID, paymentID string) (*models.Payment, error) {
	p, err := s.store.PaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrPaymentNotFound, paymentID)
	}
	lease, err := s.store.LeaseByID(ctx, p.LeaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil || lease.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: %s", ErrPaymentNotFound, paymentID)
	}
	return p, nil
}

func (s *Service) markPaid(ctx context.Context, p *models.Payment, in ValidateInput) (*ValidateResult, error) {
	if p.Status == models.StatusCancelled {
		return nil, fmt.Errorf("%w: cannot act on a cancelled payment", ErrInvalidState)
	}

	// At most one receipt per payment: an earlier receipt is reused, never
	// duplicated, even when a paid payment is validated again.
	existing, err := s.store.ReceiptByPayment(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	paidAt := s.now()
	if in.PaymentDate != nil {
		paidAt = *in.PaymentDate
	}
	p.Status = models.StatusPaid
	p.PaymentDate = &paidAt
	if in.PaymentMethod != "" {
		if !in.PaymentMethod.Valid() {
			return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, in.PaymentMethod)
		}
		p.PaymentMethod = in.PaymentMethod
	}
	if in.Notes != "" {
		p.Notes = in.Notes
	}

	var generated *models.Receipt
	receipt := existing
	if existing == nil {
		generated = buildReceipt(p, s.now())
		receipt = generated
	}
	p.ReceiptID = &receipt.ID

	applied, err := s.store.SavePaid(ctx, p, generated)
	if err != nil {
		return nil, err
	}
	if !applied {
		// A concurrent validation settled the payment between the receipt
		// check and the save. Its receipt and notification stand; this call
		// reports the settled state without dispatching anything.
		fresh, err := s.store.PaymentByID(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if fresh != nil {
			*p = *fresh
		}
		s.log.Infof("Payment %s was already settled by a concurrent validation", p.Reference)
		return &ValidateResult{Payment: p}, nil
	}
	s.log.Infof("Payment %s validated as paid (%s)", p.Reference, p.Month)

	notified := s.dispatchReceipt(ctx, p, receipt)
	return &ValidateResult{Payment: p, Receipt: generated, Notified: notified}, nil
}

func (s *Service) markUnpaid(ctx context.Context, p *models.Payment) (*ValidateResult, error) {
	// "Unpaid" means not yet settled: the actual status is recomputed from
	// the due date rather than restored from before the paid marking.
	p.PaymentDate = nil
	if s.now().After(p.DueDate) {
		p.Status = models.StatusOverdue
	} else {
		p.Status = models.StatusPending
	}

	if err := s.store.SaveUnpaid(ctx, p); err != nil {
		return nil, err
	}
	s.log.Infof("Payment %s reverted to %s", p.Reference, p.Status)

	notified := false
	if p.Status == models.StatusOverdue {
		notified = s.dispatchOverdue(ctx, p)
	}
	return &ValidateResult{Payment: p, Notified: notified}, nil
}

// PaymentHistory returns a payment with its receipt and reminder trail,
// scoped to the owner.
func (s *Service) PaymentHistory(ctx context.Context, ownerID, paymentID string) (*models.PaymentHistory, error) {
	p, err := s.ownedPayment(ctx, ownerID, paymentID)
	if err != nil {
		return nil, err
	}
	return s.historyFor(ctx, p)
}

func (s *Service) historyFor(ctx context.Context, p *models.Payment) (*models.PaymentHistory, error) {
	receipt, err := s.store.ReceiptByPayment(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	reminders, err := s.store.RemindersByPayment(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &models.PaymentHistory{Payment: p, Receipt: receipt, Reminders: reminders}, nil
}

func (s *Service) dispatchReceipt(ctx context.Context, p *models.Payment, receipt *models.Receipt) bool {
	lease, err := s.store.LeaseByID(ctx, p.LeaseID)
	if err != nil || lease == nil {
		s.log.Errorf("Cannot notify payment %s: lease %s unavailable: %v", p.ID, p.LeaseID, err)
		return false
	}
	s.notifyInApp(ctx, lease.TenantID, models.EventPaymentReceived,
		fmt.Sprintf("Votre paiement de %.2f € pour %s %d a bien été reçu.", p.AmountDue, p.MonthName, p.Year))

	if err := s.mailer.SendReceiptEmail(lease, p, receipt); err != nil {
		s.log.Errorf("Failed to send receipt %s to %s: %v", receipt.Reference, lease.TenantEmail, err)
		return true // dispatch attempted; failure is not rolled back
	}
	sentAt := s.now()
	if err := s.store.MarkReceiptSent(ctx, receipt.ID, sentAt); err != nil {
		s.log.Errorf("Failed to mark receipt %s sent: %v", receipt.ID, err)
	} else {
		receipt.SentToTenant = true
		receipt.SentAt = &sentAt
	}
	return true
}

func (s *Service) dispatchOverdue(ctx context.Context, p *models.Payment) bool {
	lease, err := s.store.LeaseByID(ctx, p.LeaseID)
	if err != nil || lease == nil {
		s.log.Errorf("Cannot notify payment %s: lease %s unavailable: %v", p.ID, p.LeaseID, err)
		return false
	}
	s.notifyInApp(ctx, lease.TenantID, models.EventPaymentOverdue,
		fmt.Sprintf("Votre loyer de %s %d (%.2f €) est en retard de paiement.", p.MonthName, p.Year, p.AmountDue))

	if err := s.mailer.SendOverdueEmail(lease, p); err != nil {
		s.log.Errorf("Failed to send overdue notice for %s to %s: %v", p.Reference, lease.TenantEmail, err)
	}
	return true
}

// buildReceipt derives the rent receipt of a paid payment. Pure 1:1
// derivation; persisting and emailing belong to the caller.
func buildReceipt(p *models.Payment, now time.Time) *models.Receipt {
	return &models.Receipt{
		ID:            newID(),
		PaymentID:     p.ID,
		LeaseID:       p.LeaseID,
		Reference:     utils.ReceiptReference(p.Month, p.LeaseID),
		Month:         p.Month,
		Year:          p.Year,
		RentAmount:    p.RentAmount,
		ChargesAmount: p.ChargesAmount,
		TotalAmount:   p.RentAmount + p.ChargesAmount,
		GeneratedAt:   now,
		SentToTenant:  false,
	}
}

// SweepOverdue marks pending payments past their due date as overdue.
// Driven by the daily scheduled run.
func (s *Service) SweepOverdue(ctx context.Context) (int64, error) {
	n, err := s.store.MarkOverdueBefore(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Infof("Marked %d payments overdue", n)
	}
	return n, nil
}
