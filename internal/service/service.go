package service

import (
	"context"
	"time"

	"github.com/gestimo/rent-service/internal/models"
	"github.com/sirupsen/logrus"
)

// Store is the persistence surface the payment lifecycle needs. The
// postgres repository satisfies it; tests use an in-memory fake.
type Store interface {
	LeaseByID(ctx context.Context, id string) (*models.Lease, error)
	ActiveLeases(ctx context.Context) ([]models.Lease, error)
	ActiveLeasesByOwner(ctx context.Context, ownerID string) ([]models.Lease, error)

	ConfigByLease(ctx context.Context, leaseID string) (*models.LeasePaymentConfig, error)
	UpsertConfig(ctx context.Context, cfg *models.LeasePaymentConfig) error

	PaymentByID(ctx context.Context, id string) (*models.Payment, error)
	PaymentExists(ctx context.Context, leaseID, month string) (bool, error)
	CreatePayment(ctx context.Context, p *models.Payment) error
	PaymentsByLease(ctx context.Context, leaseID string) ([]models.Payment, error)
	PaymentsByOwner(ctx context.Context, ownerID string) ([]models.Payment, error)
	SavePaid(ctx context.Context, p *models.Payment, receipt *models.Receipt) (bool, error)
	SaveUnpaid(ctx context.Context, p *models.Payment) error
	MarkOverdueBefore(ctx context.Context, cutoff time.Time) (int64, error)

	ReceiptByPayment(ctx context.Context, paymentID string) (*models.Receipt, error)
	MarkReceiptSent(ctx context.Context, receiptID string, at time.Time) error

	CreateReminder(ctx context.Context, rm *models.Reminder) error
	RemindersByPayment(ctx context.Context, paymentID string) ([]models.Reminder, error)

	CreateNotification(ctx context.Context, n *models.Notification) error
}

// Mailer delivers transactional email. Dispatch is best-effort: callers
// log failures but never roll back the state change that triggered them.
type Mailer interface {
	SendReceiptEmail(lease *models.Lease, payment *models.Payment, receipt *models.Receipt) error
	SendOverdueEmail(lease *models.Lease, payment *models.Payment) error
	SendReminderEmail(lease *models.Lease, reminder *models.Reminder, payment *models.Payment) error
	SendAdjustmentEmail(lease *models.Lease, adj *models.BillingAdjustment) error
}

// Service handles the payment lifecycle business logic
type Service struct {
	store  Store
	mailer Mailer
	log    *logrus.Logger
	now    func() time.Time
}

// NewService initializes a new service
func NewService(store Store, mailer Mailer, log *logrus.Logger) *Service {
	return &Service{store: store, mailer: mailer, log: log, now: time.Now}
}

// notifyInApp records an in-app notification, best-effort
func (s *Service) notifyInApp(ctx context.Context, userID string, kind models.EventKind, message string) bool {
	n := &models.Notification{
		ID:        newID(),
		UserID:    userID,
		Kind:      kind,
		Message:   message,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		s.log.Errorf("Failed to record %s notification for user %s: %v", kind, userID, err)
		return false
	}
	return true
}
