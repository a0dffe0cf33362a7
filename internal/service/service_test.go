package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gestimo/rent-service/internal/models"
	"github.com/sirupsen/logrus"
)

// memStore is an in-memory Store used by the service tests. Guarded by a
// mutex so tests can race concurrent validations against it.
type memStore struct {
	mu            sync.Mutex
	leases        map[string]*models.Lease
	configs       map[string]*models.LeasePaymentConfig // keyed by lease id
	payments      map[string]*models.Payment
	receipts      map[string]*models.Receipt // keyed by payment id
	reminders     map[string][]models.Reminder
	notifications []models.Notification
}

func newMemStore() *memStore {
	return &memStore{
		leases:    make(map[string]*models.Lease),
		configs:   make(map[string]*models.LeasePaymentConfig),
		payments:  make(map[string]*models.Payment),
		receipts:  make(map[string]*models.Receipt),
		reminders: make(map[string][]models.Reminder),
	}
}

func (m *memStore) LeaseByID(_ context.Context, id string) (*models.Lease, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leases[id], nil
}

func (m *memStore) ActiveLeases(_ context.Context) ([]models.Lease, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Lease
	for _, l := range m.leases {
		if l.IsActive {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) ActiveLeasesByOwner(ctx context.Context, ownerID string) ([]models.Lease, error) {
	all, _ := m.ActiveLeases(ctx)
	var out []models.Lease
	for _, l := range all {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) ConfigByLease(_ context.Context, leaseID string) (*models.LeasePaymentConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.configs[leaseID], nil
}

func (m *memStore) UpsertConfig(_ context.Context, cfg *models.LeasePaymentConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *cfg
	m.configs[cfg.LeaseID] = &copied
	return nil
}

func (m *memStore) PaymentByID(_ context.Context, id string) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (m *memStore) PaymentExists(_ context.Context, leaseID, month string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.LeaseID == leaseID && p.Month == month {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreatePayment(_ context.Context, p *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *p
	m.payments[p.ID] = &copied
	return nil
}

func (m *memStore) PaymentsByLease(_ context.Context, leaseID string) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Payment
	for _, p := range m.payments {
		if p.LeaseID == leaseID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out, nil
}

func (m *memStore) PaymentsByOwner(_ context.Context, ownerID string) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Payment
	for _, p := range m.payments {
		lease := m.leases[p.LeaseID]
		if lease != nil && lease.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out, nil
}

// SavePaid mirrors the repository's conditional transition: a new receipt
// is only recorded when the stored payment is not yet paid.
func (m *memStore) SavePaid(_ context.Context, p *models.Payment, receipt *models.Receipt) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if receipt != nil {
		if cur, ok := m.payments[p.ID]; ok && cur.Status == models.StatusPaid {
			return false, nil
		}
		copied := *receipt
		m.receipts[receipt.PaymentID] = &copied
	}
	copied := *p
	m.payments[p.ID] = &copied
	return true, nil
}

func (m *memStore) SaveUnpaid(_ context.Context, p *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *p
	m.payments[p.ID] = &copied
	return nil
}

func (m *memStore) MarkOverdueBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, p := range m.payments {
		if p.Status == models.StatusPending && p.DueDate.Before(cutoff) {
			p.Status = models.StatusOverdue
			n++
		}
	}
	return n, nil
}

func (m *memStore) ReceiptByPayment(_ context.Context, paymentID string) (*models.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.receipts[paymentID]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (m *memStore) MarkReceiptSent(_ context.Context, receiptID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.receipts {
		if r.ID == receiptID {
			r.SentToTenant = true
			r.SentAt = &at
		}
	}
	return nil
}

func (m *memStore) CreateReminder(_ context.Context, rm *models.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders[rm.PaymentID] = append(m.reminders[rm.PaymentID], *rm)
	return nil
}

func (m *memStore) RemindersByPayment(_ context.Context, paymentID string) ([]models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reminders[paymentID], nil
}

func (m *memStore) CreateNotification(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, *n)
	return nil
}

// memMailer records outgoing mail instead of sending it
type memMailer struct {
	mu          sync.Mutex
	receipts    int
	overdues    int
	reminders   []models.Reminder
	adjustments []models.BillingAdjustment
	failWith    error
}

func (m *memMailer) SendReceiptEmail(*models.Lease, *models.Payment, *models.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts++
	return m.failWith
}

func (m *memMailer) SendOverdueEmail(*models.Lease, *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overdues++
	return m.failWith
}

func (m *memMailer) SendReminderEmail(_ *models.Lease, rm *models.Reminder, _ *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders = append(m.reminders, *rm)
	return m.failWith
}

func (m *memMailer) SendAdjustmentEmail(_ *models.Lease, adj *models.BillingAdjustment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adjustments = append(m.adjustments, *adj)
	return m.failWith
}

func newTestService(t *testing.T, now time.Time) (*Service, *memStore, *memMailer) {
	t.Helper()
	store := newMemStore()
	mailer := &memMailer{}
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	svc := NewService(store, mailer, log)
	svc.now = func() time.Time { return now }
	return svc, store, mailer
}

func seedLease(t *testing.T, store *memStore, id, ownerID string) *models.Lease {
	t.Helper()
	lease := &models.Lease{
		ID:            id,
		OwnerID:       ownerID,
		TenantID:      "tenant-" + id,
		TenantName:    "Marie Dupont",
		TenantEmail:   "marie@example.fr",
		PropertyLabel: "12 rue des Lilas, Paris",
		IsActive:      true,
	}
	store.leases[id] = lease
	return lease
}

func seedConfig(t *testing.T, store *memStore, leaseID string, rent, charges float64, day int) *models.LeasePaymentConfig {
	t.Helper()
	cfg := &models.LeasePaymentConfig{
		ID:             "cfg-" + leaseID,
		LeaseID:        leaseID,
		MonthlyRent:    rent,
		MonthlyCharges: charges,
		PaymentDay:     day,
		PaymentMethod:  models.MethodVirement,
		IsActive:       true,
	}
	store.configs[leaseID] = cfg
	return cfg
}
