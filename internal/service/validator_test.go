package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gestimo/rent-service/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPayment(t *testing.T, store *memStore, leaseID string, status models.PaymentStatus, due time.Time) *models.Payment {
	t.Helper()
	p := &models.Payment{
		ID:            "pay-" + leaseID + "-" + due.Format("2006-01"),
		LeaseID:       leaseID,
		Month:         due.Format("2006-01"),
		Year:          due.Year(),
		MonthName:     "Mars",
		RentAmount:    700,
		ChargesAmount: 100,
		AmountDue:     800,
		DueDate:       due,
		Status:        status,
		PaymentMethod: models.MethodVirement,
		Reference:     "PAY-" + due.Format("2006-01") + "-" + leaseID[len(leaseID)-6:],
		CreatedAt:     due.AddDate(0, 0, -5),
	}
	store.payments[p.ID] = p
	return p
}

func TestValidatePaidGeneratesReceipt(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, store, mailer := newTestService(t, now)
	seedLease(t, store, "lease-aaa111", "owner-1")
	due := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	p := seedPayment(t, store, "lease-aaa111", models.StatusPending, due)

	result, err := svc.ValidatePayment(context.Background(), "owner-1", p.ID, ValidateInput{Status: "paid"})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPaid, result.Payment.Status)
	require.NotNil(t, result.Payment.PaymentDate)
	assert.Equal(t, now, *result.Payment.PaymentDate)

	require.NotNil(t, result.Receipt)
	assert.Equal(t, 800.0, result.Receipt.TotalAmount)
	assert.Equal(t, "Quittance #2025-03-aaa111", result.Receipt.Reference)
	assert.Equal(t, result.Receipt.ID, *result.Payment.ReceiptID)

	assert.True(t, result.Notified)
	assert.Equal(t, 1, mailer.receipts)
	assert.True(t, result.Receipt.SentToTenant)

	require.NotNil(t, result.History)
	assert.Equal(t, models.StatusPaid, result.History.Payment.Status)
	require.NotNil(t, result.History.Receipt)
}

func TestValidatePaidTwiceDoesNotDuplicateReceipt(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	svc, store, _ := newTestService(t, now)
	seedLease(t, store, "lease-aaa111", "owner-1")
	p := seedPayment(t, store, "lease-aaa111", models.StatusPending, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))

	first, err := svc.ValidatePayment(context.Background(), "owner-1", p.ID, ValidateInput{Status: "paid"})
	require.NoError(t, err)
	require.NotNil(t, first.Receipt)

	second, err := svc.ValidatePayment(context.Background(), "owner-1", p.ID, ValidateInput{Status: "paid"})
	require.NoError(t, err)
	assert.Nil(t, second.Receipt, "no new receipt on revalidation")

	require.NotNil(t, second.History.Receipt)
	assert.Equal(t, first.Receipt.ID, second.History.Receipt.ID)
}

func TestValidateUsesProvidedDateAndMethod(t *testing.T) {
	now := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	svc, store, _ := newTestService(t, now)
	seedLease(t, store, "lease-aaa111", "owner-1")
	p := seedPayment(t, store, "lease-aaa111", models.StatusOverdue, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))

	paidAt := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	result, err := svc.ValidatePayment(context.Background(), "owner-1", p.ID, ValidateInput{
		Status:        "paid",
		PaymentDate:   &paidAt,
		PaymentMethod: models.MethodCheque,
		Notes:         "chèque n°1234",
	})
	require.NoError(t, err)
	assert.Equal(t, paidAt, *result.Payment.PaymentDate)
	assert.Equal(t, models.MethodCheque, result.Payment.PaymentMethod)
	assert.Equal(t, "chèque n°1234", result.Payment.Notes)
}

func TestValidateUnpaidRecomputesStatusFromDueDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	svc, store, mailer := newTestService(t, now)
	seedLease(t, store, "lease-aaa111", "owner-1")

	// Past due: reverting lands on overdue and triggers the overdue notice.
	pastDue := seedPayment(t, store, "lease-aaa111", models.StatusPaid, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))
	result, err := svc.ValidatePayment(context.Background(), "owner-1", pastDue.ID, ValidateInput{Status: "unpaid"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOverdue, result.Payment.Status)
	assert.Nil(t, result.Payment.PaymentDate)
	assert.True(t, result.Notified)
	assert.Equal(t, 1, mailer.overdues)

	// Not yet due: reverting lands on pending, no overdue notice.
	future := seedPayment(t, store, "lease-aaa111", models.StatusPaid, time.Date(2025, 4, 25, 0, 0, 0, 0, time.UTC))
	result, err = svc.ValidatePayment(context.Background(), "owner-1", future.ID, ValidateInput{Status: "unpaid"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, result.Payment.Status)
	assert.False(t, result.Notified)
	assert.Equal(t, 1, mailer.overdues)
}

func TestValidateUnknownPaymentFails(t *testing.T) {
	svc, _, _ := newTestService(t, time.Now())
	_, err := svc.ValidatePayment(context.Background(), "owner-1", "missing", ValidateInput{Status: "paid"})
	require.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestValidateForeignPaymentIsNotFound(t *testing.T) {
	svc, store, _ := newTestService(t, time.Now())
	seedLease(t, store, "lease-aaa111", "owner-1")
	p := seedPayment(t, store, "lease-aaa111", models.StatusPending, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))

	_, err := svc.ValidatePayment(context.Background(), "owner-2", p.ID, ValidateInput{Status: "paid"})
	require.ErrorIs(t, err, ErrPaymentNotFound, "other owners must not see the payment")
}

func TestValidateUnrecognizedStatusFails(t *testing.T) {
	svc, store, _ := newTestService(t, time.Now())
	seedLease(t, store, "lease-aaa111", "owner-1")
	p := seedPayment(t, store, "lease-aaa111", models.StatusPending, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))

	_, err := svc.ValidatePayment(context.Background(), "owner-1", p.ID, ValidateInput{Status: "settled"})
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestValidateMailerFailureDoesNotRollBack(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	svc, store, mailer := newTestService(t, now)
	mailer.failWith = assert.AnError
	seedLease(t, store, "lease-aaa111", "owner-1")
	p := seedPayment(t, store, "lease-aaa111", models.StatusPending, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))

	result, err := svc.ValidatePayment(context.Background(), "owner-1", p.ID, ValidateInput{Status: "paid"})
	require.NoError(t, err, "email failure must not fail the validation")
	assert.Equal(t, models.StatusPaid, result.Payment.Status)
	assert.True(t, result.Notified, "dispatch was attempted")
	assert.False(t, result.Receipt.SentToTenant)

	stored, err := store.PaymentByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, stored.Status)
}

// receiptCheckBarrier holds the first two receipt lookups until both have
// read, so two validations race past the receipt-exists check together.
type receiptCheckBarrier struct {
	*memStore
	mu      sync.Mutex
	checks  int
	release chan struct{}
}

func (b *receiptCheckBarrier) ReceiptByPayment(ctx context.Context, paymentID string) (*models.Receipt, error) {
	r, err := b.memStore.ReceiptByPayment(ctx, paymentID)
	b.mu.Lock()
	b.checks++
	n := b.checks
	b.mu.Unlock()
	if n <= 2 {
		if n == 2 {
			close(b.release)
		}
		<-b.release
	}
	return r, err
}

func TestConcurrentValidationsIssueOneReceipt(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	store := newMemStore()
	seedLease(t, store, "lease-aaa111", "owner-1")
	p := seedPayment(t, store, "lease-aaa111", models.StatusPending, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))

	barrier := &receiptCheckBarrier{memStore: store, release: make(chan struct{})}
	mailer := &memMailer{}
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	svc := NewService(barrier, mailer, log)
	svc.now = func() time.Time { return now }

	results := make([]*ValidateResult, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.ValidatePayment(context.Background(), "owner-1", p.ID, ValidateInput{Status: "paid"})
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Len(t, store.receipts, 1, "exactly one receipt despite the race")
	assert.Equal(t, 1, mailer.receipts, "only the winning validation emails the receipt")

	generated := 0
	for _, r := range results {
		assert.Equal(t, models.StatusPaid, r.Payment.Status)
		if r.Receipt != nil {
			generated++
		}
	}
	assert.Equal(t, 1, generated, "only the winning validation reports a new receipt")
	require.NotNil(t, results[0].History.Receipt)
	require.NotNil(t, results[1].History.Receipt)
	assert.Equal(t, results[0].History.Receipt.ID, results[1].History.Receipt.ID)
}

func TestSweepOverdue(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	svc, store, _ := newTestService(t, now)
	seedLease(t, store, "lease-aaa111", "owner-1")
	seedPayment(t, store, "lease-aaa111", models.StatusPending, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))
	seedPayment(t, store, "lease-aaa111", models.StatusPending, time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC))

	n, err := svc.SweepOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
