package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gestimo/rent-service/internal/models"
)

// ReminderInput describes an escalation request
type ReminderInput struct {
	Type          models.ReminderType
	CustomMessage string
}

// ReminderResult is the outcome of a reminder request
type ReminderResult struct {
	Reminder  *models.Reminder `json:"reminder"`
	EmailSent bool             `json:"email_sent"`
	Notified  bool             `json:"notified"`
}

// French reminder templates, one per escalation level, parameterized by
// month name, year, amount and due date.
const (
	firstReminderTemplate = "Bonjour,\n\n" +
		"Sauf erreur de notre part, nous n'avons pas encore reçu le règlement de votre loyer " +
		"de %s %d d'un montant de %.2f €, exigible le %s.\n" +
		"Merci de bien vouloir régulariser votre situation dans les meilleurs délais.\n\n" +
		"Cordialement"
	secondReminderTemplate = "Bonjour,\n\n" +
		"Malgré notre précédente relance, votre loyer de %s %d d'un montant de %.2f €, " +
		"exigible le %s, demeure impayé à ce jour.\n" +
		"Nous vous demandons de procéder au règlement sous 8 jours.\n\n" +
		"Cordialement"
	finalReminderTemplate = "Bonjour,\n\n" +
		"MISE EN DEMEURE : à défaut de règlement de votre loyer de %s %d d'un montant de %.2f € " +
		"(échéance du %s) sous 48 heures, nous nous verrons contraints d'engager une procédure " +
		"de recouvrement.\n\n" +
		"Cordialement"
)

// ReminderMessage renders the escalation message for a payment. An
// unknown type falls back to the first-level template.
func ReminderMessage(t models.ReminderType, monthName string, year int, amount float64, due time.Time) string {
	template := firstReminderTemplate
	switch t {
	case models.ReminderSecond:
		template = secondReminderTemplate
	case models.ReminderFinal:
		template = finalReminderTemplate
	}
	return fmt.Sprintf(template, monthName, year, amount, due.Format("02/01/2006"))
}

// SendReminder appends an escalation reminder to a non-paid payment and
// dispatches the email and in-app notification best-effort. Repeating a
// reminder of the same type is allowed: the trail is append-only.
func (s *Service) SendReminder(ctx context.Context, ownerID, paymentID string, in ReminderInput) (*ReminderResult, error) {
	p, err := s.ownedPayment(ctx, ownerID, paymentID)
	if err != nil {
		return nil, err
	}
	if p.Status == models.StatusPaid {
		return nil, fmt.Errorf("%w: cannot remind a paid payment", ErrInvalidState)
	}

	lease, err := s.store.LeaseByID(ctx, p.LeaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, fmt.Errorf("%w: %s", ErrLeaseNotFound, p.LeaseID)
	}

	message := in.CustomMessage
	if message == "" {
		message = ReminderMessage(in.Type, p.MonthName, p.Year, p.AmountDue, p.DueDate)
	}

	rm := &models.Reminder{
		ID:           newID(),
		PaymentID:    p.ID,
		LeaseID:      p.LeaseID,
		TenantID:     lease.TenantID,
		ReminderType: in.Type,
		Message:      message,
		Status:       models.ReminderSent,
		SentAt:       s.now(),
	}
	if err := s.store.CreateReminder(ctx, rm); err != nil {
		return nil, err
	}
	s.log.Infof("Reminder %s (%s) recorded for payment %s", rm.ID, rm.ReminderType, p.Reference)

	// Delivery failures are logged only; the reminder stays recorded as sent.
	emailSent := true
	if err := s.mailer.SendReminderEmail(lease, rm, p); err != nil {
		s.log.Errorf("Failed to send %s reminder for %s to %s: %v", rm.ReminderType, p.Reference, lease.TenantEmail, err)
		emailSent = false
	}
	notified := s.notifyInApp(ctx, lease.TenantID, models.EventReminderSent, message)

	return &ReminderResult{Reminder: rm, EmailSent: emailSent, Notified: notified}, nil
}
