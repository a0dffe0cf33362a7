package email

import (
	"fmt"
	"net/smtp"

	"github.com/gestimo/rent-service/internal/config"
	"github.com/gestimo/rent-service/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendReceiptEmail sends the rent receipt to the tenant after a payment
// was validated as paid
func (s *Sender) SendReceiptEmail(lease *models.Lease, payment *models.Payment, receipt *models.Receipt) error {
	subject := fmt.Sprintf("Quittance de loyer - %s %d", payment.MonthName, payment.Year)
	body := fmt.Sprintf(
		"Bonjour %s,\n\n"+
			"Nous accusons réception de votre paiement de %.2f € pour le logement %s.\n"+
			"Période : %s %d\n"+
			"Loyer : %.2f €\n"+
			"Charges : %.2f €\n"+
			"Référence : %s\n\n"+
			"Votre quittance de loyer est disponible dans votre espace locataire.\n\n"+
			"Cordialement,\nGestimo\n",
		lease.TenantName, receipt.TotalAmount, lease.PropertyLabel,
		payment.MonthName, payment.Year,
		receipt.RentAmount, receipt.ChargesAmount, receipt.Reference,
	)
	return s.send(lease.TenantEmail, subject, body)
}

// SendOverdueEmail notifies the tenant that a payment is past due
func (s *Sender) SendOverdueEmail(lease *models.Lease, payment *models.Payment) error {
	subject := fmt.Sprintf("Loyer en retard - %s %d", payment.MonthName, payment.Year)
	body := fmt.Sprintf(
		"Bonjour %s,\n\n"+
			"Votre loyer de %s %d d'un montant de %.2f € était exigible le %s et demeure impayé.\n"+
			"Merci de régulariser votre situation dans les meilleurs délais.\n\n"+
			"Cordialement,\nGestimo\n",
		lease.TenantName, payment.MonthName, payment.Year,
		payment.AmountDue, payment.DueDate.Format("02/01/2006"),
	)
	return s.send(lease.TenantEmail, subject, body)
}

// SendReminderEmail delivers an escalation reminder. The message body was
// built by the reminder engine; only the subject depends on the level.
func (s *Sender) SendReminderEmail(lease *models.Lease, reminder *models.Reminder, payment *models.Payment) error {
	var subject string
	switch reminder.ReminderType {
	case models.ReminderSecond:
		subject = fmt.Sprintf("Deuxième relance - loyer %s %d", payment.MonthName, payment.Year)
	case models.ReminderFinal:
		subject = fmt.Sprintf("Mise en demeure - loyer %s %d", payment.MonthName, payment.Year)
	default:
		subject = fmt.Sprintf("Relance - loyer %s %d", payment.MonthName, payment.Year)
	}
	return s.send(lease.TenantEmail, subject, reminder.Message)
}

// SendAdjustmentEmail notifies the tenant of a rent revision or charges
// adjustment
func (s *Sender) SendAdjustmentEmail(lease *models.Lease, adj *models.BillingAdjustment) error {
	subject := "Révision de votre échéance mensuelle"
	var detail string
	if adj.Kind == models.EventRentRevised {
		detail = fmt.Sprintf("Suite à la révision annuelle (indice de référence %.2f), votre loyer évolue de %.2f € à %.2f €.",
			adj.ReferenceIndex, adj.PreviousAmount, adj.NewAmount)
	} else {
		detail = fmt.Sprintf("Suite à la régularisation des charges, vos provisions mensuelles évoluent de %.2f € à %.2f €.",
			adj.PreviousAmount, adj.NewAmount)
	}
	body := fmt.Sprintf(
		"Bonjour %s,\n\n"+
			"%s\n"+
			"Cette évolution prend effet le %s pour le logement %s.\n\n"+
			"Cordialement,\nGestimo\n",
		lease.TenantName, detail,
		adj.EffectiveAt.Format("02/01/2006"), lease.PropertyLabel,
	)
	return s.send(lease.TenantEmail, subject, body)
}

func (s *Sender) send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, subject)
	return nil
}
