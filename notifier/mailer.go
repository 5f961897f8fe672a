package notifier

import (
	"fmt"
	"html"
	"time"

	"adminconsole/export"
	"adminconsole/models"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender is satisfied by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer tells the finance mailbox about approvals and settled loans.
// A nil *Mailer is valid and sends nothing.
type Mailer struct {
	sender Sender
	from   string
	to     string
	log    *zap.Logger
}

func New(sender Sender, from, to string, log *zap.Logger) *Mailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mailer{sender: sender, from: from, to: to, log: log}
}

// NewSMTP dials through gomail.
func NewSMTP(host string, port int, username, password, from, to string, log *zap.Logger) *Mailer {
	return New(gomail.NewDialer(host, port, username, password), from, to, log)
}

func (m *Mailer) BudgetApproved(b models.BudgetRequest) error {
	subject := fmt.Sprintf("Budget request %s approved", b.Id)
	body := fmt.Sprintf(`<p>The budget request of <b>%s</b> (%s) for <b>%s</b> was approved by %s.</p><p>Voucher: %s</p>`,
		html.EscapeString(b.Requestee),
		html.EscapeString(b.Department),
		export.Money(b.BudgetAmount),
		html.EscapeString(b.ApprovedBy),
		html.EscapeString(b.Voucher))
	return m.send(subject, body)
}

func (m *Mailer) LoanPaid(l models.ConsignmentLoan) error {
	subject := fmt.Sprintf("Consignment loan %s marked as paid", l.Id)
	body := fmt.Sprintf(`<p>The consignment loan of <b>%s</b> was marked as paid.</p><p>Total payment: %s over %d months.</p>`,
		html.EscapeString(l.Borrower),
		export.Money(l.TotalPayment),
		l.PaymentTerms)
	return m.send(subject, body)
}

func (m *Mailer) send(subject, body string) error {
	if m == nil || m.sender == nil {
		return nil
	}

	msg := gomail.NewMessage(gomail.SetEncoding(gomail.Unencoded))
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	t := time.Now()
	if err := m.sender.DialAndSend(msg); err != nil {
		m.log.Error("sending notification", zap.String("subject", subject), zap.Error(err))
		return err
	}

	m.log.Info("notification sent", zap.String("subject", subject), zap.Duration("took", time.Since(t)))
	return nil
}
