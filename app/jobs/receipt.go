// Package jobs holds the background jobs dispatched onto the queue.
package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/pkg/mail"
	"github.com/shashiranjanraj/bazaar/pkg/queue"
)

// PaymentReceiptJob emails the buyer a receipt after a successful
// payment. It runs off the request path; a mail failure never affects
// the payment itself.
type PaymentReceiptJob struct {
	Email         string  `json:"email"`
	OrderID       uint    `json:"order_id"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transaction_id"`
}

func (j *PaymentReceiptJob) Handle() error {
	subject := fmt.Sprintf("Receipt for order #%d", j.OrderID)
	body := fmt.Sprintf(
		"<p>Thanks for your purchase.</p>"+
			"<p>Order <strong>#%d</strong> was paid in full: <strong>%.2f</strong></p>"+
			"<p>Transaction reference: %s</p>",
		j.OrderID, j.Amount, j.TransactionID,
	)
	return mail.To(j.Email).
		Subject(subject).
		Body(body).
		UseConfig(mail.SMTP{
			Host:     config.MailHost(),
			Port:     config.MailPort(),
			Username: config.MailUsername(),
			Password: config.MailPassword(),
			From:     config.MailFrom(),
			FromName: config.MailFromName(),
		}).
		Send()
}

// RegisterAll registers every job type with the queue so workers can
// decode dispatched payloads. Names must match the %T of the dispatched
// value.
func RegisterAll() {
	queue.Register("*jobs.PaymentReceiptJob", func() queue.Job { return &PaymentReceiptJob{} })
}
