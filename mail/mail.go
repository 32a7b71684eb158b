// Package mail sends transactional email through SendGrid. The mailer is a
// best-effort collaborator: order placement succeeds whether or not the
// confirmation goes out.
package mail

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"go-shop/config"
	"go-shop/models"
)

// Mailer sends order confirmations. A Mailer built without an API key is
// disabled and silently drops every send.
type Mailer struct {
	client *sendgrid.Client
	sender string
	log    zerolog.Logger
}

// NewMailer creates a Mailer from configuration.
func NewMailer(cfg config.SendGridConfig, log zerolog.Logger) *Mailer {
	m := &Mailer{sender: cfg.Sender, log: log}
	if cfg.APIKey != "" {
		m.client = sendgrid.NewSendClient(cfg.APIKey)
	}
	return m
}

// SendOrderConfirmation emails the buyer a summary of a placed order.
func (m *Mailer) SendOrderConfirmation(toEmail string, order models.Order) error {
	if m.client == nil {
		return nil
	}

	subject := "Order confirmation"
	body := fmt.Sprintf(
		"Thank you for your order %s.\nItems: %d\nTotal: %.2f\nStatus: %s\n",
		order.ID.Hex(), len(order.Products), order.TotalPrice, order.Status,
	)

	message := sgmail.NewSingleEmail(
		sgmail.NewEmail("", m.sender),
		subject,
		sgmail.NewEmail("", toEmail),
		body,
		"",
	)

	response, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("mail: send order confirmation: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("mail: sendgrid responded %d", response.StatusCode)
	}

	m.log.Debug().Str("order", order.ID.Hex()).Msg("order confirmation sent")
	return nil
}
