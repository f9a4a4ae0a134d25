package mail

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"lumera/config"
	"lumera/internal/domain/service"
	"lumera/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"
)

type recordingSender struct {
	messages []*gomail.Msg
	err      error
}

func (s *recordingSender) DialAndSendWithContext(_ context.Context, messages ...*gomail.Msg) error {
	s.messages = append(s.messages, messages...)

	return s.err
}

func newTestMailer(sender sender) *smtpMailer {
	return &smtpMailer{
		client:   sender,
		from:     "orders@lumeracandles.in",
		fromName: "Lumera Candles",
		logger:   slog.New(slog.DiscardHandler),
	}
}

func TestSMTPMailer_Send(t *testing.T) {
	sender := &recordingSender{}
	mailer := newTestMailer(sender)

	err := mailer.Send(context.Background(), &service.Email{
		To:      "asha@example.com",
		Subject: "Order Confirmed - LUM2505ABC123",
		Body:    "Dear Asha,",
		Attachments: []service.Attachment{
			{Filename: "order-qr.png", ContentType: "image/png", Data: []byte{0x89, 0x50}},
		},
	})
	require.NoError(t, err)
	require.Len(t, sender.messages, 1)

	var raw bytes.Buffer
	_, err = sender.messages[0].WriteTo(&raw)
	require.NoError(t, err)

	out := raw.String()
	assert.Contains(t, out, `From: "Lumera Candles" <orders@lumeracandles.in>`)
	assert.Contains(t, out, "To: <asha@example.com>")
	assert.Contains(t, out, "Subject: Order Confirmed - LUM2505ABC123")
	assert.Contains(t, out, "order-qr.png")
}

func TestSMTPMailer_SendFailure(t *testing.T) {
	mailer := newTestMailer(&recordingSender{err: errors.New("connection refused")})

	err := mailer.Send(context.Background(), &service.Email{To: "asha@example.com", Subject: "s", Body: "b"})
	assert.ErrorContains(t, err, "connection refused")
}

func TestSMTPMailer_InvalidRecipient(t *testing.T) {
	sender := &recordingSender{}
	mailer := newTestMailer(sender)

	assert.Error(t, mailer.Send(context.Background(), &service.Email{Subject: "s"}))
	assert.Error(t, mailer.Send(context.Background(), &service.Email{To: "not an address", Subject: "s"}))
	assert.Empty(t, sender.messages)
}

func TestNewSMTPMailer_RequiresConfig(t *testing.T) {
	_, err := NewSMTPMailer(&config.Config{}, slog.New(slog.DiscardHandler))
	assert.ErrorContains(t, err, "smtp host and user are required")

	mailer, err := NewSMTPMailer(&config.Config{SMTP: &config.SMTPConfig{
		Host: "smtp.example.com", Port: 587, User: "orders@lumeracandles.in", Password: "pw",
	}}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	assert.Equal(t, "Lumera Candles", mailer.(*smtpMailer).fromName)
}
