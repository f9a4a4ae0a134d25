// Package mail sends transactional email over SMTP.
package mail

import (
	"bytes"
	"context"
	"log/slog"

	"lumera/config"
	"lumera/internal/domain/service"
	"lumera/internal/errors"

	gomail "github.com/wneessen/go-mail"
)

const (
	implicitTLSPort = 465
	defaultFromName = "Lumera Candles"
)

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

type smtpMailer struct {
	client   sender
	from     string
	fromName string
	logger   *slog.Logger
}

// NewSMTPMailer creates a Mailer. Port 465 uses implicit TLS; other ports
// upgrade with STARTTLS when the server offers it.
func NewSMTPMailer(cfg *config.Config, logger *slog.Logger) (service.Mailer, error) {
	smtp := cfg.SMTP
	if smtp == nil || smtp.Host == "" || smtp.User == "" {
		return nil, errors.New("smtp host and user are required")
	}

	opts := []gomail.Option{
		gomail.WithPort(smtp.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(smtp.User),
		gomail.WithPassword(smtp.Password),
	}
	if smtp.Port == implicitTLSPort {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(smtp.Host, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create smtp client")
	}

	fromName := smtp.FromName
	if fromName == "" {
		fromName = defaultFromName
	}

	return &smtpMailer{
		client:   client,
		from:     smtp.User,
		fromName: fromName,
		logger:   logger,
	}, nil
}

func (m *smtpMailer) Send(ctx context.Context, email *service.Email) error {
	msg, err := m.buildMessage(email)
	if err != nil {
		return err
	}

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		m.logger.Error("Failed to send email",
			slog.String("to", email.To),
			slog.String("subject", email.Subject),
			slog.Any("error", err),
		)

		return errors.Wrap(err, "failed to send email")
	}

	m.logger.Info("Email sent",
		slog.String("to", email.To),
		slog.String("subject", email.Subject),
	)

	return nil
}

func (m *smtpMailer) buildMessage(email *service.Email) (*gomail.Msg, error) {
	if email.To == "" {
		return nil, errors.New("email recipient is required")
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.from); err != nil {
		return nil, errors.Wrap(err, "invalid sender address")
	}
	if err := msg.To(email.To); err != nil {
		return nil, errors.Wrapf(err, "invalid recipient address %q", email.To)
	}

	msg.Subject(email.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, email.Body)

	for _, attachment := range email.Attachments {
		err := msg.AttachReader(attachment.Filename, bytes.NewReader(attachment.Data),
			gomail.WithFileContentType(gomail.ContentType(attachment.ContentType)))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to attach %s", attachment.Filename)
		}
	}

	return msg, nil
}
