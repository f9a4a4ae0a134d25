package service

import "context"

// Attachment is a file sent with an email.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Email is a plain-text message.
type Email struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Mailer delivers transactional email.
type Mailer interface {
	Send(ctx context.Context, email *Email) error
}
