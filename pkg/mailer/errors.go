package mailer

import "errors"

var (
	ErrMissingAPIKey    = errors.New("mailer: resend api key is required")
	ErrMissingRecipient = errors.New("mailer: recipient is required")
	ErrRenderFailed     = errors.New("mailer: failed to render email body")
	ErrSendFailed       = errors.New("mailer: failed to send email")
)
