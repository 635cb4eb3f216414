// Package notification delivers verification emails.
package notification

import (
	"context"
	"fmt"

	"portfolio/config"
	"portfolio/utils"
)

// Sender delivers one HTML email. Implementations return an error when the
// message was not handed off.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// NewSenderFromConfig returns an SMTP sender, or a LogSender when no SMTP host
// is configured.
func NewSenderFromConfig(cfg config.Config) (Sender, error) {
	if cfg.SMTPHost == "" {
		utils.GetLogger().Warn("SMTP_HOST not set, verification emails will only be logged")
		return NewLogSender(utils.GetLogger()), nil
	}
	if cfg.SMTPFrom == "" {
		return nil, fmt.Errorf("SMTP_FROM is required when SMTP_HOST is set")
	}
	return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom, cfg.SMTPSendTimeout), nil
}
