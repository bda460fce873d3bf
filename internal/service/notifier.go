package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
)

type smtpNotifier struct {
	addr string
	from string
}

// NewSMTPNotifier - mail delivery over plain SMTP. addr is host:port, from is
// the envelope sender.
func NewSMTPNotifier(addr, from string) Notifier {
	return &smtpNotifier{
		addr: addr,
		from: from,
	}
}

func (that *smtpNotifier) Notify(_ context.Context, email, subject, body string) error {
	message := fmt.Sprintf("To: %s\r\nFrom: %s\r\nSubject: %s\r\n\r\n%s\r\n", email, that.from, subject, body)

	if err := smtp.SendMail(that.addr, nil, that.from, []string{email}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}

type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier - used when no SMTP host is configured; reminders only show
// up in the log.
func NewLogNotifier(logger *slog.Logger) Notifier {
	return &logNotifier{
		logger: logger.With("component", "notifier"),
	}
}

func (that *logNotifier) Notify(_ context.Context, email, subject, body string) error {
	that.logger.Info("reminder notification", "email", email, "subject", subject, "body", body)

	return nil
}
