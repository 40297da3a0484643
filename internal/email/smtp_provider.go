package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// SMTPProvider отправляет письма через gomail
type SMTPProvider struct {
	dialer  *gomail.Dialer
	timeout time.Duration
}

func NewSMTPProvider(cfg *SMTPConfig) (*SMTPProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid smtp config: %w", err)
	}

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.UseTLS
	d.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultSMTPTimeout
	}
	return &SMTPProvider{dialer: d, timeout: timeout}, nil
}

func (p *SMTPProvider) Send(ctx context.Context, email *Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := buildMessage(email)
	if err != nil {
		return err
	}

	// gomail не принимает ctx, поэтому ждем отправку не дольше таймаута
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- p.dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send: %w", ctx.Err())
	}
}

func (p *SMTPProvider) Close() error { return nil }

// buildMessage - txt + html-альтернатива либо одно html-тело
func buildMessage(email *Email) (*gomail.Message, error) {
	if len(email.To) == 0 {
		return nil, errors.New("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", email.From)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.IsHTMLOnly() {
		m.SetBody("text/html", email.HTMLBody)
		return m, nil
	}

	m.SetBody("text/plain", email.Body)
	if email.HTMLBody != "" {
		m.AddAlternative("text/html", email.HTMLBody)
	}
	return m, nil
}
