package email

import (
	"context"

	"website_backend/internal/logger"
)

// ConsoleProvider пишет письма в лог вместо отправки (локальная разработка)
type ConsoleProvider struct{}

func NewConsoleProvider() *ConsoleProvider {
	return &ConsoleProvider{}
}

func (p *ConsoleProvider) Send(ctx context.Context, email *Email) error {
	logger.CtxInfo(ctx, "email (console backend)",
		"from", email.From,
		"to", email.To,
		"subject", email.Subject,
		"body", email.Body,
		"html_body", email.HTMLBody,
	)
	return nil
}

func (p *ConsoleProvider) Close() error { return nil }
