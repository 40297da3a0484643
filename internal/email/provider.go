package email

import (
	"context"
	"fmt"

	"website_backend/internal/config"
)

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет готовое сообщение
	Send(ctx context.Context, email *Email) error

	// Close освобождает ресурсы провайдера
	Close() error
}

// TemplateRenderer рендерит пары шаблонов <prefix>.html / <prefix>.txt
type TemplateRenderer interface {
	RenderHTML(prefix string, data TemplateData) (string, error)
	RenderText(prefix string, data TemplateData) (string, error)
}

// NewProvider создает провайдер по email.backend
func NewProvider(cfg config.EmailConfig) (Provider, error) {
	switch cfg.Backend {
	case "smtp":
		return NewSMTPProvider(SMTPConfigFrom(cfg))
	case "console", "":
		return NewConsoleProvider(), nil
	case "memory":
		return NewMemoryProvider(), nil
	default:
		return nil, fmt.Errorf("unknown email backend %q", cfg.Backend)
	}
}
