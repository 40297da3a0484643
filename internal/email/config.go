package email

import (
	"errors"
	"time"

	"website_backend/internal/config"
)

const defaultSMTPTimeout = 30 * time.Second

// SMTPConfig содержит конфигурацию SMTP сервера
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// UseTLS - неявный TLS (обычно порт 465); иначе STARTTLS по возможности
	UseTLS bool
	// Timeout ограничивает соединение и отправку одного письма
	Timeout time.Duration
}

// SMTPConfigFrom собирает SMTPConfig из секции email
func SMTPConfigFrom(cfg config.EmailConfig) *SMTPConfig {
	return &SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		UseTLS:   cfg.UseTLS,
		Timeout:  defaultSMTPTimeout,
	}
}

func (c *SMTPConfig) Validate() error {
	if c.Host == "" {
		return errors.New("smtp host is required")
	}
	if c.Port <= 0 {
		return errors.New("smtp port must be positive")
	}
	return nil
}
