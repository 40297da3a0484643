package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv накладывает переменные окружения поверх target.
// Незаданные переменные оставляют текущие значения полей.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
