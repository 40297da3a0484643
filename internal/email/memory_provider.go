package email

import (
	"context"
	"sync"
)

// MemoryProvider складывает письма в outbox (тесты)
type MemoryProvider struct {
	mu     sync.Mutex
	outbox []Email
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{}
}

func (p *MemoryProvider) Send(ctx context.Context, email *Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outbox = append(p.outbox, *email)
	return nil
}

// Outbox возвращает копию отправленных писем
func (p *MemoryProvider) Outbox() []Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Email, len(p.outbox))
	copy(out, p.outbox)
	return out
}

func (p *MemoryProvider) Reset() {
	p.mu.Lock()
	p.outbox = nil
	p.mu.Unlock()
}

func (p *MemoryProvider) Close() error { return nil }
