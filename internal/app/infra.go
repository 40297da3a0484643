package app

import (
	"errors"
	"fmt"

	"website_backend/database"
	"website_backend/internal/auth"
	"website_backend/internal/config"
	"website_backend/internal/email"
	"website_backend/internal/logger"
	"website_backend/internal/repositories"
	"website_backend/internal/tasks"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Infra - внешние зависимости, общие для web и worker процессов
type Infra struct {
	Mailer     email.Provider
	Templates  *email.TemplateManager
	Tokens     *auth.TokenManager
	Signer     *auth.OneTimeTokenSigner
	Broker     tasks.Broker
	Registry   *tasks.Registry
	Worker     *tasks.Worker
	Dispatcher tasks.Dispatcher
	Redis      *redis.Client
}

func NewInfra(cfg *config.Config, db *gorm.DB) (*Infra, error) {
	templates, err := email.NewDefaultTemplateManager(cfg.Email.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("load email templates: %w", err)
	}
	mailer, err := email.NewProvider(cfg.Email)
	if err != nil {
		return nil, fmt.Errorf("init email provider: %w", err)
	}
	logger.Info("Email provider initialized", "backend", cfg.Email.Backend)

	infra := &Infra{
		Mailer:    mailer,
		Templates: templates,
		Tokens:    auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.RefreshExpiration),
		Signer:    auth.NewOneTimeTokenSigner(cfg.JWT.Secret, cfg.OneTimeToken.Salt, cfg.OneTimeToken.ExpireDays),
		Registry:  tasks.NewRegistry(),
	}

	(&tasks.UserTasks{
		Users:      repositories.NewUserRepository(),
		Signer:     infra.Signer,
		Mailer:     mailer,
		Templates:  templates,
		SiteDomain: cfg.Site.Domain,
		FromEmail:  cfg.Email.DefaultFromEmail,
		Language:   cfg.Email.Language,
	}).Register(infra.Registry)

	switch cfg.Queue.Broker {
	case "amqp":
		infra.Broker = tasks.NewAMQPBroker(cfg.Queue.URL, cfg.Queue.Name, cfg.Queue.Prefetch)
	case "memory", "":
		infra.Broker = tasks.NewMemoryBroker(0)
	default:
		return nil, fmt.Errorf("unknown queue broker %q", cfg.Queue.Broker)
	}
	infra.Worker = tasks.NewWorker(db, infra.Broker, infra.Registry)

	if cfg.Queue.Eager {
		infra.Dispatcher = infra.Worker
	} else {
		infra.Dispatcher = tasks.NewClient(db, infra.Broker)
	}
	logger.Info("Task queue initialized", "broker", cfg.Queue.Broker, "eager", cfg.Queue.Eager, "tasks", infra.Registry.Names())

	if cfg.RateLimit.Enabled {
		infra.Redis = database.NewRedisClient(cfg.Redis)
	}

	return infra, nil
}

func (i *Infra) Close() error {
	var errs []error
	if i.Broker != nil {
		errs = append(errs, i.Broker.Close())
	}
	if i.Mailer != nil {
		errs = append(errs, i.Mailer.Close())
	}
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	return errors.Join(errs...)
}
