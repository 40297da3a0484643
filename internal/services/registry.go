package services

import (
	"website_backend/internal/auth"
	"website_backend/internal/repositories"
	"website_backend/internal/tasks"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	UserService UserService
	AuthService AuthService
	LinkService LinkService
	TaskService TaskService

	Tokens *auth.TokenManager
}

// NewServiceContainer собирает сервисы поверх репозиториев и очереди задач
func NewServiceContainer(tokens *auth.TokenManager, signer *auth.OneTimeTokenSigner, dispatcher tasks.Dispatcher) *ServiceContainer {
	userRepo := repositories.NewUserRepository()

	return &ServiceContainer{
		UserService: NewUserService(userRepo),
		AuthService: NewAuthService(userRepo, tokens, signer, dispatcher),
		LinkService: NewLinkService(repositories.NewLinkRepository()),
		TaskService: NewTaskService(dispatcher, repositories.NewTaskResultRepository()),
		Tokens:      tokens,
	}
}
