package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"website_backend/internal/auth"
	"website_backend/internal/models"
	"website_backend/internal/repositories"
	"website_backend/internal/services/dto"
	"website_backend/internal/tasks"
	"website_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	// Login - REST /login/: access-токен и профиль, обновляет last_login
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.TokenResponse, error)

	// ObtainToken, VerifyToken, RefreshToken - JWT-мутации GraphQL
	ObtainToken(db *gorm.DB, email, password string) (*dto.JWTResponse, error)
	VerifyToken(token string) (map[string]interface{}, error)
	RefreshToken(token string) (*dto.JWTResponse, error)

	// Authenticate возвращает claims активного пользователя по access-токену
	Authenticate(db *gorm.DB, token string) (*auth.Claims, error)

	RequestPasswordReset(ctx context.Context, email string) (string, error)
	LoginWithOneTimeToken(db *gorm.DB, key string) (*dto.TokenResponse, error)
}

type authService struct {
	userRepo   repositories.UserRepository
	tokens     *auth.TokenManager
	signer     *auth.OneTimeTokenSigner
	dispatcher tasks.Dispatcher
	now        func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenManager,
	signer *auth.OneTimeTokenSigner,
	dispatcher tasks.Dispatcher,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokens:     tokens,
		signer:     signer,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// authenticate проверяет пару email/пароль; неактивный пользователь не входит
func (s *authService) authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.ErrCredentialsMissing
	}

	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.ErrDatabase(err)
	}
	if !auth.CheckPasswordHash(password, user.Password) || !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) issue(db *gorm.DB, user *models.User) (*dto.TokenResponse, error) {
	token, _, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdateLastLogin(db, user.ID, s.now()); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	return &dto.TokenResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.authenticate(db, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.issue(db, user)
}

func (s *authService) ObtainToken(db *gorm.DB, email, password string) (*dto.JWTResponse, error) {
	user, err := s.authenticate(db, email, password)
	if err != nil {
		return nil, err
	}
	token, claims, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.JWTResponse{
		Token:            token,
		Payload:          claims.Payload(),
		RefreshExpiresIn: s.tokens.RefreshExpiresIn(claims),
	}, nil
}

func (s *authService) VerifyToken(token string) (map[string]interface{}, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	return claims.Payload(), nil
}

func (s *authService) RefreshToken(token string) (*dto.JWTResponse, error) {
	newToken, claims, err := s.tokens.RefreshToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrRefreshExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, s.tokenError(err)
	}
	return &dto.JWTResponse{
		Token:            newToken,
		Payload:          claims.Payload(),
		RefreshExpiresIn: s.tokens.RefreshExpiresIn(claims),
	}, nil
}

func (s *authService) Authenticate(db *gorm.DB, token string) (*auth.Claims, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(db, claims.UserID)
	if err != nil || !user.IsActive {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) parse(token string) (*auth.Claims, error) {
	claims, err := s.tokens.ParseToken(strings.TrimSpace(token))
	if err != nil {
		return nil, s.tokenError(err)
	}
	return claims, nil
}

func (s *authService) tokenError(err error) error {
	if errors.Is(err, auth.ErrExpiredToken) {
		return apperrors.ErrInvalidToken.WithDetails(map[string][]string{"token": {"Signature has expired"}})
	}
	return apperrors.ErrInvalidToken
}

// RequestPasswordReset ставит send_password_email в очередь. Существование
// адреса наружу не раскрывается: письмо уходит в любом случае.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	id, err := s.dispatcher.Enqueue(ctx, tasks.TaskSendPasswordEmail, tasks.SendPasswordEmailArgs{
		Email: models.NormalizeEmail(email),
	})
	if err != nil {
		return "", apperrors.ErrQueue(err)
	}
	return id, nil
}

func (s *authService) LoginWithOneTimeToken(db *gorm.DB, key string) (*dto.TokenResponse, error) {
	userID, err := s.signer.UserID(key)
	if err != nil {
		return nil, apperrors.ErrOneTimeTokenDoesNotExist
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrOneTimeTokenDoesNotExist
		}
		return nil, apperrors.ErrDatabase(err)
	}
	// ключ, выданный до деактивации, не должен впускать пользователя
	if !user.IsActive {
		return nil, apperrors.ErrOneTimeTokenDoesNotExist
	}
	return s.issue(db, user)
}
