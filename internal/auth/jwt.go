package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"website_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("signature has expired")
	ErrRefreshExpired = errors.New("refresh has expired")
)

// Claims - полезная нагрузка access-токена.
// OrigIat сохраняется при refresh и ограничивает окно обновления.
type Claims struct {
	UserID      uint   `json:"user_id"`
	Email       string `json:"email"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	OrigIat     int64  `json:"orig_iat"`
	jwt.RegisteredClaims
}

// Role возвращает роль из флагов в токене
func (c *Claims) Role() string {
	return RoleFor(c.IsStaff, c.IsSuperuser)
}

// Payload - представление claims для GraphQL (GenericScalar).
func (c *Claims) Payload() map[string]interface{} {
	var exp int64
	if c.ExpiresAt != nil {
		exp = c.ExpiresAt.Unix()
	}
	return map[string]interface{}{
		"email":   c.Email,
		"exp":     exp,
		"origIat": c.OrigIat,
	}
}

// TokenManager выпускает и проверяет access-токены (HS256).
type TokenManager struct {
	secret            []byte
	expiration        time.Duration
	refreshExpiration time.Duration
	now               func() time.Time
}

func NewTokenManager(secret string, expiration, refreshExpiration time.Duration) *TokenManager {
	return &TokenManager{
		secret:            []byte(secret),
		expiration:        expiration,
		refreshExpiration: refreshExpiration,
		now:               time.Now,
	}
}

// GenerateToken выпускает новый токен для пользователя
func (m *TokenManager) GenerateToken(user *models.User) (string, *Claims, error) {
	now := m.now()
	return m.sign(user.ID, user.Email, user.IsStaff, user.IsSuperuser, now.Unix(), now)
}

// ParseToken проверяет подпись и срок действия
func (m *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// RefreshToken выпускает новый токен с тем же orig_iat, пока не истекло окно refresh.
func (m *TokenManager) RefreshToken(tokenStr string) (string, *Claims, error) {
	claims, err := m.ParseToken(tokenStr)
	if err != nil {
		return "", nil, err
	}
	if claims.OrigIat == 0 {
		return "", nil, fmt.Errorf("%w: orig_iat field is required", ErrInvalidToken)
	}
	now := m.now()
	if now.Unix() > m.RefreshExpiresIn(claims) {
		return "", nil, ErrRefreshExpired
	}
	return m.sign(claims.UserID, claims.Email, claims.IsStaff, claims.IsSuperuser, claims.OrigIat, now)
}

// RefreshExpiresIn - unix-время, после которого refresh запрещен.
func (m *TokenManager) RefreshExpiresIn(c *Claims) int64 {
	return c.OrigIat + int64(m.refreshExpiration/time.Second)
}

func (m *TokenManager) sign(userID uint, email string, isStaff, isSuperuser bool, origIat int64, now time.Time) (string, *Claims, error) {
	claims := &Claims{
		UserID:      userID,
		Email:       email,
		IsStaff:     isStaff,
		IsSuperuser: isSuperuser,
		OrigIat:     origIat,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, claims, nil
}
