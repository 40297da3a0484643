package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOneTimeTokenDoesNotExist - ключ не восстанавливается: подпись неверна,
// данные изменены, соль другая или срок истек.
var ErrOneTimeTokenDoesNotExist = errors.New("one-time token does not exist")

type oneTimeClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// OneTimeTokenSigner кодирует id пользователя в подписанную строку с солью.
// Токен не хранится в БД; срок жизни проверяется при чтении по времени выпуска.
type OneTimeTokenSigner struct {
	key    []byte
	salt   string
	maxAge time.Duration
	now    func() time.Time
}

func NewOneTimeTokenSigner(secret, salt string, expireDays int) *OneTimeTokenSigner {
	sum := sha256.Sum256([]byte(salt + "signer" + secret))
	return &OneTimeTokenSigner{
		key:    sum[:],
		salt:   salt,
		maxAge: time.Duration(expireDays) * 24 * time.Hour,
		now:    time.Now,
	}
}

// Key возвращает подписанный ключ для пользователя
func (s *OneTimeTokenSigner) Key(userID uint) (string, error) {
	claims := oneTimeClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience: jwt.ClaimStrings{s.salt},
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}
	key, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign one-time token: %w", err)
	}
	return key, nil
}

// UserID восстанавливает id пользователя из ключа
func (s *OneTimeTokenSigner) UserID(key string) (uint, error) {
	claims := &oneTimeClaims{}
	_, err := jwt.ParseWithClaims(key, claims, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(s.salt),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOneTimeTokenDoesNotExist, err)
	}
	if claims.IssuedAt == nil || claims.UserID == 0 {
		return 0, fmt.Errorf("%w: incomplete payload", ErrOneTimeTokenDoesNotExist)
	}
	if age := s.now().Sub(claims.IssuedAt.Time); age > s.maxAge {
		return 0, fmt.Errorf("%w: signature age %s > %s", ErrOneTimeTokenDoesNotExist, age.Round(time.Second), s.maxAge)
	}
	return claims.UserID, nil
}
