package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"website_backend/internal/auth"
	"website_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// CreateUser создает активного пользователя email{n}@example.com / username{n}
// с паролем password{n}
func CreateUser(t *testing.T, db *gorm.DB, n int, staff bool) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(Password(n))
	require.NoError(t, err)

	user := &models.User{
		Email:    fmt.Sprintf("email%d@example.com", n),
		Username: fmt.Sprintf("username%d", n),
		Password: hash,
		IsStaff:  staff,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error, "не удалось создать пользователя %s", user.Email)
	return user
}

func Password(n int) string {
	return fmt.Sprintf("password%d", n)
}

// Login входит через /login/ и возвращает access-токен
func Login(t *testing.T, ts *TestServer, emailAddr, password string) string {
	t.Helper()

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/login/", "", map[string]interface{}{
		"email":    emailAddr,
		"password": password,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+bodyStr)

	var loginResponse struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &loginResponse))
	require.NotEmpty(t, loginResponse.Token, "Токен не должен быть пустым")
	return loginResponse.Token
}

// CreateAndLoginUser создает пользователя и логинит его
func CreateAndLoginUser(t *testing.T, ts *TestServer, n int, staff bool) (string, *models.User) {
	t.Helper()
	user := CreateUser(t, ts.DB, n, staff)
	return Login(t, ts, user.Email, Password(n)), user
}
