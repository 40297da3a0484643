package integration_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"testing"

	"website_backend/internal/email"
	"website_backend/internal/models"
	"website_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var resetLinkRe = regexp.MustCompile(`http://testserver/password/\?token=([^\s"<&]+)`)

func TestPasswordReset_KnownEmail(t *testing.T) {
	ts := helpers.NewTestServer(t)
	helpers.CreateUser(t, ts.DB, 1, false)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/users/profiles/reset_password/", "", map[string]string{"email": "email1@example.com"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	outbox := ts.Mailer.Outbox()
	require.Len(t, outbox, 1)
	msg := outbox[0]
	assert.Equal(t, []string{"email1@example.com"}, msg.To)
	assert.Equal(t, email.SubjectNewPassword, msg.Subject)
	assert.NotEmpty(t, msg.HTMLBody)

	m := resetLinkRe.FindStringSubmatch(msg.Body)
	require.Len(t, m, 2, msg.Body)
	key, err := url.QueryUnescape(m[1])
	require.NoError(t, err)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/users/profiles/password_token/", "", map[string]string{"token": key})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "email1@example.com", resp.User.Email)

	// выданный токен сразу пригоден для API
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/users/profiles/1/", resp.Token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestPasswordReset_UnknownEmail(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/users/profiles/reset_password/", "", map[string]string{"email": "nobody@example.com"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	outbox := ts.Mailer.Outbox()
	require.Len(t, outbox, 1)
	assert.Equal(t, email.SubjectNoAccount, outbox[0].Subject)
	assert.Empty(t, resetLinkRe.FindString(outbox[0].HTMLBody))
}

func TestPasswordReset_InvalidEmail(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/users/profiles/reset_password/", "", map[string]string{"email": "hej"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Empty(t, ts.Mailer.Outbox())
}

func TestPasswordToken_Invalid(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/users/profiles/password_token/", "", map[string]string{"token": "forged:token"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "Invalid token.")
}

func TestPasswordToken_DeactivatedUser(t *testing.T) {
	ts := helpers.NewTestServer(t)
	user := helpers.CreateUser(t, ts.DB, 1, false)

	key, err := ts.Infra.Signer.Key(user.ID)
	require.NoError(t, err)
	require.NoError(t, ts.DB.Model(user).Update("is_active", false).Error)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/users/profiles/password_token/", "", map[string]string{"token": key})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	assert.Contains(t, body, "Invalid token.")

	var stored models.User
	require.NoError(t, ts.DB.First(&stored, user.ID).Error)
	assert.Nil(t, stored.LastLogin)
}
