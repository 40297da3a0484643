package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"website_backend/internal/models"
	"website_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	ts := helpers.NewTestServer(t)
	user := helpers.CreateUser(t, ts.DB, 1, false)

	res, body := ts.SendRequest(t, http.MethodPost, "/login/", "", map[string]string{
		"email":    "email1@example.com",
		"password": helpers.Password(1),
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email    string `json:"email"`
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "email1@example.com", resp.User.Email)
	assert.Equal(t, "username1", resp.User.Username)

	var stored models.User
	require.NoError(t, ts.DB.First(&stored, user.ID).Error)
	assert.NotNil(t, stored.LastLogin)
}

func TestLogin_Failures(t *testing.T) {
	ts := helpers.NewTestServer(t)
	helpers.CreateUser(t, ts.DB, 1, false)

	cases := []struct {
		name     string
		body     map[string]string
		contains string
	}{
		{"wrong password", map[string]string{"email": "email1@example.com", "password": "nope"}, "Unable to login with provided credentials."},
		{"unknown email", map[string]string{"email": "email9@example.com", "password": "nope"}, "Unable to login with provided credentials."},
		{"empty fields", map[string]string{"email": "", "password": ""}, "Both fields needs to be filled"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, body := ts.SendRequest(t, http.MethodPost, "/login/", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode)
			assert.Contains(t, body, tc.contains)
			assert.Contains(t, body, "non_field_errors")
		})
	}
}

func TestAuthorizationHeaderPrefixes(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, user := helpers.CreateAndLoginUser(t, ts, 1, false)
	path := "/api/v1/users/profiles/" + itoa(user.ID) + "/"

	for _, prefix := range []string{"JWT ", "Bearer ", "jwt "} {
		req, err := http.NewRequest(http.MethodGet, ts.Server.URL+path, nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", prefix+token)

		res, err := ts.Server.Client().Do(req)
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode, prefix)
	}

	res, _ := ts.SendRequest(t, http.MethodGet, path, "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestHealthz(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}
