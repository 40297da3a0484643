package integration_test

import (
	"net/http"
	"net/url"
	"testing"

	"website_backend/internal/models"
	"website_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const createUserMutation = `
mutation ($email: String!, $username: String!, $password: String!) {
  createUser(email: $email, username: $username, password: $password) {
    user { id email username }
  }
}`

const tokenAuthMutation = `
mutation ($email: String!, $password: String!) {
  tokenAuth(email: $email, password: $password) { token payload refreshExpiresIn }
}`

func TestGraphQL_UserFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)

	created := ts.GraphQL(t, "", createUserMutation, map[string]interface{}{
		"email":    "email1@example.com",
		"username": "username1",
		"password": "password1",
	})
	require.Empty(t, created.Errors)
	user := created.Data["createUser"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "email1@example.com", user["email"])
	assert.Equal(t, "username1", user["username"])

	obtained := ts.GraphQL(t, "", tokenAuthMutation, map[string]interface{}{
		"email":    "email1@example.com",
		"password": "password1",
	})
	require.Empty(t, obtained.Errors)
	tokenAuth := obtained.Data["tokenAuth"].(map[string]interface{})
	token := tokenAuth["token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, "email1@example.com", tokenAuth["payload"].(map[string]interface{})["email"])
	assert.NotZero(t, tokenAuth["refreshExpiresIn"])

	me := ts.GraphQL(t, token, `{ me { email username isStaff } }`, nil)
	require.Empty(t, me.Errors)
	assert.Equal(t, map[string]interface{}{
		"email":    "email1@example.com",
		"username": "username1",
		"isStaff":  false,
	}, me.Data["me"])

	users := ts.GraphQL(t, "", `{ users { email } }`, nil)
	require.Empty(t, users.Errors)
	assert.Len(t, users.Data["users"], 1)
}

func TestGraphQL_MeRequiresLogin(t *testing.T) {
	ts := helpers.NewTestServer(t)

	resp := ts.GraphQL(t, "", `{ me { email } }`, nil)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Not logged in!", resp.Errors[0].Message)
}

func TestGraphQL_TokenAuthInvalidCredentials(t *testing.T) {
	ts := helpers.NewTestServer(t)
	helpers.CreateUser(t, ts.DB, 1, false)

	resp := ts.GraphQL(t, "", tokenAuthMutation, map[string]interface{}{
		"email":    "email1@example.com",
		"password": "wrong",
	})
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Unable to login with provided credentials.", resp.Errors[0].Message)
}

func TestGraphQL_VerifyAndRefresh(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, 1, false)

	verified := ts.GraphQL(t, "", `mutation ($token: String!) { verifyToken(token: $token) { payload } }`,
		map[string]interface{}{"token": token})
	require.Empty(t, verified.Errors)
	payload := verified.Data["verifyToken"].(map[string]interface{})["payload"].(map[string]interface{})
	assert.Equal(t, "email1@example.com", payload["email"])

	refreshed := ts.GraphQL(t, "", `mutation ($token: String!) { refreshToken(token: $token) { token payload } }`,
		map[string]interface{}{"token": token})
	require.Empty(t, refreshed.Errors)
	assert.NotEmpty(t, refreshed.Data["refreshToken"].(map[string]interface{})["token"])

	invalid := ts.GraphQL(t, "", `mutation { verifyToken(token: "garbage") { payload } }`, nil)
	require.Len(t, invalid.Errors, 1)
}

func TestGraphQL_Links(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, 1, false)

	created := ts.GraphQL(t, token, `mutation { createLink(url: "https://go.dev", description: "Go") { link { id url description postedBy { email } } } }`, nil)
	require.Empty(t, created.Errors)
	link := created.Data["createLink"].(map[string]interface{})["link"].(map[string]interface{})
	assert.Equal(t, "https://go.dev", link["url"])
	assert.Equal(t, map[string]interface{}{"email": "email1@example.com"}, link["postedBy"])

	anonymous := ts.GraphQL(t, "", `mutation { createLink(url: "https://example.com") { link { id postedBy { email } } } }`, nil)
	require.Empty(t, anonymous.Errors)
	anonLink := anonymous.Data["createLink"].(map[string]interface{})["link"].(map[string]interface{})
	assert.Nil(t, anonLink["postedBy"])

	invalid := ts.GraphQL(t, "", `mutation { createLink(url: "not a url") { link { id } } }`, nil)
	require.Len(t, invalid.Errors, 1)

	links := ts.GraphQL(t, "", `{ links { url postedBy { username } } }`, nil)
	require.Empty(t, links.Errors)
	assert.Len(t, links.Data["links"], 2)
}

func TestGraphQL_MalformedRequest(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/graphql/", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "Must provide query string.")

	res, body = ts.SendRequest(t, http.MethodGet, "/graphql/?query=%7Busers%7Bemail%7D%7D", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.JSONEq(t, `{"data":{"users":[]}}`, body)

	mutation := url.QueryEscape(`mutation { createUser(email: "get@example.com", username: "get", password: "pw") { user { email } } }`)
	res, body = ts.SendRequest(t, http.MethodGet, "/graphql/?query="+mutation, "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	assert.Contains(t, body, "Can only perform a mutation operation from a POST request.")

	var count int64
	require.NoError(t, ts.DB.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
