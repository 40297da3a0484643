package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"website_backend/database"
	"website_backend/internal/app"
	"website_backend/internal/config"
	"website_backend/internal/email"
	"website_backend/internal/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	TestJWTSecret  = "test-secret-for-integration-tests"
	TestSiteDomain = "http://testserver"
)

// TestServer - приложение поверх sqlite в памяти с eager-очередью и почтой в памяти
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Config *config.Config
	Infra  *app.Infra
	Mailer *email.MemoryProvider
}

// TestConfig возвращает конфигурацию для изолированной БД с именем name
func TestConfig(name string) *config.Config {
	cfg := config.Default()
	cfg.Server.Env = "test"

	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.NewReplacer("/", "_", " ", "_").Replace(name))
	cfg.Database.MaxOpenConns = 1

	cfg.Email.Backend = "memory"
	cfg.Email.DefaultFromEmail = "webmaster@testserver"
	cfg.JWT.Secret = TestJWTSecret
	cfg.Site.Domain = TestSiteDomain
	cfg.Queue.Broker = "memory"
	cfg.Queue.Eager = true
	cfg.RateLimit.Enabled = false
	return &cfg
}

// NewTestServer поднимает сервер на отдельной БД; ресурсы освобождаются в t.Cleanup
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	logger.InitWithWriter("test", io.Discard)

	cfg := TestConfig(t.Name())

	db, err := database.Connect(cfg.Database)
	require.NoError(t, err, "Не удалось подключиться к тестовой БД")
	require.NoError(t, database.Migrate(context.Background(), db, cfg.Database.Driver))

	infra, err := app.NewInfra(cfg, db)
	require.NoError(t, err)

	mailer, ok := infra.Mailer.(*email.MemoryProvider)
	require.True(t, ok, "ожидался memory email backend")

	router, err := app.SetupRouter(cfg, db, infra)
	require.NoError(t, err)

	ts := &TestServer{
		Server: httptest.NewServer(router),
		DB:     db,
		Config: cfg,
		Infra:  infra,
		Mailer: mailer,
	}
	t.Cleanup(ts.Close)
	return ts
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	ts.Infra.Close()
	if sqlDB, err := ts.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

// SendRequest отправляет JSON-запрос; token передается с префиксом "JWT"
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Ошибка кодирования JSON для запроса")
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err, "Ошибка создания HTTP-запроса")

	if token != "" {
		req.Header.Set("Authorization", "JWT "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "Ошибка отправки HTTP-запроса")
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	require.NoError(t, err, "Ошибка чтения тела ответа")

	return res, string(resBodyBytes)
}

// GraphQL выполняет запрос к /graphql/ и возвращает разобранный ответ
func (ts *TestServer) GraphQL(t *testing.T, token, query string, variables map[string]interface{}) GraphQLResponse {
	t.Helper()

	body := map[string]interface{}{"query": query}
	if variables != nil {
		body["variables"] = variables
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/graphql/", token, body)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var out GraphQLResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &out), bodyStr)
	return out
}

type GraphQLResponse struct {
	Data   map[string]interface{} `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}
