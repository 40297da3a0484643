package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"website_backend/internal/auth"
	"website_backend/internal/models"
	"website_backend/internal/services/dto"
	"website_backend/internal/tasks"
	"website_backend/pkg/apperrors"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubDispatcher struct {
	calls []string
	args  []any
	err   error
}

func (d *stubDispatcher) Enqueue(_ context.Context, name string, args any) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	d.calls = append(d.calls, name)
	d.args = append(d.args, args)
	return fmt.Sprintf("task-%d", len(d.calls)), nil
}

type env struct {
	db         *gorm.DB
	services   *ServiceContainer
	signer     *auth.OneTimeTokenSigner
	dispatcher *stubDispatcher
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Link{}, &models.TaskResult{}))

	e := &env{
		db:         db,
		signer:     auth.NewOneTimeTokenSigner("secret", "salt", 7),
		dispatcher: &stubDispatcher{},
	}
	tokens := auth.NewTokenManager("secret", 5*time.Minute, 7*24*time.Hour)
	e.services = NewServiceContainer(tokens, e.signer, e.dispatcher)
	return e
}

func (e *env) createUser(t *testing.T, n int) *models.User {
	t.Helper()
	u, err := e.services.UserService.Create(e.db, &dto.CreateUserRequest{
		Email:    fmt.Sprintf("email%d@example.com", n),
		Username: fmt.Sprintf("username%d", n),
		Password: "password",
	})
	require.NoError(t, err)
	return u
}

func detailsOf(t *testing.T, err error) map[string][]string {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	details, ok := appErr.Details.(map[string][]string)
	require.True(t, ok)
	return details
}

func TestUserService_Create(t *testing.T) {
	e := newEnv(t)

	user, err := e.services.UserService.Create(e.db, &dto.CreateUserRequest{
		Email:    " Someone@EXAMPLE.com ",
		Username: "someone",
		Password: "password",
		Name:     "<b>Some</b> One",
	})
	require.NoError(t, err)
	assert.Equal(t, "Someone@example.com", user.Email)
	assert.Equal(t, "Some One", user.Name)
	assert.NotEqual(t, "password", user.Password)
	assert.True(t, user.IsActive)
	assert.False(t, user.DateJoined.IsZero())

	_, err = e.services.UserService.Create(e.db, &dto.CreateUserRequest{Email: "someone@example.com", Username: "x", Password: "p"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	_, err = e.services.UserService.Create(e.db, &dto.CreateUserRequest{Username: "x"})
	details := detailsOf(t, err)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
}

func TestUserService_UpdateAndDeactivate(t *testing.T) {
	e := newEnv(t)
	user := e.createUser(t, 1)

	_, err := e.services.UserService.Update(e.db, user.ID, &dto.UpdateUserRequest{}, false)
	assert.Contains(t, detailsOf(t, err), "username")

	name := "New Name"
	updated, err := e.services.UserService.Update(e.db, user.ID, &dto.UpdateUserRequest{Name: &name}, true)
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "username1", updated.Username)

	username := "renamed"
	updated, err = e.services.UserService.Update(e.db, user.ID, &dto.UpdateUserRequest{Username: &username}, false)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Username)

	require.NoError(t, e.services.UserService.Deactivate(e.db, user.ID))
	got, err := e.services.UserService.Get(e.db, user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	_, err = e.services.UserService.Get(e.db, 999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_ListExistsCount(t *testing.T) {
	e := newEnv(t)
	for i := 1; i <= 3; i++ {
		e.createUser(t, i)
	}

	page, err := e.services.UserService.List(e.db, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Count)
	assert.Len(t, page.Results, 1)

	n, err := e.services.UserService.Count(e.db)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	ok, err := e.services.UserService.Exists(e.db, "email1@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.services.UserService.Exists(e.db, "")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = e.services.UserService.Exists(e.db, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserService_ChangePassword(t *testing.T) {
	e := newEnv(t)
	user := e.createUser(t, 1)

	err := e.services.UserService.ChangePassword(e.db, user.ID, &dto.ChangePasswordRequest{Password: "a", ConfirmedPassword: "b"})
	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)

	require.NoError(t, e.services.UserService.ChangePassword(e.db, user.ID, &dto.ChangePasswordRequest{Password: "new-pass", ConfirmedPassword: "new-pass"}))

	_, err = e.services.AuthService.Login(e.db, &dto.LoginRequest{Email: user.Email, Password: "password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = e.services.AuthService.Login(e.db, &dto.LoginRequest{Email: user.Email, Password: "new-pass"})
	assert.NoError(t, err)
}

func TestAuthService_Login(t *testing.T) {
	e := newEnv(t)
	user := e.createUser(t, 1)

	resp, err := e.services.AuthService.Login(e.db, &dto.LoginRequest{Email: user.Email, Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, dto.UserResponse{Email: user.Email, Username: user.Username}, resp.User)

	got, err := e.services.UserService.Get(e.db, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.LastLogin)

	_, err = e.services.AuthService.Login(e.db, &dto.LoginRequest{Email: user.Email})
	assert.Equal(t, []string{apperrors.MsgBothFieldsEmpty}, detailsOf(t, err)[apperrors.NonFieldErrorsKey])

	_, err = e.services.AuthService.Login(e.db, &dto.LoginRequest{Email: user.Email, Password: "wrong"})
	assert.Equal(t, []string{apperrors.MsgUnableToLogin}, detailsOf(t, err)[apperrors.NonFieldErrorsKey])

	require.NoError(t, e.services.UserService.Deactivate(e.db, user.ID))
	_, err = e.services.AuthService.Login(e.db, &dto.LoginRequest{Email: user.Email, Password: "password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_JWTFlow(t *testing.T) {
	e := newEnv(t)
	user := e.createUser(t, 1)

	obtained, err := e.services.AuthService.ObtainToken(e.db, user.Email, "password")
	require.NoError(t, err)
	assert.Equal(t, user.Email, obtained.Payload["email"])
	assert.Greater(t, obtained.RefreshExpiresIn, time.Now().Unix())

	payload, err := e.services.AuthService.VerifyToken(obtained.Token)
	require.NoError(t, err)
	assert.Equal(t, obtained.Payload["origIat"], payload["origIat"])

	refreshed, err := e.services.AuthService.RefreshToken(obtained.Token)
	require.NoError(t, err)
	assert.Equal(t, obtained.Payload["origIat"], refreshed.Payload["origIat"])
	assert.Equal(t, obtained.RefreshExpiresIn, refreshed.RefreshExpiresIn)

	_, err = e.services.AuthService.VerifyToken("garbage")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	claims, err := e.services.AuthService.Authenticate(e.db, obtained.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	require.NoError(t, e.services.UserService.Deactivate(e.db, user.ID))
	_, err = e.services.AuthService.Authenticate(e.db, obtained.Token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	e := newEnv(t)

	id, err := e.services.AuthService.RequestPasswordReset(context.Background(), "Nobody@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, "task-1", id)
	assert.Equal(t, []string{tasks.TaskSendPasswordEmail}, e.dispatcher.calls)
	assert.Equal(t, tasks.SendPasswordEmailArgs{Email: "Nobody@example.com"}, e.dispatcher.args[0])

	e.dispatcher.err = errors.New("broker down")
	_, err = e.services.AuthService.RequestPasswordReset(context.Background(), "a@example.com")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 503, appErr.HTTPCode)
}

func TestAuthService_LoginWithOneTimeToken(t *testing.T) {
	e := newEnv(t)
	user := e.createUser(t, 1)

	key, err := e.signer.Key(user.ID)
	require.NoError(t, err)

	resp, err := e.services.AuthService.LoginWithOneTimeToken(e.db, key)
	require.NoError(t, err)
	assert.Equal(t, user.Email, resp.User.Email)

	_, err = e.services.AuthService.LoginWithOneTimeToken(e.db, "invalid")
	assert.Equal(t, []string{apperrors.MsgInvalidToken}, detailsOf(t, err)["token"])

	orphan, err := e.signer.Key(4242)
	require.NoError(t, err)
	_, err = e.services.AuthService.LoginWithOneTimeToken(e.db, orphan)
	assert.ErrorIs(t, err, apperrors.ErrOneTimeTokenDoesNotExist)
}

func TestAuthService_LoginWithOneTimeToken_Deactivated(t *testing.T) {
	e := newEnv(t)
	user := e.createUser(t, 1)

	key, err := e.signer.Key(user.ID)
	require.NoError(t, err)
	require.NoError(t, e.services.UserService.Deactivate(e.db, user.ID))

	_, err = e.services.AuthService.LoginWithOneTimeToken(e.db, key)
	assert.ErrorIs(t, err, apperrors.ErrOneTimeTokenDoesNotExist)
}

func TestLinkService(t *testing.T) {
	e := newEnv(t)
	user := e.createUser(t, 1)

	link, err := e.services.LinkService.Create(e.db, &dto.CreateLinkRequest{URL: "https://example.com", Description: "site"}, &user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, link.UID)

	_, err = e.services.LinkService.Create(e.db, &dto.CreateLinkRequest{URL: "https://example.org"}, nil)
	require.NoError(t, err)

	links, err := e.services.LinkService.All(e.db)
	require.NoError(t, err)
	require.Len(t, links, 2)
	require.NotNil(t, links[0].PostedBy)
	assert.Equal(t, user.Email, links[0].PostedBy.Email)
	assert.Nil(t, links[1].PostedBy)
}

func TestTaskService(t *testing.T) {
	e := newEnv(t)

	resp, err := e.services.TaskService.EnqueueUsersCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "task-1", resp.TaskID)

	_, err = e.services.TaskService.Get(e.db, "missing")
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	require.NoError(t, e.db.Create(&models.TaskResult{TaskID: "t1", TaskName: tasks.TaskGetUsersCount, Status: models.TaskStatusSuccess, Result: []byte("3")}).Error)
	got, err := e.services.TaskService.Get(e.db, "t1")
	require.NoError(t, err)
	assert.True(t, got.Ready)
	assert.JSONEq(t, "3", string(got.Result))
}
