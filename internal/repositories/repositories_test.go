package repositories

import (
	"fmt"
	"testing"
	"time"

	"website_backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
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
	return db
}

func newUser(n int) *models.User {
	return &models.User{
		Email:    fmt.Sprintf("email%d@example.com", n),
		Username: fmt.Sprintf("username%d", n),
		Password: "hash",
		IsActive: true,
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository()

	user := newUser(1)
	require.NoError(t, repo.Create(db, user))
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", user.UID.String())
	assert.False(t, user.DateJoined.IsZero())

	found, err := repo.FindByEmail(db, "email1@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByID(db, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository()

	require.NoError(t, repo.Create(db, newUser(1)))
	err := repo.Create(db, newUser(1))
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestUserRepository_ExistsAndCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository()

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Create(db, newUser(i)))
	}

	ok, err := repo.ExistsByEmail(db, "email2@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsByEmail(db, "hej")
	require.NoError(t, err)
	assert.False(t, ok)

	count, err := repo.Count(db)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	page, total, err := repo.FindPage(db, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, "username3", page[0].Username)
}

func TestUserRepository_SetActiveAndPassword(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository()
	user := newUser(1)
	require.NoError(t, repo.Create(db, user))

	require.NoError(t, repo.SetActive(db, user.ID, false))
	require.NoError(t, repo.UpdatePassword(db, user.ID, "new-hash"))

	found, err := repo.FindByID(db, user.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
	assert.Equal(t, "new-hash", found.Password)

	assert.ErrorIs(t, repo.SetActive(db, 12345, false), ErrUserNotFound)
}

func TestUserRepository_UpdateSameValueTwice(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository()
	user := newUser(1)
	require.NoError(t, repo.Create(db, user))

	require.NoError(t, repo.SetActive(db, user.ID, false))
	require.NoError(t, repo.SetActive(db, user.ID, false))

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, repo.UpdateLastLogin(db, user.ID, at))
	require.NoError(t, repo.UpdateLastLogin(db, user.ID, at))

	assert.ErrorIs(t, repo.UpdateLastLogin(db, 12345, at), ErrUserNotFound)
}

func TestLinkRepository_PreloadsPoster(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository()
	links := NewLinkRepository()

	user := newUser(1)
	require.NoError(t, users.Create(db, user))
	require.NoError(t, links.Create(db, &models.Link{URL: "https://go.dev", Description: "Go", PostedByID: &user.ID}))
	require.NoError(t, links.Create(db, &models.Link{URL: "https://example.com"}))

	all, err := links.FindAll(db)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.NotNil(t, all[0].PostedBy)
	assert.Equal(t, user.Email, all[0].PostedBy.Email)
	assert.Nil(t, all[1].PostedBy)
}

func TestTaskResultRepository_UpsertAndCleanup(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskResultRepository()

	res := &models.TaskResult{TaskID: "task-1", TaskName: "get_users_count", Status: models.TaskStatusStarted}
	require.NoError(t, repo.Upsert(db, res))

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, repo.Upsert(db, &models.TaskResult{
		TaskID:   "task-1",
		TaskName: "get_users_count",
		Status:   models.TaskStatusSuccess,
		Result:   datatypes.JSON(`3`),
		DateDone: &old,
	}))

	found, err := repo.FindByTaskID(db, "task-1")
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusSuccess, found.Status)
	assert.JSONEq(t, `3`, string(found.Result))

	deleted, err := repo.DeleteDoneBefore(db, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, err = repo.FindByTaskID(db, "task-1")
	assert.ErrorIs(t, err, ErrTaskResultNotFound)
}
