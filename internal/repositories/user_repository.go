package repositories

import (
	"errors"
	"time"

	"website_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository определяет операции с пользователями
type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id uint) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	ExistsByEmail(db *gorm.DB, email string) (bool, error)

	// UpdateProfile обновляет только переданные колонки
	UpdateProfile(db *gorm.DB, user *models.User, fields map[string]interface{}) error
	UpdatePassword(db *gorm.DB, userID uint, passwordHash string) error
	UpdateLastLogin(db *gorm.DB, userID uint, at time.Time) error
	SetActive(db *gorm.DB, userID uint, active bool) error

	FindAll(db *gorm.DB) ([]models.User, error)
	FindPage(db *gorm.DB, limit, offset int) ([]models.User, int64, error)
	Count(db *gorm.DB) (int64, error)
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

// Create создает пользователя; email должен быть уникальным
func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	exists, err := r.ExistsByEmail(db, user.Email)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserAlreadyExists
	}

	if err := db.Create(user).Error; err != nil {
		// гонка между проверкой и вставкой ловится уникальным индексом
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail ищет по точному совпадению email
func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("email = ?", email).Limit(1).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) UpdateProfile(db *gorm.DB, user *models.User, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return db.Model(user).Updates(fields).Error
}

func (r *userRepository) UpdatePassword(db *gorm.DB, userID uint, passwordHash string) error {
	return r.updateColumn(db, userID, "password", passwordHash)
}

func (r *userRepository) UpdateLastLogin(db *gorm.DB, userID uint, at time.Time) error {
	return r.updateColumn(db, userID, "last_login", at)
}

// SetActive - пользователей не удаляем, а деактивируем
func (r *userRepository) SetActive(db *gorm.DB, userID uint, active bool) error {
	return r.updateColumn(db, userID, "is_active", active)
}

func (r *userRepository) updateColumn(db *gorm.DB, userID uint, column string, value interface{}) error {
	// RowsAffected не годится: MySQL не считает строку, если значение не изменилось
	var existing models.User
	if err := db.Select("id").Where("id = ?", userID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return db.Model(&models.User{}).Where("id = ?", userID).Update(column, value).Error
}

func (r *userRepository) FindAll(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.Order("id ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) FindPage(db *gorm.DB, limit, offset int) ([]models.User, int64, error) {
	var (
		users []models.User
		total int64
	)
	if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("id ASC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

func (r *userRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Count(&count).Error
	return count, err
}
