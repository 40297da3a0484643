package dto

import (
	"time"

	"website_backend/internal/models"
)

// CreateUserRequest - регистрация (REST profiles и GraphQL createUser)
type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150,username"`
	Password  string `json:"password" validate:"required"`
	Name      string `json:"name" validate:"max=255"`
	FirstName string `json:"first_name" validate:"max=30"`
	LastName  string `json:"last_name" validate:"max=150"`
}

func (r *CreateUserRequest) Normalize() {
	r.Email = models.NormalizeEmail(r.Email)
}

// UpdateUserRequest - PUT требует username, PATCH меняет только переданные поля
type UpdateUserRequest struct {
	Username  *string `json:"username" validate:"omitempty,max=150,username"`
	Name      *string `json:"name" validate:"omitempty,max=255"`
	FirstName *string `json:"first_name" validate:"omitempty,max=30"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
}

// UserResponse - публичное представление профиля
type UserResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{Email: u.Email, Username: u.Username}
}

// UserDetailResponse - элемент списка для staff
type UserDetailResponse struct {
	ID         uint       `json:"id"`
	Email      string     `json:"email"`
	Username   string     `json:"username"`
	Name       string     `json:"name"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	IsStaff    bool       `json:"is_staff"`
	IsActive   bool       `json:"is_active"`
	DateJoined time.Time  `json:"date_joined"`
	LastLogin  *time.Time `json:"last_login"`
}

func NewUserDetailResponse(u *models.User) UserDetailResponse {
	return UserDetailResponse{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		Name:       u.Name,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsStaff:    u.IsStaff,
		IsActive:   u.IsActive,
		DateJoined: u.DateJoined,
		LastLogin:  u.LastLogin,
	}
}

type UserListResponse struct {
	Count    int64                `json:"count"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	Results  []UserDetailResponse `json:"results"`
}

type EmailExistsRequest struct {
	Email string `json:"email"`
}

func (r *EmailExistsRequest) Normalize() {
	r.Email = models.NormalizeEmail(r.Email)
}

type EmailExistsResponse struct {
	Status bool `json:"status"`
}

type ChangePasswordRequest struct {
	Password          string `json:"password" validate:"required"`
	ConfirmedPassword string `json:"confirmed_password" validate:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *PasswordResetRequest) Normalize() {
	r.Email = models.NormalizeEmail(r.Email)
}

type PasswordTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
