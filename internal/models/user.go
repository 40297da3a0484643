package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	DatedModel
	Email       string     `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	Username    string     `gorm:"type:varchar(150);not null" json:"username"`
	Password    string     `gorm:"type:varchar(128);not null" json:"-"`
	Name        string     `gorm:"type:varchar(255)" json:"name"`
	FirstName   string     `gorm:"type:varchar(30)" json:"first_name"`
	LastName    string     `gorm:"type:varchar(150)" json:"last_name"`
	IsStaff     bool       `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser bool       `gorm:"not null;default:false" json:"is_superuser"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	DateJoined  time.Time  `gorm:"not null" json:"date_joined"`
	LastLogin   *time.Time `json:"last_login"`

	Links []Link `gorm:"foreignKey:PostedByID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now()
	}
	return u.DatedModel.BeforeCreate(tx)
}

// NormalizeEmail убирает пробелы и приводит доменную часть к нижнему регистру.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
