package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	ModifiedAt time.Time `gorm:"autoUpdateTime" json:"modified_at"`
}

// DatedModel добавляет публичный UID, который не раскрывает порядковый id.
type DatedModel struct {
	BaseModel
	UID uuid.UUID `gorm:"type:varchar(36);uniqueIndex;not null" json:"uid"`
}

func (m *DatedModel) BeforeCreate(tx *gorm.DB) error {
	if m.UID == uuid.Nil {
		m.UID = uuid.New()
	}
	return nil
}
