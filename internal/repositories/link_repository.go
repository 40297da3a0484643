package repositories

import (
	"website_backend/internal/models"

	"gorm.io/gorm"
)

type LinkRepository interface {
	Create(db *gorm.DB, link *models.Link) error
	FindAll(db *gorm.DB) ([]models.Link, error)
}

type linkRepository struct{}

func NewLinkRepository() LinkRepository {
	return &linkRepository{}
}

func (r *linkRepository) Create(db *gorm.DB, link *models.Link) error {
	return db.Create(link).Error
}

func (r *linkRepository) FindAll(db *gorm.DB) ([]models.Link, error) {
	var links []models.Link
	err := db.Preload("PostedBy").Order("id ASC").Find(&links).Error
	return links, err
}
