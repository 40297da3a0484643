package services

import (
	"website_backend/internal/models"
	"website_backend/internal/repositories"
	"website_backend/internal/services/dto"
	"website_backend/internal/utils"
	"website_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type LinkService interface {
	All(db *gorm.DB) ([]models.Link, error)
	Create(db *gorm.DB, req *dto.CreateLinkRequest, postedBy *uint) (*models.Link, error)
}

type linkService struct {
	linkRepo repositories.LinkRepository
}

func NewLinkService(linkRepo repositories.LinkRepository) LinkService {
	return &linkService{linkRepo: linkRepo}
}

func (s *linkService) All(db *gorm.DB) ([]models.Link, error) {
	links, err := s.linkRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	return links, nil
}

func (s *linkService) Create(db *gorm.DB, req *dto.CreateLinkRequest, postedBy *uint) (*models.Link, error) {
	link := &models.Link{
		URL:         req.URL,
		Description: utils.SanitizeText(req.Description),
		PostedByID:  postedBy,
	}
	if err := s.linkRepo.Create(db, link); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	return link, nil
}
