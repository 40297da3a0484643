package services

import (
	"errors"
	"strings"

	"website_backend/internal/auth"
	"website_backend/internal/models"
	"website_backend/internal/repositories"
	"website_backend/internal/services/dto"
	"website_backend/internal/utils"
	"website_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	Create(db *gorm.DB, req *dto.CreateUserRequest) (*models.User, error)
	Get(db *gorm.DB, userID uint) (*models.User, error)

	// Update - partial=false (PUT) требует username
	Update(db *gorm.DB, userID uint, req *dto.UpdateUserRequest, partial bool) (*models.User, error)
	Deactivate(db *gorm.DB, userID uint) error

	List(db *gorm.DB, page, pageSize int) (*dto.UserListResponse, error)
	All(db *gorm.DB) ([]models.User, error)
	Count(db *gorm.DB) (int64, error)

	Exists(db *gorm.DB, email string) (bool, error)
	ChangePassword(db *gorm.DB, userID uint, req *dto.ChangePasswordRequest) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(db *gorm.DB, req *dto.CreateUserRequest) (*models.User, error) {
	email := models.NormalizeEmail(req.Email)
	missing := map[string][]string{}
	if email == "" {
		missing["email"] = []string{"This field is required."}
	}
	if req.Password == "" {
		missing["password"] = []string{"This field is required."}
	}
	if strings.TrimSpace(req.Username) == "" {
		missing["username"] = []string{"This field is required."}
	}
	if len(missing) > 0 {
		return nil, apperrors.ValidationError(missing)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:     email,
		Username:  utils.SanitizeText(req.Username),
		Password:  hash,
		Name:      utils.SanitizeText(req.Name),
		FirstName: utils.SanitizeText(req.FirstName),
		LastName:  utils.SanitizeText(req.LastName),
		IsActive:  true,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.ErrDatabase(err)
	}
	return user, nil
}

func (s *userService) Get(db *gorm.DB, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.ErrDatabase(err)
	}
	return user, nil
}

func (s *userService) Update(db *gorm.DB, userID uint, req *dto.UpdateUserRequest, partial bool) (*models.User, error) {
	if !partial && req.Username == nil {
		return nil, apperrors.ValidationError(map[string][]string{"username": {"This field is required."}})
	}

	user, err := s.Get(db, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Username != nil {
		username := utils.SanitizeText(*req.Username)
		if username == "" {
			return nil, apperrors.ValidationError(map[string][]string{"username": {"This field may not be blank."}})
		}
		fields["username"] = username
	}
	if req.Name != nil {
		fields["name"] = utils.SanitizeText(*req.Name)
	}
	if req.FirstName != nil {
		fields["first_name"] = utils.SanitizeText(*req.FirstName)
	}
	if req.LastName != nil {
		fields["last_name"] = utils.SanitizeText(*req.LastName)
	}
	if len(fields) == 0 {
		return user, nil
	}

	if err := s.userRepo.UpdateProfile(db, user, fields); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	return s.Get(db, userID)
}

func (s *userService) Deactivate(db *gorm.DB, userID uint) error {
	if _, err := s.Get(db, userID); err != nil {
		return err
	}
	if err := s.userRepo.SetActive(db, userID, false); err != nil {
		return apperrors.ErrDatabase(err)
	}
	return nil
}

func (s *userService) List(db *gorm.DB, page, pageSize int) (*dto.UserListResponse, error) {
	users, total, err := s.userRepo.FindPage(db, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	results := make([]dto.UserDetailResponse, 0, len(users))
	for i := range users {
		results = append(results, dto.NewUserDetailResponse(&users[i]))
	}
	return &dto.UserListResponse{
		Count:    total,
		Page:     page,
		PageSize: pageSize,
		Results:  results,
	}, nil
}

func (s *userService) All(db *gorm.DB) ([]models.User, error) {
	users, err := s.userRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	return users, nil
}

func (s *userService) Count(db *gorm.DB) (int64, error) {
	n, err := s.userRepo.Count(db)
	if err != nil {
		return 0, apperrors.ErrDatabase(err)
	}
	return n, nil
}

// Exists - пустой email дает false без запроса в БД
func (s *userService) Exists(db *gorm.DB, email string) (bool, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return false, nil
	}
	ok, err := s.userRepo.ExistsByEmail(db, email)
	if err != nil {
		return false, apperrors.ErrDatabase(err)
	}
	return ok, nil
}

func (s *userService) ChangePassword(db *gorm.DB, userID uint, req *dto.ChangePasswordRequest) error {
	if req.Password != req.ConfirmedPassword {
		return apperrors.ErrPasswordMismatch
	}
	if _, err := s.Get(db, userID); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, userID, hash); err != nil {
		return apperrors.ErrDatabase(err)
	}
	return nil
}
