package services

import (
	"errors"

	"github.com/teamtrack/backend/internal/models"
	"github.com/teamtrack/backend/internal/utils"
	"github.com/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=4"`
	Role     string `json:"role" binding:"omitempty,oneof=Admin Member"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user. Passwords are stored as bcrypt hashes, never
// plaintext, so a stored credential is not comparable on the wire.
func (s *UserService) Register(req *RegisterRequest) (*models.User, error) {
	// Unscoped so emails of soft-deleted users stay reserved; the unique
	// index still holds their rows.
	var count int64
	if err := s.db.Unscoped().Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict("email already registered")
	}

	if req.Role == "" {
		req.Role = models.RoleMember
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// Concurrent registration can slip past the pre-check and trip the
		// unique index instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewConflict("email already registered")
		}
		return nil, err
	}

	return &user, nil
}

// Login authenticates by email and password and returns the matching user.
func (s *UserService) Login(req *LoginRequest) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, response.NewUnauthorized("invalid credentials")
	}

	return &user, nil
}

// List returns all users in insertion order. The password hash is excluded by
// the model's JSON tags.
func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// Delete removes a user. Tasks assigned to the user and project memberships
// keep their references; resolution renders them as absent.
func (s *UserService) Delete(id uint) error {
	result := s.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("user not found")
	}
	return nil
}
