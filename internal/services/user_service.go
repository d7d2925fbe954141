// internal/services/user_service.go
package services

import (
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrohaat/agrohaat-backend/internal/apperrors"
	"github.com/agrohaat/agrohaat-backend/internal/config"
	"github.com/agrohaat/agrohaat-backend/internal/models"
)

type UserService struct {
	db             *gorm.DB
	config         *config.Config
	storageService *StorageService
}

type UpdateProfileRequest struct {
	Name        *string       `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Address     *string       `json:"address,omitempty"`
	ProfileData *models.JSONB `json:"profile_data,omitempty"`
}

// PublicProfile is the subset of a user shown to other marketplace members.
type PublicProfile struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Role    models.UserRole `json:"role"`
	Address string          `json:"address,omitempty"`
	Image   string          `json:"image,omitempty"`
}

func NewUserService(db *gorm.DB, config *config.Config, storageService *StorageService) *UserService {
	return &UserService{
		db:             db,
		config:         config,
		storageService: storageService,
	}
}

func (s *UserService) GetPublicProfile(userID uuid.UUID) (*PublicProfile, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: user", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &PublicProfile{
		ID:      user.ID,
		Name:    user.Name,
		Role:    user.Role,
		Address: user.Address,
		Image:   user.Image,
	}, nil
}

func (s *UserService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: user", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.ProfileData != nil {
		updates["profile_data"] = *req.ProfileData
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return &user, nil
}

func (s *UserService) UploadAvatar(userID uuid.UUID, file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	options := s.storageService.GetDefaultUploadOptions("avatars")

	result, err := s.storageService.UploadFile(file, header, options)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("image", result.URL).Error; err != nil {
		return nil, fmt.Errorf("failed to save avatar: %w", err)
	}

	return result, nil
}
