// internal/services/crop_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrohaat/agrohaat-backend/internal/apperrors"
	"github.com/agrohaat/agrohaat-backend/internal/config"
	"github.com/agrohaat/agrohaat-backend/internal/models"
	"github.com/agrohaat/agrohaat-backend/internal/utils"
)

// CropService manages a farmer's field records. These are private to the
// farmer and independent of marketplace listings.
type CropService struct {
	db     *gorm.DB
	config *config.Config
}

type CreateCropRequest struct {
	Name                string    `json:"name" validate:"required,min=2,max=100"`
	Description         string    `json:"description,omitempty"`
	Area                float64   `json:"area" validate:"required,gt=0"`
	PlantingDate        time.Time `json:"planting_date" validate:"required"`
	ExpectedHarvestDate time.Time `json:"expected_harvest_date" validate:"required"`
	ImageURL            string    `json:"image_url,omitempty"`
}

type UpdateCropRequest struct {
	Name         *string    `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description  *string    `json:"description,omitempty"`
	Area         *float64   `json:"area,omitempty" validate:"omitempty,gt=0"`
	Status       *string    `json:"status,omitempty" validate:"omitempty,oneof=planned growing harvested"`
	HealthStatus *string    `json:"health_status,omitempty" validate:"omitempty,oneof=healthy at_risk diseased"`
	ImageURL     *string    `json:"image_url,omitempty"`
}

func NewCropService(db *gorm.DB, config *config.Config) *CropService {
	return &CropService{
		db:     db,
		config: config,
	}
}

func (s *CropService) CreateCrop(farmerID uuid.UUID, req *CreateCropRequest) (*models.Crop, error) {
	if !req.ExpectedHarvestDate.After(req.PlantingDate) {
		return nil, fmt.Errorf("%w: expected harvest date must be after planting date", apperrors.ErrValidation)
	}

	status := models.CropStatusPlanned
	if !req.PlantingDate.After(time.Now()) {
		status = models.CropStatusGrowing
	}

	crop := &models.Crop{
		FarmerID:            farmerID,
		Name:                req.Name,
		Description:         req.Description,
		Area:                req.Area,
		PlantingDate:        req.PlantingDate,
		ExpectedHarvestDate: req.ExpectedHarvestDate,
		Status:              status,
		HealthStatus:        models.HealthStatusHealthy,
		ImageURL:            req.ImageURL,
	}

	if err := s.db.Create(crop).Error; err != nil {
		return nil, fmt.Errorf("failed to create crop: %w", err)
	}

	return crop, nil
}

func (s *CropService) GetCrop(farmerID, cropID uuid.UUID) (*models.Crop, error) {
	var crop models.Crop
	if err := s.db.First(&crop, "id = ?", cropID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: crop", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find crop: %w", err)
	}

	if crop.FarmerID != farmerID {
		return nil, apperrors.ErrForbidden
	}

	return &crop, nil
}

func (s *CropService) ListByFarmer(farmerID uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	var crops []models.Crop
	var total int64

	query := s.db.Model(&models.Crop{}).Where("farmer_id = ?", farmerID)

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count crops: %w", err)
	}

	if err := utils.ApplyPagination(query.Order("created_at DESC"), params).
		Find(&crops).Error; err != nil {
		return nil, fmt.Errorf("failed to list crops: %w", err)
	}

	result := utils.CreatePaginationResult(crops, total, params)
	return &result, nil
}

func (s *CropService) UpdateCrop(farmerID, cropID uuid.UUID, req *UpdateCropRequest) (*models.Crop, error) {
	crop, err := s.GetCrop(farmerID, cropID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Area != nil {
		updates["area"] = *req.Area
	}
	if req.Status != nil {
		updates["status"] = models.CropStatus(*req.Status)
	}
	if req.HealthStatus != nil {
		updates["health_status"] = models.HealthStatus(*req.HealthStatus)
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if len(updates) == 0 {
		return crop, nil
	}

	if err := s.db.Model(crop).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update crop: %w", err)
	}

	return s.GetCrop(farmerID, cropID)
}

func (s *CropService) DeleteCrop(farmerID, cropID uuid.UUID) error {
	crop, err := s.GetCrop(farmerID, cropID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(crop).Error; err != nil {
		return fmt.Errorf("failed to delete crop: %w", err)
	}

	return nil
}
