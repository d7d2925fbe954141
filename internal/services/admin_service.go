// internal/services/admin_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/agrohaat/agrohaat-backend/internal/apperrors"
	"github.com/agrohaat/agrohaat-backend/internal/config"
	"github.com/agrohaat/agrohaat-backend/internal/models"
	"github.com/agrohaat/agrohaat-backend/internal/utils"
)

type AdminService struct {
	db             *gorm.DB
	config         *config.Config
	listingService *ListingService
}

type DashboardStats struct {
	TotalUsers     int64   `json:"total_users"`
	TotalFarmers   int64   `json:"total_farmers"`
	TotalDealers   int64   `json:"total_dealers"`
	ActiveListings int64   `json:"active_listings"`
	SoldListings   int64   `json:"sold_listings"`
	TotalBids      int64   `json:"total_bids"`
	TradedVolume   float64 `json:"traded_volume"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended banned"`
}

func NewAdminService(db *gorm.DB, config *config.Config, listingService *ListingService) *AdminService {
	return &AdminService{
		db:             db,
		config:         config,
		listingService: listingService,
	}
}

func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	s.db.Model(&models.User{}).Where("role = ?", models.UserRoleFarmer).Count(&stats.TotalFarmers)
	s.db.Model(&models.User{}).Where("role = ?", models.UserRoleDealer).Count(&stats.TotalDealers)
	s.db.Model(&models.Listing{}).Where("status = ?", models.ListingStatusActive).Count(&stats.ActiveListings)
	s.db.Model(&models.Listing{}).Where("status = ?", models.ListingStatusSold).Count(&stats.SoldListings)
	s.db.Model(&models.Bid{}).Count(&stats.TotalBids)

	var volume float64
	if err := s.db.Model(&models.Listing{}).
		Where("status = ?", models.ListingStatusSold).
		Select("COALESCE(SUM(final_price), 0)").
		Scan(&volume).Error; err != nil {
		return nil, fmt.Errorf("failed to sum traded volume: %w", err)
	}
	stats.TradedVolume = volume

	return stats, nil
}

func (s *AdminService) ListUsers(params utils.PaginationParams, role string) (*utils.PaginationResult, error) {
	var users []models.User
	var total int64

	query := s.db.Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if params.Search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	if err := utils.ApplyPagination(query.Order("created_at DESC"), params).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := utils.CreatePaginationResult(users, total, params)
	return &result, nil
}

func (s *AdminService) UpdateUserStatus(userID uuid.UUID, req *UpdateUserStatusRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: user", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.Role == models.UserRoleAdmin {
		return nil, fmt.Errorf("%w: cannot change admin status", apperrors.ErrForbidden)
	}

	if err := s.db.Model(&user).Update("status", models.UserStatus(req.Status)).Error; err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"status":  req.Status,
	}).Info("User status updated")

	return &user, nil
}

// ExpireListings runs the manual expiry sweep over ACTIVE listings whose end
// time has passed.
func (s *AdminService) ExpireListings() (int64, error) {
	return s.listingService.ExpireListingsPastEndTime()
}

func (s *AdminService) ListAuditLogs(params utils.PaginationParams) (*utils.PaginationResult, error) {
	var logs []models.AuditLog
	var total int64

	query := s.db.Model(&models.AuditLog{})

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count audit logs: %w", err)
	}

	if err := utils.ApplyPagination(query.Order("created_at DESC"), params).
		Preload("User").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	result := utils.CreatePaginationResult(logs, total, params)
	return &result, nil
}
