// internal/services/listing_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agrohaat/agrohaat-backend/internal/apperrors"
	"github.com/agrohaat/agrohaat-backend/internal/config"
	"github.com/agrohaat/agrohaat-backend/internal/models"
	"github.com/agrohaat/agrohaat-backend/internal/utils"
)

// Auctions with no explicit end time run for five days.
const defaultAuctionDuration = 5 * 24 * time.Hour

type ListingService struct {
	db                  *gorm.DB
	config              *config.Config
	notificationService *NotificationService
}

type CreateListingRequest struct {
	CropName      string     `json:"crop_name" validate:"required,min=2,max=100"`
	Quantity      float64    `json:"quantity" validate:"required,gt=0"`
	Unit          string     `json:"unit" validate:"required,max=20"`
	StartingPrice float64    `json:"starting_price" validate:"required,gt=0"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	Description   string     `json:"description,omitempty"`
}

type UpdateListingRequest struct {
	CropName      *string    `json:"crop_name,omitempty" validate:"omitempty,min=2,max=100"`
	Quantity      *float64   `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Unit          *string    `json:"unit,omitempty" validate:"omitempty,max=20"`
	StartingPrice *float64   `json:"starting_price,omitempty" validate:"omitempty,gt=0"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	Description   *string    `json:"description,omitempty"`
}

type PlaceBidRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func NewListingService(db *gorm.DB, config *config.Config, notificationService *NotificationService) *ListingService {
	return &ListingService{
		db:                  db,
		config:              config,
		notificationService: notificationService,
	}
}

func (s *ListingService) CreateListing(farmerID uuid.UUID, req *CreateListingRequest) (*models.Listing, error) {
	endTime := time.Now().Add(defaultAuctionDuration)
	if req.EndTime != nil {
		if req.EndTime.Before(time.Now()) {
			return nil, fmt.Errorf("%w: end time must be in the future", apperrors.ErrValidation)
		}
		endTime = *req.EndTime
	}

	// The starting price is the price to beat until the first bid lands.
	currentBid := req.StartingPrice

	listing := &models.Listing{
		FarmerID:      farmerID,
		CropName:      req.CropName,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		StartingPrice: req.StartingPrice,
		CurrentBid:    &currentBid,
		Status:        models.ListingStatusActive,
		EndTime:       endTime,
		Description:   req.Description,
	}

	if err := s.db.Create(listing).Error; err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"listing_id": listing.ID,
		"farmer_id":  farmerID,
		"crop_name":  listing.CropName,
	}).Info("Listing created")

	return listing, nil
}

func (s *ListingService) GetListing(listingID uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	err := s.db.Preload("Farmer").Preload("HighestBidder").
		First(&listing, "id = ?", listingID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: listing", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}
	return &listing, nil
}

// UpdateListing edits an owned ACTIVE listing. Bid state is never touched
// here: a starting-price change does not recompute current_bid, and accepted
// bids survive every edit.
func (s *ListingService) UpdateListing(farmerID, listingID uuid.UUID, req *UpdateListingRequest) (*models.Listing, error) {
	listing, err := s.GetListing(listingID)
	if err != nil {
		return nil, err
	}

	if !listing.IsOwnedBy(farmerID) {
		return nil, apperrors.ErrForbidden
	}
	if listing.IsTerminal() {
		return nil, apperrors.ErrListingNotActive
	}

	updates := map[string]interface{}{}
	if req.CropName != nil {
		updates["crop_name"] = *req.CropName
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.StartingPrice != nil {
		updates["starting_price"] = *req.StartingPrice
	}
	if req.EndTime != nil {
		if req.EndTime.Before(time.Now()) {
			return nil, fmt.Errorf("%w: end time must be in the future", apperrors.ErrValidation)
		}
		updates["end_time"] = *req.EndTime
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) == 0 {
		return listing, nil
	}

	if err := s.db.Model(listing).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}

	return s.GetListing(listingID)
}

// DeleteListing removes an owned ACTIVE listing that has no bids yet. Once a
// dealer has committed money the lot can only end via settlement or expiry.
func (s *ListingService) DeleteListing(farmerID, listingID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&listing, "id = ?", listingID).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: listing", apperrors.ErrNotFound)
			}
			return fmt.Errorf("failed to find listing: %w", err)
		}

		if !listing.IsOwnedBy(farmerID) {
			return apperrors.ErrForbidden
		}
		if listing.IsTerminal() {
			return apperrors.ErrListingNotActive
		}
		if listing.HasBids() {
			return apperrors.ErrListingHasBids
		}

		if err := tx.Model(&listing).Update("status", models.ListingStatusRemoved).Error; err != nil {
			return fmt.Errorf("failed to remove listing: %w", err)
		}

		logrus.WithField("listing_id", listing.ID).Info("Listing removed")
		return nil
	})
}

// PlaceBid appends a dealer bid and advances the listing's current bid inside
// one transaction. The row lock serializes concurrent bids so the acceptance
// check always runs against the latest committed price.
func (s *ListingService) PlaceBid(dealerID, listingID uuid.UUID, req *PlaceBidRequest) (*models.Bid, error) {
	var bid *models.Bid

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&listing, "id = ?", listingID).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: listing", apperrors.ErrNotFound)
			}
			return fmt.Errorf("failed to find listing: %w", err)
		}

		if listing.FarmerID == dealerID {
			return fmt.Errorf("%w: cannot bid on own listing", apperrors.ErrForbidden)
		}
		if listing.IsTerminal() {
			return apperrors.ErrListingNotActive
		}
		if !listing.CanAcceptBid(req.Amount) {
			return apperrors.ErrBidTooLow
		}

		bid = &models.Bid{
			Amount:    req.Amount,
			ListingID: listing.ID,
			DealerID:  dealerID,
		}
		if err := tx.Create(bid).Error; err != nil {
			return fmt.Errorf("failed to create bid: %w", err)
		}

		if err := tx.Model(&listing).Updates(map[string]interface{}{
			"current_bid":       req.Amount,
			"highest_bidder_id": dealerID,
		}).Error; err != nil {
			return fmt.Errorf("failed to update listing bid state: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"listing_id": listingID,
		"dealer_id":  dealerID,
		"amount":     req.Amount,
	}).Info("Bid placed")

	return bid, nil
}

// Sell settles an owned ACTIVE listing with at least one bid: the listing goes
// SOLD at the current price and the winning dealer gets exactly one WIN
// notification, all in the same transaction.
func (s *ListingService) Sell(farmerID, listingID uuid.UUID, lang string) (*models.Listing, error) {
	var settled *models.Listing

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&listing, "id = ?", listingID).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: listing", apperrors.ErrNotFound)
			}
			return fmt.Errorf("failed to find listing: %w", err)
		}

		if !listing.IsOwnedBy(farmerID) {
			return apperrors.ErrForbidden
		}
		if listing.IsTerminal() {
			return apperrors.ErrListingNotActive
		}
		if !listing.CanSettle() {
			return apperrors.ErrNoBidsPlaced
		}

		finalPrice := listing.SettlementPrice()
		if err := tx.Model(&listing).Updates(map[string]interface{}{
			"status":      models.ListingStatusSold,
			"final_price": finalPrice,
		}).Error; err != nil {
			return fmt.Errorf("failed to settle listing: %w", err)
		}

		listing.Status = models.ListingStatusSold
		listing.FinalPrice = &finalPrice

		if _, err := s.notificationService.CreateWinNotification(tx, &listing, lang); err != nil {
			return err
		}

		settled = &listing
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"listing_id":  settled.ID,
		"final_price": settled.FinalPrice,
		"winner_id":   settled.HighestBidderID,
	}).Info("Listing sold")

	// Email is best-effort and runs outside the transaction.
	if settled.HighestBidderID != nil {
		var winner models.User
		if err := s.db.First(&winner, "id = ?", *settled.HighestBidderID).Error; err == nil {
			go s.notificationService.SendWinEmail(&winner, settled)
		}
	}

	return settled, nil
}

// Sortable columns on the public marketplace view.
var listingSortFields = []string{"created_at", "end_time", "starting_price", "current_bid"}

// ListActive is the public marketplace view, newest first unless the caller
// asks for another sort column.
func (s *ListingService) ListActive(params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Listing{}).Where("status = ?", models.ListingStatusActive)

	if params.Search != "" {
		query = query.Where("crop_name ILIKE ? OR description ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	return s.paginate(utils.ApplySort(query, params, listingSortFields), params)
}

// ListByFarmer shows a farmer everything they have posted, every status.
func (s *ListingService) ListByFarmer(farmerID uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Listing{}).Where("farmer_id = ?", farmerID)
	return s.paginate(query.Order("created_at DESC"), params)
}

// ListDealerHistory shows a dealer the lots where they hold the leading bid:
// auctions still running, won, or lost to expiry. Removed lots are hidden.
func (s *ListingService) ListDealerHistory(dealerID uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Listing{}).
		Where("highest_bidder_id = ?", dealerID).
		Where("status IN ?", []models.ListingStatus{
			models.ListingStatusActive,
			models.ListingStatusSold,
			models.ListingStatusExpired,
		})
	return s.paginate(query.Order("end_time DESC"), params)
}

func (s *ListingService) paginate(query *gorm.DB, params utils.PaginationParams) (*utils.PaginationResult, error) {
	var listings []models.Listing
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	if err := utils.ApplyPagination(query, params).
		Preload("Farmer").Preload("HighestBidder").
		Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}

	result := utils.CreatePaginationResult(listings, total, params)
	return &result, nil
}

// ListBids returns the bid trail for a listing, newest first.
func (s *ListingService) ListBids(listingID uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	if _, err := s.GetListing(listingID); err != nil {
		return nil, err
	}

	var bids []models.Bid
	var total int64

	query := s.db.Model(&models.Bid{}).Where("listing_id = ?", listingID)

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count bids: %w", err)
	}

	if err := utils.ApplyPagination(query.Order("created_at DESC"), params).
		Preload("Dealer").
		Find(&bids).Error; err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}

	result := utils.CreatePaginationResult(bids, total, params)
	return &result, nil
}

// ExpireListingsPastEndTime marks every ACTIVE listing whose auction window
// has closed as EXPIRED. Run by admins or a scheduler; returns the number of
// listings it expired.
func (s *ListingService) ExpireListingsPastEndTime() (int64, error) {
	result := s.db.Model(&models.Listing{}).
		Where("status = ? AND end_time < ?", models.ListingStatusActive, time.Now()).
		Update("status", models.ListingStatusExpired)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire listings: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		logrus.WithField("count", result.RowsAffected).Info("Listings expired")
	}

	return result.RowsAffected, nil
}
