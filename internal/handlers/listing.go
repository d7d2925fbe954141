// internal/handlers/listing.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agrohaat/agrohaat-backend/internal/i18n"
	"github.com/agrohaat/agrohaat-backend/internal/models"
	"github.com/agrohaat/agrohaat-backend/internal/services"
	"github.com/agrohaat/agrohaat-backend/internal/utils"
)

type ListingHandler struct {
	listingService *services.ListingService
}

func NewListingHandler(listingService *services.ListingService) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
	}
}

// GET /listings
//
// Public callers see the active marketplace. ?history=dealer switches an
// authenticated dealer to their buying history; ?view=mine switches an
// authenticated farmer to their own postings across every status.
func (h *ListingHandler) ListListings(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	role, _ := utils.GetUserRoleFromContext(c)
	userIDStr, authenticated := utils.GetUserIDFromContext(c)

	switch {
	case c.Query("history") == "dealer":
		if !authenticated || role != string(models.UserRoleDealer) {
			utils.UnauthorizedResponse(c, "")
			return
		}
		dealerID, err := uuid.Parse(userIDStr)
		if err != nil {
			utils.UnauthorizedResponse(c, "")
			return
		}
		result, err := h.listingService.ListDealerHistory(dealerID, params)
		if err != nil {
			utils.AppErrorResponse(c, err)
			return
		}
		utils.PaginatedResponse(c, *result)

	case c.Query("view") == "mine":
		if !authenticated || role != string(models.UserRoleFarmer) {
			utils.UnauthorizedResponse(c, "")
			return
		}
		farmerID, err := uuid.Parse(userIDStr)
		if err != nil {
			utils.UnauthorizedResponse(c, "")
			return
		}
		result, err := h.listingService.ListByFarmer(farmerID, params)
		if err != nil {
			utils.AppErrorResponse(c, err)
			return
		}
		utils.PaginatedResponse(c, *result)

	default:
		result, err := h.listingService.ListActive(params)
		if err != nil {
			utils.AppErrorResponse(c, err)
			return
		}
		utils.PaginatedResponse(c, *result)
	}
}

// POST /listings
func (h *ListingHandler) CreateListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	farmerID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req services.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	listing, err := h.listingService.CreateListing(farmerID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyListingCreated),
		"listing": listing,
	})
}

// GET /listings/:id
func (h *ListingHandler) GetListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid listing id", nil)
		return
	}

	listing, err := h.listingService.GetListing(listingID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, listing)
}

// PUT /listings/:id
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	farmerID, ok := h.callerID(c)
	if !ok {
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid listing id", nil)
		return
	}

	var req services.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	listing, err := h.listingService.UpdateListing(farmerID, listingID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyListingUpdated),
		"listing": listing,
	})
}

// DELETE /listings/:id
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	farmerID, ok := h.callerID(c)
	if !ok {
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid listing id", nil)
		return
	}

	if err := h.listingService.DeleteListing(farmerID, listingID); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// POST /listings/:id/bid
func (h *ListingHandler) PlaceBid(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	dealerID, ok := h.callerID(c)
	if !ok {
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid listing id", nil)
		return
	}

	var req services.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	bid, err := h.listingService.PlaceBid(dealerID, listingID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBidPlaced),
		"bid":     bid,
	})
}

// GET /listings/:id/bids
func (h *ListingHandler) ListBids(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid listing id", nil)
		return
	}

	params := utils.GetPaginationParams(c)
	result, err := h.listingService.ListBids(listingID, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.PaginatedResponse(c, *result)
}

// POST /listings/:id/sell
func (h *ListingHandler) Sell(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	farmerID, ok := h.callerID(c)
	if !ok {
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid listing id", nil)
		return
	}

	listing, err := h.listingService.Sell(farmerID, listingID, lang)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyListingSold),
		"listing": listing,
	})
}

func (h *ListingHandler) callerID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	return userID, true
}
