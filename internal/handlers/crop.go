// internal/handlers/crop.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agrohaat/agrohaat-backend/internal/i18n"
	"github.com/agrohaat/agrohaat-backend/internal/services"
	"github.com/agrohaat/agrohaat-backend/internal/utils"
)

type CropHandler struct {
	cropService    *services.CropService
	storageService *services.StorageService
}

func NewCropHandler(cropService *services.CropService, storageService *services.StorageService) *CropHandler {
	return &CropHandler{
		cropService:    cropService,
		storageService: storageService,
	}
}

// GET /crops
func (h *CropHandler) ListCrops(c *gin.Context) {
	farmerID, ok := h.callerID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	result, err := h.cropService.ListByFarmer(farmerID, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.PaginatedResponse(c, *result)
}

// POST /crops
func (h *CropHandler) CreateCrop(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	farmerID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req services.CreateCropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	crop, err := h.cropService.CreateCrop(farmerID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCropCreated),
		"crop":    crop,
	})
}

// GET /crops/:id
func (h *CropHandler) GetCrop(c *gin.Context) {
	farmerID, ok := h.callerID(c)
	if !ok {
		return
	}

	cropID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid crop id", nil)
		return
	}

	crop, err := h.cropService.GetCrop(farmerID, cropID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, crop)
}

// PUT /crops/:id
func (h *CropHandler) UpdateCrop(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	farmerID, ok := h.callerID(c)
	if !ok {
		return
	}

	cropID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid crop id", nil)
		return
	}

	var req services.UpdateCropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	crop, err := h.cropService.UpdateCrop(farmerID, cropID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, crop)
}

// DELETE /crops/:id
func (h *CropHandler) DeleteCrop(c *gin.Context) {
	farmerID, ok := h.callerID(c)
	if !ok {
		return
	}

	cropID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid crop id", nil)
		return
	}

	if err := h.cropService.DeleteCrop(farmerID, cropID); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// POST /crops/:id/image
func (h *CropHandler) UploadCropImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	farmerID, ok := h.callerID(c)
	if !ok {
		return
	}

	cropID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid crop id", nil)
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	options := h.storageService.GetDefaultUploadOptions("crops")
	uploadResult, err := h.storageService.UploadFile(file, header, options)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	imageURL := uploadResult.URL
	crop, err := h.cropService.UpdateCrop(farmerID, cropID, &services.UpdateCropRequest{
		ImageURL: &imageURL,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"crop":    crop,
		"upload":  uploadResult,
	})
}

func (h *CropHandler) callerID(c *gin.Context) (uuid.UUID, bool) {
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
