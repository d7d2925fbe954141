// internal/handlers/ai.go
package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agrohaat/agrohaat-backend/internal/i18n"
	"github.com/agrohaat/agrohaat-backend/internal/services"
	"github.com/agrohaat/agrohaat-backend/internal/utils"
)

type AIHandler struct {
	aiService      *services.AIService
	storageService *services.StorageService
}

func NewAIHandler(aiService *services.AIService, storageService *services.StorageService) *AIHandler {
	return &AIHandler{
		aiService:      aiService,
		storageService: storageService,
	}
}

// POST /ai/disease-detection
//
// Multipart form: image (required), symptoms (required), crop_id (optional).
func (h *AIHandler) DiseaseDetection(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	farmerID, ok := h.callerID(c)
	if !ok {
		return
	}

	symptoms := c.PostForm("symptoms")
	if symptoms == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "symptoms"), nil)
		return
	}

	var cropID *uuid.UUID
	if raw := c.PostForm("crop_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			utils.BadRequestResponse(c, "invalid crop id", nil)
			return
		}
		cropID = &parsed
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "image"), err.Error())
		return
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	// Keep the analyzed image so the report stays reviewable.
	var imageURL string
	if _, err := file.Seek(0, io.SeekStart); err == nil {
		options := h.storageService.GetDefaultUploadOptions("disease")
		if uploadResult, err := h.storageService.UploadFile(file, header, options); err == nil {
			imageURL = uploadResult.URL
		}
	}

	analysis, report, err := h.aiService.AnalyzeCropDisease(farmerID, cropID, imageBytes, mimeType, symptoms, imageURL, lang)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"analysis":  analysis,
		"report_id": report.ID,
	})
}

// POST /ai/crop-planning
func (h *AIHandler) CropPlanning(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if _, ok := h.callerID(c); !ok {
		return
	}

	var req services.CropPlanningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	plan, err := h.aiService.GetCropPlanningRecommendations(&req, lang)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, plan)
}

// GET /ai/disease-reports
func (h *AIHandler) ListDiseaseReports(c *gin.Context) {
	farmerID, ok := h.callerID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	reports, err := h.aiService.ListDiseaseReports(farmerID, params.Limit)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, reports)
}

func (h *AIHandler) callerID(c *gin.Context) (uuid.UUID, bool) {
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
