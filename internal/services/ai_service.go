// internal/services/ai_service.go
package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/agrohaat/agrohaat-backend/internal/apperrors"
	"github.com/agrohaat/agrohaat-backend/internal/config"
	"github.com/agrohaat/agrohaat-backend/internal/models"
)

// AIService calls the generative AI API for disease detection and crop
// planning. The model is asked for strict JSON; anything it wraps around the
// object is stripped before parsing, and a response that still will not parse
// is surfaced as an upstream failure, never fabricated.
type AIService struct {
	db         *gorm.DB
	config     *config.Config
	httpClient *http.Client
}

type DiseaseAnalysis struct {
	Disease struct {
		Name               string   `json:"name"`
		Confidence         string   `json:"confidence"`
		Description        string   `json:"description"`
		Symptoms           []string `json:"symptoms"`
		Treatment          []string `json:"treatment"`
		PreventiveMeasures []string `json:"preventiveMeasures"`
	} `json:"disease"`
	Analysis struct {
		MatchedSymptoms []string `json:"matchedSymptoms"`
		Severity        string   `json:"severity"`
		SpreadRisk      string   `json:"spreadRisk"`
	} `json:"analysis"`
	Recommendations struct {
		Immediate []string `json:"immediate"`
		LongTerm  []string `json:"longTerm"`
	} `json:"recommendations"`
}

type CropPlanningRequest struct {
	FieldSize         float64 `json:"field_size" validate:"required,gt=0"`
	SoilType          string  `json:"soil_type" validate:"required"`
	ClimateZone       string  `json:"climate_zone" validate:"required"`
	WaterAvailability string  `json:"water_availability" validate:"required"`
}

type CropPlan struct {
	CropSuggestions []struct {
		Name          string `json:"name"`
		Confidence    string `json:"confidence"`
		Description   string `json:"description"`
		ExpectedYield string `json:"expectedYield"`
		Requirements  struct {
			Soil    string `json:"soil"`
			Water   string `json:"water"`
			Climate string `json:"climate"`
		} `json:"requirements"`
		Schedule struct {
			PlantingTime string `json:"plantingTime"`
			HarvestTime  string `json:"harvestTime"`
		} `json:"schedule"`
	} `json:"cropSuggestions"`
	RotationPlan         []string `json:"rotationPlan"`
	ResourceRequirements struct {
		Water      string `json:"water"`
		Fertilizer string `json:"fertilizer"`
		Labor      string `json:"labor"`
	} `json:"resourceRequirements"`
}

// generateContent request/response shapes for the REST API.
type generateContentRequest struct {
	Contents []aiContent `json:"contents"`
}

type aiContent struct {
	Parts []aiPart `json:"parts"`
}

type aiPart struct {
	Text       string        `json:"text,omitempty"`
	InlineData *aiInlineData `json:"inline_data,omitempty"`
}

type aiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func NewAIService(db *gorm.DB, config *config.Config) *AIService {
	return &AIService{
		db:     db,
		config: config,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

const diseaseSystemPrompt = `You are an expert agricultural disease detection system. Your task is to analyze the provided image and symptoms to identify crop diseases.

IMPORTANT: You must respond with valid JSON only, following exactly this structure:

{
  "disease": {
    "name": "Disease name",
    "confidence": "High/Medium/Low",
    "description": "Brief description of the disease",
    "symptoms": ["symptom1", "symptom2"],
    "treatment": ["treatment1", "treatment2"],
    "preventiveMeasures": ["measure1", "measure2"]
  },
  "analysis": {
    "matchedSymptoms": ["matched1", "matched2"],
    "severity": "High/Medium/Low",
    "spreadRisk": "High/Medium/Low"
  },
  "recommendations": {
    "immediate": ["action1", "action2"],
    "longTerm": ["strategy1", "strategy2"]
  }
}

Rules:
1. Respond ONLY with the JSON object, no additional text
2. Ensure all arrays have at least 2 items
3. Use only High/Medium/Low for confidence, severity, and spreadRisk fields
4. Keep descriptions concise but informative
5. If you cannot identify the disease with certainty, set confidence to "Low"`

const cropPlanningSystemPrompt = `You are an agricultural planning expert. Your task is to analyze the given field details and provide recommendations for crop planning.

IMPORTANT: You must respond with valid JSON only, following exactly this structure:

{
  "cropSuggestions": [
    {
      "name": "Crop name",
      "confidence": "High/Medium/Low",
      "description": "Brief description of why this crop is suitable",
      "expectedYield": "Expected yield per acre/hectare",
      "requirements": {
        "soil": "Soil requirements",
        "water": "Water requirements",
        "climate": "Climate requirements"
      },
      "schedule": {
        "plantingTime": "When to plant",
        "harvestTime": "When to harvest"
      }
    }
  ],
  "rotationPlan": ["Season 1: Crop", "Season 2: Crop"],
  "resourceRequirements": {
    "water": "Water requirements per season",
    "fertilizer": "Fertilizer requirements",
    "labor": "Labor requirements"
  }
}

Rules:
1. Respond ONLY with the JSON object, no additional text
2. Suggest at least 2 suitable crops based on the conditions
3. Use only High/Medium/Low for confidence
4. Consider local climate and seasonal patterns
5. Include sustainable farming practices in recommendations`

// AnalyzeCropDisease sends the crop image and reported symptoms to the model,
// parses its JSON verdict and records it as a DiseaseReport.
func (s *AIService) AnalyzeCropDisease(farmerID uuid.UUID, cropID *uuid.UUID, imageBytes []byte, mimeType, symptoms, imageURL, lang string) (*DiseaseAnalysis, *models.DiseaseReport, error) {
	prompt := fmt.Sprintf("%s\n\nAnalyze this case:\n- Image: [Crop image provided]\n- Reported Symptoms: %s\n\nRemember: Respond ONLY with the JSON object, no additional text or explanations.",
		diseaseSystemPrompt, symptoms)
	if lang == "bn" {
		prompt += "\n\nWrite all human-readable values in Bengali (বাংলা)."
	}

	reqBody := generateContentRequest{
		Contents: []aiContent{{
			Parts: []aiPart{
				{Text: prompt},
				{InlineData: &aiInlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(imageBytes),
				}},
			},
		}},
	}

	text, err := s.generateWithRetry(reqBody)
	if err != nil {
		return nil, nil, err
	}

	jsonStr, err := extractJSONObject(text)
	if err != nil {
		logrus.WithField("response", text).Warn("AI disease response contained no JSON object")
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}

	var analysis DiseaseAnalysis
	if err := json.Unmarshal([]byte(jsonStr), &analysis); err != nil {
		return nil, nil, fmt.Errorf("%w: failed to parse model response: %v", apperrors.ErrUpstream, err)
	}
	if analysis.Disease.Name == "" {
		return nil, nil, fmt.Errorf("%w: model response missing disease verdict", apperrors.ErrUpstream)
	}

	var rawResult models.JSONB
	json.Unmarshal([]byte(jsonStr), &rawResult)

	report := &models.DiseaseReport{
		FarmerID:         farmerID,
		CropID:           cropID,
		ImageURL:         imageURL,
		ReportedSymptoms: symptoms,
		DiseaseName:      analysis.Disease.Name,
		Confidence:       analysis.Disease.Confidence,
		Severity:         analysis.Analysis.Severity,
		MatchedSymptoms:  analysis.Analysis.MatchedSymptoms,
		Treatments:       analysis.Disease.Treatment,
		Result:           rawResult,
	}

	if err := s.db.Create(report).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to save disease report: %w", err)
	}

	// A confident verdict flips the linked crop's health record.
	if cropID != nil && analysis.Disease.Confidence != "Low" {
		if err := s.db.Model(&models.Crop{}).
			Where("id = ? AND farmer_id = ?", *cropID, farmerID).
			Update("health_status", models.HealthStatusDiseased).Error; err != nil {
			logrus.WithError(err).Warn("Failed to update crop health status")
		}
	}

	logrus.WithFields(logrus.Fields{
		"farmer_id": farmerID,
		"disease":   analysis.Disease.Name,
		"severity":  analysis.Analysis.Severity,
	}).Info("Disease analysis completed")

	return &analysis, report, nil
}

// GetCropPlanningRecommendations asks the model for a field plan. Nothing is
// persisted; the plan is advisory.
func (s *AIService) GetCropPlanningRecommendations(req *CropPlanningRequest, lang string) (*CropPlan, error) {
	prompt := fmt.Sprintf("%s\n\nAnalyze these field conditions:\n- Field Size: %.2f acres\n- Soil Type: %s\n- Climate Zone: %s\n- Water Availability: %s\n\nRemember: Respond ONLY with the JSON object, no additional text.",
		cropPlanningSystemPrompt, req.FieldSize, req.SoilType, req.ClimateZone, req.WaterAvailability)
	if lang == "bn" {
		prompt += "\n\nWrite all human-readable values in Bengali (বাংলা)."
	}

	reqBody := generateContentRequest{
		Contents: []aiContent{{Parts: []aiPart{{Text: prompt}}}},
	}

	text, err := s.generateWithRetry(reqBody)
	if err != nil {
		return nil, err
	}

	jsonStr, err := extractJSONObject(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}

	var plan CropPlan
	if err := json.Unmarshal([]byte(jsonStr), &plan); err != nil {
		return nil, fmt.Errorf("%w: failed to parse model response: %v", apperrors.ErrUpstream, err)
	}
	if len(plan.CropSuggestions) == 0 {
		return nil, fmt.Errorf("%w: model response missing crop suggestions", apperrors.ErrUpstream)
	}

	return &plan, nil
}

// ListDiseaseReports returns a farmer's past analyses, newest first.
func (s *AIService) ListDiseaseReports(farmerID uuid.UUID, limit int) ([]models.DiseaseReport, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var reports []models.DiseaseReport
	err := s.db.Where("farmer_id = ?", farmerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list disease reports: %w", err)
	}
	return reports, nil
}

// generateWithRetry calls generateContent, retrying with exponential backoff
// only when the model reports overload (503). Other failures fail fast.
func (s *AIService) generateWithRetry(reqBody generateContentRequest) (string, error) {
	if s.config.AI.APIKey == "" {
		return "", fmt.Errorf("%w: AI API key not configured", apperrors.ErrUpstream)
	}

	var lastErr error
	delay := time.Duration(s.config.AI.RetryDelay) * time.Millisecond

	for attempt := 0; attempt < s.config.AI.MaxRetries; attempt++ {
		text, err := s.generate(reqBody)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !isOverloaded(err) {
			return "", err
		}
		if attempt < s.config.AI.MaxRetries-1 {
			time.Sleep(delay * (1 << attempt))
		}
	}

	return "", lastErr
}

func (s *AIService) generate(reqBody generateContentRequest) (string, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(s.config.AI.BaseURL, "/"), s.config.AI.Model, s.config.AI.APIKey)

	resp, err := s.httpClient.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", apperrors.ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: model returned status %d: %s", apperrors.ErrUpstream, resp.StatusCode, string(body))
	}

	var result generateContentResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", apperrors.ErrUpstream, err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("%w: model error %d: %s", apperrors.ErrUpstream, result.Error.Code, result.Error.Message)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty model response", apperrors.ErrUpstream)
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}

func isOverloaded(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "503") || strings.Contains(msg, "overloaded")
}

// extractJSONObject strips any text the model wrapped around the JSON object.
func extractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return text[start : end+1], nil
}
