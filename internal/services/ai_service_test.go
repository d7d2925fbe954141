// internal/services/ai_service_test.go
package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrohaat/agrohaat-backend/internal/apperrors"
	"github.com/agrohaat/agrohaat-backend/internal/config"
)

func aiTestConfig(baseURL string) *config.Config {
	return &config.Config{
		AI: config.AIConfig{
			APIKey:     "test-key",
			BaseURL:    baseURL,
			Model:      "gemini-2.5-flash",
			MaxRetries: 3,
			RetryDelay: 1,
		},
	}
}

func modelResponse(text string) string {
	resp := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

const cropPlanJSON = `{
  "cropSuggestions": [
    {"name": "Rice", "confidence": "High", "description": "Suited to the delta",
     "expectedYield": "4 tons/acre",
     "requirements": {"soil": "clay loam", "water": "high", "climate": "tropical"},
     "schedule": {"plantingTime": "June", "harvestTime": "November"}},
    {"name": "Jute", "confidence": "Medium", "description": "Cash crop option",
     "expectedYield": "2 tons/acre",
     "requirements": {"soil": "alluvial", "water": "high", "climate": "humid"},
     "schedule": {"plantingTime": "March", "harvestTime": "July"}}
  ],
  "rotationPlan": ["Season 1: Rice", "Season 2: Jute"],
  "resourceRequirements": {"water": "irrigation canal", "fertilizer": "urea", "labor": "seasonal"}
}`

func TestGetCropPlanningRecommendations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-2.5-flash:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		// The model wraps its JSON in prose; the client must strip it.
		w.Write([]byte(modelResponse("Here is the plan:\n" + cropPlanJSON + "\nGood luck!")))
	}))
	defer server.Close()

	svc := NewAIService(nil, aiTestConfig(server.URL))

	plan, err := svc.GetCropPlanningRecommendations(&CropPlanningRequest{
		FieldSize:         3,
		SoilType:          "clay loam",
		ClimateZone:       "tropical",
		WaterAvailability: "high",
	}, "en")
	require.NoError(t, err)
	require.Len(t, plan.CropSuggestions, 2)
	assert.Equal(t, "Rice", plan.CropSuggestions[0].Name)
	assert.Equal(t, []string{"Season 1: Rice", "Season 2: Jute"}, plan.RotationPlan)
}

func TestGenerateRetriesOnOverload(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":{"code":503,"message":"The model is overloaded.","status":"UNAVAILABLE"}}`))
			return
		}
		w.Write([]byte(modelResponse(cropPlanJSON)))
	}))
	defer server.Close()

	svc := NewAIService(nil, aiTestConfig(server.URL))

	plan, err := svc.GetCropPlanningRecommendations(&CropPlanningRequest{
		FieldSize: 1, SoilType: "loam", ClimateZone: "tropical", WaterAvailability: "medium",
	}, "en")
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.NotEmpty(t, plan.CropSuggestions)
}

func TestGenerateDoesNotRetryOtherErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"invalid request","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	svc := NewAIService(nil, aiTestConfig(server.URL))

	_, err := svc.GetCropPlanningRecommendations(&CropPlanningRequest{
		FieldSize: 1, SoilType: "loam", ClimateZone: "tropical", WaterAvailability: "medium",
	}, "en")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUpstream))
	assert.Equal(t, 1, attempts, "only overload responses are retried")
}

func TestUnparseableResponseIsUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(modelResponse("I am sorry, I cannot help with that.")))
	}))
	defer server.Close()

	svc := NewAIService(nil, aiTestConfig(server.URL))

	_, err := svc.GetCropPlanningRecommendations(&CropPlanningRequest{
		FieldSize: 1, SoilType: "loam", ClimateZone: "tropical", WaterAvailability: "medium",
	}, "en")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUpstream))
}

func TestMissingAPIKeyFailsFast(t *testing.T) {
	cfg := aiTestConfig("http://localhost:1")
	cfg.AI.APIKey = ""
	svc := NewAIService(nil, cfg)

	_, err := svc.GetCropPlanningRecommendations(&CropPlanningRequest{
		FieldSize: 1, SoilType: "loam", ClimateZone: "tropical", WaterAvailability: "medium",
	}, "en")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUpstream))
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, false},
		{"wrapped in prose", "Sure!\n{\"a\":1}\nDone.", `{"a":1}`, false},
		{"markdown fence", "```json\n{\"a\":1}\n```", `{"a":1}`, false},
		{"no object", "nothing here", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSONObject(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
