// internal/services/weather_service_test.go
package services

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrohaat/agrohaat-backend/internal/apperrors"
	"github.com/agrohaat/agrohaat-backend/internal/config"
)

func weatherTestConfig(geocodingURL, forecastURL string) *config.Config {
	return &config.Config{
		Weather: config.WeatherConfig{
			GeocodingBaseURL: geocodingURL,
			ForecastBaseURL:  forecastURL,
		},
	}
}

func TestGetForecast(t *testing.T) {
	geocoding := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Rajshahi", r.URL.Query().Get("name"))
		w.Write([]byte(`{"results":[{"name":"Rajshahi","latitude":24.37,"longitude":88.6,"country":"Bangladesh","admin1":"Rajshahi Division"}]}`))
	}))
	defer geocoding.Close()

	forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))
		w.Write([]byte(`{
			"current_weather": {"temperature": 31.4, "windspeed": 7.2, "weathercode": 2, "time": "2026-08-31T12:00"},
			"daily": {
				"time": ["2026-08-31", "2026-09-01"],
				"temperature_2m_max": [33.1, 32.5],
				"temperature_2m_min": [26.0, 25.7],
				"precipitation_sum": [0.0, 4.2],
				"weathercode": [2, 61]
			}
		}`))
	}))
	defer forecast.Close()

	svc := NewWeatherService(weatherTestConfig(geocoding.URL, forecast.URL))

	report, err := svc.GetForecast("Rajshahi")
	require.NoError(t, err)
	assert.Equal(t, "Rajshahi", report.Location.Name)
	assert.Equal(t, "Bangladesh", report.Location.Country)
	assert.Equal(t, 31.4, report.Current.Temperature)
	assert.Len(t, report.Daily.Time, 2)
	assert.Equal(t, 4.2, report.Daily.PrecipitationSum[1])
}

func TestGetForecastUnknownLocation(t *testing.T) {
	geocoding := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer geocoding.Close()

	svc := NewWeatherService(weatherTestConfig(geocoding.URL, geocoding.URL))

	_, err := svc.GetForecast("Nowhereville")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestGetForecastUpstreamFailure(t *testing.T) {
	geocoding := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer geocoding.Close()

	svc := NewWeatherService(weatherTestConfig(geocoding.URL, geocoding.URL))

	_, err := svc.GetForecast("Rajshahi")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUpstream))
}
