// internal/services/weather_service.go
package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agrohaat/agrohaat-backend/internal/apperrors"
	"github.com/agrohaat/agrohaat-backend/internal/config"
)

// WeatherService proxies the public geocoding and forecast APIs so farmers can
// check conditions by place name.
type WeatherService struct {
	config     *config.Config
	httpClient *http.Client
}

type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1,omitempty"`
}

type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
	Time        string  `json:"time"`
}

type DailyForecast struct {
	Time             []string  `json:"time"`
	TemperatureMax   []float64 `json:"temperature_2m_max"`
	TemperatureMin   []float64 `json:"temperature_2m_min"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
	WeatherCode      []int     `json:"weathercode"`
}

type WeatherReport struct {
	Location Location       `json:"location"`
	Current  CurrentWeather `json:"current"`
	Daily    DailyForecast  `json:"daily"`
}

type geocodingResponse struct {
	Results []Location `json:"results"`
}

type forecastResponse struct {
	CurrentWeather CurrentWeather `json:"current_weather"`
	Daily          DailyForecast  `json:"daily"`
}

func NewWeatherService(config *config.Config) *WeatherService {
	return &WeatherService{
		config: config,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// GetForecast resolves a place name and returns current conditions plus a
// 7-day daily forecast.
func (s *WeatherService) GetForecast(location string) (*WeatherReport, error) {
	loc, err := s.geocode(location)
	if err != nil {
		return nil, err
	}

	forecast, err := s.forecast(loc.Latitude, loc.Longitude)
	if err != nil {
		return nil, err
	}

	return &WeatherReport{
		Location: *loc,
		Current:  forecast.CurrentWeather,
		Daily:    forecast.Daily,
	}, nil
}

func (s *WeatherService) geocode(name string) (*Location, error) {
	endpoint := fmt.Sprintf("%s/search?name=%s&count=1&language=en&format=json",
		strings.TrimRight(s.config.Weather.GeocodingBaseURL, "/"), url.QueryEscape(name))

	var result geocodingResponse
	if err := s.getJSON(endpoint, &result); err != nil {
		return nil, err
	}

	if len(result.Results) == 0 {
		return nil, fmt.Errorf("%w: location %q", apperrors.ErrNotFound, name)
	}

	return &result.Results[0], nil
}

func (s *WeatherService) forecast(lat, lon float64) (*forecastResponse, error) {
	endpoint := fmt.Sprintf(
		"%s/forecast?latitude=%f&longitude=%f&current_weather=true&daily=temperature_2m_max,temperature_2m_min,precipitation_sum,weathercode&forecast_days=7&timezone=auto",
		strings.TrimRight(s.config.Weather.ForecastBaseURL, "/"), lat, lon)

	var result forecastResponse
	if err := s.getJSON(endpoint, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *WeatherService) getJSON(endpoint string, out interface{}) error {
	resp, err := s.httpClient.Get(endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: weather API returned status %d", apperrors.ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode weather response: %v", apperrors.ErrUpstream, err)
	}

	return nil
}
