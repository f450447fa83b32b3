package weather

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2/log"
)

const (
	apiBaseURL     = "https://api.openweathermap.org/data/2.5"
	requestTimeout = 5 * time.Second
)

var ErrServiceUnavailable = errors.New("weather service unavailable")

type Weather struct {
	Temperature int    `json:"temperature"`
	Condition   string `json:"condition"`
	Icon        string `json:"icon"`
	Humidity    int    `json:"humidity"`
	Location    string `json:"location"`
	Timestamp   string `json:"timestamp"`
}

type openWeatherMapResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Name string `json:"name"`
	Dt   int64  `json:"dt"`
}

type WeatherService struct {
	client     *resty.Client
	apiKey     string
	defaultLat float64
	defaultLon float64
}

func NewService(apiKey string, defaultLat, defaultLon float64) *WeatherService {
	return &WeatherService{
		client: resty.New().
			SetBaseURL(apiBaseURL).
			SetTimeout(requestTimeout),
		apiKey:     apiKey,
		defaultLat: defaultLat,
		defaultLon: defaultLon,
	}
}

// CurrentWeather proxies OpenWeatherMap. Missing coordinates fall back to
// the configured default location. Every provider failure collapses into
// ErrServiceUnavailable; the caller has no use for the distinction.
func (s *WeatherService) CurrentWeather(lat, lon *float64) (*Weather, error) {
	latitude, longitude := s.defaultLat, s.defaultLon
	if lat != nil {
		latitude = *lat
	}
	if lon != nil {
		longitude = *lon
	}

	var payload openWeatherMapResponse
	resp, err := s.client.R().
		SetQueryParams(map[string]string{
			"lat":   strconv.FormatFloat(latitude, 'f', -1, 64),
			"lon":   strconv.FormatFloat(longitude, 'f', -1, 64),
			"appid": s.apiKey,
			"units": "metric",
		}).
		SetResult(&payload).
		Get("/weather")
	if err != nil {
		log.Warnf("weather request failed: %v", err)
		return nil, ErrServiceUnavailable
	}
	if resp.IsError() {
		log.Warnf("weather API returned %d", resp.StatusCode())
		return nil, ErrServiceUnavailable
	}

	condition, icon := "Unknown", "01d"
	if len(payload.Weather) > 0 {
		condition = payload.Weather[0].Description
		icon = payload.Weather[0].Icon
	}

	return &Weather{
		Temperature: int(math.Round(payload.Main.Temp)),
		Condition:   condition,
		Icon:        icon,
		Humidity:    payload.Main.Humidity,
		Location:    payload.Name,
		Timestamp:   time.Unix(payload.Dt, 0).UTC().Format(time.RFC3339),
	}, nil
}
