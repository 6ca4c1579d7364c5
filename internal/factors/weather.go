package factors

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
)

const weatherBaseURL = "https://api.weather.gov"

// ErrNoForecast is returned when the forecast has no periods
var ErrNoForecast = errors.New("forecast contains no periods")

// WeatherClient reads the current hourly period from the National Weather Service
type WeatherClient struct {
	latitude   float64
	longitude  float64
	userAgent  string
	httpClient *http.Client
	baseURL    string
}

// NewWeatherClient creates a weather client for a location
func NewWeatherClient(latitude, longitude float64, userAgent string) *WeatherClient {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &WeatherClient{
		latitude:   latitude,
		longitude:  longitude,
		userAgent:  userAgent,
		httpClient: newHTTPClient(),
		baseURL:    weatherBaseURL,
	}
}

type pointsResponse struct {
	Properties struct {
		ForecastHourly string `json:"forecastHourly"`
	} `json:"properties"`
}

type forecastResponse struct {
	Properties struct {
		Periods []forecastPeriod `json:"periods"`
	} `json:"properties"`
}

type forecastPeriod struct {
	Temperature                float64 `json:"temperature"`
	TemperatureUnit            string  `json:"temperatureUnit"`
	IsDaytime                  bool    `json:"isDaytime"`
	ShortForecast              string  `json:"shortForecast"`
	ProbabilityOfPrecipitation struct {
		Value *float64 `json:"value"`
	} `json:"probabilityOfPrecipitation"`
}

// Weather fetches the forecast period covering now
func (c *WeatherClient) Weather(ctx context.Context) (Weather, error) {
	pointsURL := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, c.latitude, c.longitude)

	var points pointsResponse
	if err := getJSON(ctx, c.httpClient, pointsURL, c.userAgent, &points); err != nil {
		return Weather{}, fmt.Errorf("resolving forecast office: %w", err)
	}
	if points.Properties.ForecastHourly == "" {
		return Weather{}, fmt.Errorf("points response missing forecastHourly")
	}

	var forecast forecastResponse
	if err := getJSON(ctx, c.httpClient, points.Properties.ForecastHourly, c.userAgent, &forecast); err != nil {
		return Weather{}, fmt.Errorf("fetching hourly forecast: %w", err)
	}
	if len(forecast.Properties.Periods) == 0 {
		return Weather{}, ErrNoForecast
	}

	return forecast.Properties.Periods[0].toWeather(), nil
}

func (p forecastPeriod) toWeather() Weather {
	temp := p.Temperature
	if strings.EqualFold(p.TemperatureUnit, "C") {
		temp = temp*9/5 + 32
	}

	var precip float64
	if p.ProbabilityOfPrecipitation.Value != nil {
		precip = math.Min(math.Max(*p.ProbabilityOfPrecipitation.Value/100, 0), 1)
	}

	return Weather{
		Temperature:              int(math.Round(temp)),
		IsDaytime:                p.IsDaytime,
		PrecipitationProbability: precip,
		ShortForecast:            p.ShortForecast,
	}
}
