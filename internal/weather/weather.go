package weather

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Summary is the decorative weather block shown on the dashboard.
type Summary struct {
	City         string  `json:"city"`
	TemperatureC float64 `json:"temperature_c"`
	Description  string  `json:"description"`
	Icon         string  `json:"icon,omitempty"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClientFromEnv returns nil when OPENWEATHER_API_KEY is not set;
// callers treat a nil client as "weather disabled".
func NewClientFromEnv() *Client {
	apiKey := os.Getenv("OPENWEATHER_API_KEY")
	if apiKey == "" {
		return nil
	}

	baseURL := os.Getenv("OPENWEATHER_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return NewClient(baseURL, apiKey)
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type openWeatherResponse struct {
	Name string `json:"name"`
	Main *struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

func (c *Client) CurrentWeather(city string) (*Summary, error) {
	if city == "" {
		return nil, errors.New("city is required")
	}

	requestURL := fmt.Sprintf("%s/weather?q=%s&appid=%s&units=metric",
		c.baseURL, url.QueryEscape(city), c.apiKey)

	resp, err := c.httpClient.Get(requestURL)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("unexpected status code: " + resp.Status)
	}

	var body openWeatherResponse

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	if body.Main == nil {
		return nil, nil
	}

	summary := &Summary{
		City:         body.Name,
		TemperatureC: body.Main.Temp,
	}

	if summary.City == "" {
		summary.City = city
	}

	if len(body.Weather) > 0 {
		summary.Description = body.Weather[0].Description
		summary.Icon = body.Weather[0].Icon
	}

	return summary, nil
}
