package factors

import (
	"context"
	"fmt"
	"net/http"
)

const retrogradeBaseURL = "https://mercuryretrogradeapi.com"

// RetrogradeClient asks whether Mercury is currently retrograde
type RetrogradeClient struct {
	userAgent  string
	httpClient *http.Client
	baseURL    string
}

// NewRetrogradeClient creates a retrograde client
func NewRetrogradeClient(userAgent string) *RetrogradeClient {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &RetrogradeClient{
		userAgent:  userAgent,
		httpClient: newHTTPClient(),
		baseURL:    retrogradeBaseURL,
	}
}

type retrogradeResponse struct {
	IsRetrograde *bool `json:"is_retrograde"`
}

// Retrograde returns the current retrograde flag
func (c *RetrogradeClient) Retrograde(ctx context.Context) (bool, error) {
	var resp retrogradeResponse
	if err := getJSON(ctx, c.httpClient, c.baseURL, c.userAgent, &resp); err != nil {
		return false, fmt.Errorf("fetching retrograde state: %w", err)
	}
	if resp.IsRetrograde == nil {
		return false, fmt.Errorf("response missing is_retrograde")
	}
	return *resp.IsRetrograde, nil
}
