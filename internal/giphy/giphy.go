// Package giphy is a minimal client for the Giphy translate API.
package giphy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.giphy.com"

const maxErrorBodyBytes = 4 * 1024

// APIError is a non-2xx answer from the Giphy API. Distinct from the
// no-results case, which is not an error at all.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("giphy API error: status=%d, response=%s", e.StatusCode, e.Body)
}

// translateEnvelope defers decoding of the data field: Giphy answers a
// no-match translate with "data": [] instead of an object.
type translateEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type translateData struct {
	Images struct {
		Original struct {
			URL string `json:"url"`
		} `json:"original"`
	} `json:"images"`
}

// Client queries the Giphy translate endpoint.
type Client struct {
	apiKey     string
	rating     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Giphy client. rating narrows results ("pg" etc).
func NewClient(apiKey, rating string) *Client {
	return &Client{
		apiKey:     apiKey,
		rating:     rating,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Translate looks up a GIF matching the text. Returns the empty string
// when Giphy has no match; a non-2xx answer is an *APIError.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	params := url.Values{}
	params.Set("s", text)
	params.Set("rating", c.rating)
	params.Set("api_key", c.apiKey)

	reqURL := c.baseURL + "/v1/gifs/translate?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("build translate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("query giphy: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var envelope translateEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("decode giphy response: %w", err)
	}

	var data translateData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		// "data": [] or null means no match, not a failure
		return "", nil
	}

	return data.Images.Original.URL, nil
}
