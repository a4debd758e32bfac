package giphy

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	apperr "github.com/choosyapp/choosy-server/internal/errors"
)

// Search queries Giphy for gifs matching the query. Results are restricted
// to the G rating and English, matching what the UI presents.
func (c *Client) Search(ctx context.Context, query string, limit, offset int) ([]Gif, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("rating", "g")
	params.Set("lang", "en")

	searchURL := c.baseURL + "/v1/gifs/search?" + params.Encode()

	c.logger.Debug("searching giphy",
		"query", query,
		"limit", limit,
		"offset", offset,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.ProviderFailure("gif provider unreachable").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.ProviderFailure(fmt.Sprintf("gif provider returned status %d", resp.StatusCode))
	}

	var searchResp searchResponse
	if err := json.UnmarshalRead(resp.Body, &searchResp); err != nil {
		return nil, apperr.ProviderFailure("gif provider returned malformed response").WithCause(err)
	}

	c.logger.Debug("giphy search results",
		"query", query,
		"count", len(searchResp.Data),
	)

	return searchResp.Data, nil
}

// GetByID fetches display metadata for a single gif.
// Returns a NOT_FOUND error when Giphy does not know the ID.
func (c *Client) GetByID(ctx context.Context, gifID string) (*Gif, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)

	getURL := c.baseURL + "/v1/gifs/" + url.PathEscape(gifID) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, getURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.ProviderFailure("gif provider unreachable").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperr.NotFoundf("gif %s not found", gifID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperr.ProviderFailure(fmt.Sprintf("gif provider returned status %d", resp.StatusCode))
	}

	var getResp getResponse
	if err := json.UnmarshalRead(resp.Body, &getResp); err != nil {
		return nil, apperr.ProviderFailure("gif provider returned malformed response").WithCause(err)
	}

	return &getResp.Data, nil
}
