package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"leadmarket/internal/domain/matching"
	"leadmarket/internal/pkg/config"
	"leadmarket/internal/pkg/errs"

	"golang.org/x/time/rate"
)

var (
	errPostcodeNotFound = errs.New("postcode not found")
	errProviderRequest  = errs.New("postcode provider request failed")
)

// PostcodesIOClient looks up UK postcodes against the postcodes.io API. A
// client-side rate limiter keeps bulk lead imports from hammering the free
// service.
type PostcodesIOClient struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func NewPostcodesIOClient(cfg config.GeoConfig) *PostcodesIOClient {
	return &PostcodesIOClient{
		baseURL: cfg.ProviderURL,
		client:  &http.Client{Timeout: cfg.RequestTimeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1),
	}
}

type postcodeResponse struct {
	Status int `json:"status"`
	Result struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"result"`
}

func (c *PostcodesIOClient) Lookup(ctx context.Context, postcode string) (matching.Coordinates, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return matching.Coordinates{}, errs.Wrap(err, "rate limiter wait")
	}

	endpoint := fmt.Sprintf("%s/postcodes/%s", c.baseURL, url.PathEscape(postcode))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return matching.Coordinates{}, errs.Wrap(err, "build postcode request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return matching.Coordinates{}, errs.Mark(err, errProviderRequest)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return matching.Coordinates{}, errPostcodeNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return matching.Coordinates{}, errs.Wrap(errProviderRequest, fmt.Sprintf("status %d", resp.StatusCode))
	}

	var body postcodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return matching.Coordinates{}, errs.Wrap(err, "decode postcode response")
	}

	return matching.Coordinates{
		Lat: body.Result.Latitude,
		Lng: body.Result.Longitude,
	}, nil
}
