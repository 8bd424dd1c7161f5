// Package geocode resolves address strings to coordinates via the
// OpenStreetMap Nominatim API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"github.com/routeviz/go-pathfinding/pkg/routing"
)

var (
	ErrEmptyAddress    = errors.New("geocode: address cannot be empty")
	ErrAddressNotFound = errors.New("geocode: address not found")
	ErrService         = errors.New("geocode: service error")
)

// DefaultServer is the public Nominatim instance.
const DefaultServer = "https://nominatim.openstreetmap.org"

// DefaultUserAgent identifies this application to Nominatim, which rejects
// anonymous clients.
const DefaultUserAgent = "go-pathfinding/0.1.0"

// Client geocodes addresses with an in-memory result cache. Safe for
// concurrent use.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger

	mu    sync.Mutex
	cache map[string]routing.Location
}

func NewClient(baseURL, userAgent string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultServer
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
		cache:      make(map[string]routing.Location),
	}
}

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Geocode resolves address to a Location. Results are cached by the trimmed
// address string for the lifetime of the client.
func (c *Client) Geocode(ctx context.Context, address string) (routing.Location, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return routing.Location{}, ErrEmptyAddress
	}

	c.mu.Lock()
	cached, ok := c.cache[address]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	query := url.Values{
		"q":      {address},
		"format": {"json"},
		"limit":  {"1"},
	}
	endpoint := fmt.Sprintf("%s/search?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return routing.Location{}, fmt.Errorf("%w: building request: %v", ErrService, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return routing.Location{}, fmt.Errorf("%w: %v", ErrService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return routing.Location{}, fmt.Errorf("%w: status %d", ErrService, resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return routing.Location{}, fmt.Errorf("%w: invalid response: %v", ErrService, err)
	}

	if len(results) == 0 {
		return routing.Location{}, fmt.Errorf("%w: %q", ErrAddressNotFound, address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return routing.Location{}, fmt.Errorf("%w: invalid latitude %q", ErrService, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return routing.Location{}, fmt.Errorf("%w: invalid longitude %q", ErrService, results[0].Lon)
	}

	location, err := routing.NewLocation(results[0].DisplayName, lat, lon)
	if err != nil {
		return routing.Location{}, fmt.Errorf("%w: %v", ErrService, err)
	}

	if c.logger != nil {
		c.logger.Debug("address geocoded",
			slog.String("address", address),
			slog.Float64("lat", lat),
			slog.Float64("lon", lon))
	}

	c.mu.Lock()
	c.cache[address] = location
	c.mu.Unlock()

	return location, nil
}
