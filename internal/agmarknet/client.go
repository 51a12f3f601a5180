package agmarknet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"kisan/internal/model"
	"kisan/internal/provider"
)

const (
	apiBase = "https://api.data.gov.in"
	// Current daily price of various commodities from various markets (mandi).
	dailyPriceResource = "9ef84268-d588-465a-a308-a864a43d0070"
)

// Client wraps the data.gov.in Agmarknet daily price API.
type Client struct {
	apiKey     string
	state      string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a new Agmarknet API client.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    apiBase,
		httpClient: &http.Client{Timeout: 8 * time.Second},
		now:        time.Now,
	}
}

// WithBaseURL points the client at another host. Used by tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

// WithState narrows queries to one state, e.g. "Karnataka". Empty means
// every state.
func (c *Client) WithState(state string) *Client {
	c.state = strings.TrimSpace(state)
	return c
}

// emojis decorates commodities we know about.
var emojis = map[string]string{
	"tomato":  "🍅",
	"onion":   "🧅",
	"chili":   "🌶️",
	"potato":  "🥔",
	"cabbage": "🥬",
	"carrot":  "🥕",
}

// Prices fetches today's modal prices for a mandi location. Agmarknet quotes
// rupees per quintal; rows are converted to rupees per kg.
func (c *Client) Prices(ctx context.Context, location string) (model.PriceTable, error) {
	if !model.IsLocation(location) {
		return model.PriceTable{}, provider.Errorf("prices", provider.ErrInvalidInput, "unknown location %q", location)
	}

	params := url.Values{}
	params.Set("api-key", c.apiKey)
	params.Set("format", "json")
	params.Set("limit", "100")
	params.Set("filters[district]", location)
	if c.state != "" {
		params.Set("filters[state]", c.state)
	}

	reqURL := fmt.Sprintf("%s/resource/%s?%s", c.baseURL, dailyPriceResource, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return model.PriceTable{}, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.PriceTable{}, provider.Classify("prices", fmt.Errorf("network error: %w", err))
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return model.PriceTable{}, err
	}

	var result priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return model.PriceTable{}, provider.Errorf("prices", provider.ErrUnavailable, "JSON decode error: %w", err)
	}

	rows := toCropPrices(result.Records)
	if len(rows) == 0 {
		return model.PriceTable{}, provider.Errorf("prices", provider.ErrUnavailable, "no prices reported for %s", location)
	}

	return model.PriceTable{
		Location:  location,
		Rows:      rows,
		FetchedAt: c.now(),
	}, nil
}

func statusError(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return provider.Errorf("prices", provider.ErrRateLimited, "API error: status %d", resp.StatusCode)
	case resp.StatusCode == http.StatusBadRequest:
		return provider.Errorf("prices", provider.ErrInvalidInput, "API error: status %d", resp.StatusCode)
	case resp.StatusCode == http.StatusGatewayTimeout:
		return provider.Errorf("prices", provider.ErrTimeout, "API error: status %d", resp.StatusCode)
	default:
		return provider.Errorf("prices", provider.ErrUnavailable, "API error: status %d", resp.StatusCode)
	}
}

// toCropPrices keeps one row per commodity, the one with the highest modal
// price, sorted by name.
func toCropPrices(records []priceRecord) []model.CropPrice {
	best := make(map[string]model.CropPrice)
	for _, r := range records {
		modal, err := strconv.ParseFloat(strings.TrimSpace(r.ModalPrice), 64)
		if err != nil || modal <= 0 {
			continue
		}
		name := strings.TrimSpace(r.Commodity)
		if name == "" {
			continue
		}
		perKg := int(modal/100 + 0.5)
		if existing, ok := best[name]; ok && existing.Price >= perKg {
			continue
		}
		best[name] = model.CropPrice{
			Name:    name,
			Emoji:   emojis[strings.ToLower(name)],
			Price:   perKg,
			Unit:    "kg",
			Quality: strings.TrimSpace(r.Grade),
		}
	}

	rows := make([]model.CropPrice, 0, len(best))
	for _, p := range best {
		rows = append(rows, p)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

// API response types

type priceResponse struct {
	Records []priceRecord `json:"records"`
	Total   int           `json:"total"`
}

type priceRecord struct {
	State       string `json:"state"`
	District    string `json:"district"`
	Market      string `json:"market"`
	Commodity   string `json:"commodity"`
	Variety     string `json:"variety"`
	Grade       string `json:"grade"`
	ArrivalDate string `json:"arrival_date"`
	MinPrice    string `json:"min_price"`
	MaxPrice    string `json:"max_price"`
	ModalPrice  string `json:"modal_price"`
}
