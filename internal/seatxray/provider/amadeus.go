package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Kaushallx0/seatxray/internal/seatxray/entity"
)

const (
	DefaultAmadeusBaseURL = "https://test.api.amadeus.com"

	amadeusTokenPath   = "/v1/security/oauth2/token"
	amadeusSearchPath  = "/v2/shopping/flight-offers"
	amadeusSeatMapPath = "/v1/shopping/seatmaps"
	amadeusContentType = "application/vnd.amadeus+json"

	defaultCurrency  = "JPY"
	defaultMaxOffers = 250
)

type AmadeusConfig struct {
	BaseURL    string
	APIKey     string
	APISecret  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type AmadeusClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     *tokenSource
}

func NewAmadeusClient(cfg AmadeusConfig) *AmadeusClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultAmadeusBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &AmadeusClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     newTokenSource(httpClient, baseURL+amadeusTokenPath, cfg.APIKey, cfg.APISecret),
	}
}

func (a *AmadeusClient) Name() string {
	return "Amadeus"
}

// Authenticate forces a token refresh to verify the configured credentials.
func (a *AmadeusClient) Authenticate(ctx context.Context) error {
	return a.tokens.Refresh(ctx)
}

func (a *AmadeusClient) Search(ctx context.Context, req SearchRequest) (*entity.SearchResponse, error) {
	body, _, err := a.post(ctx, amadeusSearchPath, buildSearchPayload(req), true)
	if err != nil {
		return nil, fmt.Errorf("amadeus search: %w", err)
	}

	resp, err := entity.ParseSearchResponse(body)
	if err != nil {
		return nil, fmt.Errorf("amadeus search: %w", err)
	}
	return resp, nil
}

func (a *AmadeusClient) SeatMaps(ctx context.Context, offers ...entity.Offer) (*entity.SeatMapResponse, error) {
	if len(offers) == 0 {
		return &entity.SeatMapResponse{}, nil
	}

	data := make([]map[string]any, 0, len(offers))
	for _, offer := range offers {
		doc, err := sanitizeOffer(offer)
		if err != nil {
			return nil, fmt.Errorf("amadeus seatmaps: %w", err)
		}
		data = append(data, doc)
	}

	body, header, err := a.post(ctx, amadeusSeatMapPath, map[string]any{"data": data}, false)
	if err != nil {
		return nil, fmt.Errorf("amadeus seatmaps: %w", err)
	}

	resp, err := entity.ParseSeatMapResponse(body)
	if err != nil {
		return nil, fmt.Errorf("amadeus seatmaps: %w", err)
	}
	resp.CacheTTL = cacheTTLFromHeader(header)
	return resp, nil
}

func (a *AmadeusClient) post(ctx context.Context, path string, payload any, methodOverride bool) ([]byte, http.Header, error) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return nil, nil, err
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", amadeusContentType)
	req.Header.Set("Accept", amadeusContentType)
	if methodOverride {
		req.Header.Set("X-HTTP-Method-Override", http.MethodGet)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrTemporary, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		a.tokens.Invalidate()
		return nil, nil, fmt.Errorf("%w: %s", ErrUnauthorized, apiErrorMessage(body, resp.Status))
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= http.StatusInternalServerError:
		return nil, nil, fmt.Errorf("%w: %s", ErrTemporary, apiErrorMessage(body, resp.Status))
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, nil, fmt.Errorf("status %d: %s", resp.StatusCode, apiErrorMessage(body, resp.Status))
	}

	return body, resp.Header, nil
}

func buildSearchPayload(req SearchRequest) map[string]any {
	departureRange := map[string]any{"date": req.Date}
	if t := strings.TrimSpace(req.Time); t != "" {
		if len(t) == 5 {
			t += ":00"
		}
		departureRange["time"] = t
	}
	if req.Window != "" {
		departureRange["timeWindow"] = req.Window
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = defaultCurrency
	}
	maxOffers := req.MaxOffers
	if maxOffers <= 0 {
		maxOffers = defaultMaxOffers
	}

	flightFilters := map[string]any{
		"connectionRestriction": map[string]any{"maxNumberOfConnections": 0},
	}
	if carrier := strings.ToUpper(strings.TrimSpace(req.Carrier)); carrier != "" {
		flightFilters["carrierRestrictions"] = map[string]any{"includedCarrierCodes": []string{carrier}}
	}

	return map[string]any{
		"currencyCode": currency,
		"originDestinations": []map[string]any{{
			"id":                      "1",
			"originLocationCode":      strings.ToUpper(req.Origin),
			"destinationLocationCode": strings.ToUpper(req.Destination),
			"departureDateTimeRange":  departureRange,
		}},
		"travelers": []map[string]any{{"id": "1", "travelerType": "ADULT"}},
		"sources":   []string{"GDS"},
		"searchCriteria": map[string]any{
			"maxFlightOffers": maxOffers,
			"flightFilters":   flightFilters,
		},
	}
}
