package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kaushallx0/seatxray/internal/pkg/pkgerror"
	"github.com/Kaushallx0/seatxray/internal/pkg/pkgrouter"
	"github.com/Kaushallx0/seatxray/internal/seatxray/directory"
	"github.com/Kaushallx0/seatxray/internal/seatxray/entity"
	"github.com/Kaushallx0/seatxray/internal/seatxray/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUsecase struct {
	mock.Mock
}

func (m *mockUsecase) Flights(ctx context.Context, in usecase.FlightsInput) (*usecase.FlightsOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.FlightsOutput), args.Error(1)
}

func (m *mockUsecase) SeatMap(ctx context.Context, flightID string) (*usecase.SeatMapOutput, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SeatMapOutput), args.Error(1)
}

func (m *mockUsecase) SweepSeatMapCache(ctx context.Context) int {
	return m.Called(ctx).Int(0)
}

func (m *mockUsecase) Airports(ctx context.Context, query string, limit int) []directory.Airport {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]directory.Airport)
}

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func newTestServer(m *mockUsecase) http.Handler {
	r := pkgrouter.NewRouter(fixedID("req-1"))
	RegisterHTTPEndpoint(r, m)
	return r
}

func do(t *testing.T, h http.Handler, method, target string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHTTPEndpoint_Flights(t *testing.T) {
	m := &mockUsecase{}
	departAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	m.On("Flights", mock.Anything, usecase.FlightsInput{
		Origin: "HND", Destination: "ITM", Date: "2025-03-01", Time: "08:00", Window: "4H",
	}).Return(&usecase.FlightsOutput{
		Flights: []entity.Flight{{
			ID:       "NH_1_2025-03-01T10:00:00",
			Identity: entity.FlightIdentity{CarrierCode: "NH", CarrierName: "ANA", FlightNumber: "1"},
			Route: entity.Route{
				Departure: entity.RoutePoint{IATA: "HND", City: "Tokyo", Terminal: "2", At: "2025-03-01T10:00:00", Time: departAt},
				Duration:  "1h 5m",
			},
			Pricing: map[entity.Cabin]entity.CabinPrice{
				entity.CabinEconomy:  {Amount: 10000, Currency: "JPY", Formatted: "¥10,000", Valid: true},
				entity.CabinBusiness: {Amount: 40000, Currency: "JPY", Formatted: "¥40,000", Valid: true},
				"SUITE":              {Amount: 90000, Currency: "JPY", Formatted: "¥90,000", Valid: true},
			},
			Offers: make([]entity.Offer, 2),
		}},
		Metadata: usecase.SearchMetadata{Provider: "Demo", TotalFlights: 1},
		Errors:   []string{},
	}, nil)

	status, body := do(t, newTestServer(m), http.MethodGet, "/flights?origin=HND&destination=ITM&date=2025-03-01&time=08:00&window=4H")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "req-1", body["request_id"])
	data := body["data"].(map[string]any)
	flights := data["flights"].([]any)
	require.Len(t, flights, 1)
	flight := flights[0].(map[string]any)
	assert.Equal(t, "NH_1_2025-03-01T10:00:00", flight["id"])
	assert.Equal(t, float64(2), flight["offer_count"])
	assert.Equal(t, "10:00", flight["departure"].(map[string]any)["time"])
	pricing := flight["pricing"].([]any)
	require.Len(t, pricing, 3)
	assert.Equal(t, "BUSINESS", pricing[0].(map[string]any)["cabin"])
	assert.Equal(t, "ECONOMY", pricing[1].(map[string]any)["cabin"])
	assert.Equal(t, "SUITE", pricing[2].(map[string]any)["cabin"])
	assert.Equal(t, "Demo", data["metadata"].(map[string]any)["provider"])
	m.AssertExpectations(t)
}

func TestHTTPEndpoint_FlightsInvalidInput(t *testing.T) {
	m := &mockUsecase{}
	m.On("Flights", mock.Anything, mock.Anything).
		Return(nil, pkgerror.NewBusiness("date is required", pkgerror.CodeInvalidInput))

	status, body := do(t, newTestServer(m), http.MethodGet, "/flights?origin=HND&destination=ITM")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "date is required", body["error"])
}

func TestHTTPEndpoint_SeatMap(t *testing.T) {
	m := &mockUsecase{}
	inv := entity.SeatInventory{
		"10A": {Number: "10A", CharacteristicsCodes: []string{"W"}, Status: entity.SeatStatusAvailable},
		"9C":  {Number: "9C", CharacteristicsCodes: []string{"A"}, Status: entity.SeatStatusOccupied},
		"9A": {Number: "9A", Status: entity.SeatStatusBlocked, TravelerPricing: []entity.SeatPricing{{
			SeatAvailabilityStatus: entity.SeatStatusBlocked,
			Price:                  &entity.SeatPrice{Currency: "JPY", Total: "2000"},
		}}},
	}
	m.On("SeatMap", mock.Anything, "NH_1_2025-03-01T10:00:00").Return(&usecase.SeatMapOutput{
		Flight:     entity.Flight{ID: "NH_1_2025-03-01T10:00:00"},
		Inventory:  inv,
		Facilities: []entity.Facility{{Code: "G", Row: "1"}},
		Layout:     usecase.InferGeometry(inv),
		Errors:     []string{},
	}, nil)

	status, body := do(t, newTestServer(m), http.MethodGet, "/flights/NH_1_2025-03-01T10:00:00/seatmap?mobile=true")

	assert.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	seats := data["seats"].([]any)
	require.Len(t, seats, 3)
	numbers := make([]string, 0, len(seats))
	for _, s := range seats {
		numbers = append(numbers, s.(map[string]any)["number"].(string))
	}
	assert.Equal(t, []string{"9A", "9C", "10A"}, numbers)
	assert.Equal(t, "2000", seats[0].(map[string]any)["price"].(map[string]any)["amount"])

	layout := data["layout"].([]any)
	require.Len(t, layout, 1)
	cabin := layout[0].(map[string]any)
	assert.Equal(t, float64(usecase.SeatSize(usecase.MobileSizing, 2, 0)), cabin["seat_size"])
	rows := cabin["rows"].([]any)
	require.Len(t, rows, 2)
	assert.Equal(t, []any{"10A", nil}, rows[1].(map[string]any)["seats"])
}

func TestHTTPEndpoint_SeatMapErrors(t *testing.T) {
	m := &mockUsecase{}
	m.On("SeatMap", mock.Anything, "gone").
		Return(nil, pkgerror.NewBusiness("flight not found, search again", pkgerror.CodeNotFound))
	h := newTestServer(m)

	status, body := do(t, h, http.MethodGet, "/flights/gone/seatmap")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "flight not found, search again", body["error"])

	for _, query := range []string{"width=abc", "width=10", "mobile=maybe"} {
		status, _ := do(t, h, http.MethodGet, "/flights/gone/seatmap?"+query)
		assert.Equal(t, http.StatusBadRequest, status, query)
	}
}

func TestHTTPEndpoint_Airports(t *testing.T) {
	m := &mockUsecase{}
	m.On("Airports", mock.Anything, "tok", 5).Return([]directory.Airport{{IATA: "HND", Name: "Haneda", City: "Tokyo"}})

	status, body := do(t, newTestServer(m), http.MethodGet, "/airports?q=tok&limit=5")

	assert.Equal(t, http.StatusOK, status)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "HND", data[0].(map[string]any)["iata"])

	status, _ = do(t, newTestServer(m), http.MethodGet, "/airports?q=tok&limit=-1")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHTTPEndpoint_SweepSeatMaps(t *testing.T) {
	m := &mockUsecase{}
	m.On("SweepSeatMapCache", mock.Anything).Return(3)
	h := newTestServer(m)

	status, body := do(t, h, http.MethodPost, "/seatmaps/sweep")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(3), body["data"].(map[string]any)["removed"])

	status, _ = do(t, h, http.MethodGet, "/seatmaps/sweep")
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestParseFlightsInput(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/flights?origin=+hnd+&dest=itm&carrier=NH&currency=usd", nil)
	in := parseFlightsInput(req)
	assert.Equal(t, "hnd", in.Origin)
	assert.Equal(t, "itm", in.Destination)
	assert.Equal(t, "NH", in.Carrier)
	assert.Equal(t, "usd", in.Currency)
}
