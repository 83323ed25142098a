package inbound

import (
	"context"
	"net/http"
	"sort"

	"github.com/Kaushallx0/seatxray/internal/pkg/pkgrouter"
	"github.com/Kaushallx0/seatxray/internal/seatxray/entity"
	"github.com/Kaushallx0/seatxray/internal/seatxray/usecase"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Flights(ctx context.Context, r *http.Request) (any, error) {
	output, err := h.uc.Flights(ctx, parseFlightsInput(r))
	if err != nil {
		return nil, err
	}

	return FlightsResponse{
		Metadata: MetadataResponse{
			Provider:      output.Metadata.Provider,
			TotalOffers:   output.Metadata.TotalOffers,
			TotalFlights:  output.Metadata.TotalFlights,
			SkippedOffers: output.Metadata.SkippedOffers,
			SearchTimeMs:  output.Metadata.SearchTimeMs,
			DepartureTime: output.Metadata.DepartureTime,
			Window:        output.Metadata.Window,
		},
		Flights: mapFlightResponses(output.Flights),
		Errors:  output.Errors,
	}, nil
}

func (h *HTTPEndpoint) SeatMap(ctx context.Context, r *http.Request) (any, error) {
	sizing, err := parseSizing(r)
	if err != nil {
		return nil, err
	}

	output, err := h.uc.SeatMap(ctx, pkgrouter.Param(r, "id"))
	if err != nil {
		return nil, err
	}

	layouts := make([]CabinLayoutResponse, 0, len(output.Layout))
	for _, l := range output.Layout {
		layouts = append(layouts, mapCabinLayout(l, sizing))
	}

	return SeatMapResponse{
		FlightID:   output.Flight.ID,
		CacheHit:   output.CacheHit,
		Seats:      mapSeats(output.Inventory),
		Facilities: mapFacilities(output.Facilities),
		Layout:     layouts,
		Errors:     output.Errors,
	}, nil
}

func (h *HTTPEndpoint) Airports(ctx context.Context, r *http.Request) (any, error) {
	limit, err := parseLimit(r)
	if err != nil {
		return nil, err
	}

	airports := h.uc.Airports(ctx, r.URL.Query().Get("q"), limit)
	resp := make([]AirportResponse, 0, len(airports))
	for _, a := range airports {
		resp = append(resp, AirportResponse{IATA: a.IATA, Name: a.Name, City: a.City, Country: a.Country})
	}
	return resp, nil
}

func (h *HTTPEndpoint) SweepSeatMaps(ctx context.Context, _ *http.Request) (any, error) {
	return SweepResponse{Removed: h.uc.SweepSeatMapCache(ctx)}, nil
}

func mapFlightResponses(flights []entity.Flight) []FlightResponse {
	resp := make([]FlightResponse, 0, len(flights))
	for _, flight := range flights {
		pricing := make([]CabinPriceResponse, 0, len(flight.Pricing))
		for _, cabin := range flight.Cabins() {
			p := flight.Pricing[cabin]
			pricing = append(pricing, CabinPriceResponse{
				Cabin:     string(cabin),
				Amount:    p.Amount,
				Currency:  p.Currency,
				Formatted: p.Formatted,
				Valid:     p.Valid,
			})
		}

		resp = append(resp, FlightResponse{
			ID:           flight.ID,
			Carrier:      CarrierResponse{Code: flight.Identity.CarrierCode, Name: flight.Identity.CarrierName},
			FlightNumber: flight.Identity.FlightNumber,
			Aircraft:     AircraftResponse{Code: flight.Identity.AircraftCode, Name: flight.Identity.AircraftName},
			Departure:    mapRoutePoint(flight.Route.Departure),
			Arrival:      mapRoutePoint(flight.Route.Arrival),
			Duration:     DurationResponse{TotalMinutes: flight.Route.DurationMinute, Formatted: flight.Route.Duration},
			DaysDiff:     flight.Route.DaysDiff,
			Pricing:      pricing,
			OfferCount:   len(flight.Offers),
		})
	}
	return resp
}

func mapSeats(inv entity.SeatInventory) []SeatResponse {
	numbers := make([]string, 0, len(inv))
	for number := range inv {
		numbers = append(numbers, number)
	}
	sort.Slice(numbers, func(i, j int) bool {
		ri, ci := usecase.ParseSeatNumber(numbers[i])
		rj, cj := usecase.ParseSeatNumber(numbers[j])
		if ri != rj {
			return ri < rj
		}
		if ci != cj {
			return ci < cj
		}
		return numbers[i] < numbers[j]
	})

	resp := make([]SeatResponse, 0, len(numbers))
	for _, number := range numbers {
		seat := inv[number]
		row, column := usecase.ParseSeatNumber(number)
		item := SeatResponse{
			Number:          seat.Number,
			Row:             row,
			Column:          column,
			Cabin:           string(seat.CabinOrDefault()),
			Status:          string(seat.Status),
			Characteristics: append([]string{}, seat.CharacteristicsCodes...),
			Coordinates:     CoordinatesResponse{X: seat.Coordinates.X, Y: seat.Coordinates.Y},
		}
		if len(seat.TravelerPricing) > 0 && seat.TravelerPricing[0].Price != nil {
			item.Price = &SeatPriceResponse{
				Amount:   string(seat.TravelerPricing[0].Price.Total),
				Currency: seat.TravelerPricing[0].Price.Currency,
			}
		}
		resp = append(resp, item)
	}
	return resp
}

func mapFacilities(facilities []entity.Facility) []FacilityResponse {
	resp := make([]FacilityResponse, 0, len(facilities))
	for _, f := range facilities {
		resp = append(resp, FacilityResponse{
			Code:        f.Code,
			Row:         f.Row,
			Column:      f.Column,
			Position:    f.Position,
			Coordinates: CoordinatesResponse{X: f.Coordinates.X, Y: f.Coordinates.Y},
		})
	}
	return resp
}

func mapCabinLayout(l usecase.CabinLayout, sizing usecase.Sizing) CabinLayoutResponse {
	rows := make([]RowResponse, 0, len(l.Grid))
	for _, row := range l.Grid {
		cells := make([]*string, 0, len(l.Columns))
		for _, column := range l.Columns {
			if number, ok := row.Seats[column]; ok {
				cells = append(cells, &number)
				continue
			}
			cells = append(cells, nil)
		}
		rows = append(rows, RowResponse{Number: row.Number, Seats: cells})
	}

	return CabinLayoutResponse{
		Cabin:    string(l.Cabin),
		Columns:  l.Columns,
		Aisles:   l.Aisles,
		SeatSize: l.SeatSize(sizing),
		Rows:     rows,
	}
}
