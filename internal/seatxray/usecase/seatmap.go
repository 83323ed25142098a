package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Kaushallx0/seatxray/internal/pkg/pkgerror"
	"github.com/Kaushallx0/seatxray/internal/seatxray/directory"
	"github.com/Kaushallx0/seatxray/internal/seatxray/entity"
)

const (
	errSeatMapUnavailable = "seat map unavailable"
	defaultAirportLimit   = 10
)

// SeatMapResult is what the seat map cache holds: the synthesized inventory, never the
// raw documents.
type SeatMapResult struct {
	Inventory  entity.SeatInventory
	Facilities []entity.Facility
}

type SeatMapOutput struct {
	Flight     entity.Flight
	Inventory  entity.SeatInventory
	Facilities []entity.Facility
	Layout     []CabinLayout
	CacheHit   bool
	Errors     []string
}

func (u *Usecase) SeatMap(ctx context.Context, flightID string) (*SeatMapOutput, error) {
	flightID = strings.TrimSpace(flightID)
	if flightID == "" {
		return nil, pkgerror.NewBusiness("flight id is required", pkgerror.CodeInvalidInput)
	}
	flight, ok := u.flights.Get(flightID)
	if !ok {
		return nil, pkgerror.NewBusiness("flight not found, search again", pkgerror.CodeNotFound)
	}

	output := &SeatMapOutput{
		Flight:     flight,
		Inventory:  entity.SeatInventory{},
		Facilities: make([]entity.Facility, 0),
		Layout:     make([]CabinLayout, 0),
		Errors:     make([]string, 0),
	}
	if len(flight.Offers) == 0 {
		output.Errors = append(output.Errors, errSeatMapUnavailable)
		return output, nil
	}

	key := seatMapKey(flight)
	if cached, ok := u.seatMaps.Get(key); ok {
		output.Inventory = cached.Inventory
		output.Facilities = cached.Facilities
		output.Layout = InferGeometry(cached.Inventory)
		output.CacheHit = true
		return output, nil
	}

	resp, err := u.client.SeatMaps(ctx, flight.Offers...)
	if err != nil {
		slog.ErrorContext(ctx, "seat map fetch failed", "flight_id", flightID, "offers", len(flight.Offers), "error", err)
		output.Errors = append(output.Errors, fmt.Sprintf("seat map fetch failed: %v", err))
		return output, nil
	}
	if resp.Skipped > 0 {
		slog.WarnContext(ctx, "skipped malformed seat map documents", "flight_id", flightID, "count", resp.Skipped)
	}

	inventory, facilities := Synthesize(resp.Data)
	if len(inventory) == 0 {
		output.Errors = append(output.Errors, errSeatMapUnavailable)
		return output, nil
	}

	ttl := resp.CacheTTL
	if ttl <= 0 {
		ttl = u.seatMapTTL
	}
	u.seatMaps.Set(key, &SeatMapResult{Inventory: inventory, Facilities: facilities}, ttl)

	output.Inventory = inventory
	output.Facilities = facilities
	output.Layout = InferGeometry(inventory)
	return output, nil
}

// seatMapKey scopes the offer key by flight because offer ids restart at "1" in every search.
func seatMapKey(flight entity.Flight) string {
	return flight.ID + "|" + flight.Offers[0].CacheKey()
}

// SweepSeatMapCache drops expired seat map entries and reports how many were removed.
func (u *Usecase) SweepSeatMapCache(ctx context.Context) int {
	removed := u.seatMaps.SweepExpired()
	flights := u.flights.SweepExpired()
	slog.InfoContext(ctx, "swept expired cache entries", "seatmaps", removed, "flights", flights)
	return removed
}

func (u *Usecase) Airports(_ context.Context, query string, limit int) []directory.Airport {
	if limit <= 0 {
		limit = defaultAirportLimit
	}
	return u.directory.Search(query, limit)
}
