package usecase

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Kaushallx0/seatxray/internal/seatxray/entity"
	"github.com/spf13/cast"
)

const defaultTerminal = "-"

var offerTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

// CityLookup resolves an airport code to a display city name.
type CityLookup interface {
	LookupCityName(iata string) string
}

// GroupOffers collapses fare offers into one Flight per carrier, flight number and
// departure time, keeping the lowest price seen for each cabin. Offers without an itinerary,
// a segment, a cabin or a readable departure time are skipped and counted. The result is
// sorted by departure time; flights departing at the same instant keep input order.
func GroupOffers(resp *entity.SearchResponse, cities CityLookup) ([]entity.Flight, int) {
	flights := make([]entity.Flight, 0)
	if resp == nil || len(resp.Data) == 0 {
		return flights, 0
	}

	index := make(map[string]int, len(resp.Data))
	skipped := 0
	for _, offer := range resp.Data {
		first, last, ok := offerSegments(offer)
		if !ok {
			skipped++
			continue
		}
		cabin, ok := offerCabin(offer)
		if !ok {
			skipped++
			continue
		}

		key := flightKey(first)
		i, seen := index[key]
		if !seen {
			flight, ok := newFlight(key, offer, first, last, resp.Dictionaries, cities)
			if !ok {
				skipped++
				continue
			}
			i = len(flights)
			index[key] = i
			flights = append(flights, flight)
		}

		upsertCabinPrice(flights[i].Pricing, cabin, offer.Price)
		flights[i].Offers = append(flights[i].Offers, offer)
	}

	sort.SliceStable(flights, func(i, j int) bool {
		return flights[i].Route.Departure.Time.Before(flights[j].Route.Departure.Time)
	})

	return flights, skipped
}

func flightKey(seg entity.Segment) string {
	return seg.CarrierCode + "_" + seg.Number + "_" + seg.Departure.At
}

// offerSegments returns the first and last segment of the first itinerary only; round
// trips are not modelled.
func offerSegments(offer entity.Offer) (entity.Segment, entity.Segment, bool) {
	if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
		return entity.Segment{}, entity.Segment{}, false
	}
	segments := offer.Itineraries[0].Segments
	first := segments[0]
	if first.CarrierCode == "" || first.Number == "" || first.Departure.At == "" {
		return entity.Segment{}, entity.Segment{}, false
	}
	return first, segments[len(segments)-1], true
}

// offerCabin labels the whole offer with the cabin of the first traveler's first segment.
func offerCabin(offer entity.Offer) (entity.Cabin, bool) {
	if len(offer.TravelerPricings) == 0 || len(offer.TravelerPricings[0].FareDetailsBySegment) == 0 {
		return "", false
	}
	cabin := strings.ToUpper(strings.TrimSpace(offer.TravelerPricings[0].FareDetailsBySegment[0].Cabin))
	if cabin == "" {
		return "", false
	}
	return entity.Cabin(cabin), true
}

func newFlight(key string, offer entity.Offer, first, last entity.Segment, dict *entity.Dictionaries, cities CityLookup) (entity.Flight, bool) {
	departAt, ok := parseOfferTime(first.Departure.At)
	if !ok {
		return entity.Flight{}, false
	}
	arriveAt, _ := parseOfferTime(last.Arrival.At)

	daysDiff := 0
	if !arriveAt.IsZero() {
		daysDiff = calendarDaysBetween(departAt, arriveAt)
	}

	duration := parseISODuration(offer.Itineraries[0].Duration)

	return entity.Flight{
		ID: key,
		Identity: entity.FlightIdentity{
			CarrierCode:  first.CarrierCode,
			CarrierName:  dict.CarrierName(first.CarrierCode),
			FlightNumber: first.Number,
			AircraftCode: first.Aircraft.Code,
			AircraftName: dict.AircraftName(first.Aircraft.Code),
		},
		Route: entity.Route{
			Departure:      routePoint(first.Departure, departAt, dict, cities),
			Arrival:        routePoint(last.Arrival, arriveAt, dict, cities),
			DurationMinute: duration,
			Duration:       formatDuration(duration),
			DaysDiff:       daysDiff,
		},
		Pricing: make(map[entity.Cabin]entity.CabinPrice),
		Offers:  make([]entity.Offer, 0, 1),
	}, true
}

func routePoint(ep entity.Endpoint, at time.Time, dict *entity.Dictionaries, cities CityLookup) entity.RoutePoint {
	terminal := ep.Terminal
	if terminal == "" {
		terminal = defaultTerminal
	}
	city := ep.IATACode
	if cities != nil {
		city = cities.LookupCityName(ep.IATACode)
	}
	return entity.RoutePoint{
		IATA:     ep.IATACode,
		City:     city,
		CityCode: dict.CityCode(ep.IATACode),
		Terminal: terminal,
		At:       ep.At,
		Time:     at,
	}
}

// upsertCabinPrice keeps the cheapest parsed amount per cabin. An unparseable amount only
// fills a cabin nothing else has priced yet, and any parsed amount replaces it.
func upsertCabinPrice(pricing map[entity.Cabin]entity.CabinPrice, cabin entity.Cabin, price entity.OfferPrice) {
	candidate := newCabinPrice(price)
	current, ok := pricing[cabin]
	switch {
	case !ok:
		pricing[cabin] = candidate
	case candidate.Valid && (!current.Valid || candidate.Amount < current.Amount):
		pricing[cabin] = candidate
	}
}

func newCabinPrice(price entity.OfferPrice) entity.CabinPrice {
	raw := strings.TrimSpace(string(price.Total))
	amount, err := cast.ToFloat64E(raw)
	if err != nil || raw == "" || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return entity.CabinPrice{
			Currency:  price.Currency,
			Formatted: formatRawPrice(raw, price.Currency),
		}
	}
	return entity.CabinPrice{
		Amount:    amount,
		Currency:  price.Currency,
		Formatted: formatPrice(amount, price.Currency),
		Valid:     true,
	}
}

func parseOfferTime(value string) (time.Time, bool) {
	for _, layout := range offerTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// calendarDaysBetween compares the wall-clock dates, each in its own airport's local time.
func calendarDaysBetween(from, to time.Time) int {
	fromDate := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDate := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDate.Sub(fromDate).Hours() / 24)
}
