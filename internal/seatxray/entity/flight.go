package entity

import (
	"sort"
	"time"
)

type Cabin string

const (
	CabinFirst          Cabin = "FIRST"
	CabinBusiness       Cabin = "BUSINESS"
	CabinPremiumEconomy Cabin = "PREMIUM_ECONOMY"
	CabinEconomy        Cabin = "ECONOMY"
)

// CabinOrder is the display order of cabins, front of the aircraft first.
var CabinOrder = []Cabin{CabinFirst, CabinBusiness, CabinPremiumEconomy, CabinEconomy}

type FlightIdentity struct {
	CarrierCode  string
	CarrierName  string
	FlightNumber string
	AircraftCode string
	AircraftName string
}

type RoutePoint struct {
	IATA     string
	City     string
	CityCode string
	Terminal string
	At       string
	Time     time.Time
}

type Route struct {
	Departure      RoutePoint
	Arrival        RoutePoint
	DurationMinute int
	Duration       string
	DaysDiff       int
}

// CabinPrice is the lowest fare seen for one cabin of a flight. Valid is false when the
// only fares seen so far had an amount that could not be parsed.
type CabinPrice struct {
	Amount    float64
	Currency  string
	Formatted string
	Valid     bool
}

// Flight groups every offer that shares carrier, flight number and departure time.
type Flight struct {
	ID       string
	Identity FlightIdentity
	Route    Route
	Pricing  map[Cabin]CabinPrice
	Offers   []Offer
}

// Cabins returns the cabins priced for the flight in display order. Labels outside
// CabinOrder follow, sorted.
func (f Flight) Cabins() []Cabin {
	cabins := make([]Cabin, 0, len(f.Pricing))
	known := make(map[Cabin]bool, len(CabinOrder))
	for _, c := range CabinOrder {
		known[c] = true
		if _, ok := f.Pricing[c]; ok {
			cabins = append(cabins, c)
		}
	}

	extra := make([]Cabin, 0)
	for c := range f.Pricing {
		if !known[c] {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(cabins, extra...)
}
