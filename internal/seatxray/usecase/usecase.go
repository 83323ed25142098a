package usecase

import (
	"time"

	"github.com/Kaushallx0/seatxray/internal/seatxray/cache"
	"github.com/Kaushallx0/seatxray/internal/seatxray/directory"
	"github.com/Kaushallx0/seatxray/internal/seatxray/entity"
	"github.com/Kaushallx0/seatxray/internal/seatxray/provider"
)

const (
	DefaultFlightTTL  = 30 * time.Minute
	DefaultSeatMapTTL = 6 * time.Hour
)

type Dependency struct {
	Client          provider.Client
	Directory       *directory.Directory
	FlightStore     *cache.Cache[entity.Flight]
	SeatMapCache    *cache.Cache[*SeatMapResult]
	FlightTTL       time.Duration
	SeatMapTTL      time.Duration
	DefaultCurrency string
	MaxOffers       int
}

type Usecase struct {
	client          provider.Client
	directory       *directory.Directory
	flights         *cache.Cache[entity.Flight]
	seatMaps        *cache.Cache[*SeatMapResult]
	flightTTL       time.Duration
	seatMapTTL      time.Duration
	defaultCurrency string
	maxOffers       int
}

func New(dep Dependency) *Usecase {
	u := &Usecase{
		client:          dep.Client,
		directory:       dep.Directory,
		flights:         dep.FlightStore,
		seatMaps:        dep.SeatMapCache,
		flightTTL:       dep.FlightTTL,
		seatMapTTL:      dep.SeatMapTTL,
		defaultCurrency: dep.DefaultCurrency,
		maxOffers:       dep.MaxOffers,
	}
	if u.flights == nil {
		u.flights = cache.New(CloneFlight)
	}
	if u.seatMaps == nil {
		u.seatMaps = cache.New(CloneSeatMapResult)
	}
	if u.flightTTL <= 0 {
		u.flightTTL = DefaultFlightTTL
	}
	if u.seatMapTTL <= 0 {
		u.seatMapTTL = DefaultSeatMapTTL
	}
	return u
}

// CloneFlight copies the mutable parts of a flight so cached values are never shared.
func CloneFlight(f entity.Flight) entity.Flight {
	clone := f
	if f.Pricing != nil {
		clone.Pricing = make(map[entity.Cabin]entity.CabinPrice, len(f.Pricing))
		for k, v := range f.Pricing {
			clone.Pricing[k] = v
		}
	}
	clone.Offers = append([]entity.Offer(nil), f.Offers...)
	return clone
}

func CloneSeatMapResult(r *SeatMapResult) *SeatMapResult {
	if r == nil {
		return nil
	}
	return &SeatMapResult{
		Inventory:  r.Inventory.Clone(),
		Facilities: append([]entity.Facility(nil), r.Facilities...),
	}
}
