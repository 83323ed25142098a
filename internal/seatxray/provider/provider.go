package provider

import (
	"context"
	"errors"

	"github.com/Kaushallx0/seatxray/internal/seatxray/entity"
)

var (
	ErrTemporary    = errors.New("temporary provider error")
	ErrUnauthorized = errors.New("provider rejected credentials")
)

type SearchRequest struct {
	Origin      string
	Destination string
	// Date is YYYY-MM-DD; Time is HH:MM or HH:MM:SS; Window is like "4H".
	Date      string
	Time      string
	Window    string
	Carrier   string
	Currency  string
	MaxOffers int
}

// Client talks to a flight-distribution API. SeatMaps accepts one or more offers and
// fetches them in a single batch.
type Client interface {
	Name() string
	Search(ctx context.Context, req SearchRequest) (*entity.SearchResponse, error)
	SeatMaps(ctx context.Context, offers ...entity.Offer) (*entity.SeatMapResponse, error)
}
