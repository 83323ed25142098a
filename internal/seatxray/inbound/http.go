package inbound

import (
	"context"

	"github.com/Kaushallx0/seatxray/internal/pkg/pkgrouter"
	"github.com/Kaushallx0/seatxray/internal/seatxray/directory"
	"github.com/Kaushallx0/seatxray/internal/seatxray/usecase"
)

type uc interface {
	Flights(ctx context.Context, in usecase.FlightsInput) (*usecase.FlightsOutput, error)
	SeatMap(ctx context.Context, flightID string) (*usecase.SeatMapOutput, error)
	SweepSeatMapCache(ctx context.Context) int
	Airports(ctx context.Context, query string, limit int) []directory.Airport
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/flights", end.Flights)
	r.GET("/flights/{id}/seatmap", end.SeatMap)
	r.GET("/airports", end.Airports)
	r.POST("/seatmaps/sweep", end.SweepSeatMaps)
}
