package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kaushallx0/seatxray/internal/pkg/pkgerror"
	"github.com/Kaushallx0/seatxray/internal/seatxray/entity"
	"github.com/Kaushallx0/seatxray/internal/seatxray/provider/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedFlight(uc *Usecase) entity.Flight {
	flight := entity.Flight{
		ID: "NH_1_2025-03-01T10:00:00",
		Offers: []entity.Offer{
			testOffer("1", "NH", "1", "2025-03-01T10:00:00", "ECONOMY", "10000"),
			testOffer("2", "NH", "1", "2025-03-01T10:00:00", "BUSINESS", "40000"),
		},
	}
	uc.flights.Set(flight.ID, flight, time.Hour)
	return flight
}

func seatMapResponse() *entity.SeatMapResponse {
	return &entity.SeatMapResponse{Data: []entity.SeatMapDocument{
		testDoc(testSeat("30A", entity.SeatStatusBlocked, "W"), testSeat("30C", entity.SeatStatusAvailable, "A")),
		testDoc(testSeat("30A", entity.SeatStatusAvailable, "W"), testSeat("30C", entity.SeatStatusOccupied, "A")),
	}}
}

func TestUsecase_SeatMap(t *testing.T) {
	client := &mocks.MockClient{}
	uc := newTestUsecase(client)
	flight := storedFlight(uc)
	client.On("SeatMaps", mock.Anything, mock.MatchedBy(func(offers []entity.Offer) bool {
		return len(offers) == 2 && offers[0].ID == "1" && offers[1].ID == "2"
	})).Return(seatMapResponse(), nil).Once()

	out, err := uc.SeatMap(context.Background(), flight.ID)

	require.NoError(t, err)
	assert.False(t, out.CacheHit)
	assert.Empty(t, out.Errors)
	assert.Equal(t, entity.SeatStatusAvailable, out.Inventory["30A"].Status)
	assert.Equal(t, entity.SeatStatusOccupied, out.Inventory["30C"].Status)
	require.Len(t, out.Layout, 1)
	assert.Equal(t, []string{"A", "C"}, out.Layout[0].Columns)

	again, err := uc.SeatMap(context.Background(), flight.ID)

	require.NoError(t, err)
	assert.True(t, again.CacheHit)
	assert.Equal(t, out.Inventory, again.Inventory)
	assert.Equal(t, out.Layout, again.Layout)
	client.AssertNumberOfCalls(t, "SeatMaps", 1)
}

func TestUsecase_SeatMapCacheIsScopedByFlight(t *testing.T) {
	client := &mocks.MockClient{}
	uc := newTestUsecase(client)
	nh := storedFlight(uc)
	jl := entity.Flight{
		ID:     "JL_9_2025-03-01T12:00:00",
		Offers: []entity.Offer{testOffer("1", "JL", "9", "2025-03-01T12:00:00", "ECONOMY", "12000")},
	}
	uc.flights.Set(jl.ID, jl, time.Hour)
	require.Equal(t, nh.Offers[0].CacheKey(), jl.Offers[0].CacheKey())

	client.On("SeatMaps", mock.Anything, mock.MatchedBy(func(offers []entity.Offer) bool {
		return len(offers) == 2
	})).Return(&entity.SeatMapResponse{Data: []entity.SeatMapDocument{
		testDoc(testSeat("99K", entity.SeatStatusAvailable, "W")),
	}}, nil).Once()
	client.On("SeatMaps", mock.Anything, mock.MatchedBy(func(offers []entity.Offer) bool {
		return len(offers) == 1 && offers[0].Itineraries[0].Segments[0].CarrierCode == "JL"
	})).Return(&entity.SeatMapResponse{Data: []entity.SeatMapDocument{
		testDoc(testSeat("1A", entity.SeatStatusAvailable, "W")),
	}}, nil).Once()

	first, err := uc.SeatMap(context.Background(), nh.ID)
	require.NoError(t, err)
	assert.Contains(t, first.Inventory, "99K")

	second, err := uc.SeatMap(context.Background(), jl.ID)
	require.NoError(t, err)
	assert.False(t, second.CacheHit)
	assert.Contains(t, second.Inventory, "1A")
	assert.NotContains(t, second.Inventory, "99K")
	client.AssertNumberOfCalls(t, "SeatMaps", 2)
}

func TestUsecase_SeatMapCachedValueIsIsolated(t *testing.T) {
	client := &mocks.MockClient{}
	uc := newTestUsecase(client)
	flight := storedFlight(uc)
	client.On("SeatMaps", mock.Anything, mock.Anything).Return(seatMapResponse(), nil).Once()

	out, err := uc.SeatMap(context.Background(), flight.ID)
	require.NoError(t, err)
	delete(out.Inventory, "30A")

	again, err := uc.SeatMap(context.Background(), flight.ID)
	require.NoError(t, err)
	assert.Contains(t, again.Inventory, "30A")
}

func TestUsecase_SeatMapEmptyIsNotCached(t *testing.T) {
	client := &mocks.MockClient{}
	uc := newTestUsecase(client)
	flight := storedFlight(uc)
	client.On("SeatMaps", mock.Anything, mock.Anything).Return(&entity.SeatMapResponse{}, nil)

	out, err := uc.SeatMap(context.Background(), flight.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"seat map unavailable"}, out.Errors)
	assert.Empty(t, out.Inventory)

	_, err = uc.SeatMap(context.Background(), flight.ID)
	require.NoError(t, err)
	client.AssertNumberOfCalls(t, "SeatMaps", 2)
	assert.Zero(t, uc.seatMaps.Len())
}

func TestUsecase_SeatMapFetchFailure(t *testing.T) {
	client := &mocks.MockClient{}
	uc := newTestUsecase(client)
	flight := storedFlight(uc)
	client.On("SeatMaps", mock.Anything, mock.Anything).Return(nil, errors.New("upstream timeout"))

	out, err := uc.SeatMap(context.Background(), flight.ID)

	require.NoError(t, err)
	require.Len(t, out.Errors, 1)
	assert.Contains(t, out.Errors[0], "upstream timeout")
	assert.Empty(t, out.Inventory)
}

func TestUsecase_SeatMapUnknownFlight(t *testing.T) {
	client := &mocks.MockClient{}
	uc := newTestUsecase(client)

	_, err := uc.SeatMap(context.Background(), "XX_1_2025-03-01T10:00:00")

	require.Error(t, err)
	assert.Equal(t, pkgerror.CodeNotFound, pkgerror.From(err).Code())

	_, err = uc.SeatMap(context.Background(), " ")
	assert.Equal(t, pkgerror.CodeInvalidInput, pkgerror.From(err).Code())
}

func TestUsecase_SweepSeatMapCache(t *testing.T) {
	client := &mocks.MockClient{}
	uc := newTestUsecase(client)
	flight := storedFlight(uc)
	resp := seatMapResponse()
	resp.CacheTTL = time.Nanosecond
	client.On("SeatMaps", mock.Anything, mock.Anything).Return(resp, nil)

	_, err := uc.SeatMap(context.Background(), flight.ID)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	assert.Equal(t, 1, uc.SweepSeatMapCache(context.Background()))
	assert.Zero(t, uc.SweepSeatMapCache(context.Background()))
}

func TestUsecase_Airports(t *testing.T) {
	uc := newTestUsecase(&mocks.MockClient{})

	got := uc.Airports(context.Background(), "osa", 0)

	require.Len(t, got, 1)
	assert.Equal(t, "ITM", got[0].IATA)
	assert.Empty(t, uc.Airports(context.Background(), "", 5))
}
