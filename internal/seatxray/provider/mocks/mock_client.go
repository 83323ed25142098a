package mocks

import (
	"context"

	"github.com/Kaushallx0/seatxray/internal/seatxray/entity"
	"github.com/Kaushallx0/seatxray/internal/seatxray/provider"
	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of provider.Client
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) Search(ctx context.Context, req provider.SearchRequest) (*entity.SearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SearchResponse), args.Error(1)
}

func (m *MockClient) SeatMaps(ctx context.Context, offers ...entity.Offer) (*entity.SeatMapResponse, error) {
	args := m.Called(ctx, offers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SeatMapResponse), args.Error(1)
}
