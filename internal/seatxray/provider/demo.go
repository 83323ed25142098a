package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Kaushallx0/seatxray/internal/seatxray/entity"
)

type DemoConfig struct {
	SearchPath  string
	SeatMapPath string
	MinDelay    time.Duration
	MaxDelay    time.Duration
}

// DemoClient serves canned fixture documents. It stands in for the live API when no
// credentials are configured.
type DemoClient struct {
	cfg DemoConfig
	rng *SafeRand
}

func NewDemoClient(cfg DemoConfig) *DemoClient {
	return &DemoClient{cfg: cfg, rng: NewSafeRand()}
}

func (d *DemoClient) Name() string {
	return "Demo"
}

func (d *DemoClient) Search(ctx context.Context, req SearchRequest) (*entity.SearchResponse, error) {
	data, err := d.read(ctx, d.cfg.SearchPath)
	if err != nil {
		return nil, fmt.Errorf("demo search: %w", err)
	}

	resp, err := entity.ParseSearchResponse(data)
	if err != nil {
		return nil, fmt.Errorf("demo search: %w", err)
	}

	if carrier := strings.ToUpper(strings.TrimSpace(req.Carrier)); carrier != "" {
		filtered := resp.Data[:0]
		for _, offer := range resp.Data {
			if len(offer.Itineraries) > 0 && len(offer.Itineraries[0].Segments) > 0 &&
				offer.Itineraries[0].Segments[0].CarrierCode == carrier {
				filtered = append(filtered, offer)
			}
		}
		resp.Data = filtered
	}
	return resp, nil
}

func (d *DemoClient) SeatMaps(ctx context.Context, offers ...entity.Offer) (*entity.SeatMapResponse, error) {
	if len(offers) == 0 {
		return &entity.SeatMapResponse{}, nil
	}

	data, err := d.read(ctx, d.cfg.SeatMapPath)
	if err != nil {
		return nil, fmt.Errorf("demo seatmaps: %w", err)
	}

	resp, err := entity.ParseSeatMapResponse(data)
	if err != nil {
		return nil, fmt.Errorf("demo seatmaps: %w", err)
	}
	return resp, nil
}

func (d *DemoClient) read(ctx context.Context, path string) ([]byte, error) {
	if err := sleepCtx(ctx, d.rng.Between(d.cfg.MinDelay, d.cfg.MaxDelay)); err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("fixture path not configured")
	}
	return os.ReadFile(filepath.Clean(path))
}
