package seatxray

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Kaushallx0/seatxray/internal/pkg/pkgconfig"
	"github.com/Kaushallx0/seatxray/internal/pkg/pkgrouter"
	"github.com/Kaushallx0/seatxray/internal/seatxray/cache"
	"github.com/Kaushallx0/seatxray/internal/seatxray/directory"
	"github.com/Kaushallx0/seatxray/internal/seatxray/inbound"
	"github.com/Kaushallx0/seatxray/internal/seatxray/provider"
	"github.com/Kaushallx0/seatxray/internal/seatxray/usecase"
)

const configPrefix = "modules.seatxray."

type Dependency struct {
	Config pkgconfig.Config
	Router *pkgrouter.Router
}

// Module owns the background work started by New.
type Module struct {
	stop chan struct{}
	done chan struct{}
}

func New(dep Dependency) (*Module, error) {
	airportsPath := configString(dep.Config, "airports_path", "mocks/airports.json")
	dir, err := directory.Load(airportsPath)
	if err != nil {
		return nil, fmt.Errorf("load airports: %w", err)
	}
	slog.Info("airport directory loaded", "path", airportsPath, "airports", dir.Len())

	client, err := newClient(dep.Config)
	if err != nil {
		return nil, err
	}

	rateLimit := 100 * time.Millisecond
	if rateLimitMs := dep.Config.GetInt(configPrefix + "provider.rate_limit_ms"); rateLimitMs > 0 {
		rateLimit = time.Duration(rateLimitMs) * time.Millisecond
	}
	client = provider.NewRateLimitedClient(client, rateLimit)

	maxRetries := 2
	if dep.Config.GetString(configPrefix+"provider.max_retries") != "" {
		maxRetries = dep.Config.GetInt(configPrefix + "provider.max_retries")
	}
	client = provider.NewRetryClient(client, maxRetries, 0)

	uc := usecase.New(usecase.Dependency{
		Client:          client,
		Directory:       dir,
		FlightStore:     cache.New(usecase.CloneFlight),
		SeatMapCache:    cache.New(usecase.CloneSeatMapResult),
		FlightTTL:       configSeconds(dep.Config, "cache.flight_ttl_seconds", usecase.DefaultFlightTTL),
		SeatMapTTL:      configSeconds(dep.Config, "cache.seatmap_ttl_seconds", usecase.DefaultSeatMapTTL),
		DefaultCurrency: strings.ToUpper(configString(dep.Config, "search.default_currency", "JPY")),
		MaxOffers:       dep.Config.GetInt(configPrefix + "amadeus.max_offers"),
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	m := &Module{stop: make(chan struct{}), done: make(chan struct{})}
	interval := configSeconds(dep.Config, "cache.sweep_interval_seconds", 0)
	if interval > 0 {
		go m.sweepLoop(uc, interval)
	} else {
		close(m.done)
	}

	return m, nil
}

// Close stops the cache sweeper and waits for it to exit.
func (m *Module) Close(ctx context.Context) error {
	select {
	case <-m.stop:
	default:
		close(m.stop)
	}
	select {
	case <-m.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Module) sweepLoop(uc *usecase.Usecase, interval time.Duration) {
	defer close(m.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			uc.SweepSeatMapCache(context.Background())
		}
	}
}

// newClient returns the live client when credentials are configured and the demo client
// otherwise.
func newClient(cfg pkgconfig.Config) (provider.Client, error) {
	apiKey := configString(cfg, "amadeus.api_key", os.Getenv("AMADEUS_API_KEY"))
	apiSecret := configString(cfg, "amadeus.api_secret", os.Getenv("AMADEUS_API_SECRET"))

	if apiKey == "" || apiSecret == "" {
		slog.Warn("amadeus credentials not configured, serving demo fixtures")
		return provider.NewDemoClient(provider.DemoConfig{
			SearchPath:  configString(cfg, "demo.search_path", "mocks/flight_offers.json"),
			SeatMapPath: configString(cfg, "demo.seatmap_path", "mocks/seatmap_wide.json"),
			MinDelay:    50 * time.Millisecond,
			MaxDelay:    150 * time.Millisecond,
		}), nil
	}

	timeout := 30 * time.Second
	if ms := cfg.GetInt(configPrefix + "amadeus.timeout_ms"); ms > 0 {
		timeout = time.Duration(ms) * time.Millisecond
	}

	client := provider.NewAmadeusClient(provider.AmadeusConfig{
		BaseURL:   configString(cfg, "amadeus.base_url", provider.DefaultAmadeusBaseURL),
		APIKey:    apiKey,
		APISecret: apiSecret,
		Timeout:   timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Authenticate(ctx); err != nil {
		slog.Warn("amadeus authentication check failed, token will be requested per call", "error", err)
		return client, nil
	}
	slog.Info("amadeus client authenticated")

	return client, nil
}

func configString(cfg pkgconfig.Config, key, fallback string) string {
	if value := strings.TrimSpace(cfg.GetString(configPrefix + key)); value != "" {
		return value
	}
	return fallback
}

func configSeconds(cfg pkgconfig.Config, key string, fallback time.Duration) time.Duration {
	if seconds := cfg.GetInt(configPrefix + key); seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
