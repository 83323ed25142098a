package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Kaushallx0/seatxray/internal/pkg/pkgerror"
	"github.com/Kaushallx0/seatxray/internal/seatxray/entity"
	"github.com/Kaushallx0/seatxray/internal/seatxray/provider"
)

const defaultWindow = "4H"

var (
	iataPattern    = regexp.MustCompile(`^[A-Z]{3}$`)
	carrierPattern = regexp.MustCompile(`^[A-Z0-9]{2}$`)
	windowPattern  = regexp.MustCompile(`^(\d{1,2})H$`)
)

type FlightsInput struct {
	Origin      string
	Destination string
	Date        string
	Time        string
	Window      string
	Carrier     string
	Currency    string
}

type FlightsOutput struct {
	Flights  []entity.Flight
	Metadata SearchMetadata
	Errors   []string
}

type SearchMetadata struct {
	Provider      string
	TotalOffers   int
	TotalFlights  int
	SkippedOffers int
	SearchTimeMs  int64
	// DepartureTime is the window centre actually sent upstream, empty when no time was given.
	DepartureTime string
	Window        string
}

func (u *Usecase) Flights(ctx context.Context, in FlightsInput) (*FlightsOutput, error) {
	start := time.Now()

	req, err := u.buildSearchRequest(in)
	if err != nil {
		return nil, err
	}

	output := &FlightsOutput{
		Flights: make([]entity.Flight, 0),
		Metadata: SearchMetadata{
			Provider:      u.client.Name(),
			DepartureTime: req.Time,
			Window:        req.Window,
		},
		Errors: make([]string, 0),
	}

	resp, err := u.client.Search(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "flight search failed",
			"origin", req.Origin, "destination", req.Destination, "date", req.Date, "error", err)
		output.Errors = append(output.Errors, fmt.Sprintf("flight search failed: %v", err))
		output.Metadata.SearchTimeMs = time.Since(start).Milliseconds()
		return output, nil
	}

	flights, skipped := GroupOffers(resp, u.directory)
	skipped += resp.Skipped
	if skipped > 0 {
		slog.WarnContext(ctx, "skipped malformed offers", "count", skipped, "total", len(resp.Data)+resp.Skipped)
	}

	for _, flight := range flights {
		u.flights.Set(flight.ID, flight, u.flightTTL)
	}

	output.Flights = flights
	output.Metadata.TotalOffers = len(resp.Data) + resp.Skipped
	output.Metadata.TotalFlights = len(flights)
	output.Metadata.SkippedOffers = skipped
	output.Metadata.SearchTimeMs = time.Since(start).Milliseconds()
	return output, nil
}

func (u *Usecase) buildSearchRequest(in FlightsInput) (provider.SearchRequest, error) {
	origin := strings.ToUpper(strings.TrimSpace(in.Origin))
	destination := strings.ToUpper(strings.TrimSpace(in.Destination))
	if origin == "" || destination == "" {
		return provider.SearchRequest{}, pkgerror.NewBusiness("origin and destination are required", pkgerror.CodeInvalidInput)
	}
	if !iataPattern.MatchString(origin) || !iataPattern.MatchString(destination) {
		return provider.SearchRequest{}, pkgerror.NewBusiness("origin and destination must be 3-letter airport codes", pkgerror.CodeInvalidInput)
	}
	if origin == destination {
		return provider.SearchRequest{}, pkgerror.NewBusiness("origin and destination must differ", pkgerror.CodeInvalidInput)
	}

	date := strings.TrimSpace(in.Date)
	if date == "" {
		return provider.SearchRequest{}, pkgerror.NewBusiness("date is required", pkgerror.CodeInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return provider.SearchRequest{}, pkgerror.NewBusiness("invalid date", pkgerror.CodeInvalidInput)
	}

	carrier := strings.ToUpper(strings.TrimSpace(in.Carrier))
	if carrier != "" && !carrierPattern.MatchString(carrier) {
		return provider.SearchRequest{}, pkgerror.NewBusiness("invalid carrier", pkgerror.CodeInvalidInput)
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = u.defaultCurrency
	}

	req := provider.SearchRequest{
		Origin:      origin,
		Destination: destination,
		Date:        date,
		Carrier:     carrier,
		Currency:    currency,
		MaxOffers:   u.maxOffers,
	}

	if t := strings.TrimSpace(in.Time); t != "" {
		centre, window, err := sliceWindow(t, strings.TrimSpace(in.Window))
		if err != nil {
			return provider.SearchRequest{}, err
		}
		req.Time = centre
		req.Window = window
	}
	return req, nil
}

// sliceWindow treats the requested time as the start of the window and returns the window
// centre the API expects. The shift wraps within the day.
func sliceWindow(clock, window string) (string, string, error) {
	start, err := time.Parse("15:04", clock)
	if err != nil {
		return "", "", pkgerror.NewBusiness("invalid time", pkgerror.CodeInvalidInput)
	}

	window = strings.ToUpper(window)
	if window == "" {
		window = defaultWindow
	}
	m := windowPattern.FindStringSubmatch(window)
	if m == nil {
		return "", "", pkgerror.NewBusiness("invalid window", pkgerror.CodeInvalidInput)
	}
	hours, _ := strconv.Atoi(m[1])
	if hours < 1 || hours > 12 {
		return "", "", pkgerror.NewBusiness("window must be between 1H and 12H", pkgerror.CodeInvalidInput)
	}

	centre := start.Add(time.Duration(hours) * time.Hour / 2)
	return centre.Format("15:04"), fmt.Sprintf("%dH", hours), nil
}
