package inbound

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Kaushallx0/seatxray/internal/pkg/pkgerror"
	"github.com/Kaushallx0/seatxray/internal/seatxray/entity"
	"github.com/Kaushallx0/seatxray/internal/seatxray/usecase"
)

const (
	minLayoutWidth = 240
	maxLayoutWidth = 2000
	maxAirports    = 50
)

func parseFlightsInput(r *http.Request) usecase.FlightsInput {
	q := r.URL.Query()
	return usecase.FlightsInput{
		Origin:      strings.TrimSpace(q.Get("origin")),
		Destination: strings.TrimSpace(firstNotEmpty(q.Get("destination"), q.Get("dest"))),
		Date:        strings.TrimSpace(q.Get("date")),
		Time:        strings.TrimSpace(q.Get("time")),
		Window:      strings.TrimSpace(q.Get("window")),
		Carrier:     strings.TrimSpace(q.Get("carrier")),
		Currency:    strings.TrimSpace(q.Get("currency")),
	}
}

// parseSizing picks the desktop or mobile preset and optionally overrides its width.
func parseSizing(r *http.Request) (usecase.Sizing, error) {
	q := r.URL.Query()

	sizing := usecase.DesktopSizing
	if value := strings.TrimSpace(q.Get("mobile")); value != "" {
		mobile, err := strconv.ParseBool(value)
		if err != nil {
			return usecase.Sizing{}, pkgerror.NewBusiness("invalid mobile", pkgerror.CodeInvalidInput)
		}
		if mobile {
			sizing = usecase.MobileSizing
		}
	}

	if value := strings.TrimSpace(q.Get("width")); value != "" {
		width, err := strconv.Atoi(value)
		if err != nil || width < minLayoutWidth || width > maxLayoutWidth {
			return usecase.Sizing{}, pkgerror.NewBusiness("invalid width", pkgerror.CodeInvalidInput)
		}
		sizing.Width = width
	}
	return sizing, nil
}

func parseLimit(r *http.Request) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get("limit"))
	if value == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(value)
	if err != nil || limit <= 0 {
		return 0, pkgerror.NewBusiness("invalid limit", pkgerror.CodeInvalidInput)
	}
	if limit > maxAirports {
		limit = maxAirports
	}
	return limit, nil
}

func firstNotEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func mapRoutePoint(point entity.RoutePoint) RoutePointResponse {
	resp := RoutePointResponse{
		Airport:  point.IATA,
		City:     point.City,
		CityCode: point.CityCode,
		Terminal: point.Terminal,
		Datetime: point.At,
	}
	if !point.Time.IsZero() {
		resp.Time = point.Time.Format("15:04")
		resp.Date = point.Time.Format(time.DateOnly)
	}
	return resp
}
