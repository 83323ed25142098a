package inbound

type FlightsResponse struct {
	Metadata MetadataResponse `json:"metadata"`
	Flights  []FlightResponse `json:"flights"`
	Errors   []string         `json:"errors"`
}

type MetadataResponse struct {
	Provider      string `json:"provider"`
	TotalOffers   int    `json:"total_offers"`
	TotalFlights  int    `json:"total_flights"`
	SkippedOffers int    `json:"skipped_offers"`
	SearchTimeMs  int64  `json:"search_time_ms"`
	DepartureTime string `json:"departure_time,omitempty"`
	Window        string `json:"window,omitempty"`
}

type FlightResponse struct {
	ID           string               `json:"id"`
	Carrier      CarrierResponse      `json:"carrier"`
	FlightNumber string               `json:"flight_number"`
	Aircraft     AircraftResponse     `json:"aircraft"`
	Departure    RoutePointResponse   `json:"departure"`
	Arrival      RoutePointResponse   `json:"arrival"`
	Duration     DurationResponse     `json:"duration"`
	DaysDiff     int                  `json:"days_diff"`
	Pricing      []CabinPriceResponse `json:"pricing"`
	OfferCount   int                  `json:"offer_count"`
}

type CarrierResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type AircraftResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type RoutePointResponse struct {
	Airport  string `json:"airport"`
	City     string `json:"city"`
	CityCode string `json:"city_code"`
	Terminal string `json:"terminal"`
	Datetime string `json:"datetime"`
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
}

type DurationResponse struct {
	TotalMinutes int    `json:"total_minutes"`
	Formatted    string `json:"formatted"`
}

type CabinPriceResponse struct {
	Cabin     string  `json:"cabin"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
	Valid     bool    `json:"valid"`
}

type SeatMapResponse struct {
	FlightID   string                `json:"flight_id"`
	CacheHit   bool                  `json:"cache_hit"`
	Seats      []SeatResponse        `json:"seats"`
	Facilities []FacilityResponse    `json:"facilities"`
	Layout     []CabinLayoutResponse `json:"layout"`
	Errors     []string              `json:"errors"`
}

type SeatResponse struct {
	Number          string              `json:"number"`
	Row             int                 `json:"row"`
	Column          string              `json:"column"`
	Cabin           string              `json:"cabin"`
	Status          string              `json:"status"`
	Characteristics []string            `json:"characteristics"`
	Coordinates     CoordinatesResponse `json:"coordinates"`
	Price           *SeatPriceResponse  `json:"price,omitempty"`
}

type SeatPriceResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type CoordinatesResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type FacilityResponse struct {
	Code        string              `json:"code"`
	Row         string              `json:"row,omitempty"`
	Column      string              `json:"column,omitempty"`
	Position    string              `json:"position,omitempty"`
	Coordinates CoordinatesResponse `json:"coordinates"`
}

type CabinLayoutResponse struct {
	Cabin    string        `json:"cabin"`
	Columns  []string      `json:"columns"`
	Aisles   []string      `json:"aisles"`
	SeatSize int           `json:"seat_size"`
	Rows     []RowResponse `json:"rows"`
}

// RowResponse lists seat numbers in column order; gaps are null.
type RowResponse struct {
	Number int       `json:"number"`
	Seats  []*string `json:"seats"`
}

type AirportResponse struct {
	IATA    string `json:"iata"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
}

type SweepResponse struct {
	Removed int `json:"removed"`
}
