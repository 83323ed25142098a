package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type SeatStatus string

const (
	SeatStatusUnknown   SeatStatus = "UNKNOWN"
	SeatStatusBlocked   SeatStatus = "BLOCKED"
	SeatStatusAvailable SeatStatus = "AVAILABLE"
	SeatStatusOccupied  SeatStatus = "OCCUPIED"
)

// Rank orders statuses by how much they tell about a seat: OCCUPIED > AVAILABLE > BLOCKED > UNKNOWN.
func (s SeatStatus) Rank() int {
	switch s {
	case SeatStatusOccupied:
		return 3
	case SeatStatusAvailable:
		return 2
	case SeatStatusBlocked:
		return 1
	default:
		return 0
	}
}

// Normalize maps anything outside the known set to UNKNOWN.
func (s SeatStatus) Normalize() SeatStatus {
	switch v := SeatStatus(strings.ToUpper(strings.TrimSpace(string(s)))); v {
	case SeatStatusOccupied, SeatStatusAvailable, SeatStatusBlocked:
		return v
	default:
		return SeatStatusUnknown
	}
}

type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Facility struct {
	Code        string      `json:"code"`
	Column      string      `json:"column,omitempty"`
	Row         string      `json:"row,omitempty"`
	Position    string      `json:"position,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
}

type SeatPrice struct {
	Currency string `json:"currency"`
	Total    Amount `json:"total"`
}

type SeatPricing struct {
	TravelerID             string     `json:"travelerId,omitempty"`
	SeatAvailabilityStatus SeatStatus `json:"seatAvailabilityStatus,omitempty"`
	Price                  *SeatPrice `json:"price,omitempty"`
}

type Seat struct {
	Number               string        `json:"number"`
	Cabin                string        `json:"cabin,omitempty"`
	CharacteristicsCodes []string      `json:"characteristicsCodes,omitempty"`
	TravelerPricing      []SeatPricing `json:"travelerPricing,omitempty"`
	Coordinates          Coordinates   `json:"coordinates"`

	// Status is the reconciled status; it is only set on seats of a synthesized inventory.
	Status SeatStatus `json:"status,omitempty"`
}

// ReportedStatus is the status the document itself declares for the seat.
func (s Seat) ReportedStatus() SeatStatus {
	if len(s.TravelerPricing) == 0 {
		return SeatStatusUnknown
	}
	return s.TravelerPricing[0].SeatAvailabilityStatus.Normalize()
}

func (s Seat) HasCode(code string) bool {
	for _, c := range s.CharacteristicsCodes {
		if c == code {
			return true
		}
	}
	return false
}

func (s Seat) CabinOrDefault() Cabin {
	if c := strings.TrimSpace(s.Cabin); c != "" {
		return Cabin(strings.ToUpper(c))
	}
	return CabinEconomy
}

func (s Seat) Clone() Seat {
	clone := s
	clone.CharacteristicsCodes = append([]string(nil), s.CharacteristicsCodes...)
	if s.TravelerPricing != nil {
		clone.TravelerPricing = make([]SeatPricing, len(s.TravelerPricing))
		for i, p := range s.TravelerPricing {
			clone.TravelerPricing[i] = p
			if p.Price != nil {
				price := *p.Price
				clone.TravelerPricing[i].Price = &price
			}
		}
	}
	return clone
}

type DeckConfiguration struct {
	Width        int `json:"width"`
	Length       int `json:"length"`
	StartSeatRow int `json:"startSeatRow"`
	EndSeatRow   int `json:"endSeatRow"`
}

type Deck struct {
	DeckType          string             `json:"deckType,omitempty"`
	DeckConfiguration *DeckConfiguration `json:"deckConfiguration,omitempty"`
	Facilities        []Facility         `json:"facilities,omitempty"`
	Seats             []Seat             `json:"seats,omitempty"`
}

// SeatMapDocument is one seat map as seen from a single fare context.
type SeatMapDocument struct {
	ID            string   `json:"id,omitempty"`
	FlightOfferID string   `json:"flightOfferId,omitempty"`
	SegmentID     string   `json:"segmentId,omitempty"`
	Aircraft      Aircraft `json:"aircraft"`
	Decks         []Deck   `json:"decks"`
}

type SeatMapResponse struct {
	Data []SeatMapDocument

	// CacheTTL is the freshness hint given by the transport, zero when none was sent.
	CacheTTL time.Duration
	Skipped  int
}

// SeatInventory is the reconciled seat map keyed by seat number.
type SeatInventory map[string]Seat

func (inv SeatInventory) Clone() SeatInventory {
	if inv == nil {
		return nil
	}
	clone := make(SeatInventory, len(inv))
	for k, v := range inv {
		clone[k] = v.Clone()
	}
	return clone
}

// ParseSeatMapResponse accepts either a {"data": [...]} document or a bare list of seat
// maps. Documents that do not decode are counted in Skipped and dropped.
func ParseSeatMapResponse(b []byte) (*SeatMapResponse, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return &SeatMapResponse{}, nil
	}

	var items []json.RawMessage
	switch b[0] {
	case '[':
		if err := json.Unmarshal(b, &items); err != nil {
			return nil, fmt.Errorf("decode seat map list: %w", err)
		}
	case '{':
		var doc struct {
			Data []json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("decode seat map response: %w", err)
		}
		items = doc.Data
	default:
		return nil, fmt.Errorf("decode seat map response: unexpected token %q", b[0])
	}

	resp := &SeatMapResponse{Data: make([]SeatMapDocument, 0, len(items))}
	for _, item := range items {
		var doc SeatMapDocument
		if err := json.Unmarshal(item, &doc); err != nil {
			resp.Skipped++
			continue
		}
		resp.Data = append(resp.Data, doc)
	}
	return resp, nil
}
