package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Offer is one priced fare as returned by the distribution API. The original payload is
// kept so it can be sent back untouched when requesting seat maps.
type Offer struct {
	Type             string            `json:"type,omitempty"`
	ID               string            `json:"id"`
	Source           string            `json:"source"`
	Itineraries      []Itinerary       `json:"itineraries"`
	Price            OfferPrice        `json:"price"`
	TravelerPricings []TravelerPricing `json:"travelerPricings"`

	raw json.RawMessage
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	ID          string     `json:"id,omitempty"`
	CarrierCode string     `json:"carrierCode"`
	Number      string     `json:"number"`
	Departure   Endpoint   `json:"departure"`
	Arrival     Endpoint   `json:"arrival"`
	Aircraft    Aircraft   `json:"aircraft"`
	Operating   *Operating `json:"operating,omitempty"`
	Duration    string     `json:"duration,omitempty"`
}

type Endpoint struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type Aircraft struct {
	Code string `json:"code"`
}

type Operating struct {
	CarrierCode string `json:"carrierCode"`
}

type OfferPrice struct {
	Currency   string `json:"currency"`
	Total      Amount `json:"total"`
	GrandTotal Amount `json:"grandTotal,omitempty"`
}

type TravelerPricing struct {
	TravelerID           string       `json:"travelerId"`
	FareOption           string       `json:"fareOption,omitempty"`
	TravelerType         string       `json:"travelerType,omitempty"`
	FareDetailsBySegment []FareDetail `json:"fareDetailsBySegment"`
}

type FareDetail struct {
	SegmentID string `json:"segmentId"`
	Cabin     string `json:"cabin"`
	FareBasis string `json:"fareBasis,omitempty"`
	Class     string `json:"class,omitempty"`
}

// Amount is a decimal price as sent on the wire. The API uses strings, but bare
// numbers are accepted too.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	*a = Amount(b)
	return nil
}

type offerAlias Offer

func (o *Offer) UnmarshalJSON(b []byte) error {
	var alias offerAlias
	if err := json.Unmarshal(b, &alias); err != nil {
		return err
	}
	*o = Offer(alias)
	o.raw = append(json.RawMessage(nil), b...)
	return nil
}

func (o Offer) MarshalJSON() ([]byte, error) {
	if len(o.raw) > 0 {
		return o.raw, nil
	}
	return json.Marshal(offerAlias(o))
}

// Raw returns the payload the offer was decoded from, or its re-encoding when it was
// built in code.
func (o Offer) Raw() (json.RawMessage, error) {
	if len(o.raw) > 0 {
		return append(json.RawMessage(nil), o.raw...), nil
	}
	b, err := json.Marshal(offerAlias(o))
	if err != nil {
		return nil, fmt.Errorf("encode offer %s: %w", o.ID, err)
	}
	return b, nil
}

// CacheKey identifies the fare context a seat map was fetched for.
func (o Offer) CacheKey() string {
	return o.ID + "_" + o.Source
}

type Dictionaries struct {
	Carriers   map[string]string   `json:"carriers,omitempty"`
	Aircraft   map[string]string   `json:"aircraft,omitempty"`
	Currencies map[string]string   `json:"currencies,omitempty"`
	Locations  map[string]Location `json:"locations,omitempty"`
}

type Location struct {
	CityCode    string `json:"cityCode"`
	CountryCode string `json:"countryCode"`
}

func (d *Dictionaries) CarrierName(code string) string {
	if d != nil {
		if name, ok := d.Carriers[code]; ok && name != "" {
			return name
		}
	}
	return code
}

func (d *Dictionaries) AircraftName(code string) string {
	if d != nil {
		if name, ok := d.Aircraft[code]; ok && name != "" {
			return name
		}
	}
	return code
}

func (d *Dictionaries) CityCode(iata string) string {
	if d != nil {
		if loc, ok := d.Locations[iata]; ok && loc.CityCode != "" {
			return loc.CityCode
		}
	}
	return iata
}

type SearchResponse struct {
	Data         []Offer       `json:"data"`
	Dictionaries *Dictionaries `json:"dictionaries,omitempty"`

	// Skipped counts offers dropped at decode time because their shape was invalid.
	Skipped int `json:"-"`
}

// ParseSearchResponse decodes a flight-offers search document. Offers are decoded one at a
// time so a single malformed offer is dropped instead of failing the whole result. A
// document without "data" yields an empty response.
func ParseSearchResponse(b []byte) (*SearchResponse, error) {
	var doc struct {
		Data         []json.RawMessage `json:"data"`
		Dictionaries json.RawMessage   `json:"dictionaries"`
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return &SearchResponse{}, nil
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	resp := &SearchResponse{
		Data:         make([]Offer, 0, len(doc.Data)),
		Dictionaries: decodeDictionaries(doc.Dictionaries),
	}
	for _, item := range doc.Data {
		var offer Offer
		if err := json.Unmarshal(item, &offer); err != nil {
			resp.Skipped++
			continue
		}
		resp.Data = append(resp.Data, offer)
	}
	return resp, nil
}

// decodeDictionaries decodes each side table on its own; a table with an unexpected shape
// is left empty and names fall back to raw codes.
func decodeDictionaries(b json.RawMessage) *Dictionaries {
	if len(b) == 0 || bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var tables map[string]json.RawMessage
	if err := json.Unmarshal(b, &tables); err != nil {
		return nil
	}

	dict := &Dictionaries{}
	_ = json.Unmarshal(tables["carriers"], &dict.Carriers)
	_ = json.Unmarshal(tables["aircraft"], &dict.Aircraft)
	_ = json.Unmarshal(tables["currencies"], &dict.Currencies)
	_ = json.Unmarshal(tables["locations"], &dict.Locations)
	return dict
}
