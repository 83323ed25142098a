package directory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type Airport struct {
	IATA    string `json:"iata"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
}

// Directory is an airport lookup loaded once at startup and only read afterwards, so it is
// safe for concurrent use without locking.
type Directory struct {
	airports []Airport
	byCode   map[string]Airport
}

func New(airports []Airport) *Directory {
	d := &Directory{
		airports: make([]Airport, 0, len(airports)),
		byCode:   make(map[string]Airport, len(airports)),
	}
	for _, a := range airports {
		a.IATA = strings.ToUpper(strings.TrimSpace(a.IATA))
		if a.IATA == "" {
			continue
		}
		if _, dup := d.byCode[a.IATA]; dup {
			continue
		}
		d.byCode[a.IATA] = a
		d.airports = append(d.airports, a)
	}
	sort.Slice(d.airports, func(i, j int) bool { return d.airports[i].IATA < d.airports[j].IATA })
	return d
}

// Load reads a JSON array of airports from path.
func Load(path string) (*Directory, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("directory read file: %w", err)
	}
	var airports []Airport
	if err := json.Unmarshal(data, &airports); err != nil {
		return nil, fmt.Errorf("directory decode: %w", err)
	}
	return New(airports), nil
}

// LookupCityName returns the city served by the airport, or the code itself when the
// airport is unknown.
func (d *Directory) LookupCityName(iata string) string {
	if d == nil {
		return iata
	}
	if a, ok := d.byCode[strings.ToUpper(strings.TrimSpace(iata))]; ok && a.City != "" {
		return a.City
	}
	return iata
}

func (d *Directory) Lookup(iata string) (Airport, bool) {
	if d == nil {
		return Airport{}, false
	}
	a, ok := d.byCode[strings.ToUpper(strings.TrimSpace(iata))]
	return a, ok
}

// Search matches query case-insensitively against code, city and name. Exact code matches
// come first. An empty query matches nothing.
func (d *Directory) Search(query string, limit int) []Airport {
	q := strings.ToLower(strings.TrimSpace(query))
	if d == nil || q == "" {
		return []Airport{}
	}

	exact := make([]Airport, 0, 1)
	partial := make([]Airport, 0)
	for _, a := range d.airports {
		switch {
		case strings.ToLower(a.IATA) == q:
			exact = append(exact, a)
		case strings.Contains(strings.ToLower(a.IATA), q),
			strings.Contains(strings.ToLower(a.City), q),
			strings.Contains(strings.ToLower(a.Name), q):
			partial = append(partial, a)
		}
	}

	matches := append(exact, partial...)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.airports)
}
