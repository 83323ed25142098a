package usecase

import (
	"encoding/json"

	"github.com/Kaushallx0/seatxray/internal/seatxray/entity"
)

// Synthesize merges seat maps fetched under different fare contexts into one inventory.
// For each seat number the highest-ranked reported status wins (see SeatStatus.Rank). When
// two reports carry the same status, the one with the smaller canonical encoding is kept,
// so the result does not depend on document order or on duplicated documents.
//
// Facilities come from the first document that has any. Input documents are never
// modified; every seat in the inventory is a copy with Status and its first traveler
// pricing status set to the resolved value.
func Synthesize(docs []entity.SeatMapDocument) (entity.SeatInventory, []entity.Facility) {
	inventory := make(entity.SeatInventory)
	facilities := make([]entity.Facility, 0)
	fingerprints := make(map[string]string)

	for _, doc := range docs {
		if len(facilities) == 0 {
			facilities = append(facilities, documentFacilities(doc)...)
		}

		for _, deck := range doc.Decks {
			for _, seat := range deck.Seats {
				if seat.Number == "" {
					continue
				}

				status := seat.ReportedStatus()
				fp := seatFingerprint(seat)
				current, ok := inventory[seat.Number]
				if ok && !supersedes(status, fp, current.Status, fingerprints[seat.Number]) {
					continue
				}

				inventory[seat.Number] = resolveSeat(seat, status)
				fingerprints[seat.Number] = fp
			}
		}
	}

	return inventory, facilities
}

func supersedes(status entity.SeatStatus, fp string, current entity.SeatStatus, currentFp string) bool {
	if status.Rank() != current.Rank() {
		return status.Rank() > current.Rank()
	}
	return fp < currentFp
}

func resolveSeat(seat entity.Seat, status entity.SeatStatus) entity.Seat {
	resolved := seat.Clone()
	resolved.Status = status
	if len(resolved.TravelerPricing) == 0 {
		resolved.TravelerPricing = []entity.SeatPricing{{}}
	}
	resolved.TravelerPricing[0].SeatAvailabilityStatus = status
	return resolved
}

func documentFacilities(doc entity.SeatMapDocument) []entity.Facility {
	var facilities []entity.Facility
	for _, deck := range doc.Decks {
		facilities = append(facilities, deck.Facilities...)
	}
	return facilities
}

func seatFingerprint(seat entity.Seat) string {
	seat.Status = ""
	b, err := json.Marshal(seat)
	if err != nil {
		return seat.Number
	}
	return string(b)
}
