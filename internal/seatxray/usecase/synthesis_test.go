package usecase

import (
	"testing"

	"github.com/Kaushallx0/seatxray/internal/seatxray/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeat(number string, status entity.SeatStatus, codes ...string) entity.Seat {
	seat := entity.Seat{Number: number, CharacteristicsCodes: codes}
	if status != "" {
		seat.TravelerPricing = []entity.SeatPricing{{TravelerID: "1", SeatAvailabilityStatus: status}}
	}
	return seat
}

func testDoc(seats ...entity.Seat) entity.SeatMapDocument {
	return entity.SeatMapDocument{Decks: []entity.Deck{{Seats: seats}}}
}

func TestSynthesize_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		docs []entity.SeatMapDocument
		want entity.SeatStatus
	}{
		{
			name: "available beats blocked and unknown",
			docs: []entity.SeatMapDocument{
				testDoc(testSeat("12A", entity.SeatStatusBlocked)),
				testDoc(testSeat("12A", entity.SeatStatusUnknown)),
				testDoc(testSeat("12A", entity.SeatStatusAvailable)),
			},
			want: entity.SeatStatusAvailable,
		},
		{
			name: "occupied stays occupied",
			docs: []entity.SeatMapDocument{
				testDoc(testSeat("12A", entity.SeatStatusOccupied)),
				testDoc(testSeat("12A", entity.SeatStatusAvailable)),
			},
			want: entity.SeatStatusOccupied,
		},
		{
			name: "blocked improves on unknown",
			docs: []entity.SeatMapDocument{
				testDoc(testSeat("12A", "")),
				testDoc(testSeat("12A", entity.SeatStatusBlocked)),
			},
			want: entity.SeatStatusBlocked,
		},
		{
			name: "unrecognised status counts as unknown",
			docs: []entity.SeatMapDocument{
				testDoc(testSeat("12A", "HELD")),
			},
			want: entity.SeatStatusUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, _ := Synthesize(tt.docs)

			require.Contains(t, inv, "12A")
			seat := inv["12A"]
			assert.Equal(t, tt.want, seat.Status)
			require.NotEmpty(t, seat.TravelerPricing)
			assert.Equal(t, tt.want, seat.TravelerPricing[0].SeatAvailabilityStatus)
		})
	}
}

func TestSynthesize_OccupiedAlwaysWins(t *testing.T) {
	statuses := []entity.SeatStatus{entity.SeatStatusAvailable, entity.SeatStatusBlocked, entity.SeatStatusUnknown}
	for _, other := range statuses {
		for _, occupiedFirst := range []bool{true, false} {
			docs := []entity.SeatMapDocument{testDoc(testSeat("1A", other))}
			occupied := testDoc(testSeat("1A", entity.SeatStatusOccupied))
			if occupiedFirst {
				docs = append([]entity.SeatMapDocument{occupied}, docs...)
			} else {
				docs = append(docs, occupied)
			}

			inv, _ := Synthesize(docs)
			assert.Equal(t, entity.SeatStatusOccupied, inv["1A"].Status)
		}
	}
}

func permutations(docs []entity.SeatMapDocument) [][]entity.SeatMapDocument {
	if len(docs) <= 1 {
		return [][]entity.SeatMapDocument{append([]entity.SeatMapDocument(nil), docs...)}
	}
	var out [][]entity.SeatMapDocument
	for i := range docs {
		rest := make([]entity.SeatMapDocument, 0, len(docs)-1)
		rest = append(rest, docs[:i]...)
		rest = append(rest, docs[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]entity.SeatMapDocument{docs[i]}, p...))
		}
	}
	return out
}

func commutativityDocs() []entity.SeatMapDocument {
	return []entity.SeatMapDocument{
		testDoc(
			testSeat("1A", entity.SeatStatusAvailable, "W"),
			testSeat("1B", entity.SeatStatusBlocked),
			testSeat("2A", entity.SeatStatusAvailable, "W", "E"),
		),
		testDoc(
			testSeat("1A", entity.SeatStatusAvailable, "W", "L"),
			testSeat("1B", entity.SeatStatusOccupied),
			testSeat("3C", ""),
		),
		testDoc(
			testSeat("1A", entity.SeatStatusBlocked, "W"),
			testSeat("2A", entity.SeatStatusAvailable, "W"),
			testSeat("3C", entity.SeatStatusBlocked, "A"),
		),
		testDoc(
			testSeat("2A", entity.SeatStatusUnknown),
			testSeat("4D", entity.SeatStatusAvailable, "A"),
		),
	}
}

func TestSynthesize_OrderIndependent(t *testing.T) {
	docs := commutativityDocs()
	want, _ := Synthesize(docs)

	for _, perm := range permutations(docs) {
		got, _ := Synthesize(perm)
		assert.Equal(t, want, got)
	}
}

func TestSynthesize_Idempotent(t *testing.T) {
	docs := commutativityDocs()
	once, _ := Synthesize(docs)
	twice, _ := Synthesize(append(append([]entity.SeatMapDocument(nil), docs...), docs...))

	assert.Equal(t, once, twice)
}

func TestSynthesize_DoesNotMutateInput(t *testing.T) {
	docs := []entity.SeatMapDocument{
		testDoc(testSeat("1A", entity.SeatStatusBlocked, "W")),
		testDoc(testSeat("1A", entity.SeatStatusAvailable, "W")),
		testDoc(entity.Seat{Number: "2A"}),
	}

	inv, _ := Synthesize(docs)
	inv["1A"].CharacteristicsCodes[0] = "X"

	assert.Equal(t, entity.SeatStatusBlocked, docs[0].Decks[0].Seats[0].TravelerPricing[0].SeatAvailabilityStatus)
	assert.Equal(t, "W", docs[1].Decks[0].Seats[0].CharacteristicsCodes[0])
	assert.Empty(t, docs[2].Decks[0].Seats[0].TravelerPricing)
	assert.Empty(t, docs[1].Decks[0].Seats[0].Status)
	assert.Equal(t, entity.SeatStatusUnknown, inv["2A"].TravelerPricing[0].SeatAvailabilityStatus)
}

func TestSynthesize_Facilities(t *testing.T) {
	galley := entity.Facility{Code: "G", Row: "1", Column: "A"}
	lav := entity.Facility{Code: "LA", Row: "20", Column: "C"}
	docs := []entity.SeatMapDocument{
		{Decks: []entity.Deck{{Seats: []entity.Seat{testSeat("1A", entity.SeatStatusAvailable)}}}},
		{Decks: []entity.Deck{{Facilities: []entity.Facility{galley}}, {Facilities: []entity.Facility{lav}}}},
		{Decks: []entity.Deck{{Facilities: []entity.Facility{{Code: "CL"}}}}},
	}

	_, facilities := Synthesize(docs)

	assert.Equal(t, []entity.Facility{galley, lav}, facilities)
}

func TestSynthesize_EmptyInput(t *testing.T) {
	inv, facilities := Synthesize(nil)
	assert.Empty(t, inv)
	assert.NotNil(t, facilities)
	assert.Empty(t, facilities)

	inv, _ = Synthesize([]entity.SeatMapDocument{{}, {Decks: []entity.Deck{{}}}})
	assert.Empty(t, inv)
}
