package usecase

import (
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Kaushallx0/seatxray/internal/seatxray/entity"
)

const (
	aisleCode         = "A"
	unknownColumn     = "?"
	defaultSeatSizePx = 50
)

var (
	leadingDigits = regexp.MustCompile(`^\d+`)
	anyDigits     = regexp.MustCompile(`\d+`)
)

// Sizing holds the pixel budget used to size seat cells.
type Sizing struct {
	Width    int
	SeatGap  int
	AisleGap int
	MinSeat  int
	MaxSeat  int
}

var (
	DesktopSizing = Sizing{Width: 650, SeatGap: 4, AisleGap: 20, MinSeat: 40, MaxSeat: 56}
	MobileSizing  = Sizing{Width: 540, SeatGap: 3, AisleGap: 14, MinSeat: 44, MaxSeat: 52}
)

type RowLayout struct {
	Number int
	// Seats maps a column letter to the seat number occupying it in this row.
	Seats map[string]string
}

type CabinLayout struct {
	Cabin   entity.Cabin
	Rows    []int
	Columns []string
	// Aisles lists, in column order, the columns followed by an aisle.
	Aisles []string
	Grid   []RowLayout
	// Unplaced holds seats whose number parsed to a cell another seat already took.
	Unplaced []string
}

func (c CabinLayout) AisleAfter(column string) bool {
	for _, a := range c.Aisles {
		if a == column {
			return true
		}
	}
	return false
}

func (c CabinLayout) SeatSize(s Sizing) int {
	return SeatSize(s, len(c.Columns), len(c.Aisles))
}

// ParseSeatNumber splits "25A" into row 25 and column "A". Missing digits give row 0 and
// missing letters give column "?".
func ParseSeatNumber(number string) (int, string) {
	row := 0
	if digits := leadingDigits.FindString(number); digits != "" {
		if n, err := strconv.Atoi(digits); err == nil {
			row = n
		}
	}

	column := strings.ToUpper(anyDigits.ReplaceAllString(number, ""))
	if column == "" {
		column = unknownColumn
	}
	return row, column
}

type cabinSeats struct {
	rows        map[int]map[string]entity.Seat
	columnCodes map[string]map[string]bool
	unplaced    []string
}

// InferGeometry derives rows, columns and aisle positions for each cabin of the
// inventory, in FIRST, BUSINESS, PREMIUM_ECONOMY, ECONOMY order. Seats of any other cabin
// label are left out.
func InferGeometry(inv entity.SeatInventory) []CabinLayout {
	numbers := make([]string, 0, len(inv))
	for number := range inv {
		numbers = append(numbers, number)
	}
	sort.Strings(numbers)

	cabins := make(map[entity.Cabin]*cabinSeats)
	for _, number := range numbers {
		seat := inv[number]
		cabin := seat.CabinOrDefault()
		row, column := ParseSeatNumber(number)

		cs, ok := cabins[cabin]
		if !ok {
			cs = &cabinSeats{
				rows:        make(map[int]map[string]entity.Seat),
				columnCodes: make(map[string]map[string]bool),
			}
			cabins[cabin] = cs
		}
		if cs.rows[row] == nil {
			cs.rows[row] = make(map[string]entity.Seat)
		}
		if taken, ok := cs.rows[row][column]; ok {
			slog.Warn("seat numbers share a grid cell", "cabin", cabin, "kept", taken.Number, "dropped", number)
			cs.unplaced = append(cs.unplaced, number)
		} else {
			cs.rows[row][column] = seat
		}

		if cs.columnCodes[column] == nil {
			cs.columnCodes[column] = make(map[string]bool)
		}
		for _, code := range seat.CharacteristicsCodes {
			cs.columnCodes[column][code] = true
		}
	}

	layouts := make([]CabinLayout, 0, len(cabins))
	for _, cabin := range entity.CabinOrder {
		cs, ok := cabins[cabin]
		if !ok {
			continue
		}
		layouts = append(layouts, buildCabinLayout(cabin, cs))
	}
	return layouts
}

func buildCabinLayout(cabin entity.Cabin, cs *cabinSeats) CabinLayout {
	rows := make([]int, 0, len(cs.rows))
	for row := range cs.rows {
		rows = append(rows, row)
	}
	sort.Ints(rows)

	columns := make([]string, 0, len(cs.columnCodes))
	for column := range cs.columnCodes {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	aisles := make([]string, 0)
	for i := 0; i+1 < len(columns); i++ {
		if isAisleBetween(cs, columns[i], columns[i+1]) {
			aisles = append(aisles, columns[i])
		}
	}

	grid := make([]RowLayout, 0, len(rows))
	for _, row := range rows {
		seats := make(map[string]string, len(cs.rows[row]))
		for column, seat := range cs.rows[row] {
			seats[column] = seat.Number
		}
		grid = append(grid, RowLayout{Number: row, Seats: seats})
	}

	return CabinLayout{
		Cabin:    cabin,
		Rows:     rows,
		Columns:  columns,
		Aisles:   aisles,
		Grid:     grid,
		Unplaced: cs.unplaced,
	}
}

// isAisleBetween decides whether an aisle separates two neighbouring columns. Where the
// columns share rows, every shared row must flag both seats as aisle seats. Where they
// never share a row, it is enough that each column is flagged as aisle somewhere in the
// cabin; this fallback is a heuristic for irregular maps.
func isAisleBetween(cs *cabinSeats, left, right string) bool {
	shared := 0
	for _, seats := range cs.rows {
		l, okLeft := seats[left]
		r, okRight := seats[right]
		if !okLeft || !okRight {
			continue
		}
		shared++
		if !l.HasCode(aisleCode) || !r.HasCode(aisleCode) {
			return false
		}
	}
	if shared > 0 {
		return true
	}
	return cs.columnCodes[left][aisleCode] && cs.columnCodes[right][aisleCode]
}

// SeatSize fits columns seat cells plus their gaps into the sizing width, clamped to the
// configured bounds.
func SeatSize(s Sizing, columns, aisles int) int {
	if columns <= 0 {
		return defaultSeatSizePx
	}
	gaps := (columns-1)*s.SeatGap + aisles*(s.AisleGap-s.SeatGap)
	raw := float64(s.Width-gaps) / float64(columns)
	return int(math.Max(float64(s.MinSeat), math.Min(float64(s.MaxSeat), raw)))
}
