package usecase

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var currencySymbols = map[string]string{
	"JPY": "¥",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"AUD": "A$",
	"CAD": "C$",
	"KRW": "₩",
	"CNY": "¥",
	"SGD": "S$",
	"THB": "฿",
}

var noDecimalCurrencies = map[string]bool{
	"JPY": true,
	"KRW": true,
}

var isoDurationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?`)

func currencySymbol(currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if symbol, ok := currencySymbols[code]; ok {
		return symbol
	}
	return code
}

func formatPrice(amount float64, currency string) string {
	symbol := currencySymbol(currency)
	negative := amount < 0
	amount = math.Abs(amount)

	var whole int64
	var fraction string
	if noDecimalCurrencies[strings.ToUpper(currency)] {
		whole = int64(amount)
	} else {
		cents := int64(math.Round(amount * 100))
		whole = cents / 100
		fraction = fmt.Sprintf(".%02d", cents%100)
	}

	value := groupThousands(strconv.FormatInt(whole, 10)) + fraction
	if negative {
		return "-" + symbol + value
	}
	return symbol + value
}

func formatRawPrice(raw, currency string) string {
	return currencySymbol(currency) + raw
}

func groupThousands(digits string) string {
	for i := len(digits) - 3; i > 0; i -= 3 {
		digits = digits[:i] + "," + digits[i:]
	}
	return digits
}

// parseISODuration reads the hour and minute parts of tokens like PT12H30M.
func parseISODuration(token string) int {
	matches := isoDurationPattern.FindStringSubmatch(token)
	if matches == nil {
		return 0
	}
	hours, _ := strconv.Atoi(matches[1])
	minutes, _ := strconv.Atoi(matches[2])
	return hours*60 + minutes
}

func formatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
