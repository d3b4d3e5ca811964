package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the human-readable layout of Movie.Timestamp (local time)
const TimestampLayout = "2006-01-02 15:04:05"

// Movie is one catalog entry. It carries no identity beyond its position in the catalog.
type Movie struct {
	Timestamp string  `json:"timestamp" yaml:"timestamp"` // Creation / last-modified time.
	Title     string  `json:"title" yaml:"title"`
	Year      int     `json:"year" yaml:"year"`   // Release year, 0 when unknown.
	Price     float64 `json:"price" yaml:"price"` // Non-negative by convention only.
}

// Now returns the current local time formatted with TimestampLayout
func Now() string {
	return time.Now().Format(TimestampLayout)
}

// NewMovie returns a movie stamped with the current time. Control characters in the
// title become spaces.
func NewMovie(title string, year int, price float64) Movie {
	return Movie{
		Timestamp: Now(),
		Title:     CleanTitle(title),
		Year:      year,
		Price:     price,
	}
}

// ParseYear parses a release year as a 32-bit integer. Anything unparsable or out of
// that range becomes 0.
func ParseYear(s string) int {
	year, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0
	}
	return int(year)
}

// CleanTitle replaces control characters (line breaks, tabs) with spaces so a title
// always stays on one line of the text format
func CleanTitle(title string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, title)
}

// ParsePrice parses a price. Anything unparsable (including NaN and infinities) becomes 0.
func ParsePrice(s string) float64 {
	price, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0
	}
	return price
}

// FormatPrice renders a price with exactly two decimals, without the currency sign
func FormatPrice(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return fmt.Sprintf("%.2f", price)
	}
	return decimal.NewFromFloat(price).StringFixed(2)
}

// PriceString returns the display form of the price, e.g. "$9.99"
func (m Movie) PriceString() string {
	return "$" + FormatPrice(m.Price)
}

// Label returns the short "Title (Year)" form used in selection lists
func (m Movie) Label() string {
	return fmt.Sprintf("%s (%d)", m.Title, m.Year)
}
