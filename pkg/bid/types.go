// Package bid defines the bid record held by the list and its text helpers.
package bid

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Bid represents a single bid entry.
type Bid struct {
	ID     string  // Bid identifier, used as the lookup key
	Title  string  // Title of the bid
	Fund   string  // Funding source (e.g., "General Fund")
	Amount float64 // Winning bid amount, 0 when unknown
}

// String formats the bid as "ID: Title | Amount | Fund".
func (b Bid) String() string {
	return fmt.Sprintf("%s: %s | %s | %s", b.ID, b.Title, FormatAmount(b.Amount), b.Fund)
}

// FormatAmount renders an amount with thousands separators and at most two
// decimals. Trailing zeros are dropped, so 6.00 renders as "6".
func FormatAmount(amount float64) string {
	return humanize.CommafWithDigits(amount, 2)
}

// ParseAmount converts a currency string such as "$1,234.50" to a float.
// Empty, unparsable, negative or non-finite input yields 0.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("$", "", ",", "").Replace(s)
	if s == "" {
		return 0
	}

	amount, err := strconv.ParseFloat(s, 64)
	if err != nil || amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	return amount
}
