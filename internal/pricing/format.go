package pricing

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DisplayBreakdown is a Breakdown rendered as the customer sees it.
type DisplayBreakdown struct {
	Material string `json:"material"`
	Shipping string `json:"shipping"`
	Options  string `json:"options"`
	Total    string `json:"total"`
}

// Display formats every amount of b with FormatUSD.
func (b Breakdown) Display() DisplayBreakdown {
	return DisplayBreakdown{
		Material: FormatUSD(b.Material),
		Shipping: FormatUSD(b.Shipping),
		Options:  FormatUSD(b.Options),
		Total:    FormatUSD(b.Total),
	}
}

// FormatUSD renders whole dollars with thousands separators ("$1,250") and
// keeps cents only when present.
func FormatUSD(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return "$" + humanize.Comma(d.IntPart())
	}
	return "$" + humanize.FormatFloat("#,###.##", d.InexactFloat64())
}

// ParseUSD reads an amount produced by FormatUSD (or typed by hand).
func ParseUSD(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
