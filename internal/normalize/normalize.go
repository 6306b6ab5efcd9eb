package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// dateLayouts are tried in order; the first layout that parses wins.
// Single-digit months and days are accepted by every layout.
var dateLayouts = []string{
	"2006-1-2", // ISO
	"1/2/2006", // US, four-digit year
	"1/2/06",   // US, two-digit year (69-99 => 19xx, 00-68 => 20xx)
}

// TimestampLayout is the ISO-8601 form used when a sync timestamp is rendered as text.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// MaxTxnCount is the largest count the INTEGER txn_count column holds.
// Longer digit runs are clamped to it.
const MaxTxnCount = math.MaxInt32

var currencyStripper = strings.NewReplacer("$", "", ",", "")

// ParseAmount parses a currency-formatted cell such as "-$1,234.56".
// The currency symbol and thousands separators are removed; anything that is
// still not a number (including empty input) yields zero.
func ParseAmount(s string) decimal.Decimal {
	cleaned := strings.TrimSpace(currencyStripper.Replace(s))
	if cleaned == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatCurrency renders d the way the ledger sheet displays money: "-$1,234.56".
func FormatCurrency(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	sign := ""
	if d.IsNegative() && fixed != "0.00" {
		sign = "-"
	}

	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return sign + "$" + b.String() + "." + frac
}

// ParseTxnCount coerces a transaction-count cell into an int.
// Integers are returned unchanged. Text is reduced to its digits, so "100+"
// becomes 100 and "N/A" becomes 0.
func ParseTxnCount(v any) int {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		return digitsToInt(n)
	default:
		return digitsToInt(fmt.Sprint(v))
	}
}

func digitsToInt(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}

	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil || n > MaxTxnCount {
		// Only a range error is possible for a non-empty digit string.
		return MaxTxnCount
	}
	return int(n)
}

// ParseDate parses a free-text date cell. It returns false when the cell is
// empty or matches none of the accepted layouts.
func ParseDate(s string) (civil.Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civil.Date{}, false
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return civil.DateOf(t), true
		}
	}
	return civil.Date{}, false
}

// CurrentTimestamp captures the wall clock with the local UTC offset.
func CurrentTimestamp() time.Time {
	return time.Now()
}

// FormatTimestamp serializes t as ISO-8601 with its UTC offset.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
