package domain

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Defaults written when the sheet leaves a classification cell blank.
const (
	// EntityNeedsReview marks a transaction or rule nobody has classified yet.
	EntityNeedsReview = "NEEDS REVIEW"

	// StatusNeedsAttention is the status glyph for rows that still need a look.
	StatusNeedsAttention = "⚠️"
)

// Transaction is one ledger line loaded from the "All Transactions" sheet.
// Nullable columns are pointers; nil is stored as NULL.
type Transaction struct {
	ID            string          // surrogate key, generated at load time
	Date          civil.Date      // required; rows without a parseable date are dropped
	RawMerchant   *string         // "Raw Merchant"
	Merchant      *string         // "Std Merchant", falling back to "Raw Merchant"
	Amount        decimal.Decimal // signed; zero when the cell does not parse
	Entity        string          // "Entity" or EntityNeedsReview
	QBAccount     *string         // "QB Account"
	Status        string          // "Status" or StatusNeedsAttention
	SourceAccount *string         // "Account Used"
	CardNumber    *string         // "Card #"
	Notes         *string

	SheetsRowID    *int       // 1-based sheet row the record came from
	SheetsSyncedAt *time.Time // nil means dirty: not yet written back to the sheet
}

// DirtyTransaction is the projection the reverse sync needs to rewrite a sheet row.
type DirtyTransaction struct {
	ID          string
	SheetsRowID int
	Status      *string
	QBAccount   *string
}

// StringOrNil returns nil for an empty string so blank cells persist as NULL.
func StringOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
