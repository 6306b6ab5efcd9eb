package domain

import "time"

// MerchantRule is the default classification for a standardized merchant name.
// Merchant is unique; loading the same name twice overwrites the earlier row.
type MerchantRule struct {
	Merchant          string
	EntityDefault     string
	OriginQBAccount   *string
	OpenHaulQBAccount *string
	Notes             *string
	TxnCount          int

	SheetsRowID    *int
	SheetsSyncedAt *time.Time
}

// MerchantAlias maps a raw bank-statement merchant string to its standardized name.
// The (raw, std) pair is unique in the store; the struct does not enforce it.
type MerchantAlias struct {
	RawMerchant string
	StdMerchant string
	Source      *string
	Notes       *string
}
