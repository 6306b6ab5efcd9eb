package migrator

import "github.com/shopspring/decimal"

// maxReportedErrors caps how many error messages a sheet surfaces to the operator.
const maxReportedErrors = 5

// Result tallies one worksheet's migration.
type Result struct {
	Sheet      string
	Total      int // data rows read
	Migrated   int
	Skipped    int // rows without identity (or date); not errors
	Duplicates int // aliases already present
	Errors     int

	// ErrorMessages holds the first few failures verbatim.
	ErrorMessages []string

	// Net is the summed amount of migrated transactions.
	Net decimal.Decimal

	// Err is set when the worksheet could not be read at all.
	Err error
}

func (r *Result) addError(msg string, n int) bool {
	r.Errors += n
	if len(r.ErrorMessages) < maxReportedErrors {
		r.ErrorMessages = append(r.ErrorMessages, msg)
		return true
	}
	return false
}
