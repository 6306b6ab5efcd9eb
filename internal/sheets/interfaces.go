package sheets

import "context"

// Service is the spreadsheet surface the migrator and reverse sync depend on.
// This interface enables mocking and testing of spreadsheet operations.
type Service interface {
	// ReadRecords returns every data row of a worksheet keyed by header, header row excluded.
	ReadRecords(ctx context.Context, worksheet string) ([]Record, error)

	// BatchUpdate writes all updates to a worksheet in a single request.
	BatchUpdate(ctx context.Context, worksheet string, updates []CellUpdate) error
}

// Record is one worksheet row as header → cell text.
type Record struct {
	// Row is the 1-based sheet row number; the header is row 1, so data starts at 2.
	Row    int               `json:"row"`
	Values map[string]string `json:"values"`
}

// Get returns the cell under header, or "" when the column is absent.
func (r Record) Get(header string) string {
	return r.Values[header]
}

// CellUpdate is a write to one A1 range (e.g. "F12") relative to a worksheet.
type CellUpdate struct {
	Range  string
	Values [][]interface{}
}
