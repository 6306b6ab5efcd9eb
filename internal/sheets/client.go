package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const (
	// valueInputRaw stores values exactly as sent, without formula or date parsing.
	valueInputRaw = "RAW"

	// renderFormatted returns cells as the sheet displays them, e.g. "-$50.00".
	renderFormatted = "FORMATTED_VALUE"
)

// Client is the concrete implementation of Service backed by the Google Sheets API.
type Client struct {
	svc           *gsheets.Service
	spreadsheetID string
}

// NewClient authenticates with a service-account JSON key and binds to one spreadsheet.
func NewClient(ctx context.Context, credentialsJSON []byte, spreadsheetID string) (*Client, error) {
	return NewClientWithOptions(ctx, spreadsheetID,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(gsheets.SpreadsheetsScope, gsheets.DriveScope),
	)
}

// NewClientWithOptions builds a Client from arbitrary client options.
func NewClientWithOptions(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Client, error) {
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewClient: creating sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// ReadRecords fetches the whole worksheet and converts it to records.
func (c *Client) ReadRecords(ctx context.Context, worksheet string) ([]Record, error) {
	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, QuoteSheet(worksheet)).
		ValueRenderOption(renderFormatted).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("ReadRecords: reading %q: %w", worksheet, err)
	}

	return RecordsFromValues(resp.Values), nil
}

// BatchUpdate writes every update in one values.batchUpdate call.
func (c *Client) BatchUpdate(ctx context.Context, worksheet string, updates []CellUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	req := BuildBatchRequest(worksheet, updates)
	if _, err := c.svc.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("BatchUpdate: writing %d ranges to %q: %w", len(updates), worksheet, err)
	}

	return nil
}

// BuildBatchRequest qualifies each range with the worksheet name and wraps
// the updates into a single RAW batch request.
func BuildBatchRequest(worksheet string, updates []CellUpdate) *gsheets.BatchUpdateValuesRequest {
	data := make([]*gsheets.ValueRange, 0, len(updates))
	for _, u := range updates {
		data = append(data, &gsheets.ValueRange{
			Range:  QuoteSheet(worksheet) + "!" + u.Range,
			Values: u.Values,
		})
	}

	return &gsheets.BatchUpdateValuesRequest{
		ValueInputOption: valueInputRaw,
		Data:             data,
	}
}

// RecordsFromValues turns a raw value grid into records. The first row is the
// header; short rows are padded with "" and columns with a blank header are dropped.
func RecordsFromValues(values [][]interface{}) []Record {
	if len(values) == 0 {
		return nil
	}

	headers := make([]string, len(values[0]))
	for i, h := range values[0] {
		headers[i] = cellString(h)
	}

	records := make([]Record, 0, len(values)-1)
	for i, row := range values[1:] {
		rec := Record{
			Row:    i + 2,
			Values: make(map[string]string, len(headers)),
		}
		for col, h := range headers {
			if h == "" {
				continue
			}
			if _, seen := rec.Values[h]; seen {
				continue
			}
			if col < len(row) {
				rec.Values[h] = cellString(row[col])
			} else {
				rec.Values[h] = ""
			}
		}
		records = append(records, rec)
	}

	return records
}

func cellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// CellAddress builds an A1 address such as "F12".
func CellAddress(column string, row int) string {
	return column + strconv.Itoa(row)
}

// QuoteSheet quotes a worksheet name for use in an A1 range.
func QuoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
