package invoice

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/karbonsync/internal/csvfile"
	enc "github.com/MrJamesThe3rd/karbonsync/internal/encoding"
)

// Column positions of the base invoice CSV. Downstream reports address
// columns by position, so the order is fixed.
const (
	ColClient = iota
	ColNumber
	ColTotal
	ColStreet
	ColCity
	ColState
	ColZip
	ColStatus
	ColDueDate
	ColInvoiceDate
	ColKey
	ColEmail

	numCols
)

// Header names, also used by the overdue filter to address columns by name.
const (
	HeaderStatus  = "Status"
	HeaderDueDate = "Due Date"
	HeaderKey     = "Invoice Key"
)

var Header = []string{
	ColClient:      "Client",
	ColNumber:      "Invoice Number",
	ColTotal:       "Invoice Total",
	ColStreet:      "Street",
	ColCity:        "City",
	ColState:       "State",
	ColZip:         "Zip",
	ColStatus:      HeaderStatus,
	ColDueDate:     HeaderDueDate,
	ColInvoiceDate: "Invoice Date",
	ColKey:         HeaderKey,
	ColEmail:       "Email Address",
}

// Row renders the record in column order.
func (r Record) Row() []string {
	row := make([]string, numCols)
	row[ColClient] = r.Client
	row[ColNumber] = r.Number
	row[ColTotal] = FormatAmount(r.Total)
	row[ColStreet] = r.Street
	row[ColCity] = r.City
	row[ColState] = r.State
	row[ColZip] = r.Zip
	row[ColStatus] = string(r.Status)
	row[ColDueDate] = r.DueDate
	row[ColInvoiceDate] = r.InvoiceDate
	row[ColKey] = r.Key
	row[ColEmail] = r.Email

	return row
}

// ParseRow is the positional inverse of Row.
func ParseRow(row []string) (Record, error) {
	if len(row) < numCols {
		return Record{}, fmt.Errorf("expected %d columns, got %d", numCols, len(row))
	}

	total := decimal.Zero

	if s := strings.TrimSpace(row[ColTotal]); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return Record{}, fmt.Errorf("invoice total %q: %w", s, err)
		}

		total = d
	}

	return Record{
		Key:         strings.TrimSpace(row[ColKey]),
		Number:      row[ColNumber],
		Client:      row[ColClient],
		Total:       total,
		Street:      row[ColStreet],
		City:        row[ColCity],
		State:       row[ColState],
		Zip:         row[ColZip],
		Status:      Status(row[ColStatus]),
		DueDate:     row[ColDueDate],
		InvoiceDate: row[ColInvoiceDate],
		Email:       row[ColEmail],
	}, nil
}

// ReadAll reads a base invoice CSV, skipping its header row. A row with too
// few columns fails the read; a row whose values do not parse is logged and
// left out.
func ReadAll(r io.Reader) ([]Record, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read csv: missing header row")
		}

		return nil, fmt.Errorf("read csv: %w", err)
	}

	var records []Record

	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		if len(row) < numCols {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", line, numCols, len(row))
		}

		rec, err := ParseRow(row)
		if err != nil {
			slog.Warn("skipping invoice row", "row", line, "error", err)
			continue
		}

		records = append(records, rec)
	}

	return records, nil
}

// ReadFile reads the base invoice CSV at path.
func ReadFile(path string) ([]Record, error) {
	f, err := csvfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return records, nil
}
