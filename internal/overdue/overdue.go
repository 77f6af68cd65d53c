// Package overdue filters the base invoice list down to unpaid invoices
// whose due date has passed.
package overdue

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/karbonsync/internal/csvfile"
	"github.com/MrJamesThe3rd/karbonsync/internal/encoding"
	"github.com/MrJamesThe3rd/karbonsync/internal/invoice"
)

const File = "overdue_invoices.csv"

const dateLayout = "2006-01-02"

// dropped columns are not carried into the overdue report.
var dropped = []string{invoice.HeaderKey, invoice.HeaderStatus}

// colIndex maps column names to their index in the header row.
type colIndex map[string]int

func indexHeader(header []string) colIndex {
	cols := make(colIndex, len(header))

	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if name == "" {
			continue
		}

		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	return cols
}

// Result is the filtered report: the kept header and data rows.
type Result struct {
	Header []string
	Rows   [][]string
}

// Filter keeps rows whose status is AwaitingPayment and whose due date is
// strictly before the calendar day of now. Rows with an unparsable due date
// are left out.
func Filter(r io.Reader, now time.Time) (*Result, error) {
	ur, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(ur)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("missing header row")
	}

	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := indexHeader(header)

	statusIdx, ok := cols[invoice.HeaderStatus]
	if !ok {
		return nil, fmt.Errorf("missing %q column", invoice.HeaderStatus)
	}

	dueIdx, ok := cols[invoice.HeaderDueDate]
	if !ok {
		return nil, fmt.Errorf("missing %q column", invoice.HeaderDueDate)
	}

	keep := keptColumns(header)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	res := &Result{Header: project(header, keep)}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading rows: %w", err)
		}

		if strings.TrimSpace(cell(row, statusIdx)) != string(invoice.StatusAwaitingPayment) {
			continue
		}

		due, err := time.Parse(dateLayout, invoice.DateOnly(strings.TrimSpace(cell(row, dueIdx))))
		if err != nil || !due.Before(today) {
			continue
		}

		res.Rows = append(res.Rows, project(row, keep))
	}

	return res, nil
}

// Run filters the base list at src and writes the overdue report to dst.
// It returns the number of overdue invoices written.
func Run(src, dst string, now time.Time) (int, error) {
	in, err := csvfile.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	res, err := Filter(in, now)
	if err != nil {
		return 0, fmt.Errorf("filtering %s: %w", src, err)
	}

	out, err := csvfile.Create(dst, res.Header)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	if err := out.WriteAll(res.Rows); err != nil {
		return 0, fmt.Errorf("writing %s: %w", dst, err)
	}

	if err := out.Commit(); err != nil {
		return 0, err
	}

	return len(res.Rows), nil
}

func keptColumns(header []string) []int {
	keep := make([]int, 0, len(header))

	for i, name := range header {
		if slices.Contains(dropped, strings.TrimSpace(name)) {
			continue
		}

		keep = append(keep, i)
	}

	return keep
}

func project(row []string, keep []int) []string {
	out := make([]string, len(keep))
	for i, idx := range keep {
		out[i] = cell(row, idx)
	}

	return out
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return row[idx]
}
