// Package organization reads the list of organisations the custom field
// updater works through.
package organization

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/karbonsync/internal/csvfile"
	"github.com/MrJamesThe3rd/karbonsync/internal/encoding"
)

const (
	colKey  = "Key"
	colName = "Name"
)

type Entry struct {
	Key  string
	Name string
}

// Read parses a CSV with Key and Name columns, in any position. Rows with a
// blank key are skipped.
func Read(r io.Reader) ([]Entry, error) {
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

	keyIdx, nameIdx := -1, -1

	for i, cell := range header {
		switch strings.TrimSpace(cell) {
		case colKey:
			keyIdx = i
		case colName:
			nameIdx = i
		}
	}

	if keyIdx < 0 || nameIdx < 0 {
		return nil, fmt.Errorf("header must contain %q and %q columns", colKey, colName)
	}

	var entries []Entry

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading rows: %w", err)
		}

		key := strings.TrimSpace(cell(row, keyIdx))
		if key == "" {
			continue
		}

		entries = append(entries, Entry{Key: key, Name: strings.TrimSpace(cell(row, nameIdx))})
	}

	return entries, nil
}

func ReadFile(path string) ([]Entry, error) {
	f, err := csvfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return entries, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}

	return row[idx]
}
