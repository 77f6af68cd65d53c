// Package csvfile writes CSV reports so that a failed run never leaves a
// truncated file behind: rows go to a temp file beside the target, which is
// renamed into place on Commit.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

type File struct {
	*csv.Writer

	f         *os.File
	path      string
	committed bool
}

// Create opens a temp file in the directory of path and writes header as
// the first row. Callers must defer Close; it discards the temp file unless
// Commit succeeded.
func Create(path string, header []string) (*File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}

	out := &File{Writer: csv.NewWriter(f), f: f, path: path}

	if err := out.Write(header); err != nil {
		out.Close()
		return nil, fmt.Errorf("writing header: %w", err)
	}

	return out, nil
}

// Path is the final destination.
func (o *File) Path() string { return o.path }

// Commit flushes pending rows and moves the file to its destination.
func (o *File) Commit() error {
	o.Flush()

	if err := o.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", o.path, err)
	}

	// CreateTemp uses 0600.
	if err := o.f.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", o.path, err)
	}

	if err := o.f.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", o.path, err)
	}

	if err := o.f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", o.path, err)
	}

	if err := os.Rename(o.f.Name(), o.path); err != nil {
		return fmt.Errorf("renaming into %s: %w", o.path, err)
	}

	o.committed = true

	return nil
}

// Close releases the file. It is safe to call after Commit.
func (o *File) Close() error {
	if o.committed {
		return nil
	}

	o.committed = true
	_ = o.f.Close()

	return os.Remove(o.f.Name())
}

// Open opens an input CSV for reading.
func Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	return f, nil
}

// Dated prefixes name with the report date, e.g. "2024-01-31 overdue_invoices.csv".
func Dated(dir, date, name string) string {
	return filepath.Join(dir, date+" "+name)
}
