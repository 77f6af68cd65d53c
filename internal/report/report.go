// Package report fans the base invoice list out into per-line-item and
// per-payment CSV reports.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MrJamesThe3rd/karbonsync/internal/csvfile"
	"github.com/MrJamesThe3rd/karbonsync/internal/invoice"
	"github.com/MrJamesThe3rd/karbonsync/internal/karbon"
)

const (
	LineItemsFile = "invoices_line_items.csv"
	PaymentsFile  = "invoices_payments.csv"
)

//go:generate mockgen -source=report.go -destination=api_mock.go -package=report
type API interface {
	GetInvoice(ctx context.Context, key string, expand karbon.Expand) (*karbon.Invoice, error)
	GetWorkItem(ctx context.Context, key string) (*karbon.WorkItem, error)
	GetPayment(ctx context.Context, key string) (*karbon.Payment, error)
}

type Service struct {
	api    API
	appURL string
}

// NewService takes the web app base URL used to build work item links.
func NewService(api API, appURL string) *Service {
	return &Service{api: api, appURL: strings.TrimRight(appURL, "/")}
}

// Summary counts what a report run produced.
type Summary struct {
	Invoices int
	Rows     int
	Failed   int
}

// invoiceHeader is the parent-invoice prefix shared by both reports.
var invoiceHeader = []string{
	"Invoice Number", "Client", "Street", "City", "State", "Zipcode", "Email",
	"Invoice Total", "Status", "Due Date", "Invoice Date",
}

func invoiceCols(r invoice.Record) []string {
	return []string{
		r.Number, r.Client, r.Street, r.City, r.State, r.Zip, r.Email,
		invoice.FormatAmount(r.Total), string(r.Status), r.DueDate, r.InvoiceDate,
	}
}

func header(extra ...string) []string {
	return append(append([]string{}, invoiceHeader...), extra...)
}

type rower interface {
	Row() []string
}

// write runs fetch once per invoice, in order, and commits the report. An
// invoice whose detail cannot be fetched is logged and left out.
func write[T rower](
	ctx context.Context,
	path string,
	cols []string,
	records []invoice.Record,
	noun string,
	fetch func(context.Context, invoice.Record) ([]T, error),
) (Summary, error) {
	out, err := csvfile.Create(path, cols)
	if err != nil {
		return Summary{}, err
	}
	defer out.Close()

	var sum Summary

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		rows, err := fetch(ctx, rec)
		if err != nil {
			sum.Failed++
			slog.Warn("skipping invoice", "number", rec.Number, "invoice", rec.Key, "error", err)

			continue
		}

		for _, row := range rows {
			if err := out.Write(row.Row()); err != nil {
				return sum, fmt.Errorf("writing %s: %w", path, err)
			}
		}

		sum.Invoices++
		sum.Rows += len(rows)

		slog.Info(fmt.Sprintf("Processed invoice %s with %d %s.", rec.Number, len(rows), noun))
	}

	if err := out.Commit(); err != nil {
		return sum, err
	}

	return sum, nil
}
