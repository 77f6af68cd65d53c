package invoice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/karbonsync/internal/csvfile"
	"github.com/MrJamesThe3rd/karbonsync/internal/karbon"
)

// PageSize is the $top used when paging through invoices.
const PageSize = 100

//go:generate mockgen -source=export.go -destination=api_mock.go -package=invoice
type API interface {
	ListInvoices(ctx context.Context, page karbon.Page) ([]karbon.Invoice, error)
	GetOrganization(ctx context.Context, key string, expand karbon.Expand) (*karbon.Organization, error)
}

// Exporter builds the base invoice list.
type Exporter struct {
	api API
}

func NewExporter(api API) *Exporter {
	return &Exporter{api: api}
}

// Export writes every invoice to the CSV at path and returns the row count.
// The file is only replaced when the whole listing succeeds.
func (e *Exporter) Export(ctx context.Context, path string) (int, error) {
	out, err := csvfile.Create(path, Header)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	count := 0

	err = e.Each(ctx, func(rec Record) error {
		if err := out.Write(rec.Row()); err != nil {
			return fmt.Errorf("writing invoice %s: %w", rec.Number, err)
		}

		count++

		slog.Info("exported invoice", "number", rec.Number, "client", rec.Client)

		return nil
	})
	if err != nil {
		return count, err
	}

	if err := out.Commit(); err != nil {
		return count, err
	}

	return count, nil
}

// Each pages through the invoice list until an empty page and calls fn once
// per distinct invoice key, in API order.
func (e *Exporter) Each(ctx context.Context, fn func(Record) error) error {
	seen := make(map[string]struct{})

	for skip := 0; ; skip += PageSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		page, err := e.api.ListInvoices(ctx, karbon.Page{Skip: skip, Top: PageSize})
		if err != nil {
			return fmt.Errorf("fetching invoice page skip=%d: %w", skip, err)
		}

		if len(page) == 0 {
			return nil
		}

		for _, inv := range page {
			// Pages can overlap when invoices are added mid-run.
			if _, dup := seen[inv.InvoiceKey]; dup {
				continue
			}

			seen[inv.InvoiceKey] = struct{}{}

			if err := fn(FromInvoice(inv, e.clientAddress(ctx, inv))); err != nil {
				return err
			}
		}
	}
}

// clientAddress looks up the address on the client's first business card.
// Lookup failures are logged and produce an empty address.
func (e *Exporter) clientAddress(ctx context.Context, inv karbon.Invoice) karbon.Address {
	if inv.Client.ClientKey == "" {
		return karbon.Address{}
	}

	org, err := e.api.GetOrganization(ctx, inv.Client.ClientKey, karbon.ExpandBusinessCards)
	if err != nil {
		slog.Warn("client lookup failed, leaving address empty",
			"invoice", inv.InvoiceNumber, "client", inv.Client.ClientKey, "error", err)

		return karbon.Address{}
	}

	addr, _ := org.Address()

	return addr
}
