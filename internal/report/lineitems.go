package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/karbonsync/internal/invoice"
	"github.com/MrJamesThe3rd/karbonsync/internal/karbon"
)

var LineItemsHeader = header("Line Item Description", "Line Item Total", "Work Title", "Work Type", "Work URL")

type LineItemRow struct {
	Invoice     invoice.Record
	Description string
	Amount      decimal.Decimal
	WorkTitle   string
	WorkType    string
	WorkURL     string
}

func (r LineItemRow) Row() []string {
	return append(invoiceCols(r.Invoice),
		r.Description, invoice.FormatAmount(r.Amount), r.WorkTitle, r.WorkType, r.WorkURL)
}

// LineItems fetches the line items of one invoice. Items billed against a
// work item or time entry get the work title, type and a deep link; the
// work item request costs one round trip per such item.
func (s *Service) LineItems(ctx context.Context, rec invoice.Record) ([]LineItemRow, error) {
	inv, err := s.api.GetInvoice(ctx, rec.Key, karbon.ExpandLineItems)
	if err != nil {
		return nil, fmt.Errorf("fetching line items: %w", err)
	}

	rows := make([]LineItemRow, 0, len(inv.LineItems))

	for _, item := range inv.LineItems {
		row := LineItemRow{
			Invoice:     rec,
			Description: item.Description,
			Amount:      item.Amount,
		}

		if item.LinksWork() {
			row.WorkURL = s.workURL(item.BillableItemEntityKey)

			work, err := s.api.GetWorkItem(ctx, item.BillableItemEntityKey)
			if err != nil {
				slog.Warn("work item lookup failed",
					"number", rec.Number, "work", item.BillableItemEntityKey, "error", err)
			} else {
				row.WorkTitle = work.Title
				row.WorkType = work.WorkType
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (s *Service) workURL(workKey string) string {
	return fmt.Sprintf("%s#/work/%s/tasks", s.appURL, workKey)
}

// WriteLineItems writes the line item report for records to path.
func (s *Service) WriteLineItems(ctx context.Context, records []invoice.Record, path string) (Summary, error) {
	return write(ctx, path, LineItemsHeader, records, "line items", s.LineItems)
}
