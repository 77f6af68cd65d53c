package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/MrJamesThe3rd/karbonsync/cmd/invoices/internal/view"
	"github.com/MrJamesThe3rd/karbonsync/internal/config"
	"github.com/MrJamesThe3rd/karbonsync/internal/csvfile"
	"github.com/MrJamesThe3rd/karbonsync/internal/invoice"
	"github.com/MrJamesThe3rd/karbonsync/internal/karbon"
	"github.com/MrJamesThe3rd/karbonsync/internal/overdue"
	"github.com/MrJamesThe3rd/karbonsync/internal/report"
)

// buildStages returns the selected stages in their fixed order. Detail
// stages read whatever invoices.csv is on disk, fresh or from an earlier run.
func buildStages(cfg *config.Config, client *karbon.Client, c view.Choices, now func() time.Time) []view.Stage {
	base := cfg.InvoicesPath()
	dated := func(name string) string {
		return csvfile.Dated(cfg.Output.Dir, now().Format("2006-01-02"), name)
	}

	reports := report.NewService(client, cfg.Karbon.AppURL)

	var stages []view.Stage

	if c.Base {
		stages = append(stages, view.Stage{
			Title: "Fetching invoices",
			Run: func(ctx context.Context) (string, error) {
				n, err := invoice.NewExporter(client).Export(ctx, base)
				if err != nil {
					return "", err
				}

				return fmt.Sprintf("CSV file '%s' has been created with %d invoices.", filepath.Base(base), n), nil
			},
		})
	}

	if c.LineItems {
		stages = append(stages, view.Stage{
			Title: "Fetching line items",
			Run: func(ctx context.Context) (string, error) {
				records, err := invoice.ReadFile(base)
				if err != nil {
					return "", err
				}

				path := dated(report.LineItemsFile)

				sum, err := reports.WriteLineItems(ctx, records, path)
				if err != nil {
					return "", err
				}

				return completion(path, sum), nil
			},
		})
	}

	if c.Overdue {
		stages = append(stages, view.Stage{
			Title: "Filtering overdue invoices",
			Run: func(ctx context.Context) (string, error) {
				path := dated(overdue.File)

				n, err := overdue.Run(base, path, now())
				if err != nil {
					return "", err
				}

				return fmt.Sprintf("CSV file '%s' has been created with %d overdue invoices.", filepath.Base(path), n), nil
			},
		})
	}

	if c.Payments {
		stages = append(stages, view.Stage{
			Title: "Fetching payments",
			Run: func(ctx context.Context) (string, error) {
				records, err := invoice.ReadFile(base)
				if err != nil {
					return "", err
				}

				path := dated(report.PaymentsFile)

				sum, err := reports.WritePayments(ctx, records, path)
				if err != nil {
					return "", err
				}

				return completion(path, sum), nil
			},
		})
	}

	return stages
}

func completion(path string, sum report.Summary) string {
	msg := fmt.Sprintf("CSV file '%s' has been created with %d rows from %d invoices.",
		filepath.Base(path), sum.Rows, sum.Invoices)
	if sum.Failed > 0 {
		msg += fmt.Sprintf(" %d invoices failed, see log.", sum.Failed)
	}

	return msg
}
