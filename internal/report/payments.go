package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/karbonsync/internal/invoice"
	"github.com/MrJamesThe3rd/karbonsync/internal/karbon"
)

var PaymentsHeader = header("Payment Date", "Payment Amount", "Payment Type", "Payment Key", "Payment Method")

type PaymentRow struct {
	Invoice invoice.Record
	Date    string
	Amount  decimal.Decimal
	Type    string
	Key     string
	Method  string
}

func (r PaymentRow) Row() []string {
	return append(invoiceCols(r.Invoice),
		r.Date, invoice.FormatAmount(r.Amount), r.Type, r.Key, r.Method)
}

// Payments fetches the payments of one invoice plus each payment's method.
func (s *Service) Payments(ctx context.Context, rec invoice.Record) ([]PaymentRow, error) {
	inv, err := s.api.GetInvoice(ctx, rec.Key, karbon.ExpandPayments)
	if err != nil {
		return nil, fmt.Errorf("fetching payments: %w", err)
	}

	rows := make([]PaymentRow, 0, len(inv.Payments))

	for _, p := range inv.Payments {
		rows = append(rows, PaymentRow{
			Invoice: rec,
			Date:    invoice.DateOnly(p.PaymentDate),
			Amount:  p.Amount,
			Type:    p.PaymentType,
			Key:     p.PaymentKey,
			Method:  s.paymentMethod(ctx, rec, p.PaymentKey),
		})
	}

	return rows, nil
}

func (s *Service) paymentMethod(ctx context.Context, rec invoice.Record, key string) string {
	if key == "" {
		return ""
	}

	p, err := s.api.GetPayment(ctx, key)
	if err != nil {
		slog.Warn("payment lookup failed", "number", rec.Number, "payment", key, "error", err)
		return ""
	}

	return p.PaymentMethod
}

// WritePayments writes the payment report for records to path.
func (s *Service) WritePayments(ctx context.Context, records []invoice.Record, path string) (Summary, error) {
	return write(ctx, path, PaymentsHeader, records, "payments", s.Payments)
}
