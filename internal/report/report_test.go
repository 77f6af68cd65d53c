package report_test

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/karbonsync/internal/invoice"
	"github.com/MrJamesThe3rd/karbonsync/internal/karbon"
	"github.com/MrJamesThe3rd/karbonsync/internal/report"
)

const appURL = "https://app.example.test/ABC"

func record(key, number string) invoice.Record {
	return invoice.Record{
		Key:         key,
		Number:      number,
		Client:      "Acme",
		Total:       decimal.RequireFromString("300.00"),
		Street:      "1 Main St",
		City:        "Springfield",
		State:       "IL",
		Zip:         "62701",
		Status:      invoice.StatusAwaitingPayment,
		DueDate:     "2024-02-01",
		InvoiceDate: "2024-01-01",
		Email:       "ap@acme.test",
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)

	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	return rows
}

func TestService_LineItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := report.NewMockAPI(ctrl)
	api.EXPECT().GetInvoice(gomock.Any(), "inv-1", karbon.ExpandLineItems).Return(&karbon.Invoice{
		LineItems: []karbon.LineItem{
			{BillableItemType: "Entity", BillableItemEntityKey: "W1", Description: "Bookkeeping", Amount: decimal.RequireFromString("200.00")},
			{BillableItemType: "Expense", BillableItemEntityKey: "X9", Description: "Filing fee", Amount: decimal.RequireFromString("100.00")},
			{BillableItemType: "TimeEntry", BillableItemEntityKey: "W2", Description: "Advisory", Amount: decimal.RequireFromString("0.00")},
		},
	}, nil)
	api.EXPECT().GetWorkItem(gomock.Any(), "W1").Return(&karbon.WorkItem{Title: "Monthly books", WorkType: "Bookkeeping"}, nil)
	api.EXPECT().GetWorkItem(gomock.Any(), "W2").Return(nil, errors.New("timeout"))

	rows, err := report.NewService(api, appURL+"/").LineItems(context.Background(), record("inv-1", "1001"))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Monthly books", rows[0].WorkTitle)
	assert.Equal(t, "Bookkeeping", rows[0].WorkType)
	assert.Equal(t, appURL+"#/work/W1/tasks", rows[0].WorkURL)

	assert.Equal(t, "Filing fee", rows[1].Description)
	assert.Empty(t, rows[1].WorkTitle)
	assert.Empty(t, rows[1].WorkType)
	assert.Empty(t, rows[1].WorkURL)

	// Lookup failed: link still built, work fields empty.
	assert.Equal(t, appURL+"#/work/W2/tasks", rows[2].WorkURL)
	assert.Empty(t, rows[2].WorkTitle)
}

func TestService_Payments(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := report.NewMockAPI(ctrl)
	api.EXPECT().GetInvoice(gomock.Any(), "inv-1", karbon.ExpandPayments).Return(&karbon.Invoice{
		Payments: []karbon.InvoicePayment{
			{PaymentKey: "P1", PaymentDate: "2024-02-03T10:00:00Z", PaymentType: "Payment", Amount: decimal.RequireFromString("150.00")},
			{PaymentKey: "P2", PaymentDate: "2024-02-10", PaymentType: "Payment", Amount: decimal.RequireFromString("150.00")},
		},
	}, nil)
	api.EXPECT().GetPayment(gomock.Any(), "P1").Return(&karbon.Payment{PaymentKey: "P1", PaymentMethod: "ACH"}, nil)
	api.EXPECT().GetPayment(gomock.Any(), "P2").Return(nil, &karbon.StatusError{Code: 500})

	rows, err := report.NewService(api, appURL).Payments(context.Background(), record("inv-1", "1001"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-02-03", rows[0].Date)
	assert.Equal(t, "ACH", rows[0].Method)
	assert.Equal(t, "P2", rows[1].Key)
	assert.Empty(t, rows[1].Method)
}

func TestService_WriteLineItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := report.NewMockAPI(ctrl)
	api.EXPECT().GetInvoice(gomock.Any(), "inv-1", karbon.ExpandLineItems).Return(&karbon.Invoice{
		LineItems: []karbon.LineItem{
			{BillableItemType: "Expense", Description: "Filing fee", Amount: decimal.RequireFromString("12.50")},
		},
	}, nil)
	api.EXPECT().GetInvoice(gomock.Any(), "inv-2", karbon.ExpandLineItems).Return(nil, &karbon.StatusError{Code: 404})
	api.EXPECT().GetInvoice(gomock.Any(), "inv-3", karbon.ExpandLineItems).Return(&karbon.Invoice{}, nil)

	path := filepath.Join(t.TempDir(), "line_items.csv")

	sum, err := report.NewService(api, appURL).WriteLineItems(context.Background(),
		[]invoice.Record{record("inv-1", "1001"), record("inv-2", "1002"), record("inv-3", "1003")}, path)
	require.NoError(t, err)
	assert.Equal(t, report.Summary{Invoices: 2, Rows: 1, Failed: 1}, sum)

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, report.LineItemsHeader, rows[0])
	assert.Equal(t, []string{
		"1001", "Acme", "1 Main St", "Springfield", "IL", "62701", "ap@acme.test",
		"300.00", "AwaitingPayment", "2024-02-01", "2024-01-01",
		"Filing fee", "12.50", "", "", "",
	}, rows[1])
}

func TestService_WritePayments(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := report.NewMockAPI(ctrl)
	api.EXPECT().GetInvoice(gomock.Any(), "inv-1", karbon.ExpandPayments).Return(&karbon.Invoice{
		Payments: []karbon.InvoicePayment{
			{PaymentKey: "P1", PaymentDate: "2024-02-03T10:00:00Z", PaymentType: "Payment", Amount: decimal.RequireFromString("300.00")},
		},
	}, nil)
	api.EXPECT().GetPayment(gomock.Any(), "P1").Return(&karbon.Payment{PaymentMethod: "Check"}, nil)

	path := filepath.Join(t.TempDir(), "payments.csv")

	sum, err := report.NewService(api, appURL).WritePayments(context.Background(), []invoice.Record{record("inv-1", "1001")}, path)
	require.NoError(t, err)
	assert.Equal(t, report.Summary{Invoices: 1, Rows: 1}, sum)

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, report.PaymentsHeader, rows[0])
	assert.Equal(t, []string{"2024-02-03", "300.00", "Payment", "P1", "Check"}, rows[1][11:])
	assert.Equal(t, "ap@acme.test", rows[1][6])
}

func TestService_Write_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	path := filepath.Join(dir, "payments.csv")

	_, err := report.NewService(report.NewMockAPI(ctrl), appURL).WritePayments(ctx, []invoice.Record{record("inv-1", "1001")}, path)
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHeaders(t *testing.T) {
	assert.Equal(t, []string{
		"Invoice Number", "Client", "Street", "City", "State", "Zipcode", "Email",
		"Invoice Total", "Status", "Due Date", "Invoice Date",
		"Line Item Description", "Line Item Total", "Work Title", "Work Type", "Work URL",
	}, report.LineItemsHeader)

	assert.Len(t, report.PaymentsHeader, 16)
	assert.Equal(t, "Payment Method", report.PaymentsHeader[15])
}
