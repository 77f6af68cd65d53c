package invoice_test

import (
	"context"
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
)

func apiInvoice(key, number, clientKey string) karbon.Invoice {
	return karbon.Invoice{
		InvoiceKey:     key,
		InvoiceNumber:  number,
		InvoiceTotal:   decimal.RequireFromString("100.50"),
		InvoiceStatus:  "AwaitingPayment",
		PaymentDueDate: "2024-02-01T00:00:00Z",
		InvoiceDate:    "2024-01-01T09:30:00Z",
		Client: karbon.InvoiceClient{
			ClientKey:    clientKey,
			Name:         "Client " + clientKey,
			EmailAddress: clientKey + "@example.test",
		},
	}
}

func orgWithAddress(street string) *karbon.Organization {
	return &karbon.Organization{
		BusinessCards: []karbon.BusinessCard{
			{Addresses: []karbon.Address{{AddressLines: street, City: "Springfield", StateProvinceCounty: "IL", ZipCode: "62701"}}},
		},
	}
}

func page(skip int) karbon.Page {
	return karbon.Page{Skip: skip, Top: invoice.PageSize}
}

func TestExporter_Each_DedupAcrossPages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := invoice.NewMockAPI(ctrl)

	gomock.InOrder(
		api.EXPECT().ListInvoices(gomock.Any(), page(0)).
			Return([]karbon.Invoice{apiInvoice("a", "1", "c1"), apiInvoice("b", "2", "c2")}, nil),
		api.EXPECT().ListInvoices(gomock.Any(), page(100)).
			Return([]karbon.Invoice{apiInvoice("b", "2", "c2"), apiInvoice("c", "3", "c3")}, nil),
		api.EXPECT().ListInvoices(gomock.Any(), page(200)).
			Return(nil, nil),
	)

	api.EXPECT().GetOrganization(gomock.Any(), "c1", karbon.ExpandBusinessCards).Return(orgWithAddress("1 Main St"), nil)
	api.EXPECT().GetOrganization(gomock.Any(), "c2", karbon.ExpandBusinessCards).Return(orgWithAddress("2 Main St"), nil).Times(1)
	api.EXPECT().GetOrganization(gomock.Any(), "c3", karbon.ExpandBusinessCards).Return(&karbon.Organization{}, nil)

	var got []invoice.Record

	err := invoice.NewExporter(api).Each(context.Background(), func(r invoice.Record) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)

	keys := make([]string, 0, len(got))
	for _, r := range got {
		keys = append(keys, r.Key)
	}

	assert.Equal(t, []string{"a", "b", "c"}, keys)

	assert.Equal(t, "1 Main St", got[0].Street)
	assert.Equal(t, "Springfield", got[0].City)
	assert.Equal(t, "2024-02-01", got[0].DueDate)
	assert.Equal(t, "2024-01-01", got[0].InvoiceDate)
	assert.Equal(t, invoice.StatusAwaitingPayment, got[0].Status)
	assert.Equal(t, "c1@example.test", got[0].Email)

	// c3 has no business cards.
	assert.Empty(t, got[2].Street)
	assert.Empty(t, got[2].City)
	assert.Empty(t, got[2].State)
	assert.Empty(t, got[2].Zip)
}

func TestExporter_Each_ClientLookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := invoice.NewMockAPI(ctrl)
	api.EXPECT().ListInvoices(gomock.Any(), page(0)).Return([]karbon.Invoice{apiInvoice("a", "1", "c1")}, nil)
	api.EXPECT().ListInvoices(gomock.Any(), page(100)).Return([]karbon.Invoice{}, nil)
	api.EXPECT().GetOrganization(gomock.Any(), "c1", karbon.ExpandBusinessCards).
		Return(nil, &karbon.StatusError{Code: 404})

	var got []invoice.Record

	err := invoice.NewExporter(api).Each(context.Background(), func(r invoice.Record) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Key)
	assert.Empty(t, got[0].Street)
}

func TestExporter_Each_NoClientKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := invoice.NewMockAPI(ctrl)
	api.EXPECT().ListInvoices(gomock.Any(), page(0)).Return([]karbon.Invoice{apiInvoice("a", "1", "")}, nil)
	api.EXPECT().ListInvoices(gomock.Any(), page(100)).Return(nil, nil)

	var got []invoice.Record

	err := invoice.NewExporter(api).Each(context.Background(), func(r invoice.Record) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestExporter_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := invoice.NewMockAPI(ctrl)
	api.EXPECT().ListInvoices(gomock.Any(), page(0)).
		Return([]karbon.Invoice{apiInvoice("a", "1", "c1"), apiInvoice("a", "1", "c1")}, nil)
	api.EXPECT().ListInvoices(gomock.Any(), page(100)).Return(nil, nil)
	api.EXPECT().GetOrganization(gomock.Any(), "c1", karbon.ExpandBusinessCards).Return(orgWithAddress("1 Main St"), nil)

	path := filepath.Join(t.TempDir(), "invoices.csv")

	n, err := invoice.NewExporter(api).Export(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	records, err := invoice.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].Key)
	assert.Equal(t, "1 Main St", records[0].Street)
	assert.True(t, decimal.RequireFromString("100.50").Equal(records[0].Total))
}

func TestExporter_Export_PageFailureKeepsPreviousFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := invoice.NewMockAPI(ctrl)
	api.EXPECT().ListInvoices(gomock.Any(), page(0)).Return([]karbon.Invoice{apiInvoice("a", "1", "")}, nil)
	api.EXPECT().ListInvoices(gomock.Any(), page(100)).Return(nil, errors.New("connection reset"))

	dir := t.TempDir()
	path := filepath.Join(dir, "invoices.csv")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	n, err := invoice.NewExporter(api).Export(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skip=100")
	assert.Equal(t, 1, n)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(got))
}
