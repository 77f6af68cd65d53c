package invoice

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/karbonsync/internal/karbon"
)

// Status is the Karbon invoice status.
type Status string

const (
	StatusDraft           Status = "Draft"
	StatusAwaitingPayment Status = "AwaitingPayment"
	StatusPaid            Status = "Paid"
	StatusVoid            Status = "Void"
)

// Record is one row of the base invoice list. Address fields come from the
// client organisation, not the invoice.
type Record struct {
	Key         string
	Number      string
	Client      string
	Total       decimal.Decimal
	Street      string
	City        string
	State       string
	Zip         string
	Status      Status
	DueDate     string // YYYY-MM-DD
	InvoiceDate string // YYYY-MM-DD
	Email       string
}

// FromInvoice flattens an API invoice and its client's address.
func FromInvoice(inv karbon.Invoice, addr karbon.Address) Record {
	return Record{
		Key:         inv.InvoiceKey,
		Number:      inv.InvoiceNumber,
		Client:      inv.Client.Name,
		Total:       inv.InvoiceTotal,
		Street:      addr.AddressLines,
		City:        addr.City,
		State:       addr.StateProvinceCounty,
		Zip:         addr.ZipCode,
		Status:      Status(inv.InvoiceStatus),
		DueDate:     DateOnly(inv.PaymentDueDate),
		InvoiceDate: DateOnly(inv.InvoiceDate),
		Email:       inv.Client.EmailAddress,
	}
}

// DateOnly drops the time part of an API timestamp ("2024-01-31T00:00:00Z").
func DateOnly(s string) string {
	date, _, _ := strings.Cut(s, "T")
	return date
}

// FormatAmount renders money with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
