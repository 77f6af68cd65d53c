package karbon

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Expand names a sub-resource to inline via $expand.
type Expand string

const (
	ExpandNone          Expand = ""
	ExpandBusinessCards Expand = "BusinessCards"
	ExpandLineItems     Expand = "LineItems"
	ExpandPayments      Expand = "Payments"
)

type Invoice struct {
	InvoiceKey     string           `json:"InvoiceKey"`
	InvoiceNumber  string           `json:"InvoiceNumber"`
	InvoiceTotal   decimal.Decimal  `json:"InvoiceTotal"`
	InvoiceStatus  string           `json:"InvoiceStatus"`
	PaymentDueDate string           `json:"PaymentDueDate"`
	InvoiceDate    string           `json:"InvoiceDate"`
	Client         InvoiceClient    `json:"Client"`
	LineItems      []LineItem       `json:"LineItems"`
	Payments       []InvoicePayment `json:"Payments"`
}

type InvoiceClient struct {
	ClientKey    string `json:"ClientKey"`
	Name         string `json:"Name"`
	EmailAddress string `json:"EmailAddress"`
}

type invoicePage struct {
	Value []Invoice `json:"value"`
}

// BillableItemType values that link a line item to a work item.
const (
	BillableEntity    = "Entity"
	BillableTimeEntry = "TimeEntry"
)

type LineItem struct {
	BillableItemType      string          `json:"BillableItemType"`
	BillableItemEntityKey string          `json:"BillableItemEntityKey"`
	Description           string          `json:"Description"`
	Amount                decimal.Decimal `json:"Amount"`
}

// LinksWork reports whether the item references a work item.
func (l LineItem) LinksWork() bool {
	return l.BillableItemType == BillableEntity || l.BillableItemType == BillableTimeEntry
}

type InvoicePayment struct {
	PaymentKey  string          `json:"PaymentKey"`
	PaymentDate string          `json:"PaymentDate"`
	PaymentType string          `json:"PaymentType"`
	Amount      decimal.Decimal `json:"Amount"`
}

type Payment struct {
	PaymentKey    string `json:"PaymentKey"`
	PaymentMethod string `json:"PaymentMethod"`
}

type WorkItem struct {
	WorkItemKey string `json:"WorkItemKey"`
	Title       string `json:"Title"`
	WorkType    string `json:"WorkType"`
}

type Organization struct {
	OrganizationKey   string             `json:"OrganizationKey"`
	FullName          string             `json:"FullName"`
	EntityDescription *EntityDescription `json:"EntityDescription"`
	BusinessCards     []BusinessCard     `json:"BusinessCards"`
}

type EntityDescription struct {
	Text string `json:"Text"`
}

// Description returns the free-text description, or "" when absent.
func (o *Organization) Description() string {
	if o == nil || o.EntityDescription == nil {
		return ""
	}

	return o.EntityDescription.Text
}

// Address returns the first address on the first business card.
func (o *Organization) Address() (Address, bool) {
	if o == nil {
		return Address{}, false
	}

	card, ok := First(o.BusinessCards)
	if !ok {
		return Address{}, false
	}

	return First(card.Addresses)
}

type BusinessCard struct {
	BusinessCardKey string    `json:"BusinessCardKey"`
	IsPrimaryCard   bool      `json:"IsPrimaryCard"`
	Addresses       []Address `json:"Addresses"`
}

type Address struct {
	AddressLines        string `json:"AddressLines"`
	City                string `json:"City"`
	StateProvinceCounty string `json:"StateProvinceCounty"`
	ZipCode             string `json:"ZipCode"`
	CountryCode         string `json:"CountryCode"`
}

// First returns the leading element of an ordered sequence. Later elements
// are never merged in.
func First[T any](items []T) (T, bool) {
	if len(items) == 0 {
		var zero T
		return zero, false
	}

	return items[0], true
}

type CustomField struct {
	Key  string `json:"Key"`
	Name string `json:"Name"`
	Type string `json:"Type"`
}

type customFieldList struct {
	Value []CustomField `json:"value"`
}

// CustomFieldValues is both the read shape of GET /CustomFieldValues/{key}
// and the body of the matching PUT.
type CustomFieldValues struct {
	EntityKey         string             `json:"EntityKey"`
	CustomFieldValues []CustomFieldValue `json:"CustomFieldValues"`
}

type CustomFieldValue struct {
	Key   string      `json:"Key"`
	Name  string      `json:"Name"`
	Type  string      `json:"Type"`
	Value FieldValues `json:"Value"`
}

// Lookup returns the value entry with the given field name.
func (v *CustomFieldValues) Lookup(name string) (CustomFieldValue, bool) {
	if v == nil {
		return CustomFieldValue{}, false
	}

	for _, cf := range v.CustomFieldValues {
		if cf.Name == name {
			return cf, true
		}
	}

	return CustomFieldValue{}, false
}

// FieldValues is the list form the API uses for custom field values. Reads
// also accept null, a bare string, or any other scalar, which is kept as its
// JSON text.
type FieldValues []string

func (f *FieldValues) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*f = nil
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*f = FieldValues{s}

		return nil
	case len(data) > 0 && data[0] != '[':
		*f = FieldValues{string(data)}
		return nil
	}

	var list []any
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}

	out := make(FieldValues, 0, len(list))

	for _, item := range list {
		switch v := item.(type) {
		case nil:
		case string:
			out = append(out, v)
		default:
			b, err := json.Marshal(v)
			if err != nil {
				return err
			}

			out = append(out, string(b))
		}
	}

	*f = out

	return nil
}

// Populated reports whether any entry is non-empty.
func (f FieldValues) Populated() bool {
	for _, v := range f {
		if v != "" {
			return true
		}
	}

	return false
}

// String joins the values for display.
func (f FieldValues) String() string {
	var b bytes.Buffer

	for i, v := range f {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(v)
	}

	return b.String()
}
