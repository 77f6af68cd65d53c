package karbon

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Page selects a window of a list endpoint.
type Page struct {
	Skip int
	Top  int
}

func expandQuery(e Expand) map[string]string {
	if e == ExpandNone {
		return nil
	}

	return map[string]string{"$expand": string(e)}
}

// ListInvoices returns one page of invoices ordered by invoice date.
func (c *Client) ListInvoices(ctx context.Context, page Page) ([]Invoice, error) {
	query := map[string]string{
		"$orderby": "InvoiceDate",
		"$top":     strconv.Itoa(page.Top),
		"$skip":    strconv.Itoa(page.Skip),
	}

	var resp invoicePage
	if err := c.get(ctx, "/v3/Invoices", query, &resp); err != nil {
		return nil, err
	}

	return resp.Value, nil
}

func (c *Client) GetInvoice(ctx context.Context, key string, expand Expand) (*Invoice, error) {
	var inv Invoice
	if err := c.get(ctx, "/v3/Invoices/"+url.PathEscape(key), expandQuery(expand), &inv); err != nil {
		return nil, err
	}

	return &inv, nil
}

func (c *Client) GetOrganization(ctx context.Context, key string, expand Expand) (*Organization, error) {
	var org Organization
	if err := c.get(ctx, "/v3/Organizations/"+url.PathEscape(key), expandQuery(expand), &org); err != nil {
		return nil, err
	}

	return &org, nil
}

func (c *Client) GetWorkItem(ctx context.Context, key string) (*WorkItem, error) {
	var w WorkItem
	if err := c.get(ctx, "/v3/WorkItems/"+url.PathEscape(key), nil, &w); err != nil {
		return nil, err
	}

	return &w, nil
}

func (c *Client) GetPayment(ctx context.Context, key string) (*Payment, error) {
	var p Payment
	if err := c.get(ctx, "/v3/Payments/"+url.PathEscape(key), nil, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// ListCustomFields returns the custom field definitions of the tenant.
func (c *Client) ListCustomFields(ctx context.Context) ([]CustomField, error) {
	var resp customFieldList
	if err := c.get(ctx, "/v3/CustomFields", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Value, nil
}

func (c *Client) GetCustomFieldValues(ctx context.Context, entityKey string) (*CustomFieldValues, error) {
	var v CustomFieldValues
	if err := c.get(ctx, "/v3/CustomFieldValues/"+url.PathEscape(entityKey), nil, &v); err != nil {
		return nil, err
	}

	return &v, nil
}

// UpdateCustomFieldValues writes values for values.EntityKey. The response is
// returned for non-success statuses too, alongside a *StatusError.
func (c *Client) UpdateCustomFieldValues(ctx context.Context, values CustomFieldValues) (*Response, error) {
	if values.EntityKey == "" {
		return nil, fmt.Errorf("update custom field values: empty entity key")
	}

	return c.put(ctx, "/v3/CustomFieldValues/"+url.PathEscape(values.EntityKey), values)
}
