package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MrJamesThe3rd/karbonsync/internal/customfield"
	"github.com/MrJamesThe3rd/karbonsync/internal/karbon"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func runUpdate(ctx context.Context, out io.Writer, api customfield.API, orgsPath string) error {
	orgs, err := loadOrganizations(orgsPath)
	if err != nil {
		return err
	}

	sum, err := newUpdater(api).Run(ctx, orgs)

	fmt.Fprintln(out, renderSummary(sum))

	return err
}

func renderSummary(sum customfield.Summary) string {
	t := newTable().Headers("Outcome", "Count")

	for _, o := range customfield.Outcomes {
		t.Row(string(o), fmt.Sprint(sum[o]))
	}

	return t.Render()
}

type fieldLister interface {
	ListCustomFields(ctx context.Context) ([]karbon.CustomField, error)
}

func listFields(ctx context.Context, out io.Writer, api fieldLister) error {
	fields, err := api.ListCustomFields(ctx)
	if err != nil {
		return fmt.Errorf("listing custom fields: %w", err)
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })

	t := newTable().Headers("Name", "Key", "Type")
	for _, f := range fields {
		t.Row(f.Name, f.Key, f.Type)
	}

	fmt.Fprintln(out, t.Render())

	return nil
}

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})
}
