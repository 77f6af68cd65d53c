package view

import (
	"github.com/charmbracelet/huh"
)

// Choices records which export stages the user asked for.
type Choices struct {
	Base      bool
	LineItems bool
	Overdue   bool
	Payments  bool
}

// Any reports whether at least one stage was selected.
func (c Choices) Any() bool {
	return c.Base || c.LineItems || c.Overdue || c.Payments
}

// NewChoicesForm asks the four stage questions in run order, writing the
// answers into c.
func NewChoicesForm(c *Choices) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Generate new base invoice list?").
				Value(&c.Base),
			huh.NewConfirm().
				Title("Get line items? It will take much longer.").
				Value(&c.LineItems),
			huh.NewConfirm().
				Title("Create a csv with only overdue invoices?").
				Value(&c.Overdue),
			huh.NewConfirm().
				Title("Get payments for invoices?").
				Value(&c.Payments),
		),
	).WithShowHelp(false)
}

// AskChoices runs the form on the terminal.
func AskChoices() (Choices, error) {
	var c Choices

	if err := NewChoicesForm(&c).Run(); err != nil {
		return Choices{}, err
	}

	return c, nil
}
