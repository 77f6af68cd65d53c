// Package customfield pulls labelled values out of organisation
// descriptions and copies them into Karbon custom fields.
package customfield

import (
	"regexp"
	"strings"
)

// Rule extracts the text after "<Label>:" on a line that starts with the
// label. Matching ignores case.
type Rule struct {
	Name    string
	Label   string
	pattern *regexp.Regexp
}

func NewRule(name, label string) Rule {
	return Rule{
		Name:    name,
		Label:   label,
		pattern: regexp.MustCompile(`(?im)^` + regexp.QuoteMeta(label) + `[ \t]*:[ \t]*([^\r\n]*)`),
	}
}

const (
	RuleAccountingSoftware = "accounting_software"
	RuleAdminPassword      = "admin_password"
	RuleRASID              = "ras_id"
)

var DefaultRules = []Rule{
	NewRule(RuleAccountingSoftware, "Accounting Software"),
	NewRule(RuleAdminPassword, "Admin Password"),
	NewRule(RuleRASID, "RAS ID"),
}

// Extraction holds the non-empty values found, keyed by rule name.
type Extraction map[string]string

func (e Extraction) Get(rule string) (string, bool) {
	v, ok := e[rule]
	return v, ok
}

// Extract applies every rule to text. The first matching line wins; a label
// with nothing after the colon counts as absent.
func Extract(text string, rules []Rule) Extraction {
	out := make(Extraction)

	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		if v := strings.TrimSpace(m[1]); v != "" {
			out[r.Name] = v
		}
	}

	return out
}
