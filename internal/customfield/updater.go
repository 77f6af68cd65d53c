package customfield

import (
	"context"
	"errors"
	"log/slog"

	"github.com/MrJamesThe3rd/karbonsync/internal/karbon"
	"github.com/MrJamesThe3rd/karbonsync/internal/organization"
)

// Target ties a custom field definition to the rule that feeds it.
type Target struct {
	Key  string
	Name string
	Type string
	Rule string
}

var DefaultTargets = []Target{
	{Key: "bT3FHvnxFCg", Name: "QB Admin Password", Type: "Text", Rule: RuleAdminPassword},
}

type Outcome string

const (
	// Skipped means the field already held a value.
	Skipped Outcome = "Skipped"
	Updated Outcome = "Updated"
	// SkippedNoData means the description had nothing for the rule.
	SkippedNoData Outcome = "SkippedNoData"
	// Failed means existing values could not be read or the write failed.
	Failed Outcome = "Failed"
)

// Outcomes lists every outcome in report order.
var Outcomes = []Outcome{Updated, Skipped, SkippedNoData, Failed}

type Result struct {
	Org     organization.Entry
	Field   string
	Outcome Outcome
	// Status and Body are set when an update was attempted and answered.
	Status int
	Body   string
}

type Summary map[Outcome]int

//go:generate mockgen -source=updater.go -destination=api_mock.go -package=customfield
type API interface {
	GetOrganization(ctx context.Context, key string, expand karbon.Expand) (*karbon.Organization, error)
	GetCustomFieldValues(ctx context.Context, entityKey string) (*karbon.CustomFieldValues, error)
	UpdateCustomFieldValues(ctx context.Context, values karbon.CustomFieldValues) (*karbon.Response, error)
}

type Updater struct {
	api     API
	rules   []Rule
	targets []Target
}

func NewUpdater(api API, rules []Rule, targets []Target) *Updater {
	return &Updater{api: api, rules: rules, targets: targets}
}

// Run processes orgs in order and tallies outcomes. It stops early only
// when ctx is done.
func (u *Updater) Run(ctx context.Context, orgs []organization.Entry) (Summary, error) {
	sum := make(Summary)

	for _, org := range orgs {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		for _, res := range u.Organization(ctx, org) {
			sum[res.Outcome]++
		}
	}

	return sum, nil
}

// Organization applies every target to one organisation. The description is
// fetched at most once, and only when some target is still empty.
func (u *Updater) Organization(ctx context.Context, org organization.Entry) []Result {
	log := slog.With("org", org.Name, "key", org.Key)

	existing, err := u.api.GetCustomFieldValues(ctx, org.Key)
	if err != nil && !errors.Is(err, karbon.ErrEmptyBody) {
		log.Error("reading custom field values", "error", err)

		results := make([]Result, 0, len(u.targets))
		for _, t := range u.targets {
			results = append(results, Result{Org: org, Field: t.Name, Outcome: Failed})
		}

		return results
	}

	var extracted Extraction

	results := make([]Result, 0, len(u.targets))

	for _, t := range u.targets {
		if cur, ok := existing.Lookup(t.Name); ok && cur.Value.Populated() {
			log.Info("field already set, skipping", "field", t.Name)
			results = append(results, Result{Org: org, Field: t.Name, Outcome: Skipped})

			continue
		}

		if extracted == nil {
			extracted = Extract(u.description(ctx, log, org.Key), u.rules)
		}

		value, ok := extracted.Get(t.Rule)
		if !ok {
			log.Info("no value in description", "field", t.Name, "rule", t.Rule)
			results = append(results, Result{Org: org, Field: t.Name, Outcome: SkippedNoData})

			continue
		}

		results = append(results, u.update(ctx, log, org, t, value))
	}

	return results
}

func (u *Updater) update(ctx context.Context, log *slog.Logger, org organization.Entry, t Target, value string) Result {
	res := Result{Org: org, Field: t.Name, Outcome: Updated}

	resp, err := u.api.UpdateCustomFieldValues(ctx, karbon.CustomFieldValues{
		EntityKey: org.Key,
		CustomFieldValues: []karbon.CustomFieldValue{
			{Key: t.Key, Name: t.Name, Type: t.Type, Value: karbon.FieldValues{value}},
		},
	})
	if resp != nil {
		res.Status = resp.StatusCode
		res.Body = resp.Body
	}

	if err != nil {
		res.Outcome = Failed
		log.Error("updating custom field", "field", t.Name, "status", res.Status, "body", res.Body, "error", err)

		return res
	}

	log.Info("updated custom field", "field", t.Name, "status", res.Status, "body", res.Body)

	return res
}

// description returns the organisation's free-text description, or "" when
// it cannot be had. Each failure kind is logged on its own terms.
func (u *Updater) description(ctx context.Context, log *slog.Logger, key string) string {
	org, err := u.api.GetOrganization(ctx, key, karbon.ExpandNone)

	var se *karbon.StatusError

	switch {
	case err == nil:
	case errors.As(err, &se):
		log.Warn("organization request failed", "status", se.Code, "body", se.Body)
		return ""
	case errors.Is(err, karbon.ErrEmptyBody):
		log.Warn("organization response was empty")
		return ""
	case errors.Is(err, karbon.ErrInvalidJSON):
		log.Warn("organization response was not valid JSON", "error", err)
		return ""
	default:
		log.Warn("organization request failed", "error", err)
		return ""
	}

	text := org.Description()
	if text == "" {
		log.Warn("organization has no description")
	}

	return text
}
