package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/MrJamesThe3rd/karbonsync/internal/config"
	"github.com/MrJamesThe3rd/karbonsync/internal/customfield"
	"github.com/MrJamesThe3rd/karbonsync/internal/karbon"
	"github.com/MrJamesThe3rd/karbonsync/internal/organization"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)).With("run", uuid.NewString()))

	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		slog.Error("custom field run failed", "error", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	orgsFlag := &cli.StringFlag{
		Name:  "orgs",
		Usage: "organisation CSV with Key and Name columns (defaults to ORGANIZATIONS_FILE)",
	}

	update := func(c *cli.Context) error {
		cfg, client, err := setup()
		if err != nil {
			return err
		}

		path := c.String(orgsFlag.Name)
		if path == "" {
			path = cfg.CustomFields.OrganizationsFile
		}

		return runUpdate(c.Context, out, client, path)
	}

	return &cli.App{
		Name:   "customfields",
		Usage:  "copy labelled values from organisation descriptions into Karbon custom fields",
		Writer: out,
		Flags:  []cli.Flag{orgsFlag},
		Action: update,
		Commands: []*cli.Command{
			{
				Name:   "update",
				Usage:  "fill empty custom fields from organisation descriptions",
				Flags:  []cli.Flag{orgsFlag},
				Action: update,
			},
			{
				Name:  "fields",
				Usage: "list custom field definitions",
				Action: func(c *cli.Context) error {
					_, client, err := setup()
					if err != nil {
						return err
					}

					return listFields(c.Context, out, client)
				},
			},
		},
	}
}

func setup() (*config.Config, *karbon.Client, error) {
	cfg, envPath, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if envPath != "" {
		slog.Info("loaded environment", "path", envPath)
	}

	if exp, ok := karbon.TokenExpiry(cfg.Karbon.BearerToken); ok && exp.Before(time.Now()) {
		slog.Warn("bearer token has expired", "expired_at", exp)
	}

	client := karbon.NewClient(karbon.Options{
		BaseURL:     cfg.Karbon.BaseURL,
		BearerToken: cfg.Karbon.BearerToken,
		AccessKey:   cfg.Karbon.AccessKey,
	}, nil)

	return cfg, client, nil
}

func loadOrganizations(path string) ([]organization.Entry, error) {
	orgs, err := organization.ReadFile(path)
	if err != nil {
		return nil, err
	}

	slog.Info("loaded organizations", "path", path, "count", len(orgs))

	return orgs, nil
}

func newUpdater(api customfield.API) *customfield.Updater {
	return customfield.NewUpdater(api, customfield.DefaultRules, customfield.DefaultTargets)
}
