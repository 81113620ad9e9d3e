// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command pollctl runs reminder and account tasks against the Quickly Meet
// database from a shell.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/quickly-meet/cliparse"
	"github.com/danielhkuo/quickly-meet/db"
	"github.com/danielhkuo/quickly-meet/reminders"
	"github.com/danielhkuo/quickly-meet/sl"
	"github.com/danielhkuo/quickly-meet/store"
)

// Matches the server default when neither flag nor env is set
const defaultBaseURL = "http://localhost:3318"

type cli struct {
	databaseURL  string
	databaseType string
	baseURL      string

	out io.Writer
	now func() time.Time
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", sl.Err(err))
	}

	c := &cli{out: os.Stdout, now: time.Now}
	if err := c.rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func (c *cli) rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "pollctl",
		Short:        "Quickly Meet maintenance commands",
		SilenceUsage: true,
	}

	dbType := os.Getenv("DATABASE_TYPE")
	if dbType == "" {
		dbType = cliparse.DatabaseSQLite
	}

	rootCmd.PersistentFlags().StringVarP(&c.databaseURL, "database-url", "d", os.Getenv("DATABASE_URL"), "Database URL")
	rootCmd.PersistentFlags().StringVarP(&c.databaseType, "database-type", "t", dbType, "Database type (sqlite or postgres)")
	rootCmd.PersistentFlags().StringVar(&c.baseURL, "base-url", os.Getenv("BASE_URL"), "Public base URL used in email links")

	rootCmd.AddCommand(c.upgradeCommand())
	rootCmd.AddCommand(c.sendRemindersCommand())
	rootCmd.AddCommand(c.dueCommand())

	return rootCmd
}

func (c *cli) openStore() (*store.Store, *sql.DB, error) {
	if c.databaseURL == "" {
		return nil, nil, fmt.Errorf("database URL required (use --database-url or DATABASE_URL env)")
	}

	conn, err := db.Open(c.databaseType, c.databaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.CreateSchema(conn, c.databaseType); err != nil {
		conn.Close()
		return nil, nil, err
	}
	return store.New(conn), conn, nil
}

func (c *cli) upgradeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade-to-pro <email>",
		Short: "Give every space of a user an active pro subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, conn, err := c.openStore()
			if err != nil {
				return err
			}
			defer conn.Close()

			steps, err := st.UpgradeToPro(cmd.Context(), args[0], c.now())
			if err != nil {
				return err
			}

			for _, step := range steps {
				fmt.Fprintf(c.out, "%s (%s): %s\n", step.SpaceName, step.SpaceID, step.Outcome)
			}
			fmt.Fprintf(c.out, "upgraded %s, active until %s\n", args[0], c.now().Add(store.ProPeriod).UTC().Format("2006-01-02"))
			return nil
		},
	}
}

func (c *cli) sendRemindersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "send-reminders",
		Short: "Run the reminder dispatcher once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, conn, err := c.openStore()
			if err != nil {
				return err
			}
			defer conn.Close()

			cfg := cliparse.Config{
				DatabaseURL:  c.databaseURL,
				DatabaseType: c.databaseType,
				BaseURL:      c.baseURL,
			}
			if cfg.BaseURL == "" {
				cfg.BaseURL = defaultBaseURL
			}
			if err := cliparse.ValidateBaseURL(cfg.BaseURL); err != nil {
				return err
			}
			if err := cliparse.LoadDeliveryEnv(&cfg); err != nil {
				return err
			}

			dispatcher, cleanup, err := reminders.FromConfig(cfg, st, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := dispatcher.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(c.out, "sent %d reminder(s), %d error(s)\n", len(report.Sent), len(report.Errors))
			for _, email := range report.Sent {
				fmt.Fprintf(c.out, "  sent    %s\n", email)
			}
			for _, msg := range report.Errors {
				fmt.Fprintf(c.out, "  failed  %s\n", msg)
			}
			return nil
		},
	}
}

func (c *cli) dueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "List polls with a pending reminder and when it fires",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, conn, err := c.openStore()
			if err != nil {
				return err
			}
			defer conn.Close()

			return c.printDue(cmd.Context(), st)
		},
	}
}

func (c *cli) printDue(ctx context.Context, st *store.Store) error {
	polls, err := st.ListReminderCandidates(ctx)
	if err != nil {
		return err
	}

	now := c.now()
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "POLL\tTITLE\tLEAD\tREMINDER\tRECIPIENTS\tSTATE")
	for _, poll := range polls {
		at, ok := reminders.ReminderTime(poll)
		if !ok {
			continue
		}

		recipients := 0
		for _, inv := range poll.ScheduledEvent.Invites {
			if inv.InviteeEmail != nil && *inv.InviteeEmail != "" {
				recipients++
			}
		}

		state := "pending"
		switch m := reminders.MinutesUntil(at, now); {
		case m < 0:
			state = "missed"
		case m <= reminders.WindowMinutes:
			state = "due"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			poll.ID,
			poll.Title,
			reminders.FormatLeadTime(*poll.ReminderMinutesBefore),
			humanize.RelTime(at, now, "ago", "from now"),
			recipients,
			state,
		)
	}
	return w.Flush()
}
