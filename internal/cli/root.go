// Package cli implements teamctl, the operator command line for the
// schedule service.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ikeike55momo/schedule/internal/calendar"
	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/export"
)

// Deps holds everything the commands touch, so tests can swap it.
type Deps struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Defaults Defaults
	Open     func() (Backend, error)
	Migrate  func() error
	Now      func() time.Time
}

var errUserRequired = errors.New("--user is required in personal mode (or set user_id in the defaults file)")

// NewRootCmd builds the command tree over d.
func NewRootCmd(d *Deps) *cobra.Command {
	if d.Now == nil {
		d.Now = time.Now
	}
	root := &cobra.Command{
		Use:   "teamctl",
		Short: "Operate the team schedule service",
		Long: `teamctl talks to the schedule database and the sync bridge directly.

Examples:
  teamctl migrate                                  Apply database migrations
  teamctl calendar --month 2024-06 --mode team     Print the team's June grid
  teamctl preview 2024-06-03 --user <id>           Print one day's preview panel
  teamctl sync calendar --mode team                Push the team's schedules to Google Calendar
  teamctl sync sheets --spreadsheet <id>           Push every schedule to a spreadsheet
  teamctl export --month 2024-06 --out june.xlsx   Write a month to an xlsx file`,
		SilenceUsage: true,
	}
	root.SetOut(d.Stdout)
	root.SetErr(d.Stderr)

	root.AddCommand(
		newMigrateCmd(d),
		newCalendarCmd(d),
		newPreviewCmd(d),
		newSyncCmd(d),
		newExportCmd(d),
	)
	return root
}

func newMigrateCmd(d *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := d.Migrate(); err != nil {
				return err
			}
			fmt.Fprintln(d.Stdout, "migrations applied")
			return nil
		},
	}
}

func newCalendarCmd(d *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print a month grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(d, func(b Backend) error {
				userID, mode, err := scope(cmd, d)
				if err != nil {
					return err
				}
				year, month, err := monthFlag(cmd, d, b.Location())
				if err != nil {
					return err
				}
				m, err := b.Month(cmd.Context(), userID, mode, year, month)
				if err != nil {
					return err
				}
				fmt.Fprint(d.Stdout, RenderMonth(m))
				return nil
			})
		},
	}
	addScopeFlags(cmd)
	cmd.Flags().String("month", "", "month as YYYY-MM (default: current month)")
	return cmd
}

func newPreviewCmd(d *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <date>",
		Short: "Print the preview panel for one date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(d, func(b Backend) error {
				userID, mode, err := scope(cmd, d)
				if err != nil {
					return err
				}
				p, err := b.Preview(cmd.Context(), userID, mode, args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(d.Stdout, RenderPanel(p))
				return nil
			})
		},
	}
	addScopeFlags(cmd)
	return cmd
}

func newSyncCmd(d *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push schedules to Google Calendar or Sheets",
	}

	calendarCmd := &cobra.Command{
		Use:   "calendar",
		Short: "Sync schedules to Google Calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(d, func(b Backend) error {
				userID, mode, err := scope(cmd, d)
				if err != nil {
					return err
				}
				n, err := b.SyncCalendar(cmd.Context(), userID, mode)
				fmt.Fprintln(d.Stdout, n.Message)
				return err
			})
		},
	}
	addScopeFlags(calendarCmd)

	sheetsCmd := &cobra.Command{
		Use:   "sheets",
		Short: "Sync every schedule to a spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(d, func(b Backend) error {
				id, _ := cmd.Flags().GetString("spreadsheet")
				rng, _ := cmd.Flags().GetString("range")
				if id == "" {
					id = d.Defaults.SpreadsheetID
				}
				if rng == "" {
					rng = d.Defaults.SheetRange
				}
				n, err := b.SyncSheets(cmd.Context(), id, rng)
				fmt.Fprintln(d.Stdout, n.Message)
				return err
			})
		},
	}
	sheetsCmd.Flags().String("spreadsheet", "", "spreadsheet id")
	sheetsCmd.Flags().String("range", "", "sheet range (default シート1!A:E)")

	cmd.AddCommand(calendarCmd, sheetsCmd)
	return cmd
}

func newExportCmd(d *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write one month of schedules to an xlsx file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(d, func(b Backend) error {
				userID, mode, err := scope(cmd, d)
				if err != nil {
					return err
				}
				year, month, err := monthFlag(cmd, d, b.Location())
				if err != nil {
					return err
				}
				out, _ := cmd.Flags().GetString("out")
				if out == "" {
					out = fmt.Sprintf("schedules-%s.xlsx", export.SheetName(year, month))
				}
				list, err := b.MonthSchedules(cmd.Context(), userID, mode, year, month)
				if err != nil {
					return err
				}
				buf, err := export.Schedules(year, month, b.Location(), list)
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
					return err
				}
				fmt.Fprintf(d.Stdout, "wrote %d schedule(s) to %s\n", len(list), out)
				return nil
			})
		},
	}
	addScopeFlags(cmd)
	cmd.Flags().String("month", "", "month as YYYY-MM (default: current month)")
	cmd.Flags().String("out", "", "output file (default schedules-YYYY-MM.xlsx)")
	return cmd
}

func withBackend(d *Deps, fn func(Backend) error) error {
	b, err := d.Open()
	if err != nil {
		return err
	}
	defer b.Close()
	return fn(b)
}

func addScopeFlags(cmd *cobra.Command) {
	cmd.Flags().String("user", "", "user id (default: user_id from the defaults file)")
	cmd.Flags().String("mode", "", "personal or team (default: mode from the defaults file, else personal)")
}

// scope resolves --user and --mode against the defaults file.
func scope(cmd *cobra.Command, d *Deps) (string, dom.ViewMode, error) {
	userID, _ := cmd.Flags().GetString("user")
	raw, _ := cmd.Flags().GetString("mode")
	if userID == "" {
		userID = d.Defaults.UserID
	}
	if raw == "" {
		raw = d.Defaults.Mode
	}
	mode, ok := dom.ParseViewMode(raw)
	if !ok {
		return "", "", fmt.Errorf("--mode must be personal or team, got %q", raw)
	}
	if mode == dom.ViewPersonal && userID == "" {
		return "", "", errUserRequired
	}
	return userID, mode, nil
}

func monthFlag(cmd *cobra.Command, d *Deps, loc *time.Location) (int, time.Month, error) {
	s, _ := cmd.Flags().GetString("month")
	if s == "" {
		now := d.Now().In(loc)
		return now.Year(), now.Month(), nil
	}
	year, month, ok := calendar.ParseMonth(s)
	if !ok {
		return 0, 0, fmt.Errorf("--month must be YYYY-MM, got %q", s)
	}
	return year, month, nil
}

// Execute runs the root command with a background context.
func Execute(d *Deps) error {
	return NewRootCmd(d).ExecuteContext(context.Background())
}
