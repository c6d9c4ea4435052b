package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"biblecal/internal/bundle"
	"biblecal/internal/calendar"
	"biblecal/internal/config"
	"biblecal/internal/ics"
	appLog "biblecal/internal/log"
	"biblecal/internal/plan"
	"biblecal/internal/render"
	"biblecal/internal/web"
)

// load builds the run and reads the plan files for the effective config.
func (a *app) load(ctx context.Context) (*calendar.Run, *plan.Cursor, error) {
	run, err := calendar.NewRun(a.cfg)
	if err != nil {
		return nil, nil, err
	}
	cursor, files, err := plan.NewLoader(a.cfg.PlansPath, a.cfg.PlansCacheDir).Load(ctx, a.cfg)
	if err != nil {
		return nil, nil, err
	}
	for _, f := range files {
		appLog.Debug("plan file", "file", f.String())
	}
	return run, cursor, nil
}

func (a *app) renderCmd() *cobra.Command {
	var (
		single bool
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render calendar pages to files",
		Long:  "Render the selected month, or every month of the reading range, as <output_file_name>_<year>_<month>.<ext>. With --single and PDF output the range is written as one multi-page file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			run, cursor, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			pages, err := render.Draw(cmd.Context(), a.cfg, run, cursor, render.Options{SplitPDF: !single})
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			for _, p := range pages {
				path := filepath.Join(outDir, pageFileName(a.cfg, p))
				if err := os.WriteFile(path, p.Data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}

			if left := cursor.Len(); left > 0 && !run.HasSelection() {
				appLog.Info("plan entries left after the reading range", "left", left)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&single, "single", false, "Write one multi-page PDF instead of one file per month")
	f.StringVarP(&outDir, "out-dir", "o", ".", "Directory for the rendered files")
	f.Int("year", 0, "Selected year (with --month)")
	f.Int("month", 0, "Selected month 1-12 (with --year)")
	f.String("output", "", "Output type: pdf, png, svg")
	for _, key := range []string{"year", "month", "output"} {
		_ = a.v.BindPFlag(key, f.Lookup(key))
	}
	return cmd
}

// pageFileName names a page <name>_<y>_<m>.<ext>,
// or <name>.pdf for a combined PDF.
func pageFileName(cfg *config.Config, p render.Page) string {
	if p.Month == (calendar.YearMonth{}) {
		return cfg.OutputFileName + "." + cfg.Output.Ext()
	}
	return fmt.Sprintf("%s_%d_%d.%s", cfg.OutputFileName, p.Month.Year, int(p.Month.Month), cfg.Output.Ext())
}

func (a *app) icsCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Write the reading plan as an iCalendar feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			run, cursor, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), out, func(w io.Writer) error {
				return ics.Write(w, run, cursor, time.Now())
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func (a *app) bundleCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Write a zip with the PDF, per-month PNG and SVG pages and the iCalendar feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			run, cursor, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" {
				out = a.cfg.OutputFileName + ".zip"
			}
			err = writeOutput(cmd.OutOrStdout(), out, func(w io.Writer) error {
				return bundle.Write(cmd.Context(), w, a.cfg, run, cursor, bundle.Options{})
			})
			if err != nil {
				return err
			}
			if out != "-" {
				fmt.Fprintln(cmd.ErrOrStderr(), out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default <output_file_name>.zip)")
	return cmd
}

// writeOutput runs write against the file at path, or stdout when path is
// empty or "-". A failed write removes the partial file.
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve calendars, feeds and bundles over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s := web.NewServer(a.cfg)

			err := config.Watch(ctx, a.configPath, func(cfg *config.Config) {
				if err := applyOverrides(a.v, cfg); err != nil {
					appLog.Error("reloaded config rejected", err, "path", a.configPath)
					return
				}
				s.SetConfig(cfg)
			})
			if err != nil {
				appLog.Error("config watch unavailable; reload disabled", err, "path", a.configPath)
			}
			return s.Run(ctx)
		},
	}
	cmd.Flags().String("listen", "", "HTTP listen address (overrides config)")
	_ = a.v.BindPFlag("listen", cmd.Flags().Lookup("listen"))
	return cmd
}

func (a *app) planCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the plan files the config needs and their active-day counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := plan.Files(a.cfg)
			if err != nil {
				return err
			}
			rest, err := a.cfg.RestWeekdays()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range files {
				rule, err := plan.ActiveDayRule(f.Start, f.Start.AddDate(1, 0, 0), rest)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%s\t%d\t%s\n", f.Name, f.Start.Format("2006-01-02"), f.ActiveDays, rule.String())
			}
			return nil
		},
	}
}

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.ics>",
		Short: "Read an iCalendar reading feed and list its days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			days, err := ics.ParseFeed(body)
			if err != nil {
				return err
			}
			if len(days) == 0 {
				return errors.New("no reading days in feed")
			}
			out := cmd.OutOrStdout()
			for _, d := range days {
				fmt.Fprintf(out, "%s  %s\n", d.Date.Format("2006-01-02"), strings.ReplaceAll(d.Summary, "\n", " "))
			}
			fmt.Fprintf(out, "%d days, %s .. %s\n", len(days), days[0].Date.Format("2006-01-02"), days[len(days)-1].Date.Format("2006-01-02"))
			return nil
		},
	}
}
