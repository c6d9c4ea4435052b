package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"biblecal/internal/config"
	appLog "biblecal/internal/log"
)

const envPrefix = "BIBLECAL"

// app carries what every subcommand needs once the root pre-run is done.
type app struct {
	configPath string
	logLevel   string
	logFile    string
	console    bool

	v   *viper.Viper
	cfg *config.Config
}

func main() {
	a := &app{v: viper.New()}
	root := a.rootCmd()

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := root.ExecuteContext(ctx)
	appLog.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "biblecal",
		Short:         "Bible reading plan calendars",
		Long:          "Render monthly calendars annotated with a daily Bible reading plan as PDF, PNG or SVG, export them as an iCalendar feed or a zip bundle, or serve them over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "biblecal.yaml", "Config file path (created with defaults if missing)")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, error (overrides config)")
	pf.StringVar(&a.logFile, "log-file", "", "Write JSON logs to this rotating file (overrides config)")
	pf.BoolVar(&a.console, "console", true, "Human-readable logs on stderr")

	root.AddCommand(
		a.renderCmd(),
		a.icsCmd(),
		a.bundleCmd(),
		a.serveCmd(),
		a.planCmd(),
		a.inspectCmd(),
	)
	return root
}

// setup loads the config file, applies BIBLECAL_* environment variables and
// bound flags on top, and initializes logging.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.AutomaticEnv()
	if err := applyOverrides(a.v, cfg); err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFile != "" {
		cfg.Log.File = a.logFile
	}
	if err := appLog.Init(appLog.Options{Level: cfg.Log.Level, File: cfg.Log.File, Console: a.console}); err != nil {
		return &config.ConfigurationError{Field: "log.level", Reason: err.Error(), Err: err}
	}

	a.cfg = cfg
	appLog.Debug("effective config",
		"config_path", a.configPath,
		"start", cfg.StartDate().Format("2006-01-02"),
		"duration", cfg.Duration,
		"coverage", cfg.Coverage,
		"days_to_rest", cfg.DaysToRest,
		"language", cfg.Language,
		"paper", cfg.Paper,
		"output", cfg.Output,
		"plans_path", cfg.PlansPath,
	)
	return nil
}

var (
	stringKeys = map[string]func(c *config.Config, s string){
		"coverage":         func(c *config.Config, s string) { c.Coverage = config.CoverageType(s) },
		"duration":         func(c *config.Config, s string) { c.Duration = config.DurationType(s) },
		"language":         func(c *config.Config, s string) { c.Language = config.Language(s) },
		"paper":            func(c *config.Config, s string) { c.Paper = config.PaperType(s) },
		"output":           func(c *config.Config, s string) { c.Output = config.OutputType(s) },
		"output_file_name": func(c *config.Config, s string) { c.OutputFileName = s },
		"plans_path":       func(c *config.Config, s string) { c.PlansPath = s },
		"plans_cache_dir":  func(c *config.Config, s string) { c.PlansCacheDir = s },
		"png_backend":      func(c *config.Config, s string) { c.PNGBackend = config.PNGBackend(s) },
		"listen":           func(c *config.Config, s string) { c.Listen = s },
	}
	intKeys = map[string]func(c *config.Config, n int){
		"start_year":  func(c *config.Config, n int) { c.StartYear = n },
		"start_month": func(c *config.Config, n int) { c.StartMonth = n },
		"start_day":   func(c *config.Config, n int) { c.StartDay = n },
		"year":        func(c *config.Config, n int) { c.Year = n },
		"month":       func(c *config.Config, n int) { c.Month = n },
	}
)

// applyOverrides copies every key set in v (environment or bound flag)
// into cfg and re-validates it.
func applyOverrides(v *viper.Viper, cfg *config.Config) error {
	for key, set := range stringKeys {
		if v.IsSet(key) {
			set(cfg, v.GetString(key))
		}
	}
	for key, set := range intKeys {
		if v.IsSet(key) {
			set(cfg, v.GetInt(key))
		}
	}
	if v.IsSet("days_to_rest") {
		var days []string
		for _, d := range strings.Split(v.GetString("days_to_rest"), ",") {
			if d = strings.TrimSpace(d); d != "" {
				days = append(days, d)
			}
		}
		cfg.DaysToRest = days
	}

	cfg.Normalize()
	return cfg.Validate()
}
