package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// NOTE: This file provides the configuration model and full YAML-based
// load/save behavior, including first-run config creation and 0600
// permissions.

// FontConfig describes one text role on the page. Family is passed to the
// renderers as-is; File optionally points at a TTF/OTF used by the PDF and
// native PNG renderers.
type FontConfig struct {
	Family string  `yaml:"family,omitempty" json:"family,omitempty"`
	File   string  `yaml:"file,omitempty" json:"file,omitempty"`
	Size   float64 `yaml:"size,omitempty" json:"size,omitempty"`
}

// FontsConfig groups the per-role fonts. Roles without a family or file
// fall back to Default.
type FontsConfig struct {
	Default    FontConfig `yaml:"default" json:"default"`
	MonthLabel FontConfig `yaml:"month_label" json:"month_label"`
	WdayLabel  FontConfig `yaml:"wday_label" json:"wday_label"`
	DayNumber  FontConfig `yaml:"day_number" json:"day_number"`
	DayPlan    FontConfig `yaml:"day_plan" json:"day_plan"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the web service.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file,omitempty" json:"file,omitempty"`
}

// Config is the per-run calendar configuration plus the service settings
// used by `biblecal serve`.
type Config struct {
	// Start date of the reading plan.
	StartYear  int `yaml:"start_year" json:"start_year"`
	StartMonth int `yaml:"start_month" json:"start_month"`
	StartDay   int `yaml:"start_day" json:"start_day"`

	// Year/Month select a single month to render. Zero means the whole range.
	Year  int `yaml:"year,omitempty" json:"year,omitempty"`
	Month int `yaml:"month,omitempty" json:"month,omitempty"`

	Duration DurationType `yaml:"duration" json:"duration"`
	Coverage CoverageType `yaml:"coverage" json:"coverage"`

	// DaysToRest lists weekdays that get no reading ("sunday", "sat", "0", ...).
	DaysToRest []string `yaml:"days_to_rest" json:"days_to_rest"`

	Language Language   `yaml:"language" json:"language"`
	Paper    PaperType  `yaml:"paper" json:"paper"`
	Output   OutputType `yaml:"output" json:"output"`

	OutputFileName string `yaml:"output_file_name" json:"output_file_name"`

	// PlansPath is a directory or an http(s) base URL holding the plan CSVs.
	PlansPath     string `yaml:"plans_path" json:"plans_path"`
	PlansCacheDir string `yaml:"plans_cache_dir" json:"plans_cache_dir"`

	CellMargin          float64 `yaml:"cell_margin" json:"cell_margin"`
	MarginTop           float64 `yaml:"margin_top" json:"margin_top"`
	LineWidth           float64 `yaml:"line_width" json:"line_width"`
	MonthLabelUppercase bool    `yaml:"month_label_uppercase" json:"month_label_uppercase"`

	Fonts FontsConfig `yaml:"fonts" json:"fonts"`

	PNGBackend PNGBackend `yaml:"png_backend" json:"png_backend"`

	// Listen is the HTTP listen address for `serve`.
	Listen string `yaml:"listen" json:"listen"`

	// CachePurge is a cron spec for dropping rendered responses.
	CachePurge string `yaml:"cache_purge" json:"cache_purge"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all endpoints
	// except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`

	Log LogConfig `yaml:"log" json:"log"`
}

// DefaultConfig returns an in-memory default configuration: a one year,
// whole Bible plan starting on January 1st of the current year.
func DefaultConfig() *Config {
	now := time.Now()
	return &Config{
		StartYear:      now.Year(),
		StartMonth:     1,
		StartDay:       1,
		Duration:       DurationOneYear,
		Coverage:       CoverageWholeBible,
		DaysToRest:     []string{},
		Language:       LanguageEnglish,
		Paper:          PaperUSLetter,
		Output:         OutputPDF,
		OutputFileName: "calendar",
		PlansPath:      "/usr/local/etc/bible-reading-calendar/bible-reading-plans/",
		PlansCacheDir:  "./cache/plans",
		CellMargin:     10,
		MarginTop:      25,
		LineWidth:      1,
		Fonts: FontsConfig{
			Default:    FontConfig{Family: "Ubuntu"},
			MonthLabel: FontConfig{Family: "Merriweather", Size: 80},
			WdayLabel:  FontConfig{Size: 20},
			DayNumber:  FontConfig{Size: 25},
			DayPlan:    FontConfig{Family: "BarlowCondensed", Size: 23},
		},
		PNGBackend: PNGBackendNative,
		Listen:     "127.0.0.1:8080",
		CachePurge: "*/30 * * * *",
		Log:        LogConfig{Level: "info"},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly. Enum fields are left
// alone when set; Validate rejects unknown values instead of guessing.
func (c *Config) Normalize() {
	def := DefaultConfig()

	if c.StartYear == 0 {
		c.StartYear = def.StartYear
	}
	if c.StartMonth == 0 {
		c.StartMonth = 1
	}
	if c.StartDay == 0 {
		c.StartDay = 1
	}
	if c.Duration == "" {
		c.Duration = DurationOneYear
	}
	if c.Coverage == "" {
		c.Coverage = CoverageWholeBible
	}
	if c.DaysToRest == nil {
		c.DaysToRest = []string{}
	}
	if c.Language == "" {
		c.Language = LanguageEnglish
	}
	if c.Paper == "" {
		c.Paper = PaperUSLetter
	}
	if c.Output == "" {
		c.Output = OutputPDF
	}
	if c.OutputFileName == "" {
		c.OutputFileName = def.OutputFileName
	}
	if c.PlansPath == "" {
		c.PlansPath = def.PlansPath
	}
	if c.PlansCacheDir == "" {
		c.PlansCacheDir = def.PlansCacheDir
	}
	if c.CellMargin <= 0 {
		c.CellMargin = def.CellMargin
	}
	if c.MarginTop <= 0 {
		c.MarginTop = def.MarginTop
	}
	if c.LineWidth <= 0 {
		c.LineWidth = def.LineWidth
	}
	if c.Fonts.Default.Family == "" && c.Fonts.Default.File == "" {
		c.Fonts.Default = def.Fonts.Default
	}
	fillSize(&c.Fonts.MonthLabel, def.Fonts.MonthLabel.Size)
	fillSize(&c.Fonts.WdayLabel, def.Fonts.WdayLabel.Size)
	fillSize(&c.Fonts.DayNumber, def.Fonts.DayNumber.Size)
	fillSize(&c.Fonts.DayPlan, def.Fonts.DayPlan.Size)
	if c.PNGBackend == "" {
		c.PNGBackend = PNGBackendNative
	}
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.CachePurge == "" {
		c.CachePurge = def.CachePurge
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func fillSize(f *FontConfig, size float64) {
	if f.Size <= 0 {
		f.Size = size
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults and validate
//
// Parse and validation failures are returned as *ConfigurationError.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, &ConfigurationError{Field: "path", Reason: "config path is empty"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	return Parse(data)
}

// Parse decodes YAML bytes into a normalized, validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigurationError{Field: "yaml", Reason: err.Error(), Err: err}
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".biblecal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}

// Clone returns a deep copy so per-request edits never leak into shared
// defaults.
func (c *Config) Clone() *Config {
	out := *c
	out.DaysToRest = append([]string(nil), c.DaysToRest...)
	if c.BasicAuth != nil {
		ba := *c.BasicAuth
		out.BasicAuth = &ba
	}
	return &out
}

// StartDate is the configured plan start as a UTC midnight.
func (c *Config) StartDate() time.Time {
	return time.Date(c.StartYear, time.Month(c.StartMonth), c.StartDay, 0, 0, 0, 0, time.UTC)
}

// HasSelectedMonth reports whether a single month was requested.
func (c *Config) HasSelectedMonth() bool {
	return c.Year != 0 && c.Month != 0
}

// Validate checks ranges and enum values.
func (c *Config) Validate() error {
	if c.StartMonth < 1 || c.StartMonth > 12 {
		return &ConfigurationError{Field: "start_month", Reason: fmt.Sprintf("must be 1..12, got %d", c.StartMonth)}
	}
	if c.StartDay < 1 || c.StartDay > 31 {
		return &ConfigurationError{Field: "start_day", Reason: fmt.Sprintf("must be 1..31, got %d", c.StartDay)}
	}
	if d := c.StartDate(); d.Day() != c.StartDay {
		return &ConfigurationError{Field: "start_day", Reason: fmt.Sprintf("%04d-%02d has no day %d", c.StartYear, c.StartMonth, c.StartDay)}
	}
	if (c.Year == 0) != (c.Month == 0) {
		return &ConfigurationError{Field: "month", Reason: "year and month must be set together"}
	}
	if c.Month < 0 || c.Month > 12 {
		return &ConfigurationError{Field: "month", Reason: fmt.Sprintf("must be 1..12, got %d", c.Month)}
	}

	if err := c.Duration.Validate(); err != nil {
		return err
	}
	if err := c.Coverage.Validate(); err != nil {
		return err
	}
	if err := c.Language.Validate(); err != nil {
		return err
	}
	if err := c.Paper.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	if err := c.PNGBackend.Validate(); err != nil {
		return err
	}

	rest, err := c.RestWeekdays()
	if err != nil {
		return err
	}
	if len(rest) >= 7 {
		return &ConfigurationError{Field: "days_to_rest", Reason: "at least one weekday must remain for reading"}
	}
	return nil
}

// RestWeekdays parses DaysToRest into time.Weekday values.
func (c *Config) RestWeekdays() ([]time.Weekday, error) {
	seen := make(map[time.Weekday]bool, len(c.DaysToRest))
	out := make([]time.Weekday, 0, len(c.DaysToRest))
	for _, name := range c.DaysToRest {
		wd, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		if !seen[wd] {
			seen[wd] = true
			out = append(out, wd)
		}
	}
	return out, nil
}
