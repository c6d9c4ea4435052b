package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.Now().Year(), cfg.StartYear)
	assert.False(t, cfg.HasSelectedMonth())
}

func TestParseNormalizesPartialConfig(t *testing.T) {
	cfg, err := Parse([]byte(`
start_year: 2024
days_to_rest: [sun, "6"]
fonts:
  day_plan: {family: Barlow}
`))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.StartMonth)
	assert.Equal(t, 1, cfg.StartDay)
	assert.Equal(t, DurationOneYear, cfg.Duration)
	assert.Equal(t, PaperUSLetter, cfg.Paper)
	assert.Equal(t, 23.0, cfg.Fonts.DayPlan.Size)
	assert.Equal(t, "Barlow", cfg.Fonts.DayPlan.Family)
	assert.Equal(t, "Ubuntu", cfg.Fonts.Default.Family)

	rest, err := cfg.RestWeekdays()
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Sunday, time.Saturday}, rest)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		enum   bool
	}{
		{"month out of range", func(c *Config) { c.StartMonth = 13 }, false},
		{"no 30th of February", func(c *Config) { c.StartMonth, c.StartDay = 2, 30 }, false},
		{"year without month", func(c *Config) { c.Year = 2024 }, false},
		{"every day a rest day", func(c *Config) {
			c.DaysToRest = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}
		}, false},
		{"unknown duration", func(c *Config) { c.Duration = "three-years" }, true},
		{"unknown coverage", func(c *Config) { c.Coverage = "apocrypha" }, true},
		{"unknown language", func(c *Config) { c.Language = "latin" }, true},
		{"unknown paper", func(c *Config) { c.Paper = "a3" }, true},
		{"unknown output", func(c *Config) { c.Output = "gif" }, true},
		{"unknown backend", func(c *Config) { c.PNGBackend = "cairo" }, true},
		{"unknown weekday", func(c *Config) { c.DaysToRest = []string{"funday"} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, IsConfigError(err))

			var ue *UnknownEnumError
			assert.Equal(t, tt.enum, errors.As(err, &ue))
		})
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want time.Weekday
	}{
		{"Sunday", time.Sunday},
		{" tues ", time.Tuesday},
		{"thu", time.Thursday},
		{"0", time.Sunday},
		{"6", time.Saturday},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"7", "-1", "someday", ""} {
		_, err := ParseWeekday(bad)
		assert.Error(t, err, bad)
	}
}

func TestDurationYears(t *testing.T) {
	assert.Equal(t, 1, DurationOneYear.Years())
	assert.Equal(t, 2, DurationTwoYears.Years())
	assert.Equal(t, 1, DurationTwoYearsSecond.Years())
	assert.Equal(t, 1, DurationTwoYearsSecond.YearOffset())
	assert.Equal(t, 0, DurationTwoYearsFirst.YearOffset())
}

func TestPaperSize(t *testing.T) {
	w, h, err := PaperA4.Size()
	require.NoError(t, err)
	assert.Equal(t, 1175.0, w)
	assert.Equal(t, 825.0, h)

	_, _, err = PaperType("legal").Size()
	assert.Error(t, err)
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "biblecal.yaml")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().PlansPath, cfg.PlansPath)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biblecal.yaml")
	cfg := DefaultConfig()
	cfg.StartYear, cfg.StartMonth, cfg.StartDay = 2023, 3, 15
	cfg.Duration = DurationTwoYears
	cfg.Language = LanguageKorean
	cfg.DaysToRest = []string{"sunday"}
	cfg.BasicAuth = &BasicAuthConfig{Username: "u", Password: "p"}
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biblecal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("start_year: [oops"), 0o600))

	_, err := Load(path)
	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "yaml", ce.Field)
}

func TestClone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DaysToRest = []string{"sunday"}
	cfg.BasicAuth = &BasicAuthConfig{Username: "u", Password: "p"}

	c := cfg.Clone()
	c.DaysToRest[0] = "monday"
	c.BasicAuth.Password = "changed"
	assert.Equal(t, "sunday", cfg.DaysToRest[0])
	assert.Equal(t, "p", cfg.BasicAuth.Password)
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biblecal.yaml")
	require.NoError(t, Save(path, DefaultConfig()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	require.NoError(t, Watch(ctx, path, func(c *Config) { got <- c }))

	cfg := DefaultConfig()
	cfg.Listen = "0.0.0.0:9999"
	require.NoError(t, Save(path, cfg))

	select {
	case c := <-got:
		assert.Equal(t, "0.0.0.0:9999", c.Listen)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed")
	}
}
