package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblecal/internal/config"
	"biblecal/internal/plan"
)

func TestIsReadingMonthTwoYearsMidMonthStart(t *testing.T) {
	run := testRun(t, func(c *config.Config) {
		c.StartYear, c.StartMonth, c.StartDay = 2023, 1, 15
		c.Duration = config.DurationTwoYears
	})

	assert.True(t, run.IsReadingMonth(2023, time.January))
	assert.True(t, run.IsReadingMonth(2024, time.December))
	assert.True(t, run.IsReadingMonth(2025, time.January))
	assert.False(t, run.IsReadingMonth(2025, time.February))

	months := run.Months()
	require.Len(t, months, 25)
	assert.Equal(t, YearMonth{2023, time.January}, months[0])
	assert.Equal(t, YearMonth{2025, time.January}, months[24])
}

func TestIsReadingMonthOneYearFromFirst(t *testing.T) {
	run := testRun(t, nil)
	assert.True(t, run.IsReadingMonth(2024, time.December))
	assert.False(t, run.IsReadingMonth(2025, time.January))
	assert.Len(t, run.Months(), 12)
}

func TestTwoYearsSecondStartsOneYearLater(t *testing.T) {
	run := testRun(t, func(c *config.Config) { c.Duration = config.DurationTwoYearsSecond })
	assert.Equal(t, Date(2025, time.January, 1), run.Start)
	assert.Equal(t, Date(2026, time.January, 1), run.End)
	months := run.Months()
	require.Len(t, months, 12)
	assert.Equal(t, YearMonth{2025, time.January}, months[0])
}

func TestSelectedMonthSkipsEarlierMonths(t *testing.T) {
	run := testRun(t, func(c *config.Config) {
		c.DaysToRest = []string{"sunday"}
		c.Year, c.Month = 2024, 3
	})
	require.True(t, run.HasSelection())
	assert.True(t, run.IsSelectedMonth(2024, time.March))
	assert.Equal(t, []YearMonth{{2024, time.March}}, run.Months())

	cursor := plan.NewCursor(testEntries(400))
	rec := NewRecorder()
	require.NoError(t, run.Draw(cursor, rec))

	// Only March is drawn.
	assert.Equal(t, []YearMonth{{2024, time.March}}, rec.Pages())
	assert.Equal(t, 31, rec.Count(OpDayNumber, YearMonth{}))

	jan, feb, mar := 27, 25, 26
	assert.Equal(t, mar, rec.Count(OpDayPlan, YearMonth{}))
	assert.Equal(t, jan+feb+mar, cursor.Consumed())

	// The first plan text in March is the entry after January and February.
	first := rec.Filter(OpDayPlan)[0]
	assert.Equal(t, "Ps 53", first.Text)
}

func TestSelectedMonthOutsideRange(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.StartYear, cfg.StartMonth, cfg.StartDay = 2024, 3, 1
	cfg.Year, cfg.Month = 2024, 2

	_, err := NewRun(cfg)
	require.Error(t, err)
	assert.True(t, config.IsConfigError(err))

	cfg.Year, cfg.Month = 2025, 3
	_, err = NewRun(cfg)
	assert.True(t, config.IsConfigError(err))

	cfg.Year, cfg.Month = 2025, 2
	_, err = NewRun(cfg)
	assert.NoError(t, err)
}

func TestFullRangeDrainsExactlyTheActiveDays(t *testing.T) {
	run := testRun(t, func(c *config.Config) { c.DaysToRest = []string{"sunday"} })
	active := run.Rest.CountActiveDays(run.Start, run.End)
	require.Equal(t, 314, active)

	cursor := plan.NewCursor(testEntries(active + 5))
	rec := NewRecorder()
	require.NoError(t, run.Draw(cursor, rec))

	assert.Len(t, rec.Pages(), 12)
	assert.Equal(t, active, cursor.Consumed())
	assert.Equal(t, active, rec.Count(OpDayPlan, YearMonth{}))
	assert.Equal(t, 5, cursor.Len())
}

func TestFullRangeUnderflow(t *testing.T) {
	run := testRun(t, nil)
	err := run.Draw(plan.NewCursor(testEntries(100)), NewRecorder())

	var ue *PlanUnderflowError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, Date(2024, time.April, 10), ue.Date)
	assert.Equal(t, 101, ue.Needed)
}

func TestMidMonthStartBoundaryMonth(t *testing.T) {
	run := testRun(t, func(c *config.Config) { c.StartMonth, c.StartDay = 3, 20 })
	cursor := plan.NewCursor(testEntries(400))
	rec := NewRecorder()
	require.NoError(t, run.Draw(cursor, rec))

	pages := rec.Pages()
	require.Len(t, pages, 13)
	assert.Equal(t, YearMonth{2025, time.March}, pages[12])
	// The boundary month stops reading on 19 March 2025.
	assert.Equal(t, 19, rec.Count(OpDayPlan, YearMonth{2025, time.March}))
	assert.Equal(t, 12, rec.Count(OpDayPlan, YearMonth{2024, time.March}))
	assert.Equal(t, 365, cursor.Consumed())
}

func TestEachPlanDay(t *testing.T) {
	run := testRun(t, func(c *config.Config) {
		c.StartDay = 6
		c.DaysToRest = []string{"sunday"}
	})
	var days []time.Time
	err := run.EachPlanDay(plan.NewCursor(testEntries(3)), func(d time.Time, _ plan.Entry) error {
		days = append(days, d)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		Date(2024, time.January, 6),
		Date(2024, time.January, 8),
		Date(2024, time.January, 9),
	}, days)
}

func TestWithoutSelection(t *testing.T) {
	run := testRun(t, func(c *config.Config) { c.Year, c.Month = 2024, 5 })
	full := run.WithoutSelection()
	assert.False(t, full.HasSelection())
	assert.True(t, run.HasSelection())
	assert.Len(t, full.Months(), 12)
}
