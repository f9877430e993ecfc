package assistant_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/sunbank-labs/vaani/pkg/service/assistant"
)

func TestParseReminderDueDate(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2026, time.March, 10, 18, 45, 12, 0, ist)

	t.Run("today resolves to 9am in caller location", func(t *testing.T) {
		got, ok := assistant.ParseReminderDueDate("today", now)
		gt.Bool(t, ok).True()
		gt.Value(t, got).Equal(time.Date(2026, time.March, 10, 9, 0, 0, 0, ist))
	})

	t.Run("tomorrow", func(t *testing.T) {
		got, ok := assistant.ParseReminderDueDate("Tomorrow", now)
		gt.Bool(t, ok).True()
		gt.Value(t, got).Equal(time.Date(2026, time.March, 11, 9, 0, 0, 0, ist))
	})

	t.Run("day after tomorrow", func(t *testing.T) {
		got, ok := assistant.ParseReminderDueDate("day after tomorrow", now)
		gt.Bool(t, ok).True()
		gt.Value(t, got).Equal(time.Date(2026, time.March, 12, 9, 0, 0, 0, ist))
	})

	t.Run("explicit ISO date keeps midnight", func(t *testing.T) {
		got, ok := assistant.ParseReminderDueDate("2026-04-01", now)
		gt.Bool(t, ok).True()
		gt.Value(t, got).Equal(time.Date(2026, time.April, 1, 0, 0, 0, 0, ist))
	})

	t.Run("ISO datetime keeps its time of day", func(t *testing.T) {
		got, ok := assistant.ParseReminderDueDate("2026-04-01 14:30", now)
		gt.Bool(t, ok).True()
		gt.Value(t, got).Equal(time.Date(2026, time.April, 1, 14, 30, 0, 0, ist))
	})

	t.Run("spoken date with ordinal suffix", func(t *testing.T) {
		got, ok := assistant.ParseReminderDueDate("15th january 2027", now)
		gt.Bool(t, ok).True()
		gt.Value(t, got).Equal(time.Date(2027, time.January, 15, 0, 0, 0, 0, ist))
	})

	t.Run("year-less date assumes current year", func(t *testing.T) {
		got, ok := assistant.ParseReminderDueDate("12 January", now)
		gt.Bool(t, ok).True()
		gt.Value(t, got).Equal(time.Date(2026, time.January, 12, 0, 0, 0, 0, ist))
	})

	t.Run("dd/mm/yyyy", func(t *testing.T) {
		got, ok := assistant.ParseReminderDueDate("05/04/2026", now)
		gt.Bool(t, ok).True()
		gt.Value(t, got).Equal(time.Date(2026, time.April, 5, 0, 0, 0, 0, ist))
	})

	t.Run("empty value", func(t *testing.T) {
		_, ok := assistant.ParseReminderDueDate("   ", now)
		gt.Bool(t, ok).False()
	})

	t.Run("gibberish", func(t *testing.T) {
		_, ok := assistant.ParseReminderDueDate("whenever you feel like", now)
		gt.Bool(t, ok).False()
	})
}

func TestFormatCurrency(t *testing.T) {
	t.Run("indian grouping with two decimals", func(t *testing.T) {
		got := assistant.FormatCurrency(1234567.5, "INR")
		gt.Value(t, got).Equal("₹12,34,567.50")
	})

	t.Run("unknown code falls back to INR", func(t *testing.T) {
		got := assistant.FormatCurrency(100, "???")
		gt.Value(t, got).Equal("₹100.00")
	})
}

func TestMaskAccount(t *testing.T) {
	gt.Value(t, assistant.MaskAccount("100200303456")).Equal("ending 3456")
	gt.Value(t, assistant.MaskAccount("1234")).Equal("1234")
	gt.Value(t, assistant.MaskAccount("")).Equal("")
}
