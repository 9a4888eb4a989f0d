package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func nyLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func TestShiftDurationHours(t *testing.T) {
	s := Shift{
		StartUtc: time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC),
		EndUtc:   time.Date(2025, 6, 2, 19, 30, 0, 0, time.UTC),
	}
	require.Equal(t, 6.5, s.DurationHours())
}

func TestShiftOvernightByLocalMidnight(t *testing.T) {
	loc := nyLoc(t)

	// 22:00-06:00 当地, 跨午夜
	overnight := Shift{
		StartUtc: time.Date(2025, 6, 3, 2, 0, 0, 0, time.UTC), // 6/2 22:00 当地
		EndUtc:   time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC),
	}
	require.True(t, overnight.IsOvernight(loc))

	// 在 UTC 下跨日但当地没跨: 6/2 19:00-23:00 当地 = 23:00-03:00 UTC
	sameDay := Shift{
		StartUtc: time.Date(2025, 6, 2, 23, 0, 0, 0, time.UTC),
		EndUtc:   time.Date(2025, 6, 3, 3, 0, 0, 0, time.UTC),
	}
	require.False(t, sameDay.IsOvernight(loc))
}

func TestShiftPremiumByLocalWeekdayAndHour(t *testing.T) {
	loc := nyLoc(t)
	premiumDays := map[time.Weekday]bool{time.Friday: true, time.Saturday: true}

	// 周五 18:00 当地开始
	friEvening := Shift{StartUtc: time.Date(2025, 6, 6, 22, 0, 0, 0, time.UTC)}
	require.True(t, friEvening.IsPremium(premiumDays, 17, loc))

	// 周五 12:00 当地, 早于 17:00
	friNoon := Shift{StartUtc: time.Date(2025, 6, 6, 16, 0, 0, 0, time.UTC)}
	require.False(t, friNoon.IsPremium(premiumDays, 17, loc))

	// 周三 18:00 当地, 非高峰星期
	wedEvening := Shift{StartUtc: time.Date(2025, 6, 4, 22, 0, 0, 0, time.UTC)}
	require.False(t, wedEvening.IsPremium(premiumDays, 17, loc))

	// UTC 已是周六凌晨, 当地仍是周五晚: 按当地算高峰
	friLate := Shift{StartUtc: time.Date(2025, 6, 7, 1, 0, 0, 0, time.UTC)} // 6/6 21:00 当地
	require.True(t, friLate.IsPremium(premiumDays, 17, loc))
}

func TestShiftEditCutoff(t *testing.T) {
	start := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	s := Shift{StartUtc: start, EditCutoffHours: 48}

	require.Equal(t, start.Add(-48*time.Hour), s.EditCutoff())
	require.False(t, s.IsPastEditCutoff(start.Add(-49*time.Hour)))
	require.True(t, s.IsPastEditCutoff(start.Add(-48*time.Hour)))
	require.True(t, s.IsPastEditCutoff(start.Add(-time.Hour)))
}

func TestMemberHasSkill(t *testing.T) {
	m := Member{Skills: []string{"skl_a", "skl_b"}}
	require.True(t, m.HasSkill("skl_a"))
	require.False(t, m.HasSkill("skl_c"))
}

func TestAvailabilityUnavailableDay(t *testing.T) {
	require.True(t, StaffAvailability{}.IsUnavailableDay())
	require.False(t, StaffAvailability{StartTime: "09:00", EndTime: "17:00"}.IsUnavailableDay())
}
