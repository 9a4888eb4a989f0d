package constraint

import (
	"strings"
	"testing"
	"time"

	"shiftSync/internal/models"

	"github.com/stretchr/testify/require"
)

// 测试基准: 纽约门店, 2025-06-02 是周一, 夏令时 UTC-4。
// 13:00 UTC == 09:00 当地。

func testConfig() Config {
	return Config{
		MinRestHours:            10,
		DailyHoursWarning:       8,
		DailyHoursHardLimit:     12,
		WeeklyHoursWarning:      35,
		WeeklyHoursHardLimit:    40,
		ConsecutiveDaysWarning:  6,
		ConsecutiveDaysOverride: 7,
	}
}

func testEngine() *Engine {
	return NewEngine(testConfig(), nil)
}

func utc(day, hour, min int) time.Time {
	return time.Date(2025, 6, day, hour, min, 0, 0, time.UTC)
}

func testShift(id string, start, end time.Time) models.Shift {
	return models.Shift{
		ID:              id,
		LocationId:      "loc_ny",
		RequiredSkillId: "skl_bartender",
		StartUtc:        start,
		EndUtc:          end,
	}
}

func testContext(t *testing.T, shift models.Shift) ShiftContext {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return ShiftContext{
		Shift:     shift,
		Location:  models.Location{ID: "loc_ny", Name: "旗舰店", Timezone: "America/New_York"},
		Loc:       loc,
		SkillName: "bartender",
	}
}

// testSnapshot 默认快照: 具备技能、持有有效认证、全周可用
func testSnapshot() WorkerSnapshot {
	active := true
	weekly := make([]models.StaffAvailability, 0, 7)
	for d := 0; d < 7; d++ {
		day := d
		weekly = append(weekly, models.StaffAvailability{
			ID:         "avl_" + string(rune('a'+day)),
			MemberId:   "mem_zhang",
			Recurrence: models.RecurrenceWeekly,
			DayOfWeek:  &day,
			StartTime:  "00:00",
			EndTime:    "23:59",
			Timezone:   "UTC",
		})
	}
	return WorkerSnapshot{
		Member: models.Member{
			ID:       "mem_zhang",
			Name:     "张晓",
			Role:     models.MemberRoleStaff,
			IsActive: &active,
			Skills:   []string{"skl_bartender"},
		},
		Certifications: map[string]models.LocationCertification{
			"loc_ny": {ID: "crt_1", MemberId: "mem_zhang", LocationId: "loc_ny", IsActive: &active},
		},
		Availability: weekly,
	}
}

func withActive(snap WorkerSnapshot, shifts ...models.Shift) WorkerSnapshot {
	for _, s := range shifts {
		snap.Active = append(snap.Active, ActiveAssignment{
			Assignment:   models.ShiftAssignment{ID: "asg_" + s.ID, ShiftId: s.ID, MemberId: snap.Member.ID, Status: models.AssignmentStatusAssigned},
			Shift:        s,
			LocationName: "旗舰店",
		})
	}
	return snap
}

func TestEvaluatePasses(t *testing.T) {
	snap := testSnapshot()
	sc := testContext(t, testShift("sft_new", utc(2, 13, 0), utc(2, 19, 0)))

	result := testEngine().Evaluate(snap, sc, "")
	require.True(t, result.OK)
	require.Equal(t, SeverityOK, result.Severity)
}

func TestSkillMismatchBlocksWithSuggestions(t *testing.T) {
	snap := testSnapshot()
	snap.Member.Skills = []string{"skl_server"}
	sc := testContext(t, testShift("sft_new", utc(2, 13, 0), utc(2, 19, 0)))

	suggest := func(sc ShiftContext) []Suggestion {
		return []Suggestion{{MemberId: "mem_li", Name: "李强", Reason: "具备技能且有认证"}}
	}
	result := NewEngine(testConfig(), suggest).Evaluate(snap, sc, "")

	require.False(t, result.OK)
	require.Equal(t, SeverityBlock, result.Severity)
	require.Equal(t, ConstraintSkillMismatch, result.ConstraintId)
	require.Len(t, result.Suggestions, 1)
	require.Equal(t, "mem_li", result.Suggestions[0].MemberId)
}

func TestCertificationDistinguishesRevokedFromNever(t *testing.T) {
	sc := testContext(t, testShift("sft_new", utc(2, 13, 0), utc(2, 19, 0)))

	never := testSnapshot()
	never.Certifications = map[string]models.LocationCertification{}
	result := testEngine().Evaluate(never, sc, "")
	require.Equal(t, ConstraintLocationCertification, result.ConstraintId)
	require.Contains(t, result.Reason, "从未")

	revoked := testSnapshot()
	inactive := false
	revoked.Certifications["loc_ny"] = models.LocationCertification{
		ID: "crt_1", MemberId: "mem_zhang", LocationId: "loc_ny", IsActive: &inactive,
	}
	result = testEngine().Evaluate(revoked, sc, "")
	require.Equal(t, ConstraintLocationCertification, result.ConstraintId)
	require.Contains(t, result.Reason, "吊销")
}

func TestDoubleBookingOverlapBlocks(t *testing.T) {
	snap := withActive(testSnapshot(), testShift("sft_old", utc(2, 15, 0), utc(2, 21, 0)))
	sc := testContext(t, testShift("sft_new", utc(2, 13, 0), utc(2, 19, 0)))

	result := testEngine().Evaluate(snap, sc, "")
	require.Equal(t, SeverityBlock, result.Severity)
	require.Equal(t, ConstraintDoubleBooking, result.ConstraintId)
}

// 同一班次上的既有活跃排班同样构成冲突（审批与预览依赖该结论）
func TestSameShiftActiveAssignmentIsDoubleBooking(t *testing.T) {
	shift := testShift("sft_dup", utc(2, 13, 0), utc(2, 19, 0))
	snap := withActive(testSnapshot(), shift)
	sc := testContext(t, shift)

	result := testEngine().Evaluate(snap, sc, "")
	require.Equal(t, SeverityBlock, result.Severity)
	require.Equal(t, ConstraintDoubleBooking, result.ConstraintId)
}

// 首尾相接不算排班冲突, 但零间隔会触发最小休息间隔
func TestAdjacentShiftsAreNotDoubleBooking(t *testing.T) {
	snap := withActive(testSnapshot(), testShift("sft_old", utc(2, 13, 0), utc(2, 17, 0)))
	sc := testContext(t, testShift("sft_new", utc(2, 17, 0), utc(2, 21, 0)))

	result := testEngine().Evaluate(snap, sc, "")
	require.NotEqual(t, ConstraintDoubleBooking, result.ConstraintId)
	require.Equal(t, ConstraintMinimumRestBefore, result.ConstraintId)
}

func TestMinimumRestBothSides(t *testing.T) {
	// 上一班 6/2 23:00 结束, 本班 6/3 07:00 开始, 仅 8 小时
	before := withActive(testSnapshot(), testShift("sft_old", utc(2, 17, 0), utc(2, 23, 0)))
	sc := testContext(t, testShift("sft_new", utc(3, 7, 0), utc(3, 13, 0)))
	result := testEngine().Evaluate(before, sc, "")
	require.Equal(t, ConstraintMinimumRestBefore, result.ConstraintId)
	require.Contains(t, result.Reason, "8.0")

	// 本班 6/2 22:00 结束, 后一班 6/3 05:00 开始, 仅 7 小时
	after := withActive(testSnapshot(), testShift("sft_next", utc(3, 5, 0), utc(3, 11, 0)))
	sc = testContext(t, testShift("sft_new", utc(2, 16, 0), utc(2, 22, 0)))
	result = testEngine().Evaluate(after, sc, "")
	require.Equal(t, ConstraintMinimumRestAfter, result.ConstraintId)
}

func TestMinimumRestSatisfied(t *testing.T) {
	snap := withActive(testSnapshot(), testShift("sft_old", utc(2, 13, 0), utc(2, 19, 0)))
	// 上一班 19:00 结束, 本班次日 07:00 开始, 12 小时 > 10 小时
	sc := testContext(t, testShift("sft_new", utc(3, 7, 0), utc(3, 13, 0)))

	result := testEngine().Evaluate(snap, sc, "")
	require.True(t, result.OK)
}

func TestDailyHoursWarningAndBlock(t *testing.T) {
	// 同一当地日已有 6 小时 (13:00-19:00 UTC = 09:00-15:00 当地)
	existing := testShift("sft_old", utc(2, 13, 0), utc(2, 19, 0))

	// 间隔重叠会先触发冲突检查, 所以用非重叠但同日的时段没法留足休息;
	// 日工时检查独立可测, 直接调用检查函数
	e := testEngine()

	warn := withActive(testSnapshot(), existing)
	scWarn := testContext(t, testShift("sft_new", utc(3, 1, 0), utc(3, 4, 0))) // 当地 6/2 21:00-24:00, 3 小时
	result := e.checkDailyHours(warn, scWarn, "")
	require.Equal(t, SeverityWarning, result.Severity)
	require.Equal(t, ConstraintDailyHoursWarning, result.ConstraintId)

	scBlock := testContext(t, testShift("sft_new", utc(2, 20, 0), utc(3, 3, 0))) // 再加 7 小时, 共 13
	result = e.checkDailyHours(withActive(testSnapshot(), existing), scBlock, "")
	require.Equal(t, SeverityBlock, result.Severity)
	require.Equal(t, ConstraintDailyHoursExceeded, result.ConstraintId)
}

// 加班陷阱: 本周已排 38 小时, 再排 6 小时必须被拦下, 文案要报出当前工时
func TestWeeklyHoursOvertimeTrap(t *testing.T) {
	snap := withActive(testSnapshot(),
		testShift("sft_mon", utc(2, 13, 0), utc(2, 23, 0)),  // 10h
		testShift("sft_tue", utc(3, 13, 0), utc(3, 23, 0)),  // 10h
		testShift("sft_wed", utc(4, 13, 0), utc(4, 23, 0)),  // 10h
		testShift("sft_thu", utc(5, 13, 0), utc(5, 21, 0)),  // 8h
	)
	// 周五再排 6 小时: 38 + 6 = 44 >= 40
	sc := testContext(t, testShift("sft_fri", utc(6, 13, 0), utc(6, 19, 0)))

	result := testEngine().Evaluate(snap, sc, "")
	require.False(t, result.OK)
	require.Equal(t, SeverityBlock, result.Severity)
	require.Equal(t, ConstraintWeeklyHoursExceeded, result.ConstraintId)
	require.True(t, strings.Contains(result.Reason, "38"), "文案应报出当前周工时: %s", result.Reason)
}

func TestWeeklyHoursWarningNearLimit(t *testing.T) {
	snap := withActive(testSnapshot(),
		testShift("sft_mon", utc(2, 13, 0), utc(2, 23, 0)), // 10h
		testShift("sft_tue", utc(3, 13, 0), utc(3, 23, 0)), // 10h
		testShift("sft_wed", utc(4, 13, 0), utc(4, 23, 0)), // 10h
	)
	// 30 + 6 = 36, 落在 [35, 40)
	sc := testContext(t, testShift("sft_thu", utc(5, 13, 0), utc(5, 19, 0)))

	result := testEngine().Evaluate(snap, sc, "")
	require.True(t, result.OK)
	require.Equal(t, SeverityWarning, result.Severity)
	require.Equal(t, ConstraintWeeklyHoursWarning, result.ConstraintId)
}

// 上周的班不计入本周: 周窗口按门店当地 ISO 周
func TestWeeklyHoursIgnoresPreviousWeek(t *testing.T) {
	snap := withActive(testSnapshot(),
		testShift("sft_lastsun", utc(1, 13, 0), utc(1, 23, 0)), // 6/1 是周日, 上一周
	)
	sc := testContext(t, testShift("sft_mon", utc(2, 13, 0), utc(2, 19, 0)))

	result := testEngine().Evaluate(snap, sc, "")
	require.True(t, result.OK)
	require.Equal(t, SeverityOK, result.Severity)
}

func TestConsecutiveDaysWarningOnSixth(t *testing.T) {
	// 6/2(一)..6/6(五) 连续 5 天, 6/7(六) 是第 6 天
	snap := withActive(testSnapshot(),
		testShift("d1", utc(2, 13, 0), utc(2, 17, 0)),
		testShift("d2", utc(3, 13, 0), utc(3, 17, 0)),
		testShift("d3", utc(4, 13, 0), utc(4, 17, 0)),
		testShift("d4", utc(5, 13, 0), utc(5, 17, 0)),
		testShift("d5", utc(6, 13, 0), utc(6, 17, 0)),
	)
	sc := testContext(t, testShift("d6", utc(7, 13, 0), utc(7, 17, 0)))

	result := testEngine().Evaluate(snap, sc, "")
	require.Equal(t, SeverityWarning, result.Severity)
	require.Equal(t, ConstraintConsecutiveDays6, result.ConstraintId)
}

func TestConsecutiveDaysSeventhRequiresOverride(t *testing.T) {
	snap := withActive(testSnapshot(),
		testShift("d1", utc(2, 13, 0), utc(2, 17, 0)),
		testShift("d2", utc(3, 13, 0), utc(3, 17, 0)),
		testShift("d3", utc(4, 13, 0), utc(4, 17, 0)),
		testShift("d4", utc(5, 13, 0), utc(5, 17, 0)),
		testShift("d5", utc(6, 13, 0), utc(6, 17, 0)),
		testShift("d6", utc(7, 13, 0), utc(7, 17, 0)),
	)
	sc := testContext(t, testShift("d7", utc(8, 13, 0), utc(8, 17, 0)))

	result := testEngine().Evaluate(snap, sc, "")
	require.False(t, result.OK)
	require.Equal(t, SeverityOverrideRequired, result.Severity)
	require.Equal(t, ConstraintConsecutiveDays7, result.ConstraintId)
}

// 中间空一天, 连续计数归零
func TestConsecutiveDaysResetByGap(t *testing.T) {
	snap := withActive(testSnapshot(),
		testShift("d1", utc(2, 13, 0), utc(2, 17, 0)),
		testShift("d2", utc(3, 13, 0), utc(3, 17, 0)),
		// 6/4 休息
		testShift("d4", utc(5, 13, 0), utc(5, 17, 0)),
		testShift("d5", utc(6, 13, 0), utc(6, 17, 0)),
		testShift("d6", utc(7, 13, 0), utc(7, 17, 0)),
	)
	sc := testContext(t, testShift("d7", utc(8, 13, 0), utc(8, 17, 0)))

	result := testEngine().Evaluate(snap, sc, "")
	require.True(t, result.OK)
	require.Equal(t, SeverityOK, result.Severity)
}

// 硬性前置检查失败立即短路, 不再继续后面的检查
func TestEvaluateShortCircuitsOnBlock(t *testing.T) {
	snap := withActive(testSnapshot(), testShift("sft_old", utc(2, 15, 0), utc(2, 21, 0)))
	snap.Member.Skills = nil
	sc := testContext(t, testShift("sft_new", utc(2, 13, 0), utc(2, 19, 0)))

	result := testEngine().Evaluate(snap, sc, "")
	require.Equal(t, ConstraintSkillMismatch, result.ConstraintId)
}

// EvaluateAll 返回全部问题, 不短路
func TestEvaluateAllCollectsEveryFailure(t *testing.T) {
	snap := withActive(testSnapshot(), testShift("sft_old", utc(2, 15, 0), utc(2, 21, 0)))
	snap.Member.Skills = nil
	snap.Certifications = map[string]models.LocationCertification{}
	sc := testContext(t, testShift("sft_new", utc(2, 13, 0), utc(2, 19, 0)))

	results := testEngine().EvaluateAll(snap, sc)
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ConstraintId)
	}
	require.Contains(t, ids, ConstraintSkillMismatch)
	require.Contains(t, ids, ConstraintLocationCertification)
	require.Contains(t, ids, ConstraintDoubleBooking)
}

// 复核既有排班时排除其自身, 不和自己算冲突
func TestEvaluateExcludesOwnAssignment(t *testing.T) {
	shift := testShift("sft_self", utc(2, 13, 0), utc(2, 19, 0))
	snap := withActive(testSnapshot(), shift)
	sc := testContext(t, shift)

	result := testEngine().Evaluate(snap, sc, "asg_sft_self")
	require.True(t, result.OK)
}
