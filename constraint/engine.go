package constraint

import (
	"fmt"
	"time"
)

// Config 约束引擎的阈值配置
// 构造后不可变；引擎绝不读取全局可变状态。
type Config struct {
	MinRestHours            int
	DailyHoursWarning       float64
	DailyHoursHardLimit     float64
	WeeklyHoursWarning      float64
	WeeklyHoursHardLimit    float64
	ConsecutiveDaysWarning  int
	ConsecutiveDaysOverride int
}

// SuggestionFn 替代人选查询的接缝
// 由服务层注入（技能 + 有效认证的快速近似查询）；引擎自身保持纯函数。
type SuggestionFn func(sc ShiftContext) []Suggestion

// checkFn 单条约束检查
// 每条检查都是 (快照, 候选班次) 的纯函数，独立可测。
type checkFn func(e *Engine, snap WorkerSnapshot, sc ShiftContext, excludeAssignmentId string) ConstraintResult

// pipeline 固定顺序的约束管线
// 1-5 为硬性前置条件，6-8 为工时/疲劳类软硬混合规则。
var pipeline = []checkFn{
	(*Engine).checkSkillMatch,
	(*Engine).checkLocationCertification,
	(*Engine).checkAvailability,
	(*Engine).checkNoDoubleBooking,
	(*Engine).checkMinimumRest,
	(*Engine).checkDailyHours,
	(*Engine).checkWeeklyHours,
	(*Engine).checkConsecutiveDays,
}

// Engine 排班约束引擎
//
// 引擎只读不写；装载快照、加锁与落库都是服务层的职责。
type Engine struct {
	cfg     Config
	suggest SuggestionFn
}

func NewEngine(cfg Config, suggest SuggestionFn) *Engine {
	return &Engine{cfg: cfg, suggest: suggest}
}

// Evaluate 运行约束管线，返回第一个阻断性结论
//
// 返回顺序: 1-5 中最先出现的 block/override，否则 6-8 中最先出现的
// 非 ok 结论（告警或豁免要求），否则通过。excludeAssignmentId 用于
// 复核既有排班时排除其自身。
func (e *Engine) Evaluate(snap WorkerSnapshot, sc ShiftContext, excludeAssignmentId string) ConstraintResult {
	var warnings []ConstraintResult

	for _, check := range pipeline {
		result := check(e, snap, sc, excludeAssignmentId)
		switch result.Severity {
		case SeverityOK:
			continue
		case SeverityBlock, SeverityOverrideRequired:
			return result
		case SeverityWarning:
			warnings = append(warnings, result)
		}
	}

	if len(warnings) > 0 {
		return warnings[0]
	}
	return Success()
}

// EvaluateAll 运行全部检查并返回所有非 ok 结论，不短路
// 供 what-if 预览界面一次性展示完整问题清单；空切片表示全部通过。
func (e *Engine) EvaluateAll(snap WorkerSnapshot, sc ShiftContext) []ConstraintResult {
	var results []ConstraintResult
	for _, check := range pipeline {
		result := check(e, snap, sc, "")
		if result.Severity != SeverityOK {
			results = append(results, result)
		}
	}
	return results
}

// otherActive 过滤掉被排除的排班记录
// 只按记录ID排除（复核既有排班时排除其自身）；该员工在同一班次上的
// 其他活跃记录必须保留，否则排班冲突检查会漏掉完全同班的重复排班。
func otherActive(snap WorkerSnapshot, sc ShiftContext, excludeAssignmentId string) []ActiveAssignment {
	out := make([]ActiveAssignment, 0, len(snap.Active))
	for _, a := range snap.Active {
		if excludeAssignmentId != "" && a.Assignment.ID == excludeAssignmentId {
			continue
		}
		out = append(out, a)
	}
	return out
}

// 1. 技能匹配（硬性）
func (e *Engine) checkSkillMatch(snap WorkerSnapshot, sc ShiftContext, _ string) ConstraintResult {
	if snap.Member.HasSkill(sc.Shift.RequiredSkillId) {
		return Success()
	}

	var suggestions []Suggestion
	if e.suggest != nil {
		suggestions = e.suggest(sc)
	}
	return Block(ConstraintSkillMismatch,
		fmt.Sprintf("%s 不具备该班次要求的 %q 技能", snap.Member.Name, sc.SkillName),
		suggestions...)
}

// 2. 门店认证（硬性）
// 已吊销与从未认证给出不同文案，但同样阻断。
func (e *Engine) checkLocationCertification(snap WorkerSnapshot, sc ShiftContext, _ string) ConstraintResult {
	cert, ever := snap.Certifications[sc.Shift.LocationId]
	if ever && cert.GetActive() {
		return Success()
	}

	detail := "（从未在该门店认证）"
	if ever {
		detail = "（认证已被吊销）"
	}
	return Block(ConstraintLocationCertification,
		fmt.Sprintf("%s 不具备在 %s 上岗的有效认证%s", snap.Member.Name, sc.Location.Name, detail))
}

// 3. 可用时段（硬性），委托给 ResolveAvailability
func (e *Engine) checkAvailability(snap WorkerSnapshot, sc ShiftContext, _ string) ConstraintResult {
	return ResolveAvailability(snap, sc)
}

// 4. 排班冲突（硬性）
// 区间按 [start, end) 判定重叠，跨门店同样生效；首尾相接不算冲突。
func (e *Engine) checkNoDoubleBooking(snap WorkerSnapshot, sc ShiftContext, excludeAssignmentId string) ConstraintResult {
	for _, a := range otherActive(snap, sc, excludeAssignmentId) {
		if a.Shift.StartUtc.Before(sc.Shift.EndUtc) && a.Shift.EndUtc.After(sc.Shift.StartUtc) {
			return Block(ConstraintDoubleBooking,
				fmt.Sprintf("%s 当天已有 %s 的班次 (%s–%s UTC)，与该班次时间重叠",
					snap.Member.Name, a.LocationName,
					a.Shift.StartUtc.Format("15:04"), a.Shift.EndUtc.Format("15:04")))
		}
	}
	return Success()
}

// 5. 最小休息间隔（硬性）
// 候选班次前后两侧相对每条活跃排班都必须留足 MinRestHours。
func (e *Engine) checkMinimumRest(snap WorkerSnapshot, sc ShiftContext, excludeAssignmentId string) ConstraintResult {
	minRest := time.Duration(e.cfg.MinRestHours) * time.Hour

	for _, a := range otherActive(snap, sc, excludeAssignmentId) {
		// 前一班结束距本班开始不足
		if !a.Shift.EndUtc.After(sc.Shift.StartUtc) {
			gap := sc.Shift.StartUtc.Sub(a.Shift.EndUtc)
			if gap < minRest {
				return Block(ConstraintMinimumRestBefore,
					fmt.Sprintf("%s 在 %s 的上一班结束后仅能休息 %.1f 小时，不足最低 %d 小时",
						snap.Member.Name, a.LocationName, gap.Hours(), e.cfg.MinRestHours))
			}
			continue
		}
		// 本班结束距后一班开始不足
		if !a.Shift.StartUtc.Before(sc.Shift.EndUtc) {
			gap := a.Shift.StartUtc.Sub(sc.Shift.EndUtc)
			if gap < minRest {
				return Block(ConstraintMinimumRestAfter,
					fmt.Sprintf("%s 在本班结束 %.1f 小时后就要在 %s 上岗，不足最低 %d 小时休息",
						snap.Member.Name, gap.Hours(), a.LocationName, e.cfg.MinRestHours))
			}
		}
		// 区间重叠的情况由排班冲突检查负责
	}
	return Success()
}

// 6. 日工时（软/硬）
// 按门店当地日历日统计；超过告警阈值给告警，超过硬性上限阻断。
func (e *Engine) checkDailyHours(snap WorkerSnapshot, sc ShiftContext, excludeAssignmentId string) ConstraintResult {
	shiftDay := sc.LocalDate(sc.Shift.StartUtc)

	existing := 0.0
	for _, a := range otherActive(snap, sc, excludeAssignmentId) {
		if sc.LocalDate(a.Shift.StartUtc).Equal(shiftDay) {
			existing += a.Shift.DurationHours()
		}
	}
	total := existing + sc.Shift.DurationHours()

	if total > e.cfg.DailyHoursHardLimit {
		return Block(ConstraintDailyHoursExceeded,
			fmt.Sprintf("新增该 %.1f 小时班次后，%s 当日工时将达 %.1f 小时，超过 %.0f 小时的单日上限",
				sc.Shift.DurationHours(), snap.Member.Name, total, e.cfg.DailyHoursHardLimit))
	}
	if total > e.cfg.DailyHoursWarning {
		return Warning(ConstraintDailyHoursWarning,
			fmt.Sprintf("%s 当日工时将达 %.1f 小时，超过 %.0f 小时的建议值，可能产生加班费",
				snap.Member.Name, total, e.cfg.DailyHoursWarning))
	}
	return Success()
}

// 7. 周工时（软/硬）
// 统计口径: 班次开始时刻落在门店当地 ISO 周（周一零点起、半开区间）
// 内的全部活跃排班，引擎与预览共用同一定义。
func (e *Engine) checkWeeklyHours(snap WorkerSnapshot, sc ShiftContext, excludeAssignmentId string) ConstraintResult {
	shiftDay := sc.LocalDate(sc.Shift.StartUtc)
	weekStart := shiftDay.AddDate(0, 0, -mondayWeekday(shiftDay.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 7)

	current := 0.0
	for _, a := range otherActive(snap, sc, excludeAssignmentId) {
		startLocal := a.Shift.StartUtc.In(sc.Loc)
		if !startLocal.Before(weekStart) && startLocal.Before(weekEnd) {
			current += a.Shift.DurationHours()
		}
	}
	projected := current + sc.Shift.DurationHours()

	if projected >= e.cfg.WeeklyHoursHardLimit {
		return Block(ConstraintWeeklyHoursExceeded,
			fmt.Sprintf("%s 本周已排班 %.1f 小时，新增该 %.1f 小时班次后将达 %.1f 小时，超过 %.0f 小时的周上限",
				snap.Member.Name, current, sc.Shift.DurationHours(), projected, e.cfg.WeeklyHoursHardLimit))
	}
	if projected >= e.cfg.WeeklyHoursWarning {
		return Warning(ConstraintWeeklyHoursWarning,
			fmt.Sprintf("%s 本周工时将达 %.1f 小时（已排 %.1f + 新增 %.1f），正在逼近 %.0f 小时的加班线",
				snap.Member.Name, projected, current, sc.Shift.DurationHours(), e.cfg.WeeklyHoursHardLimit))
	}
	return Success()
}

// 8. 连续工作天数（软/豁免）
// 当天只要有任意排班即记作一个工作日，与时长无关；第 6 天告警，
// 第 7 天必须由主管附理由豁免。
func (e *Engine) checkConsecutiveDays(snap WorkerSnapshot, sc ShiftContext, excludeAssignmentId string) ConstraintResult {
	active := otherActive(snap, sc, excludeAssignmentId)
	workedDays := make(map[time.Time]bool, len(active))
	for _, a := range active {
		workedDays[sc.LocalDate(a.Shift.StartUtc)] = true
	}

	shiftDay := sc.LocalDate(sc.Shift.StartUtc)
	consecutiveBefore := 0
	for i := 1; i <= e.cfg.ConsecutiveDaysOverride; i++ {
		if !workedDays[shiftDay.AddDate(0, 0, -i)] {
			break
		}
		consecutiveBefore++
	}

	total := consecutiveBefore + 1
	if total >= e.cfg.ConsecutiveDaysOverride {
		return OverrideRequired(ConstraintConsecutiveDays7,
			fmt.Sprintf("%s 已连续工作 %d 天，该班次将是第 %d 个连续工作日，必须由主管附理由豁免",
				snap.Member.Name, consecutiveBefore, total))
	}
	if total >= e.cfg.ConsecutiveDaysWarning {
		return Warning(ConstraintConsecutiveDays6,
			fmt.Sprintf("%s 已连续工作 %d 天，该班次将是第 %d 个连续工作日，再排一天就需要主管豁免",
				snap.Member.Name, consecutiveBefore, total))
	}
	return Success()
}
