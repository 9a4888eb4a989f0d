package constraint

import (
	"fmt"
	"time"

	"shiftSync/internal/models"
)

var weekdayNames = []string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// mondayWeekday 把 time.Weekday 转为 0=周一..6=周日 的约定
// （可用时段条目按该约定存储 DayOfWeek）。
func mondayWeekday(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// ResolveAvailability 判定员工的可用时段是否完整覆盖候选班次
//
// 算法: 取班次 UTC 开始时刻在门店时区下的日历日期与星期；优先查该
// 日期的 one_off 条目，存在则完全覆盖 weekly 数据——空时段的 one_off
// 表示当日整天不可用，否则其起止钟面（按条目自身存储的时区解释，而
// 非门店时区）换算到 UTC 后必须完整包含班次区间。无 one_off 时回退
// 到该星期的 weekly 条目，规则相同；该星期连 weekly 条目都没有本身
// 就是失败（"未配置可用时段"），与显式的不可用日分别报不同的规则ID，
// 便于运营定位。所有比较都在换算到 UTC 之后进行。
func ResolveAvailability(snap WorkerSnapshot, sc ShiftContext) ConstraintResult {
	startLocal := sc.Shift.StartUtc.In(sc.Loc)
	shiftDate := startLocal.Format("2006-01-02")
	weekday := mondayWeekday(startLocal.Weekday())

	// one_off 条目优先
	for _, entry := range snap.Availability {
		if entry.Recurrence != models.RecurrenceOneOff || entry.SpecificDate != shiftDate {
			continue
		}
		if entry.IsUnavailableDay() {
			reason := fmt.Sprintf("%s 已将 %s 标记为不可用", snap.Member.Name, shiftDate)
			if entry.Notes != "" {
				reason += fmt.Sprintf("（备注: %s）", entry.Notes)
			}
			return Block(ConstraintAvailabilityOneOffUnavail, reason)
		}
		return checkWindowCovers(snap.Member, entry, sc, startLocal, "一次性可用时段")
	}

	// 回退到 weekly 条目
	for _, entry := range snap.Availability {
		if entry.Recurrence != models.RecurrenceWeekly || entry.DayOfWeek == nil || *entry.DayOfWeek != weekday {
			continue
		}
		if entry.IsUnavailableDay() {
			return Block(ConstraintAvailabilityWeeklyUnavail,
				fmt.Sprintf("%s 在每个%s均标记为不可用", snap.Member.Name, weekdayNames[weekday]))
		}
		return checkWindowCovers(snap.Member, entry, sc, startLocal, "每周可用时段")
	}

	return Block(ConstraintAvailabilityNoWindow,
		fmt.Sprintf("%s 未配置%s的可用时段，请先让其更新个人可用时间", snap.Member.Name, weekdayNames[weekday]))
}

// checkWindowCovers 校验单个可用时段是否完整覆盖班次区间
//
// 时段钟面按其自身存储的时区解释，落在班次的门店当地日期上，
// 换算为 UTC 后再比较，绝不跨时区比较裸钟面值。
func checkWindowCovers(
	member models.Member,
	entry models.StaffAvailability,
	sc ShiftContext,
	startLocal time.Time,
	windowType string,
) ConstraintResult {
	availLoc, err := time.LoadLocation(entry.Timezone)
	if err != nil {
		return Block(ConstraintAvailabilityWindowMismatch,
			fmt.Sprintf("%s 的可用时段携带无效时区 %q，无法判定覆盖关系", member.Name, entry.Timezone))
	}

	startClock, err1 := time.Parse("15:04", entry.StartTime)
	endClock, err2 := time.Parse("15:04", entry.EndTime)
	if err1 != nil || err2 != nil {
		return Block(ConstraintAvailabilityWindowMismatch,
			fmt.Sprintf("%s 的可用时段起止时间格式非法 (%q-%q)", member.Name, entry.StartTime, entry.EndTime))
	}

	y, m, d := startLocal.Date()
	availStart := time.Date(y, m, d, startClock.Hour(), startClock.Minute(), 0, 0, availLoc).UTC()
	availEnd := time.Date(y, m, d, endClock.Hour(), endClock.Minute(), 0, 0, availLoc).UTC()

	if !availStart.After(sc.Shift.StartUtc) && !availEnd.Before(sc.Shift.EndUtc) {
		return Success()
	}

	return Block(ConstraintAvailabilityWindowMismatch,
		fmt.Sprintf("%s 的%s (%s–%s %s) 无法覆盖该班次 (%s–%s UTC)",
			member.Name, windowType,
			entry.StartTime, entry.EndTime, entry.Timezone,
			sc.Shift.StartUtc.Format("15:04"), sc.Shift.EndUtc.Format("15:04")))
}
