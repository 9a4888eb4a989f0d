package services

import (
	"fmt"

	"shiftSync/constraint"
	"shiftSync/internal/ctx"
	"shiftSync/internal/global"
	"shiftSync/internal/models"
	"shiftSync/pkg/tools"
)

// workerLock 按员工ID串行化排班写路径
// AssignmentService 与 SwapService 审批共用同一把锁：两条路径写的是
// 同一个员工的时间账本，必须在同一序列里评估与落库。
var workerLock = tools.NewKeyLock()

// schedulingConfig 把进程配置映射为约束引擎配置
func schedulingConfig() constraint.Config {
	s := global.Config.Scheduling
	return constraint.Config{
		MinRestHours:            s.MinRestHours,
		DailyHoursWarning:       s.DailyHoursWarning,
		DailyHoursHardLimit:     s.DailyHoursHardLimit,
		WeeklyHoursWarning:      s.WeeklyHoursWarning,
		WeeklyHoursHardLimit:    s.WeeklyHoursHardLimit,
		ConsecutiveDaysWarning:  s.ConsecutiveDaysWarning,
		ConsecutiveDaysOverride: s.ConsecutiveDaysOverride,
	}
}

// newEngine 构造约束引擎并注入替代人选查询
func newEngine(c *ctx.Context) *constraint.Engine {
	return constraint.NewEngine(schedulingConfig(), suggestAlternatives(c))
}

// suggestAlternatives 替代人选的快速近似查询
// 只查技能与有效门店认证两个硬条件，不逐人跑完整约束管线；
// 主管选定人选后走正常排班路径做完整校验。
func suggestAlternatives(c *ctx.Context) constraint.SuggestionFn {
	return func(sc constraint.ShiftContext) []constraint.Suggestion {
		members, err := c.DB.Member().ListActiveStaffWithSkill(sc.Shift.RequiredSkillId)
		if err != nil {
			return nil
		}
		certified, err := c.DB.Certification().ActiveMemberIds(sc.Shift.LocationId)
		if err != nil {
			return nil
		}
		certSet := make(map[string]bool, len(certified))
		for _, id := range certified {
			certSet[id] = true
		}

		var out []constraint.Suggestion
		for _, m := range members {
			if !certSet[m.ID] {
				continue
			}
			out = append(out, constraint.Suggestion{
				MemberId: m.ID,
				Name:     m.Name,
				Reason:   fmt.Sprintf("具备 %s 技能且持有 %s 的有效认证", sc.SkillName, sc.Location.Name),
			})
		}
		return out
	}
}

// loadShiftContext 装载候选班次的门店、时区与技能展示名
func loadShiftContext(c *ctx.Context, shift models.Shift) (constraint.ShiftContext, error) {
	location, err := c.DB.Location().Get(shift.LocationId)
	if err != nil {
		return constraint.ShiftContext{}, fmt.Errorf("门店 %s 不存在: %s", shift.LocationId, err.Error())
	}
	loc, err := location.LoadLocation()
	if err != nil {
		return constraint.ShiftContext{}, fmt.Errorf("门店 %s 的时区 %q 无效: %s", location.Name, location.Timezone, err.Error())
	}

	skillName := shift.RequiredSkillId
	if skill, err := c.DB.Member().GetSkill(shift.RequiredSkillId); err == nil {
		skillName = skill.Name
	}

	return constraint.ShiftContext{
		Shift:     shift,
		Location:  location,
		Loc:       loc,
		SkillName: skillName,
	}, nil
}

// loadWorkerSnapshot 在持有该员工排他锁的前提下装载只读快照
// 快照覆盖约束管线需要的全部事实：画像、认证、可用时段、活跃排班。
func loadWorkerSnapshot(c *ctx.Context, memberId string) (constraint.WorkerSnapshot, error) {
	member, err := c.DB.Member().Get(memberId)
	if err != nil {
		return constraint.WorkerSnapshot{}, fmt.Errorf("员工 %s 不存在: %s", memberId, err.Error())
	}

	certs, err := c.DB.Certification().ListByMember(memberId)
	if err != nil {
		return constraint.WorkerSnapshot{}, err
	}
	certMap := make(map[string]models.LocationCertification, len(certs))
	for _, cert := range certs {
		// 同一门店存在多条历史记录时，有效记录优先
		if exist, ok := certMap[cert.LocationId]; ok && exist.GetActive() {
			continue
		}
		certMap[cert.LocationId] = cert
	}

	availability, err := c.DB.Availability().ListByMember(memberId)
	if err != nil {
		return constraint.WorkerSnapshot{}, err
	}

	assignments, err := c.DB.Assignment().ListActiveByMember(memberId)
	if err != nil {
		return constraint.WorkerSnapshot{}, err
	}
	shiftIds := make([]string, 0, len(assignments))
	for _, a := range assignments {
		shiftIds = append(shiftIds, a.ShiftId)
	}
	shifts, err := c.DB.Shift().GetByIds(shiftIds)
	if err != nil {
		return constraint.WorkerSnapshot{}, err
	}

	locations, err := c.DB.Location().List()
	if err != nil {
		return constraint.WorkerSnapshot{}, err
	}
	locationNames := make(map[string]string, len(locations))
	for _, l := range locations {
		locationNames[l.ID] = l.Name
	}

	active := make([]constraint.ActiveAssignment, 0, len(assignments))
	for _, a := range assignments {
		shift, ok := shifts[a.ShiftId]
		if !ok {
			continue
		}
		active = append(active, constraint.ActiveAssignment{
			Assignment:   a,
			Shift:        shift,
			LocationName: locationNames[shift.LocationId],
		})
	}

	return constraint.WorkerSnapshot{
		Member:         member,
		Certifications: certMap,
		Availability:   availability,
		Active:         active,
	}, nil
}
