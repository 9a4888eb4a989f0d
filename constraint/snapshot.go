package constraint

import (
	"time"

	"shiftSync/internal/models"
)

// ActiveAssignment 员工的一条活跃排班及其班次信息
// LocationName 仅用于拼装可读文案，避免检查函数回查存储。
type ActiveAssignment struct {
	Assignment   models.ShiftAssignment
	Shift        models.Shift
	LocationName string
}

// WorkerSnapshot 员工的只读快照
//
// 约束管线是 (快照, 候选班次) 的纯函数：快照由服务层在持有该员工
// 排他锁的前提下一次性装载，检查过程不再访问存储，保证同一次评估
// 读到的是一致视图。
type WorkerSnapshot struct {
	Member models.Member
	// 该员工在各门店的认证，key 为门店ID；从未认证的门店无条目
	Certifications map[string]models.LocationCertification
	// 可用时段条目（weekly + one_off 全量）
	Availability []models.StaffAvailability
	// 活跃排班（assigned / swap_pending）
	Active []ActiveAssignment
}

// ShiftContext 候选班次及其环境
type ShiftContext struct {
	Shift models.Shift
	// 班次所在门店
	Location models.Location
	// 门店时区，由调用方加载
	Loc *time.Location
	// 所需技能的展示名，仅用于文案
	SkillName string
}

// LocalDate 返回时刻 t 在门店时区下的日历日期（当日零点）
func (sc ShiftContext) LocalDate(t time.Time) time.Time {
	local := t.In(sc.Loc)
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, sc.Loc)
}
