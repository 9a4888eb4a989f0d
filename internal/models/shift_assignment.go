package models

import "time"

type AssignmentStatus string

const (
	// AssignmentStatusAssigned 正常在班
	AssignmentStatusAssigned AssignmentStatus = "assigned"
	// AssignmentStatusSwapPending 员工已发起换班/放班，等待流转
	AssignmentStatusSwapPending AssignmentStatus = "swap_pending"
	// AssignmentStatusCovered 换班获批，该员工已被顶替
	AssignmentStatusCovered AssignmentStatus = "covered"
	// AssignmentStatusDropped 放班获批，班次重新开放
	AssignmentStatusDropped AssignmentStatus = "dropped"
)

// ActiveAssignmentStatuses 占用员工时间的状态集合
// 约束引擎统计重叠、休息间隔和工时时只看这两种状态。
var ActiveAssignmentStatuses = []AssignmentStatus{
	AssignmentStatusAssigned,
	AssignmentStatusSwapPending,
}

// ShiftAssignment 排班记录表
//
// 状态机:
//
//	assigned → swap_pending (发起换班/放班)
//	swap_pending → assigned (换班被取消/拒绝/过期)
//	swap_pending → covered  (换班获批, 本人下班)
//	swap_pending → dropped  (放班获批, 班次转给认领人)
//
// 记录只增不删，历史保留用于审计和工资核算。
// 不变式: 同一 (shift, member) 最多只允许一条活跃状态的记录。
type ShiftAssignment struct {
	ID       string           `gorm:"column:id;primary_key;type:varchar(50)" json:"id"`
	ShiftId  string           `gorm:"column:shift_id;type:varchar(50);index:idx_assignment_shift_member" json:"shiftId"`
	MemberId string           `gorm:"column:member_id;type:varchar(50);index:idx_assignment_shift_member;index:idx_assignment_member_status" json:"memberId"`
	Status   AssignmentStatus `gorm:"column:status;type:varchar(15);default:assigned;index:idx_assignment_member_status" json:"status"`

	AssignedBy string    `gorm:"column:assigned_by;type:varchar(50)" json:"assignedBy"`
	AssignedAt time.Time `gorm:"column:assigned_at" json:"assignedAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (ShiftAssignment) TableName() string {
	return "ss_shift_assignments"
}

// IsActive 该记录是否仍占用员工时间
func (a ShiftAssignment) IsActive() bool {
	return a.Status == AssignmentStatusAssigned || a.Status == AssignmentStatusSwapPending
}
