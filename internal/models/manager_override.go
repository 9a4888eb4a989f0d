package models

import "time"

// ManagerOverride 主管豁免台账
//
// 记录主管有据绕过硬性规则的事实（当前只有第 7 个连续工作日规则）。
// 只写不改不删；唯一合法的写入方是 AssignmentService 和 SwapService
// 的审批路径，且必须附带非空理由。
type ManagerOverride struct {
	ID           string `gorm:"column:id;primary_key;type:varchar(50)" json:"id"`
	ManagerId    string `gorm:"column:manager_id;type:varchar(50);index" json:"managerId"`
	AssignmentId string `gorm:"column:assignment_id;type:varchar(50);index" json:"assignmentId"`
	// 被豁免的规则ID, 如 consecutive_days_7
	ConstraintViolated string `gorm:"column:constraint_violated;type:varchar(100)" json:"constraintViolated"`
	Reason             string `gorm:"column:reason;type:varchar(500);not null" json:"reason"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (ManagerOverride) TableName() string {
	return "ss_manager_overrides"
}
