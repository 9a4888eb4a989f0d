package types

import (
	"shiftSync/constraint"
	"shiftSync/internal/models"
)

type RequestAssignmentCreate struct {
	ShiftId  string `json:"shiftId" binding:"required"`
	MemberId string `json:"memberId" binding:"required"`
	// 操作人（经理）
	ActorId string `json:"actorId" binding:"required"`
	// 触发 override_required 时必填的豁免理由
	OverrideReason string `json:"overrideReason"`
}

type RequestAssignmentPreview struct {
	ShiftId  string `json:"shiftId" form:"shiftId" binding:"required"`
	MemberId string `json:"memberId" form:"memberId" binding:"required"`
}

type RequestAssignmentQuery struct {
	MemberId string `json:"memberId" form:"memberId" binding:"required"`
}

// ResponseAssignmentCreate 排班结果
// Result 携带告警信息；被约束阻断时走错误通道，不会返回该结构。
type ResponseAssignmentCreate struct {
	Assignment models.ShiftAssignment      `json:"assignment"`
	Result     constraint.ConstraintResult `json:"result"`
}

// ResponseAssignmentPreview what-if 预览，返回全部非通过结论
type ResponseAssignmentPreview struct {
	Results   []constraint.ConstraintResult `json:"results"`
	CanAssign bool                          `json:"canAssign"`
}
