package types

import (
	"shiftSync/constraint"
	"shiftSync/internal/models"
)

type RequestSwapCreate struct {
	AssignmentId string `json:"assignmentId" binding:"required"`
	RequesterId  string `json:"requesterId" binding:"required"`
	// swap / drop
	RequestType string `json:"requestType" binding:"required"`
	// swap 必填: 指定接班同事
	TargetId string `json:"targetId"`
	Note     string `json:"note"`
}

// RequestSwapRespond 被指定同事对 swap 请求的响应
type RequestSwapRespond struct {
	ID      string `json:"id" binding:"required"`
	ActorId string `json:"actorId" binding:"required"`
	Accept  bool   `json:"accept"`
}

// RequestSwapClaim 认领他人放出的班次
type RequestSwapClaim struct {
	ID      string `json:"id" binding:"required"`
	ActorId string `json:"actorId" binding:"required"`
}

// RequestSwapReview 主管终审
type RequestSwapReview struct {
	ID        string `json:"id" binding:"required"`
	ManagerId string `json:"managerId" binding:"required"`
	Approve   bool   `json:"approve"`
	Note      string `json:"note"`
	// 审批触发 override_required 时必填的豁免理由
	OverrideReason string `json:"overrideReason"`
}

type RequestSwapCancel struct {
	ID      string `json:"id" binding:"required"`
	ActorId string `json:"actorId" binding:"required"`
}

type RequestSwapQuery struct {
	MemberId string `json:"memberId" form:"memberId" binding:"required"`
}

// ResponseSwapReview 审批通过的结果
// Result 携带针对接班人的约束结论（可能是告警），主管界面原样展示。
type ResponseSwapReview struct {
	Request       models.SwapRequest          `json:"request"`
	NewAssignment models.ShiftAssignment      `json:"newAssignment"`
	Result        constraint.ConstraintResult `json:"result"`
}
