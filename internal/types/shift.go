package types

import "shiftSync/internal/models"

type RequestShiftCreate struct {
	LocationId      string `json:"locationId" binding:"required"`
	RequiredSkillId string `json:"requiredSkillId" binding:"required"`
	HeadcountNeeded int    `json:"headcountNeeded"`
	// RFC3339 格式的 UTC 时刻
	StartUtc string `json:"startUtc" binding:"required"`
	EndUtc   string `json:"endUtc" binding:"required"`
	// 为 0 时取配置默认值
	EditCutoffHours int    `json:"editCutoffHours"`
	Notes           string `json:"notes"`
	CreatedBy       string `json:"createdBy"`
}

type RequestShiftQuery struct {
	LocationId string `json:"locationId" form:"locationId"`
	// RFC3339，可为空表示不限
	From string `json:"from" form:"from"`
	To   string `json:"to" form:"to"`
}

type RequestShiftPublish struct {
	ID      string `json:"id" binding:"required"`
	ActorId string `json:"actorId" binding:"required"`
	// true 发布 false 取消发布
	Publish bool `json:"publish"`
}

// RequestShiftPublishWeek 整周批量发布
type RequestShiftPublishWeek struct {
	LocationId string `json:"locationId" binding:"required"`
	// 周一日期，格式 2006-01-02，按门店当地时区解释
	WeekStart string `json:"weekStart" binding:"required"`
	ActorId   string `json:"actorId" binding:"required"`
}

type RequestShiftDelete struct {
	ID      string `json:"id" form:"id" binding:"required"`
	ActorId string `json:"actorId" form:"actorId"`
}

// ResponseShiftStaffing 班次的人员配置情况
type ResponseShiftStaffing struct {
	Shift         models.Shift `json:"shift"`
	AssignedCount int64        `json:"assignedCount"`
	FullyStaffed  bool         `json:"fullyStaffed"`
	// 门店当地时间的展示字段
	LocalStart  string `json:"localStart"`
	LocalEnd    string `json:"localEnd"`
	IsOvernight bool   `json:"isOvernight"`
	IsPremium   bool   `json:"isPremium"`
}
