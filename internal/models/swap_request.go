package models

import "time"

type SwapType string

const (
	// SwapTypeSwap 指定同事接班
	SwapTypeSwap SwapType = "swap"
	// SwapTypeDrop 放班，任何具备资格的同事均可认领
	SwapTypeDrop SwapType = "drop"
)

type SwapStatus string

const (
	// SwapStatusPendingAcceptance swap: 等待被指定同事响应
	SwapStatusPendingAcceptance SwapStatus = "pending_acceptance"
	// SwapStatusPendingPickup drop: 等待任意具备资格的同事认领
	SwapStatusPendingPickup SwapStatus = "pending_pickup"
	// SwapStatusPendingManager 对方已接受/认领，等待主管审批
	SwapStatusPendingManager SwapStatus = "pending_manager"
	SwapStatusApproved       SwapStatus = "approved"
	SwapStatusRejected       SwapStatus = "rejected"
	SwapStatusCancelled      SwapStatus = "cancelled"
	SwapStatusExpired        SwapStatus = "expired"
)

// PendingSwapStatuses 未决状态集合，用于统计员工的未决请求数
var PendingSwapStatuses = []SwapStatus{
	SwapStatusPendingAcceptance,
	SwapStatusPendingPickup,
	SwapStatusPendingManager,
}

// SwapRequest 换班/放班请求表
//
// swap 状态机: pending_acceptance → pending_manager → approved/rejected/cancelled/expired
// （被指定同事拒绝时从 pending_acceptance 直接进入 rejected）
// drop 状态机: pending_pickup → pending_manager → approved/rejected/cancelled/expired
//
// 请求在主管裁决前归发起人所有（可随时取消）；drop 类型带过期时刻，
// 由定时清理任务统一处理。
type SwapRequest struct {
	ID          string     `gorm:"column:id;primary_key;type:varchar(50)" json:"id"`
	RequestType SwapType   `gorm:"column:request_type;type:varchar(5)" json:"requestType"`
	Status      SwapStatus `gorm:"column:status;type:varchar(20);index;index:idx_swap_requester_status" json:"status"`

	// 发起人
	RequesterId string `gorm:"column:requester_id;type:varchar(50);index:idx_swap_requester_status" json:"requesterId"`
	// swap 的指定接班人; drop 为空
	TargetId string `gorm:"column:target_id;type:varchar(50)" json:"targetId"`
	// drop 的实际认领人
	ClaimedById string `gorm:"column:claimed_by_id;type:varchar(50)" json:"claimedById"`

	AssignmentId string `gorm:"column:assignment_id;type:varchar(50);index" json:"assignmentId"`

	RequesterNote string `gorm:"column:requester_note;type:varchar(255)" json:"requesterNote"`
	ManagerNote   string `gorm:"column:manager_note;type:varchar(255)" json:"managerNote"`
	ReviewedBy    string `gorm:"column:reviewed_by;type:varchar(50)" json:"reviewedBy"`

	TargetAcceptedAt  *time.Time `gorm:"column:target_accepted_at" json:"targetAcceptedAt"`
	ManagerReviewedAt *time.Time `gorm:"column:manager_reviewed_at" json:"managerReviewedAt"`
	// drop 专用: 班次开始前 DropRequestExpiryHours 小时，无人认领则过期
	ExpiresAt *time.Time `gorm:"column:expires_at;index" json:"expiresAt"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (SwapRequest) TableName() string {
	return "ss_swap_requests"
}

// IsPending 请求是否仍处于未决状态
func (r SwapRequest) IsPending() bool {
	switch r.Status {
	case SwapStatusPendingAcceptance, SwapStatusPendingPickup, SwapStatusPendingManager:
		return true
	}
	return false
}
