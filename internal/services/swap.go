package services

import (
	"fmt"
	"time"

	"shiftSync/constraint"
	"shiftSync/internal/ctx"
	"shiftSync/internal/global"
	"shiftSync/internal/models"
	"shiftSync/internal/types"
	"shiftSync/pkg/idutil"
	"shiftSync/pkg/sender"

	"github.com/zeromicro/go-zero/core/logc"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type swapService struct {
	ctx *ctx.Context
}

type InterSwapService interface {
	Create(req interface{}) (interface{}, interface{})
	Respond(req interface{}) (interface{}, interface{})
	Claim(req interface{}) (interface{}, interface{})
	Review(req interface{}) (interface{}, interface{})
	Cancel(req interface{}) (interface{}, interface{})
	List(req interface{}) (interface{}, interface{})

	// ExpireDropRequests 清理已过期仍无人认领的放班请求
	ExpireDropRequests(now time.Time) error
	// ExpireStaleSwaps 清理超时未获响应的换班请求
	ExpireStaleSwaps(now time.Time) error
}

func newInterSwapService(ctx *ctx.Context) InterSwapService {
	return &swapService{
		ctx: ctx,
	}
}

// Create 员工发起换班(swap)或放班(drop)请求
//
// 发起即把排班记录置为 swap_pending，员工在裁决前仍须照常上班。
// 请求与排班状态迁移在同一事务内完成，状态前置条件写进 WHERE 子句。
func (ss swapService) Create(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestSwapCreate)
	now := time.Now().UTC()

	assignment, err := ss.ctx.DB.Assignment().Get(r.AssignmentId)
	if err != nil {
		return nil, fmt.Errorf("排班记录 %s 不存在: %s", r.AssignmentId, err.Error())
	}
	if assignment.MemberId != r.RequesterId {
		return nil, invalidState("发起请求", "只能对自己的排班发起换班")
	}
	if assignment.Status != models.AssignmentStatusAssigned {
		return nil, invalidState("发起请求", "排班当前状态为 %s, 不能发起换班", assignment.Status)
	}

	shift, err := ss.ctx.DB.Shift().Get(assignment.ShiftId)
	if err != nil {
		return nil, fmt.Errorf("班次 %s 不存在: %s", assignment.ShiftId, err.Error())
	}
	if !shift.StartUtc.After(now) {
		return nil, invalidState("发起请求", "班次已开始, 不能再换班")
	}

	pending, err := ss.ctx.DB.Swap().CountPendingByRequester(r.RequesterId)
	if err != nil {
		return nil, err
	}
	limit := int64(global.Config.Scheduling.MaxPendingSwapRequests)
	if pending >= limit {
		return nil, invalidState("发起请求", "未决请求数已达上限 %d, 请先处理存量请求", limit)
	}

	request := models.SwapRequest{
		ID:            idutil.SwapId(),
		RequestType:   models.SwapType(r.RequestType),
		RequesterId:   r.RequesterId,
		AssignmentId:  r.AssignmentId,
		RequesterNote: r.Note,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	switch request.RequestType {
	case models.SwapTypeSwap:
		if r.TargetId == "" {
			return nil, invalidState("发起请求", "换班请求必须指定接班同事")
		}
		if r.TargetId == r.RequesterId {
			return nil, invalidState("发起请求", "不能指定自己接班")
		}
		target, err := ss.ctx.DB.Member().Get(r.TargetId)
		if err != nil {
			return nil, fmt.Errorf("接班同事 %s 不存在: %s", r.TargetId, err.Error())
		}
		if !target.GetActive() {
			return nil, invalidState("发起请求", "接班同事 %s 已离职", target.Name)
		}
		// 与认领相同的资格快筛: 技能 + 有效门店认证, 完整约束校验留到审批
		if !target.HasSkill(shift.RequiredSkillId) {
			return nil, invalidState("发起请求", "%s 不具备该班次要求的技能", target.Name)
		}
		certified, err := ss.ctx.DB.Certification().HasActive(r.TargetId, shift.LocationId)
		if err != nil {
			return nil, err
		}
		if !certified {
			return nil, invalidState("发起请求", "%s 不具备该门店的有效认证", target.Name)
		}
		onShift, err := ss.ctx.DB.Assignment().HasActiveForShift(shift.ID, r.TargetId)
		if err != nil {
			return nil, err
		}
		if onShift {
			return nil, invalidState("发起请求", "%s 已在该班次上", target.Name)
		}
		request.TargetId = r.TargetId
		request.Status = models.SwapStatusPendingAcceptance

	case models.SwapTypeDrop:
		expiresAt := shift.StartUtc.Add(-time.Duration(global.Config.Scheduling.DropRequestExpiryHours) * time.Hour)
		if !expiresAt.After(now) {
			return nil, invalidState("发起请求", "距开班不足 %d 小时, 放班请求将立即过期",
				global.Config.Scheduling.DropRequestExpiryHours)
		}
		request.ExpiresAt = &expiresAt
		request.Status = models.SwapStatusPendingPickup

	default:
		return nil, invalidState("发起请求", "未知的请求类型 %q", r.RequestType)
	}

	err = ss.ctx.DB.Cli().Tx(func(tx *gorm.DB) error {
		result := tx.Model(models.ShiftAssignment{}).
			Where("id = ? AND status = ?", assignment.ID, models.AssignmentStatusAssigned).
			Updates(map[string]interface{}{
				"status":     models.AssignmentStatusSwapPending,
				"updated_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return invalidState("发起请求", "排班状态已变化, 请刷新后重试")
		}
		return tx.Create(&request).Error
	})
	if err != nil {
		return nil, err
	}

	sender.Publish(ss.ctx.Ctx, sender.EventParams{
		EventType: "swap.requested",
		ActorId:   r.RequesterId,
		Payload: map[string]interface{}{
			"requestId":   request.ID,
			"requestType": string(request.RequestType),
			"shiftId":     shift.ID,
			"targetId":    request.TargetId,
		},
	})

	return request, nil
}

// Respond 被指定同事对换班请求表态
// 接受后进入主管审批；拒绝则请求终结，发起人的排班恢复原状。
func (ss swapService) Respond(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestSwapRespond)
	now := time.Now().UTC()

	request, err := ss.ctx.DB.Swap().Get(r.ID)
	if err != nil {
		return nil, fmt.Errorf("请求 %s 不存在: %s", r.ID, err.Error())
	}
	if request.RequestType != models.SwapTypeSwap {
		return nil, invalidState("响应请求", "放班请求走认领流程, 不走指定响应")
	}
	if request.TargetId != r.ActorId {
		return nil, invalidState("响应请求", "只有被指定的同事可以响应该请求")
	}

	if r.Accept {
		assignment, err := ss.ctx.DB.Assignment().Get(request.AssignmentId)
		if err != nil {
			return nil, err
		}
		onShift, err := ss.ctx.DB.Assignment().HasActiveForShift(assignment.ShiftId, r.ActorId)
		if err != nil {
			return nil, err
		}
		if onShift {
			return nil, invalidState("响应请求", "你已在该班次上, 不能再接班")
		}

		ok, err := ss.ctx.DB.Swap().UpdateIf(r.ID, models.SwapStatusPendingAcceptance, map[string]interface{}{
			"status":             models.SwapStatusPendingManager,
			"target_accepted_at": now,
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, invalidState("响应请求", "请求当前状态为 %s, 已不能接受", request.Status)
		}

		sender.Publish(ss.ctx.Ctx, sender.EventParams{
			EventType: "swap.accepted",
			ActorId:   r.ActorId,
			Payload:   map[string]interface{}{"requestId": request.ID},
		})
		return nil, nil
	}

	err = ss.ctx.DB.Cli().Tx(func(tx *gorm.DB) error {
		result := tx.Model(models.SwapRequest{}).
			Where("id = ? AND status = ?", r.ID, models.SwapStatusPendingAcceptance).
			Updates(map[string]interface{}{
				"status":     models.SwapStatusRejected,
				"updated_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return invalidState("响应请求", "请求当前状态为 %s, 已不能拒绝", request.Status)
		}
		return restoreAssignment(tx, request.AssignmentId, now)
	})
	if err != nil {
		return nil, err
	}

	sender.Publish(ss.ctx.Ctx, sender.EventParams{
		EventType: "swap.declined",
		ActorId:   r.ActorId,
		Payload:   map[string]interface{}{"requestId": request.ID},
	})
	return nil, nil
}

// Claim 认领他人放出的班次
// 认领前做资格快筛（技能 + 有效认证），完整约束校验留到主管审批时做。
func (ss swapService) Claim(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestSwapClaim)
	now := time.Now().UTC()

	request, err := ss.ctx.DB.Swap().Get(r.ID)
	if err != nil {
		return nil, fmt.Errorf("请求 %s 不存在: %s", r.ID, err.Error())
	}
	if request.RequestType != models.SwapTypeDrop {
		return nil, invalidState("认领班次", "只有放班请求可以认领")
	}
	if request.RequesterId == r.ActorId {
		return nil, invalidState("认领班次", "不能认领自己放出的班次")
	}
	if request.ExpiresAt != nil && !request.ExpiresAt.After(now) {
		return nil, invalidState("认领班次", "该放班请求已过期")
	}

	assignment, err := ss.ctx.DB.Assignment().Get(request.AssignmentId)
	if err != nil {
		return nil, err
	}
	shift, err := ss.ctx.DB.Shift().Get(assignment.ShiftId)
	if err != nil {
		return nil, err
	}

	claimer, err := ss.ctx.DB.Member().Get(r.ActorId)
	if err != nil {
		return nil, fmt.Errorf("员工 %s 不存在: %s", r.ActorId, err.Error())
	}
	if !claimer.GetActive() {
		return nil, invalidState("认领班次", "员工 %s 已离职", claimer.Name)
	}
	onShift, err := ss.ctx.DB.Assignment().HasActiveForShift(shift.ID, r.ActorId)
	if err != nil {
		return nil, err
	}
	if onShift {
		return nil, invalidState("认领班次", "%s 已在该班次上", claimer.Name)
	}
	if !claimer.HasSkill(shift.RequiredSkillId) {
		return nil, invalidState("认领班次", "%s 不具备该班次要求的技能", claimer.Name)
	}
	certified, err := ss.ctx.DB.Certification().HasActive(r.ActorId, shift.LocationId)
	if err != nil {
		return nil, err
	}
	if !certified {
		return nil, invalidState("认领班次", "%s 不具备该门店的有效认证", claimer.Name)
	}

	ok, err := ss.ctx.DB.Swap().UpdateIf(r.ID, models.SwapStatusPendingPickup, map[string]interface{}{
		"status":             models.SwapStatusPendingManager,
		"claimed_by_id":      r.ActorId,
		"target_accepted_at": now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		// 两人同时认领时只有第一个写入成功
		return nil, invalidState("认领班次", "该班次已被他人认领")
	}

	sender.Publish(ss.ctx.Ctx, sender.EventParams{
		EventType: "swap.claimed",
		ActorId:   r.ActorId,
		Payload:   map[string]interface{}{"requestId": request.ID, "shiftId": shift.ID},
	})
	return nil, nil
}

// Review 主管终审
//
// 批准前对接班人重新跑完整约束管线：接受/认领到审批之间可能过了很久，
// 接班人的时间账本早已变化。block 直接驳回；override_required 需主管
// 附理由，豁免台账记在新排班上。告警不拦截，但结论原样返回给主管。
func (ss swapService) Review(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestSwapReview)
	now := time.Now().UTC()

	manager, err := ss.ctx.DB.Member().Get(r.ManagerId)
	if err != nil {
		return nil, fmt.Errorf("操作人 %s 不存在: %s", r.ManagerId, err.Error())
	}
	if !manager.IsManagerRole() {
		return nil, invalidState("审批", "只有管理角色可以审批, %s 的角色是 %s", manager.Name, manager.Role)
	}

	request, err := ss.ctx.DB.Swap().Get(r.ID)
	if err != nil {
		return nil, fmt.Errorf("请求 %s 不存在: %s", r.ID, err.Error())
	}
	if request.Status != models.SwapStatusPendingManager {
		return nil, invalidState("审批", "请求当前状态为 %s, 不在待审批队列", request.Status)
	}

	if !r.Approve {
		err = ss.ctx.DB.Cli().Tx(func(tx *gorm.DB) error {
			result := tx.Model(models.SwapRequest{}).
				Where("id = ? AND status = ?", r.ID, models.SwapStatusPendingManager).
				Updates(map[string]interface{}{
					"status":              models.SwapStatusRejected,
					"reviewed_by":         r.ManagerId,
					"manager_note":        r.Note,
					"manager_reviewed_at": now,
					"updated_at":          now,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return invalidState("审批", "请求状态已变化, 请刷新后重试")
			}
			return restoreAssignment(tx, request.AssignmentId, now)
		})
		if err != nil {
			return nil, err
		}

		sender.Publish(ss.ctx.Ctx, sender.EventParams{
			EventType: "swap.rejected",
			ActorId:   r.ManagerId,
			Payload:   map[string]interface{}{"requestId": request.ID},
		})
		return nil, nil
	}

	newWorkerId := request.TargetId
	oldStatus := models.AssignmentStatusCovered
	if request.RequestType == models.SwapTypeDrop {
		newWorkerId = request.ClaimedById
		oldStatus = models.AssignmentStatusDropped
	}
	if newWorkerId == "" {
		return nil, invalidState("审批", "请求缺少接班人, 数据异常")
	}

	oldAssignment, err := ss.ctx.DB.Assignment().Get(request.AssignmentId)
	if err != nil {
		return nil, err
	}
	shift, err := ss.ctx.DB.Shift().Get(oldAssignment.ShiftId)
	if err != nil {
		return nil, err
	}

	workerLock.Lock(newWorkerId)
	defer workerLock.Unlock(newWorkerId)

	// 接班人在该班次上已有活跃排班时不得批准, 否则同一 (shift, member)
	// 会出现第二条活跃记录
	dup, err := ss.ctx.DB.Assignment().HasActiveForShift(shift.ID, newWorkerId)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, invalidState("审批", "接班人已在该班次上")
	}

	sc, err := loadShiftContext(ss.ctx, shift)
	if err != nil {
		return nil, err
	}
	snap, err := loadWorkerSnapshot(ss.ctx, newWorkerId)
	if err != nil {
		return nil, err
	}

	result := newEngine(ss.ctx).Evaluate(snap, sc, "")
	switch result.Severity {
	case constraint.SeverityBlock:
		return nil, &ConstraintError{Result: result}
	case constraint.SeverityOverrideRequired:
		if r.OverrideReason == "" {
			return nil, &ConstraintError{Result: result}
		}
	}

	newAssignment := models.ShiftAssignment{
		ID:         idutil.AssignmentId(),
		ShiftId:    shift.ID,
		MemberId:   newWorkerId,
		Status:     models.AssignmentStatusAssigned,
		AssignedBy: r.ManagerId,
		AssignedAt: now,
		UpdatedAt:  now,
	}

	err = ss.ctx.DB.Cli().Tx(func(tx *gorm.DB) error {
		reqResult := tx.Model(models.SwapRequest{}).
			Where("id = ? AND status = ?", r.ID, models.SwapStatusPendingManager).
			Updates(map[string]interface{}{
				"status":              models.SwapStatusApproved,
				"reviewed_by":         r.ManagerId,
				"manager_note":        r.Note,
				"manager_reviewed_at": now,
				"updated_at":          now,
			})
		if reqResult.Error != nil {
			return reqResult.Error
		}
		if reqResult.RowsAffected == 0 {
			return invalidState("审批", "请求状态已变化, 请刷新后重试")
		}

		oldResult := tx.Model(models.ShiftAssignment{}).
			Where("id = ? AND status = ?", oldAssignment.ID, models.AssignmentStatusSwapPending).
			Updates(map[string]interface{}{
				"status":     oldStatus,
				"updated_at": now,
			})
		if oldResult.Error != nil {
			return oldResult.Error
		}
		if oldResult.RowsAffected == 0 {
			return invalidState("审批", "原排班状态已变化, 请刷新后重试")
		}

		if err := tx.Create(&newAssignment).Error; err != nil {
			return err
		}
		if result.Severity == constraint.SeverityOverrideRequired {
			override := models.ManagerOverride{
				ID:                 idutil.OverrideId(),
				ManagerId:          r.ManagerId,
				AssignmentId:       newAssignment.ID,
				ConstraintViolated: result.ConstraintId,
				Reason:             r.OverrideReason,
				CreatedAt:          now,
			}
			return tx.Create(&override).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	request.Status = models.SwapStatusApproved
	request.ReviewedBy = r.ManagerId
	request.ManagerNote = r.Note
	request.ManagerReviewedAt = &now

	sender.Publish(ss.ctx.Ctx, sender.EventParams{
		EventType: "swap.approved",
		ActorId:   r.ManagerId,
		Payload: map[string]interface{}{
			"requestId":       request.ID,
			"shiftId":         shift.ID,
			"newAssignmentId": newAssignment.ID,
			"newMemberId":     newWorkerId,
		},
	})

	return types.ResponseSwapReview{
		Request:       request,
		NewAssignment: newAssignment,
		Result:        result,
	}, nil
}

// Cancel 发起人在主管裁决前撤回请求
func (ss swapService) Cancel(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestSwapCancel)
	now := time.Now().UTC()

	request, err := ss.ctx.DB.Swap().Get(r.ID)
	if err != nil {
		return nil, fmt.Errorf("请求 %s 不存在: %s", r.ID, err.Error())
	}
	if request.RequesterId != r.ActorId {
		return nil, invalidState("撤回请求", "只有发起人可以撤回请求")
	}

	err = ss.ctx.DB.Cli().Tx(func(tx *gorm.DB) error {
		result := tx.Model(models.SwapRequest{}).
			Where("id = ? AND status IN ?", r.ID, models.PendingSwapStatuses).
			Updates(map[string]interface{}{
				"status":     models.SwapStatusCancelled,
				"updated_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return invalidState("撤回请求", "请求当前状态为 %s, 已不能撤回", request.Status)
		}
		return restoreAssignment(tx, request.AssignmentId, now)
	})
	if err != nil {
		return nil, err
	}

	sender.Publish(ss.ctx.Ctx, sender.EventParams{
		EventType: "swap.cancelled",
		ActorId:   r.ActorId,
		Payload:   map[string]interface{}{"requestId": request.ID},
	})
	return nil, nil
}

func (ss swapService) List(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestSwapQuery)
	list, err := ss.ctx.DB.Swap().ListByMember(r.MemberId)
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ExpireDropRequests 放班请求过期清理
//
// 每条请求独立事务: 请求置为 expired、发起人排班恢复为 assigned。
// 状态前置条件在 WHERE 子句里，清理任务重复触发或与人工操作赛跑
// 都不会重复落写。
func (ss swapService) ExpireDropRequests(now time.Time) error {
	expired, err := ss.ctx.DB.Swap().ListExpiredDrops(now)
	if err != nil {
		return fmt.Errorf("查询过期放班请求失败: %s", err.Error())
	}

	var eg errgroup.Group
	eg.SetLimit(4)
	for _, request := range expired {
		request := request
		eg.Go(func() error {
			return ss.expireOne(request, models.SwapStatusPendingPickup, now)
		})
	}
	return eg.Wait()
}

// ExpireStaleSwaps 换班请求超时清理
// 被指定同事超过时限未响应的请求同样过期，排班恢复原状。
func (ss swapService) ExpireStaleSwaps(now time.Time) error {
	cutoff := now.Add(-time.Duration(global.Config.Scheduling.SwapAcceptExpiryHours) * time.Hour)
	stale, err := ss.ctx.DB.Swap().ListStaleSwaps(cutoff)
	if err != nil {
		return fmt.Errorf("查询超时换班请求失败: %s", err.Error())
	}

	var eg errgroup.Group
	eg.SetLimit(4)
	for _, request := range stale {
		request := request
		eg.Go(func() error {
			return ss.expireOne(request, models.SwapStatusPendingAcceptance, now)
		})
	}
	return eg.Wait()
}

func (ss swapService) expireOne(request models.SwapRequest, from models.SwapStatus, now time.Time) error {
	expired := false
	err := ss.ctx.DB.Cli().Tx(func(tx *gorm.DB) error {
		result := tx.Model(models.SwapRequest{}).
			Where("id = ? AND status = ?", request.ID, from).
			Updates(map[string]interface{}{
				"status":     models.SwapStatusExpired,
				"updated_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// 已被人工处理，无事可做
			return nil
		}
		expired = true
		return restoreAssignment(tx, request.AssignmentId, now)
	})
	if err != nil {
		return fmt.Errorf("清理请求 %s 失败: %s", request.ID, err.Error())
	}
	if !expired {
		return nil
	}

	logc.Infof(ss.ctx.Ctx, "请求 %s 已过期, 排班 %s 恢复原状", request.ID, request.AssignmentId)
	sender.Publish(ss.ctx.Ctx, sender.EventParams{
		EventType: "swap.expired",
		Payload:   map[string]interface{}{"requestId": request.ID},
	})
	return nil
}

// restoreAssignment 请求终结时把发起人的排班从 swap_pending 恢复为 assigned
// 前置状态不匹配说明排班已被并发路径处理过，此处静默跳过。
func restoreAssignment(tx *gorm.DB, assignmentId string, now time.Time) error {
	return tx.Model(models.ShiftAssignment{}).
		Where("id = ? AND status = ?", assignmentId, models.AssignmentStatusSwapPending).
		Updates(map[string]interface{}{
			"status":     models.AssignmentStatusAssigned,
			"updated_at": now,
		}).Error
}
