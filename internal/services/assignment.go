package services

import (
	"fmt"
	"time"

	"shiftSync/constraint"
	"shiftSync/internal/ctx"
	"shiftSync/internal/models"
	"shiftSync/internal/types"
	"shiftSync/pkg/idutil"
	"shiftSync/pkg/sender"

	"gorm.io/gorm"
)

type assignmentService struct {
	ctx *ctx.Context
}

type InterAssignmentService interface {
	Create(req interface{}) (interface{}, interface{})
	Preview(req interface{}) (interface{}, interface{})
	List(req interface{}) (interface{}, interface{})
}

func newInterAssignmentService(ctx *ctx.Context) InterAssignmentService {
	return &assignmentService{
		ctx: ctx,
	}
}

// Create 把员工排上班次
//
// 完整流程: 员工锁 → 装载快照 → 约束管线 → 落库 → 事件。
// 锁从装载快照一直持到写入完成，约束检查与落库之间没有竞争窗口。
// 管线给出 block 时直接拒绝；给出 override_required 时要求主管附
// 非空豁免理由，排班记录与豁免台账在同一事务内写入。
func (as assignmentService) Create(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestAssignmentCreate)

	actor, err := as.ctx.DB.Member().Get(r.ActorId)
	if err != nil {
		return nil, fmt.Errorf("操作人 %s 不存在: %s", r.ActorId, err.Error())
	}
	if !actor.IsManagerRole() {
		return nil, invalidState("排班", "只有管理角色可以排班, %s 的角色是 %s", actor.Name, actor.Role)
	}

	shift, err := as.ctx.DB.Shift().Get(r.ShiftId)
	if err != nil {
		return nil, fmt.Errorf("班次 %s 不存在: %s", r.ShiftId, err.Error())
	}

	workerLock.Lock(r.MemberId)
	defer workerLock.Unlock(r.MemberId)

	// 同一 (shift, member) 不允许第二条活跃记录
	exists, err := as.ctx.DB.Assignment().HasActiveForShift(r.ShiftId, r.MemberId)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, invalidState("排班", "该员工已在此班次上")
	}

	count, err := as.ctx.DB.Assignment().CountActiveByShift(r.ShiftId)
	if err != nil {
		return nil, err
	}
	if count >= int64(shift.HeadcountNeeded) {
		return nil, invalidState("排班", "班次人数已满 (%d/%d)", count, shift.HeadcountNeeded)
	}

	sc, err := loadShiftContext(as.ctx, shift)
	if err != nil {
		return nil, err
	}
	snap, err := loadWorkerSnapshot(as.ctx, r.MemberId)
	if err != nil {
		return nil, err
	}
	if !snap.Member.GetActive() {
		return nil, invalidState("排班", "员工 %s 已离职", snap.Member.Name)
	}

	result := newEngine(as.ctx).Evaluate(snap, sc, "")
	switch result.Severity {
	case constraint.SeverityBlock:
		return nil, &ConstraintError{Result: result}
	case constraint.SeverityOverrideRequired:
		if r.OverrideReason == "" {
			// 缺少理由时原样返回结论，前端据此弹出理由输入框
			return nil, &ConstraintError{Result: result}
		}
	}

	now := time.Now().UTC()
	assignment := models.ShiftAssignment{
		ID:         idutil.AssignmentId(),
		ShiftId:    r.ShiftId,
		MemberId:   r.MemberId,
		Status:     models.AssignmentStatusAssigned,
		AssignedBy: r.ActorId,
		AssignedAt: now,
		UpdatedAt:  now,
	}

	err = as.ctx.DB.Cli().Tx(func(tx *gorm.DB) error {
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}
		if result.Severity == constraint.SeverityOverrideRequired {
			override := models.ManagerOverride{
				ID:                 idutil.OverrideId(),
				ManagerId:          r.ActorId,
				AssignmentId:       assignment.ID,
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

	sender.Publish(as.ctx.Ctx, sender.EventParams{
		EventType: "assignment.created",
		ActorId:   r.ActorId,
		Payload: map[string]interface{}{
			"assignmentId": assignment.ID,
			"shiftId":      shift.ID,
			"memberId":     r.MemberId,
			"overridden":   result.Severity == constraint.SeverityOverrideRequired,
		},
	})

	return types.ResponseAssignmentCreate{
		Assignment: assignment,
		Result:     result,
	}, nil
}

// Preview what-if 预览: 运行全部检查并返回完整问题清单，不落任何写
func (as assignmentService) Preview(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestAssignmentPreview)

	shift, err := as.ctx.DB.Shift().Get(r.ShiftId)
	if err != nil {
		return nil, fmt.Errorf("班次 %s 不存在: %s", r.ShiftId, err.Error())
	}
	sc, err := loadShiftContext(as.ctx, shift)
	if err != nil {
		return nil, err
	}
	snap, err := loadWorkerSnapshot(as.ctx, r.MemberId)
	if err != nil {
		return nil, err
	}

	results := newEngine(as.ctx).EvaluateAll(snap, sc)
	canAssign := true
	for _, result := range results {
		if result.Severity == constraint.SeverityBlock || result.Severity == constraint.SeverityOverrideRequired {
			canAssign = false
			break
		}
	}

	return types.ResponseAssignmentPreview{
		Results:   results,
		CanAssign: canAssign,
	}, nil
}

func (as assignmentService) List(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestAssignmentQuery)
	list, err := as.ctx.DB.Assignment().ListActiveByMember(r.MemberId)
	if err != nil {
		return nil, err
	}
	return list, nil
}
