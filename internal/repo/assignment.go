package repo

import (
	"time"

	"shiftSync/internal/models"

	"gorm.io/gorm"
)

type (
	AssignmentRepo struct {
		entryRepo
	}

	InterAssignment interface {
		Get(id string) (models.ShiftAssignment, error)
		Create(a models.ShiftAssignment) error
		// ListActiveByMember 员工全部活跃排班（assigned / swap_pending）
		ListActiveByMember(memberId string) ([]models.ShiftAssignment, error)
		// HasActiveForShift 同一 (shift, member) 是否已有活跃记录
		HasActiveForShift(shiftId, memberId string) (bool, error)
		CountActiveByShift(shiftId string) (int64, error)
		// UpdateStatusIf 带前置状态校验的状态迁移；返回是否真的发生了更新。
		// 过期清理和恢复操作依赖它实现幂等：前置状态不匹配时不落任何写。
		UpdateStatusIf(id string, from []models.AssignmentStatus, to models.AssignmentStatus) (bool, error)
	}
)

func newAssignmentInterface(db *gorm.DB, g InterGormDBCli) InterAssignment {
	return &AssignmentRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

func (r AssignmentRepo) Get(id string) (models.ShiftAssignment, error) {
	var a models.ShiftAssignment
	err := r.db.Model(models.ShiftAssignment{}).Where("id = ?", id).First(&a).Error
	return a, err
}

func (r AssignmentRepo) Create(a models.ShiftAssignment) error {
	return r.g.Create(models.ShiftAssignment{}, &a)
}

func (r AssignmentRepo) ListActiveByMember(memberId string) ([]models.ShiftAssignment, error) {
	var list []models.ShiftAssignment
	err := r.db.Model(models.ShiftAssignment{}).
		Where("member_id = ? AND status IN ?", memberId, models.ActiveAssignmentStatuses).
		Find(&list).Error
	return list, err
}

func (r AssignmentRepo) HasActiveForShift(shiftId, memberId string) (bool, error) {
	var count int64
	err := r.db.Model(models.ShiftAssignment{}).
		Where("shift_id = ? AND member_id = ? AND status IN ?",
			shiftId, memberId, models.ActiveAssignmentStatuses).
		Count(&count).Error
	return count > 0, err
}

func (r AssignmentRepo) CountActiveByShift(shiftId string) (int64, error) {
	var count int64
	err := r.db.Model(models.ShiftAssignment{}).
		Where("shift_id = ? AND status IN ?", shiftId, models.ActiveAssignmentStatuses).
		Count(&count).Error
	return count, err
}

func (r AssignmentRepo) UpdateStatusIf(id string, from []models.AssignmentStatus, to models.AssignmentStatus) (bool, error) {
	result := r.db.Model(models.ShiftAssignment{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
