package repo

import (
	"time"

	"shiftSync/internal/models"

	"gorm.io/gorm"
)

type (
	SwapRepo struct {
		entryRepo
	}

	InterSwap interface {
		Get(id string) (models.SwapRequest, error)
		Create(r models.SwapRequest) error
		// CountPendingByRequester 发起人当前未决请求数（任意 PENDING_* 状态）
		CountPendingByRequester(memberId string) (int64, error)
		ListByMember(memberId string) ([]models.SwapRequest, error)
		// ListExpiredDrops 已过期但仍在等待认领的放班请求
		ListExpiredDrops(now time.Time) ([]models.SwapRequest, error)
		// ListStaleSwaps 创建时间早于 cutoff 且仍在等待对方响应的换班请求
		ListStaleSwaps(cutoff time.Time) ([]models.SwapRequest, error)
		// UpdateIf 带前置状态校验的请求更新；返回是否真的发生了更新
		UpdateIf(id string, from models.SwapStatus, updates map[string]interface{}) (bool, error)
	}
)

func newSwapInterface(db *gorm.DB, g InterGormDBCli) InterSwap {
	return &SwapRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

func (r SwapRepo) Get(id string) (models.SwapRequest, error) {
	var req models.SwapRequest
	err := r.db.Model(models.SwapRequest{}).Where("id = ?", id).First(&req).Error
	return req, err
}

func (r SwapRepo) Create(req models.SwapRequest) error {
	return r.g.Create(models.SwapRequest{}, &req)
}

func (r SwapRepo) CountPendingByRequester(memberId string) (int64, error) {
	var count int64
	err := r.db.Model(models.SwapRequest{}).
		Where("requester_id = ? AND status IN ?", memberId, models.PendingSwapStatuses).
		Count(&count).Error
	return count, err
}

func (r SwapRepo) ListByMember(memberId string) ([]models.SwapRequest, error) {
	var list []models.SwapRequest
	err := r.db.Model(models.SwapRequest{}).
		Where("requester_id = ? OR target_id = ? OR claimed_by_id = ?", memberId, memberId, memberId).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r SwapRepo) ListExpiredDrops(now time.Time) ([]models.SwapRequest, error) {
	var list []models.SwapRequest
	err := r.db.Model(models.SwapRequest{}).
		Where("request_type = ? AND status = ? AND expires_at < ?",
			models.SwapTypeDrop, models.SwapStatusPendingPickup, now).
		Find(&list).Error
	return list, err
}

func (r SwapRepo) ListStaleSwaps(cutoff time.Time) ([]models.SwapRequest, error) {
	var list []models.SwapRequest
	err := r.db.Model(models.SwapRequest{}).
		Where("request_type = ? AND status = ? AND created_at < ?",
			models.SwapTypeSwap, models.SwapStatusPendingAcceptance, cutoff).
		Find(&list).Error
	return list, err
}

func (r SwapRepo) UpdateIf(id string, from models.SwapStatus, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.Model(models.SwapRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
