package repo

import (
	"time"

	"shiftSync/internal/models"

	"gorm.io/gorm"
)

type (
	ShiftRepo struct {
		entryRepo
	}

	InterShift interface {
		Get(id string) (models.Shift, error)
		Create(s models.Shift) error
		List(locationId string, from, to time.Time) ([]models.Shift, error)
		// ListUnpublished 指定门店、起始时间窗口内的草稿班次（整周发布用）
		ListUnpublished(locationId string, from, to time.Time) ([]models.Shift, error)
		GetByIds(ids []string) (map[string]models.Shift, error)
		SetPublished(id string, published bool, by string, at time.Time) error
		Delete(id string) error
	}
)

func newShiftInterface(db *gorm.DB, g InterGormDBCli) InterShift {
	return &ShiftRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

func (r ShiftRepo) Get(id string) (models.Shift, error) {
	var s models.Shift
	err := r.db.Model(models.Shift{}).Where("id = ?", id).First(&s).Error
	return s, err
}

func (r ShiftRepo) Create(s models.Shift) error {
	return r.g.Create(models.Shift{}, &s)
}

func (r ShiftRepo) List(locationId string, from, to time.Time) ([]models.Shift, error) {
	query := r.db.Model(models.Shift{}).Order("start_utc")
	if locationId != "" {
		query = query.Where("location_id = ?", locationId)
	}
	if !from.IsZero() {
		query = query.Where("start_utc >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("start_utc < ?", to)
	}

	var list []models.Shift
	err := query.Find(&list).Error
	return list, err
}

func (r ShiftRepo) ListUnpublished(locationId string, from, to time.Time) ([]models.Shift, error) {
	query := r.db.Model(models.Shift{}).
		Where("is_published = ?", false).
		Where("start_utc >= ? AND start_utc < ?", from, to)
	if locationId != "" {
		query = query.Where("location_id = ?", locationId)
	}

	var list []models.Shift
	err := query.Find(&list).Error
	return list, err
}

func (r ShiftRepo) GetByIds(ids []string) (map[string]models.Shift, error) {
	var list []models.Shift
	if len(ids) == 0 {
		return map[string]models.Shift{}, nil
	}
	if err := r.db.Model(models.Shift{}).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}

	out := make(map[string]models.Shift, len(list))
	for _, s := range list {
		out[s.ID] = s
	}
	return out, nil
}

func (r ShiftRepo) SetPublished(id string, published bool, by string, at time.Time) error {
	updates := map[string]interface{}{
		"is_published": published,
	}
	if published {
		updates["published_by"] = by
		updates["published_at"] = at
	}
	return r.g.Updates(Updates{
		Table: models.Shift{},
		Where: map[string]interface{}{
			"id = ?": id,
		},
		Updates: updates,
	})
}

func (r ShiftRepo) Delete(id string) error {
	return r.g.Delete(Delete{
		Table: models.Shift{},
		Where: map[string]interface{}{
			"id = ?": id,
		},
	})
}
