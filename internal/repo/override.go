package repo

import (
	"shiftSync/internal/models"

	"gorm.io/gorm"
)

type (
	OverrideRepo struct {
		entryRepo
	}

	// InterOverride 主管豁免台账，只写不改不删
	InterOverride interface {
		Create(o models.ManagerOverride) error
		ListByAssignment(assignmentId string) ([]models.ManagerOverride, error)
		List(page models.Page) ([]models.ManagerOverride, int64, error)
	}
)

func newOverrideInterface(db *gorm.DB, g InterGormDBCli) InterOverride {
	return &OverrideRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

func (r OverrideRepo) Create(o models.ManagerOverride) error {
	return r.g.Create(models.ManagerOverride{}, &o)
}

func (r OverrideRepo) ListByAssignment(assignmentId string) ([]models.ManagerOverride, error) {
	var list []models.ManagerOverride
	err := r.db.Model(models.ManagerOverride{}).
		Where("assignment_id = ?", assignmentId).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r OverrideRepo) List(page models.Page) ([]models.ManagerOverride, int64, error) {
	var (
		list  []models.ManagerOverride
		total int64
	)
	db := r.db.Model(models.ManagerOverride{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page.Size > 0 {
		db = db.Offset(int(page.Index * page.Size)).Limit(int(page.Size))
	}
	err := db.Order("created_at DESC").Find(&list).Error
	return list, total, err
}
