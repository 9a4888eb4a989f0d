package repo

import (
	"time"

	"shiftSync/internal/models"

	"gorm.io/gorm"
)

type (
	LocationRepo struct {
		entryRepo
	}

	InterLocation interface {
		Get(id string) (models.Location, error)
		List() ([]models.Location, error)
		Create(l models.Location) error
	}
)

func newLocationInterface(db *gorm.DB, g InterGormDBCli) InterLocation {
	return &LocationRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

func (r LocationRepo) Get(id string) (models.Location, error) {
	var l models.Location
	err := r.db.Model(models.Location{}).Where("id = ?", id).First(&l).Error
	return l, err
}

func (r LocationRepo) List() ([]models.Location, error) {
	var list []models.Location
	err := r.db.Model(models.Location{}).Order("name").Find(&list).Error
	return list, err
}

func (r LocationRepo) Create(l models.Location) error {
	return r.g.Create(models.Location{}, &l)
}

type (
	CertificationRepo struct {
		entryRepo
	}

	InterCertification interface {
		// ListByMember 员工的全部认证记录（含已停用，用于区分吊销与从未认证）
		ListByMember(memberId string) ([]models.LocationCertification, error)
		// ActiveMemberIds 在指定门店持有有效认证的员工ID集合
		ActiveMemberIds(locationId string) ([]string, error)
		HasActive(memberId, locationId string) (bool, error)
		Create(c models.LocationCertification) error
		Deactivate(id, reason string, at time.Time) error
	}
)

func newCertificationInterface(db *gorm.DB, g InterGormDBCli) InterCertification {
	return &CertificationRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

func (r CertificationRepo) ListByMember(memberId string) ([]models.LocationCertification, error) {
	var list []models.LocationCertification
	err := r.db.Model(models.LocationCertification{}).
		Where("member_id = ?", memberId).
		Find(&list).Error
	return list, err
}

func (r CertificationRepo) ActiveMemberIds(locationId string) ([]string, error) {
	var ids []string
	err := r.db.Model(models.LocationCertification{}).
		Where("location_id = ? AND is_active = ?", locationId, true).
		Pluck("member_id", &ids).Error
	return ids, err
}

func (r CertificationRepo) HasActive(memberId, locationId string) (bool, error) {
	var count int64
	err := r.db.Model(models.LocationCertification{}).
		Where("member_id = ? AND location_id = ? AND is_active = ?", memberId, locationId, true).
		Count(&count).Error
	return count > 0, err
}

func (r CertificationRepo) Create(c models.LocationCertification) error {
	return r.g.Create(models.LocationCertification{}, &c)
}

// Deactivate 停用认证，保留历史记录
func (r CertificationRepo) Deactivate(id, reason string, at time.Time) error {
	return r.g.Updates(Updates{
		Table: models.LocationCertification{},
		Where: map[string]interface{}{
			"id = ?": id,
		},
		Updates: map[string]interface{}{
			"is_active":          false,
			"deactivated_at":     at,
			"deactivated_reason": reason,
		},
	})
}
