package repo

import (
	"shiftSync/internal/models"

	"gorm.io/gorm"
)

type (
	AvailabilityRepo struct {
		entryRepo
	}

	InterAvailability interface {
		ListByMember(memberId string) ([]models.StaffAvailability, error)
		// Upsert 同一员工同一星期/同一日期只保留一条，重复录入覆盖旧值
		Upsert(entry models.StaffAvailability) error
		Delete(id string) error
	}
)

func newAvailabilityInterface(db *gorm.DB, g InterGormDBCli) InterAvailability {
	return &AvailabilityRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

func (r AvailabilityRepo) ListByMember(memberId string) ([]models.StaffAvailability, error) {
	var list []models.StaffAvailability
	err := r.db.Model(models.StaffAvailability{}).
		Where("member_id = ?", memberId).
		Order("recurrence, day_of_week, specific_date").
		Find(&list).Error
	return list, err
}

func (r AvailabilityRepo) Upsert(entry models.StaffAvailability) error {
	query := r.db.Model(models.StaffAvailability{}).
		Where("member_id = ? AND recurrence = ?", entry.MemberId, entry.Recurrence)
	if entry.Recurrence == models.RecurrenceWeekly {
		query = query.Where("day_of_week = ?", entry.DayOfWeek)
	} else {
		query = query.Where("specific_date = ?", entry.SpecificDate)
	}

	var existing models.StaffAvailability
	if err := query.First(&existing).Error; err == nil {
		return r.g.Updates(Updates{
			Table: models.StaffAvailability{},
			Where: map[string]interface{}{
				"id = ?": existing.ID,
			},
			Updates: map[string]interface{}{
				"start_time": entry.StartTime,
				"end_time":   entry.EndTime,
				"timezone":   entry.Timezone,
				"notes":      entry.Notes,
			},
		})
	}

	return r.g.Create(models.StaffAvailability{}, &entry)
}

func (r AvailabilityRepo) Delete(id string) error {
	return r.g.Delete(Delete{
		Table: models.StaffAvailability{},
		Where: map[string]interface{}{
			"id = ?": id,
		},
	})
}
