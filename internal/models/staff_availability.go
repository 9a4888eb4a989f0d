package models

import "time"

type Recurrence string

const (
	// RecurrenceWeekly 每周固定重复的可用时段
	RecurrenceWeekly Recurrence = "weekly"
	// RecurrenceOneOff 指定日期的一次性时段，优先级高于每周时段
	RecurrenceOneOff Recurrence = "one_off"
)

// StaffAvailability 员工可用时段表
//
// 两类条目:
//   - weekly: 按星期重复 (DayOfWeek, 0=周一..6=周日)
//   - one_off: 指定日期 (SpecificDate)，同日覆盖 weekly 条目
//
// StartTime/EndTime 为 "15:04" 格式的本地钟面时间，二者均为空表示该日
// 整天不可用。Timezone 记录员工录入这些时间时所用的时区，约束引擎比较
// 时会先换算到 UTC，绝不跨时区比较裸钟面值。
type StaffAvailability struct {
	ID         string     `gorm:"column:id;primary_key;type:varchar(50)" json:"id"`
	MemberId   string     `gorm:"column:member_id;type:varchar(50);index" json:"memberId"`
	Recurrence Recurrence `gorm:"column:recurrence;type:varchar(10)" json:"recurrence"`

	// weekly 专用, 0=周一..6=周日; one_off 条目为 nil
	DayOfWeek *int `gorm:"column:day_of_week" json:"dayOfWeek"`
	// one_off 专用, 格式 2006-01-02
	SpecificDate string `gorm:"column:specific_date;type:varchar(10)" json:"specificDate"`

	StartTime string `gorm:"column:start_time;type:varchar(5)" json:"startTime"`
	EndTime   string `gorm:"column:end_time;type:varchar(5)" json:"endTime"`
	Timezone  string `gorm:"column:timezone;type:varchar(50);default:UTC" json:"timezone"`

	Notes     string    `gorm:"column:notes;type:varchar(255)" json:"notes"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (StaffAvailability) TableName() string {
	return "ss_staff_availability"
}

// IsUnavailableDay 该条目是否表示整天不可用
func (a StaffAvailability) IsUnavailableDay() bool {
	return a.StartTime == "" && a.EndTime == ""
}
