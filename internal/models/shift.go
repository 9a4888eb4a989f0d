package models

import "time"

// Shift 班次表
//
// 一个班次描述在哪个门店、需要什么技能、何时开始结束、需要多少人。
// 具体人员通过 ShiftAssignment 关联。时间一律以 UTC 入库，展示层按
// 门店时区换算；跨午夜的夜班只要 EndUtc > StartUtc 即可，无需特殊处理。
//
// 发布流程: 创建(草稿, 员工不可见) → 发布(对被排班员工可见)。
// 已发布的班次不允许物理删除，只能先取消发布；班次开始前
// EditCutoffHours 小时后锁定，禁止一切结构性编辑。
type Shift struct {
	ID              string `gorm:"column:id;primary_key;type:varchar(50)" json:"id"`
	LocationId      string `gorm:"column:location_id;type:varchar(50);index:idx_shift_location_start" json:"locationId"`
	RequiredSkillId string `gorm:"column:required_skill_id;type:varchar(50)" json:"requiredSkillId"`
	HeadcountNeeded int    `gorm:"column:headcount_needed;default:1" json:"headcountNeeded"`

	StartUtc time.Time `gorm:"column:start_utc;index:idx_shift_location_start" json:"startUtc"`
	EndUtc   time.Time `gorm:"column:end_utc;index" json:"endUtc"`

	IsPublished *bool      `gorm:"column:is_published;default:0" json:"isPublished"`
	PublishedAt *time.Time `gorm:"column:published_at" json:"publishedAt"`
	PublishedBy string     `gorm:"column:published_by;type:varchar(50)" json:"publishedBy"`

	// 班次开始前多少小时禁止结构性编辑，创建时取配置默认值
	EditCutoffHours int `gorm:"column:edit_cutoff_hours;default:48" json:"editCutoffHours"`

	Notes     string    `gorm:"column:notes;type:varchar(255)" json:"notes"`
	CreatedBy string    `gorm:"column:created_by;type:varchar(50)" json:"createdBy"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Shift) TableName() string {
	return "ss_shifts"
}

// GetPublished 安全获取发布状态(防止nil指针)
func (s Shift) GetPublished() bool {
	if s.IsPublished == nil {
		return false
	}
	return *s.IsPublished
}

// DurationHours 班次时长，单位小时
func (s Shift) DurationHours() float64 {
	return s.EndUtc.Sub(s.StartUtc).Hours()
}

// IsOvernight 班次是否跨过门店当地的午夜
func (s Shift) IsOvernight(loc *time.Location) bool {
	startLocal := s.StartUtc.In(loc)
	endLocal := s.EndUtc.In(loc)
	sy, sm, sd := startLocal.Date()
	ey, em, ed := endLocal.Date()
	return sy != ey || sm != em || sd != ed
}

// IsPremium 是否为高峰班次（按门店当地时间判定星期与起始小时）
func (s Shift) IsPremium(premiumDays map[time.Weekday]bool, startHour int, loc *time.Location) bool {
	startLocal := s.StartUtc.In(loc)
	return premiumDays[startLocal.Weekday()] && startLocal.Hour() >= startHour
}

// EditCutoff 返回编辑锁定时刻
func (s Shift) EditCutoff() time.Time {
	return s.StartUtc.Add(-time.Duration(s.EditCutoffHours) * time.Hour)
}

// IsPastEditCutoff 是否已过编辑锁定时刻
func (s Shift) IsPastEditCutoff(now time.Time) bool {
	return !now.Before(s.EditCutoff())
}
