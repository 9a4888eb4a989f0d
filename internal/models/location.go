package models

import "time"

// Location 门店表
// Timezone 为 IANA 时区标识，是该门店所有班次展示和日界计算的基准时区。
type Location struct {
	ID       string `gorm:"column:id;primary_key;type:varchar(50)" json:"id"`
	Name     string `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Timezone string `gorm:"column:timezone;type:varchar(50);not null" json:"timezone"`
	Address  string `gorm:"column:address;type:varchar(255)" json:"address"`
	IsActive *bool  `gorm:"column:is_active;default:1" json:"isActive"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Location) TableName() string {
	return "ss_locations"
}

// LoadLocation 加载该门店的时区
func (l Location) LoadLocation() (*time.Location, error) {
	return time.LoadLocation(l.Timezone)
}

// GetActive 安全获取启用状态(防止nil指针)
func (l Location) GetActive() bool {
	if l.IsActive == nil {
		return true
	}
	return *l.IsActive
}

// LocationCertification 门店上岗认证表
// 认证被停用后保留历史记录，仅阻止新的排班，保证工资与审计数据完整。
type LocationCertification struct {
	ID          string `gorm:"column:id;primary_key;type:varchar(50)" json:"id"`
	MemberId    string `gorm:"column:member_id;type:varchar(50);index:idx_cert_member_location" json:"memberId"`
	LocationId  string `gorm:"column:location_id;type:varchar(50);index:idx_cert_member_location" json:"locationId"`
	IsActive    *bool  `gorm:"column:is_active;default:1" json:"isActive"`
	CertifiedBy string `gorm:"column:certified_by;type:varchar(50)" json:"certifiedBy"`

	CertifiedAt       time.Time  `gorm:"column:certified_at" json:"certifiedAt"`
	DeactivatedAt     *time.Time `gorm:"column:deactivated_at" json:"deactivatedAt"`
	DeactivatedReason string     `gorm:"column:deactivated_reason;type:varchar(255)" json:"deactivatedReason"`
}

func (LocationCertification) TableName() string {
	return "ss_location_certifications"
}

// GetActive 安全获取认证状态(防止nil指针)
func (c LocationCertification) GetActive() bool {
	if c.IsActive == nil {
		return true
	}
	return *c.IsActive
}
