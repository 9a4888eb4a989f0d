package models

import "time"

type MemberRole string

const (
	MemberRoleAdmin   MemberRole = "admin"
	MemberRoleManager MemberRole = "manager"
	MemberRoleStaff   MemberRole = "staff"
)

// Member 员工表
// 身份认证由外部系统负责，这里只保存排班所需的只读画像：
// 角色、技能集合与在职状态。
type Member struct {
	ID       string     `gorm:"column:id;primary_key;type:varchar(50)" json:"id"`
	Name     string     `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Email    string     `gorm:"column:email;type:varchar(100)" json:"email"`
	Role     MemberRole `gorm:"column:role;type:varchar(10);default:staff" json:"role"`
	IsActive *bool      `gorm:"column:is_active;default:1" json:"isActive"`
	// 员工持有的技能ID集合
	Skills    []string  `gorm:"column:skills;serializer:json" json:"skills"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Member) TableName() string {
	return "ss_members"
}

// GetActive 安全获取在职状态(防止nil指针)
func (m Member) GetActive() bool {
	if m.IsActive == nil {
		return true
	}
	return *m.IsActive
}

func (m Member) IsManagerRole() bool {
	return m.Role == MemberRoleManager || m.Role == MemberRoleAdmin
}

// HasSkill 判断员工是否持有指定技能
func (m Member) HasSkill(skillId string) bool {
	for _, s := range m.Skills {
		if s == skillId {
			return true
		}
	}
	return false
}

// Skill 技能表
// 例: bartender / line_cook / server
type Skill struct {
	ID          string    `gorm:"column:id;primary_key;type:varchar(50)" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(50);not null" json:"name"`
	DisplayName string    `gorm:"column:display_name;type:varchar(100)" json:"displayName"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Skill) TableName() string {
	return "ss_skills"
}
