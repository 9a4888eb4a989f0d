package repo

import (
	"shiftSync/internal/models"

	"gorm.io/gorm"
)

type (
	MemberRepo struct {
		entryRepo
	}

	InterMember interface {
		Get(id string) (models.Member, error)
		List() ([]models.Member, error)
		// ListActiveStaffWithSkill 具备指定技能的在职员工（替代人选查询用）
		ListActiveStaffWithSkill(skillId string) ([]models.Member, error)
		Create(m models.Member) error

		GetSkill(id string) (models.Skill, error)
		ListSkills() ([]models.Skill, error)
		CreateSkill(s models.Skill) error
	}
)

func newMemberInterface(db *gorm.DB, g InterGormDBCli) InterMember {
	return &MemberRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

func (r MemberRepo) Get(id string) (models.Member, error) {
	var m models.Member
	err := r.db.Model(models.Member{}).Where("id = ?", id).First(&m).Error
	return m, err
}

func (r MemberRepo) List() ([]models.Member, error) {
	var list []models.Member
	err := r.db.Model(models.Member{}).Order("name").Find(&list).Error
	return list, err
}

// ListActiveStaffWithSkill 技能集合以 JSON 入库，这里全量拉取在职员工后
// 在内存过滤；员工表量级很小，不值得为此建关联表。
func (r MemberRepo) ListActiveStaffWithSkill(skillId string) ([]models.Member, error) {
	var list []models.Member
	err := r.db.Model(models.Member{}).
		Where("role = ? AND is_active = ?", models.MemberRoleStaff, true).
		Find(&list).Error
	if err != nil {
		return nil, err
	}

	out := make([]models.Member, 0, len(list))
	for _, m := range list {
		if m.HasSkill(skillId) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r MemberRepo) Create(m models.Member) error {
	return r.g.Create(models.Member{}, &m)
}

func (r MemberRepo) GetSkill(id string) (models.Skill, error) {
	var s models.Skill
	err := r.db.Model(models.Skill{}).Where("id = ?", id).First(&s).Error
	return s, err
}

func (r MemberRepo) ListSkills() ([]models.Skill, error) {
	var list []models.Skill
	err := r.db.Model(models.Skill{}).Order("name").Find(&list).Error
	return list, err
}

func (r MemberRepo) CreateSkill(s models.Skill) error {
	return r.g.Create(models.Skill{}, &s)
}
