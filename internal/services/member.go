package services

import (
	"fmt"
	"time"

	"shiftSync/internal/ctx"
	"shiftSync/internal/models"
	"shiftSync/internal/types"
	"shiftSync/pkg/idutil"
)

type memberService struct {
	ctx *ctx.Context
}

type InterMemberService interface {
	CreateMember(req interface{}) (interface{}, interface{})
	ListMembers(req interface{}) (interface{}, interface{})
	CreateLocation(req interface{}) (interface{}, interface{})
	ListLocations(req interface{}) (interface{}, interface{})
	CreateSkill(req interface{}) (interface{}, interface{})
	ListSkills(req interface{}) (interface{}, interface{})
	GrantCertification(req interface{}) (interface{}, interface{})
	RevokeCertification(req interface{}) (interface{}, interface{})
}

func newInterMemberService(ctx *ctx.Context) InterMemberService {
	return &memberService{
		ctx: ctx,
	}
}

func (ms memberService) CreateMember(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestMemberCreate)

	role := models.MemberRole(r.Role)
	if role == "" {
		role = models.MemberRoleStaff
	}
	switch role {
	case models.MemberRoleAdmin, models.MemberRoleManager, models.MemberRoleStaff:
	default:
		return nil, invalidState("创建员工", "未知的角色 %q", r.Role)
	}

	active := true
	now := time.Now().UTC()
	member := models.Member{
		ID:        idutil.MemberId(),
		Name:      r.Name,
		Email:     r.Email,
		Role:      role,
		IsActive:  &active,
		Skills:    r.Skills,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ms.ctx.DB.Member().Create(member); err != nil {
		return nil, err
	}
	return member, nil
}

func (ms memberService) ListMembers(req interface{}) (interface{}, interface{}) {
	list, err := ms.ctx.DB.Member().List()
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (ms memberService) CreateLocation(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestLocationCreate)

	if _, err := time.LoadLocation(r.Timezone); err != nil {
		return nil, invalidState("创建门店", "时区 %q 无效", r.Timezone)
	}

	active := true
	now := time.Now().UTC()
	location := models.Location{
		ID:        idutil.LocationId(),
		Name:      r.Name,
		Timezone:  r.Timezone,
		Address:   r.Address,
		IsActive:  &active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ms.ctx.DB.Location().Create(location); err != nil {
		return nil, err
	}
	return location, nil
}

func (ms memberService) ListLocations(req interface{}) (interface{}, interface{}) {
	list, err := ms.ctx.DB.Location().List()
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (ms memberService) CreateSkill(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestSkillCreate)

	skill := models.Skill{
		ID:          idutil.SkillId(),
		Name:        r.Name,
		DisplayName: r.DisplayName,
		CreatedAt:   time.Now().UTC(),
	}
	if err := ms.ctx.DB.Member().CreateSkill(skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (ms memberService) ListSkills(req interface{}) (interface{}, interface{}) {
	list, err := ms.ctx.DB.Member().ListSkills()
	if err != nil {
		return nil, err
	}
	return list, nil
}

// GrantCertification 授予门店上岗认证
func (ms memberService) GrantCertification(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestCertificationGrant)

	if _, err := ms.ctx.DB.Member().Get(r.MemberId); err != nil {
		return nil, fmt.Errorf("员工 %s 不存在: %s", r.MemberId, err.Error())
	}
	if _, err := ms.ctx.DB.Location().Get(r.LocationId); err != nil {
		return nil, fmt.Errorf("门店 %s 不存在: %s", r.LocationId, err.Error())
	}

	exists, err := ms.ctx.DB.Certification().HasActive(r.MemberId, r.LocationId)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, invalidState("授予认证", "该员工在此门店已有有效认证")
	}

	active := true
	cert := models.LocationCertification{
		ID:          idutil.CertId(),
		MemberId:    r.MemberId,
		LocationId:  r.LocationId,
		IsActive:    &active,
		CertifiedBy: r.ActorId,
		CertifiedAt: time.Now().UTC(),
	}
	if err := ms.ctx.DB.Certification().Create(cert); err != nil {
		return nil, err
	}
	return cert, nil
}

// RevokeCertification 吊销认证
// 记录保留, 只阻止新的排班; 既有排班不自动撤销, 由主管另行处理。
func (ms memberService) RevokeCertification(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestCertificationRevoke)

	if r.Reason == "" {
		return nil, invalidState("吊销认证", "必须给出吊销理由")
	}
	if err := ms.ctx.DB.Certification().Deactivate(r.ID, r.Reason, time.Now().UTC()); err != nil {
		return nil, err
	}
	return nil, nil
}
