package api

import (
	"shiftSync/internal/middleware"
	"shiftSync/internal/services"
	"shiftSync/internal/types"

	"github.com/gin-gonic/gin"
)

type memberController struct{}

var MemberController = new(memberController)

/*
员工/门店/技能/认证 API
/api/shiftsync/member
*/
func (memberController memberController) API(gin *gin.RouterGroup) {
	a := gin.Group("member")
	a.Use(
		middleware.AuditingLog(),
	)
	{
		a.POST("memberCreate", memberController.CreateMember)
		a.POST("locationCreate", memberController.CreateLocation)
		a.POST("skillCreate", memberController.CreateSkill)
		a.POST("certificationGrant", memberController.GrantCertification)
		a.POST("certificationRevoke", memberController.RevokeCertification)
	}

	b := gin.Group("member")
	{
		b.GET("memberList", memberController.ListMembers)
		b.GET("locationList", memberController.ListLocations)
		b.GET("skillList", memberController.ListSkills)
	}
}

func (memberController memberController) CreateMember(ctx *gin.Context) {
	r := new(types.RequestMemberCreate)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.MemberService.CreateMember(r)
	})
}

func (memberController memberController) ListMembers(ctx *gin.Context) {
	Service(ctx, func() (interface{}, interface{}) {
		return services.MemberService.ListMembers(nil)
	})
}

func (memberController memberController) CreateLocation(ctx *gin.Context) {
	r := new(types.RequestLocationCreate)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.MemberService.CreateLocation(r)
	})
}

func (memberController memberController) ListLocations(ctx *gin.Context) {
	Service(ctx, func() (interface{}, interface{}) {
		return services.MemberService.ListLocations(nil)
	})
}

func (memberController memberController) CreateSkill(ctx *gin.Context) {
	r := new(types.RequestSkillCreate)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.MemberService.CreateSkill(r)
	})
}

func (memberController memberController) ListSkills(ctx *gin.Context) {
	Service(ctx, func() (interface{}, interface{}) {
		return services.MemberService.ListSkills(nil)
	})
}

func (memberController memberController) GrantCertification(ctx *gin.Context) {
	r := new(types.RequestCertificationGrant)
	BindJson(ctx, r)

	if r.ActorId == "" {
		r.ActorId = ctx.Request.Header.Get(middleware.ActorIDHeaderKey)
	}

	Service(ctx, func() (interface{}, interface{}) {
		return services.MemberService.GrantCertification(r)
	})
}

func (memberController memberController) RevokeCertification(ctx *gin.Context) {
	r := new(types.RequestCertificationRevoke)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.MemberService.RevokeCertification(r)
	})
}
