package api

import (
	"shiftSync/internal/middleware"
	"shiftSync/internal/services"
	"shiftSync/internal/types"

	"github.com/gin-gonic/gin"
)

type shiftController struct{}

var ShiftController = new(shiftController)

/*
班次 API
/api/shiftsync/shift
*/
func (shiftController shiftController) API(gin *gin.RouterGroup) {
	a := gin.Group("shift")
	a.Use(
		middleware.AuditingLog(),
	)
	{
		a.POST("shiftCreate", shiftController.Create)
		a.POST("shiftPublish", shiftController.Publish)
		a.POST("shiftPublishWeek", shiftController.PublishWeek)
		a.POST("shiftDelete", shiftController.Delete)
	}

	b := gin.Group("shift")
	{
		b.GET("shiftList", shiftController.List)
	}
}

func (shiftController shiftController) Create(ctx *gin.Context) {
	r := new(types.RequestShiftCreate)
	BindJson(ctx, r)

	r.CreatedBy = ctx.Request.Header.Get(middleware.ActorIDHeaderKey)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ShiftService.Create(r)
	})
}

func (shiftController shiftController) List(ctx *gin.Context) {
	r := new(types.RequestShiftQuery)
	BindQuery(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ShiftService.List(r)
	})
}

func (shiftController shiftController) Publish(ctx *gin.Context) {
	r := new(types.RequestShiftPublish)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ShiftService.Publish(r)
	})
}

func (shiftController shiftController) PublishWeek(ctx *gin.Context) {
	r := new(types.RequestShiftPublishWeek)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ShiftService.PublishWeek(r)
	})
}

func (shiftController shiftController) Delete(ctx *gin.Context) {
	r := new(types.RequestShiftDelete)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ShiftService.Delete(r)
	})
}
