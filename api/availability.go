package api

import (
	"shiftSync/internal/middleware"
	"shiftSync/internal/services"
	"shiftSync/internal/types"

	"github.com/gin-gonic/gin"
)

type availabilityController struct{}

var AvailabilityController = new(availabilityController)

/*
可用时段 API
/api/shiftsync/availability
*/
func (availabilityController availabilityController) API(gin *gin.RouterGroup) {
	a := gin.Group("availability")
	a.Use(
		middleware.AuditingLog(),
	)
	{
		a.POST("availabilityUpsert", availabilityController.Upsert)
		a.POST("availabilityDelete", availabilityController.Delete)
	}

	b := gin.Group("availability")
	{
		b.GET("availabilityList", availabilityController.List)
	}
}

func (availabilityController availabilityController) Upsert(ctx *gin.Context) {
	r := new(types.RequestAvailabilityUpsert)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.AvailabilityService.Upsert(r)
	})
}

func (availabilityController availabilityController) List(ctx *gin.Context) {
	r := new(types.RequestAvailabilityQuery)
	BindQuery(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.AvailabilityService.List(r)
	})
}

func (availabilityController availabilityController) Delete(ctx *gin.Context) {
	r := new(types.RequestAvailabilityDelete)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.AvailabilityService.Delete(r)
	})
}
