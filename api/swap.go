package api

import (
	"shiftSync/internal/middleware"
	"shiftSync/internal/services"
	"shiftSync/internal/types"

	"github.com/gin-gonic/gin"
)

type swapController struct{}

var SwapController = new(swapController)

/*
换班/放班 API
/api/shiftsync/swap
*/
func (swapController swapController) API(gin *gin.RouterGroup) {
	a := gin.Group("swap")
	a.Use(
		middleware.AuditingLog(),
	)
	{
		a.POST("swapCreate", swapController.Create)
		a.POST("swapRespond", swapController.Respond)
		a.POST("swapClaim", swapController.Claim)
		a.POST("swapReview", swapController.Review)
		a.POST("swapCancel", swapController.Cancel)
	}

	b := gin.Group("swap")
	{
		b.GET("swapList", swapController.List)
	}
}

func (swapController swapController) Create(ctx *gin.Context) {
	r := new(types.RequestSwapCreate)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.SwapService.Create(r)
	})
}

func (swapController swapController) Respond(ctx *gin.Context) {
	r := new(types.RequestSwapRespond)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.SwapService.Respond(r)
	})
}

func (swapController swapController) Claim(ctx *gin.Context) {
	r := new(types.RequestSwapClaim)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.SwapService.Claim(r)
	})
}

func (swapController swapController) Review(ctx *gin.Context) {
	r := new(types.RequestSwapReview)
	BindJson(ctx, r)

	if r.ManagerId == "" {
		r.ManagerId = ctx.Request.Header.Get(middleware.ActorIDHeaderKey)
	}

	Service(ctx, func() (interface{}, interface{}) {
		return services.SwapService.Review(r)
	})
}

func (swapController swapController) Cancel(ctx *gin.Context) {
	r := new(types.RequestSwapCancel)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.SwapService.Cancel(r)
	})
}

func (swapController swapController) List(ctx *gin.Context) {
	r := new(types.RequestSwapQuery)
	BindQuery(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.SwapService.List(r)
	})
}
