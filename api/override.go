package api

import (
	"shiftSync/internal/services"
	"shiftSync/internal/types"

	"github.com/gin-gonic/gin"
)

type overrideController struct{}

var OverrideController = new(overrideController)

/*
主管豁免台账 API（只读）
/api/shiftsync/override
*/
func (overrideController overrideController) API(gin *gin.RouterGroup) {
	a := gin.Group("override")
	{
		a.GET("overrideList", overrideController.List)
	}
}

func (overrideController overrideController) List(ctx *gin.Context) {
	r := new(types.RequestOverrideQuery)
	BindQuery(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.OverrideService.List(r)
	})
}
