package api

import (
	"shiftSync/internal/middleware"
	"shiftSync/internal/services"
	"shiftSync/internal/types"

	"github.com/gin-gonic/gin"
)

type assignmentController struct{}

var AssignmentController = new(assignmentController)

/*
排班 API
/api/shiftsync/assignment
*/
func (assignmentController assignmentController) API(gin *gin.RouterGroup) {
	a := gin.Group("assignment")
	a.Use(
		middleware.AuditingLog(),
	)
	{
		a.POST("assignmentCreate", assignmentController.Create)
	}

	b := gin.Group("assignment")
	{
		b.GET("assignmentPreview", assignmentController.Preview)
		b.GET("assignmentList", assignmentController.List)
	}
}

func (assignmentController assignmentController) Create(ctx *gin.Context) {
	r := new(types.RequestAssignmentCreate)
	BindJson(ctx, r)

	if r.ActorId == "" {
		r.ActorId = ctx.Request.Header.Get(middleware.ActorIDHeaderKey)
	}

	Service(ctx, func() (interface{}, interface{}) {
		return services.AssignmentService.Create(r)
	})
}

// Preview what-if 预览, 不落任何写
func (assignmentController assignmentController) Preview(ctx *gin.Context) {
	r := new(types.RequestAssignmentPreview)
	BindQuery(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.AssignmentService.Preview(r)
	})
}

func (assignmentController assignmentController) List(ctx *gin.Context) {
	r := new(types.RequestAssignmentQuery)
	BindQuery(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.AssignmentService.List(r)
	})
}
