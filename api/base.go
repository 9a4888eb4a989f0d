package api

import (
	"errors"
	"fmt"

	"shiftSync/internal/services"
	"shiftSync/pkg/response"

	"github.com/gin-gonic/gin"
)

// Service 统一的服务调用包装
//
// 约束阻断带着完整的 ConstraintResult 返回(前端据此展示规则ID、
// 严重级别与替代人选); 其余业务错误只带文案。
func Service(ctx *gin.Context, fn func() (interface{}, interface{})) {
	// 参数绑定失败时已写入响应, 不再进入业务逻辑
	if ctx.IsAborted() {
		return
	}

	data, errValue := fn()
	if errValue != nil {
		err, ok := errValue.(error)
		if !ok {
			response.Fail(ctx, nil, fmt.Sprintf("%v", errValue))
			return
		}

		var constraintErr *services.ConstraintError
		if errors.As(err, &constraintErr) {
			response.Fail(ctx, constraintErr.Result, constraintErr.Error())
			return
		}
		response.Fail(ctx, nil, err.Error())
		return
	}
	response.Success(ctx, data)
}

// BindJson 绑定 JSON 请求体, 失败直接返回 400 文案并终止处理
func BindJson(ctx *gin.Context, req interface{}) {
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.Fail(ctx, nil, "参数解析失败: "+err.Error())
		ctx.Abort()
	}
}

// BindQuery 绑定查询参数
func BindQuery(ctx *gin.Context, req interface{}) {
	if err := ctx.ShouldBindQuery(req); err != nil {
		response.Fail(ctx, nil, "参数解析失败: "+err.Error())
		ctx.Abort()
	}
}
