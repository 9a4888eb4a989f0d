package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code int         `json:"code"`
	Data interface{} `json:"data"`
	Msg  string      `json:"msg"`
}

// Success 请求成功的统一返回
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, Response{
		Code: 200,
		Data: data,
		Msg:  "success",
	})
}

// Fail 业务失败的统一返回，HTTP 状态码仍为 200，业务码区分
func Fail(ctx *gin.Context, data interface{}, msg string) {
	ctx.JSON(http.StatusOK, Response{
		Code: 400,
		Data: data,
		Msg:  msg,
	})
}
