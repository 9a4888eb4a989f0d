package middleware

import (
	"bytes"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zeromicro/go-zero/core/logc"
)

// ActorIDHeaderKey 操作人ID请求头
// 身份认证由外部网关负责, 服务只消费网关注入的操作人标识。
const ActorIDHeaderKey = "X-Actor-Id"

// AuditingLog 审计日志中间件
// 记录操作人、请求路径、请求体与响应状态, 供排班争议追溯。
func AuditingLog() gin.HandlerFunc {
	return func(context *gin.Context) {
		actor := context.Request.Header.Get(ActorIDHeaderKey)
		if actor == "" {
			actor = "unknown"
		}

		readBody, err := io.ReadAll(context.Request.Body)
		if err != nil {
			logc.Error(context.Request.Context(), err)
			return
		}
		// 将 body 数据放回请求中
		context.Request.Body = io.NopCloser(bytes.NewBuffer(readBody))

		start := time.Now()
		context.Next()

		logc.Infof(context.Request.Context(), "审计: actor=%s method=%s path=%s status=%d cost=%s body=%s",
			actor, context.Request.Method, context.Request.URL.Path,
			context.Writer.Status(), time.Since(start), string(readBody))
	}
}
