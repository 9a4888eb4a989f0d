package initialization

import (
	"context"
	"fmt"

	"shiftSync/api"
	"shiftSync/internal/global"

	"github.com/gin-gonic/gin"
	"github.com/zeromicro/go-zero/core/logc"
)

// InitRoute 装配路由并启动 HTTP 服务, 阻塞直至进程退出
func InitRoute() {
	mode := global.Config.Server.Mode
	if mode != "" {
		gin.SetMode(mode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/api/shiftsync/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok", "version": global.Version})
	})

	group := engine.Group("/api/shiftsync")
	{
		api.MemberController.API(group)
		api.AvailabilityController.API(group)
		api.ShiftController.API(group)
		api.AssignmentController.API(group)
		api.SwapController.API(group)
		api.OverrideController.API(group)
	}

	addr := ":" + global.Config.Server.Port
	logc.Infof(context.Background(), "HTTP 服务启动, 监听 %s", addr)
	if err := engine.Run(addr); err != nil {
		panic(fmt.Sprintf("HTTP 服务启动失败: %s", err))
	}
}
