package initialization

import (
	"context"
	"time"

	"shiftSync/config"
	"shiftSync/internal/ctx"
	"shiftSync/internal/global"
	"shiftSync/internal/repo"
	"shiftSync/internal/services"
	"shiftSync/pkg/tools"

	"github.com/zeromicro/go-zero/core/logc"
)

func InitBasic() {

	// 初始化配置
	global.Config = config.InitConfig()

	dbRepo := repo.NewRepoEntry()
	ctx := ctx.NewContext(context.Background(), dbRepo)

	services.NewServices(ctx)

	// 定时任务，清理过期的放班/换班请求
	go expireSwapRequests(ctx)
}

// expireSwapRequests 请求过期清理调度
// 每 10 分钟跑一轮；清理逻辑自身幂等，错过或重复触发都无副作用。
func expireSwapRequests(ctx *ctx.Context) {
	tools.NewCronjob("*/10 * * * *", func() {
		now := time.Now().UTC()

		if err := services.SwapService.ExpireDropRequests(now); err != nil {
			logc.Errorf(ctx.Ctx, "清理过期放班请求失败: %s", err.Error())
		}
		if err := services.SwapService.ExpireStaleSwaps(now); err != nil {
			logc.Errorf(ctx.Ctx, "清理超时换班请求失败: %s", err.Error())
		}
	})
}
