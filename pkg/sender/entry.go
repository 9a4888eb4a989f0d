package sender

import (
	"context"
	"fmt"
	"time"

	"shiftSync/internal/global"

	"github.com/zeromicro/go-zero/core/logc"
)

type (
	// EventParams 排班领域事件
	// Payload 只放标识符和少量快照字段，订阅方需要详情时自行回查
	EventParams struct {
		// 事件类型，如 assignment.created / swap.approved / shift.published
		EventType string                 `json:"eventType"`
		ActorId   string                 `json:"actorId"`
		Occurred  time.Time              `json:"occurred"`
		Payload   map[string]interface{} `json:"payload"`
	}

	// EventInter 事件投递接口
	EventInter interface {
		Send(params EventParams) error
	}
)

// Publish 发布领域事件
// 投递在后台 goroutine 完成，业务路径不等待 Webhook 响应；
// 投递失败只记日志不回传错误：业务写入已落库，通知属于尽力而为。
func Publish(ctx context.Context, params EventParams) {
	if params.Occurred.IsZero() {
		params.Occurred = time.Now().UTC()
	}

	go func() {
		for _, s := range senders() {
			if err := s.Send(params); err != nil {
				logc.Error(ctx, fmt.Sprintf("事件 %s 投递失败, err: %s", params.EventType, err.Error()))
			}
		}
	}()
}

// senders 组装启用的事件投递通道
// 日志通道始终开启；配置了 webhookUrl 时追加 Webhook 通道
func senders() []EventInter {
	list := []EventInter{NewLogSender()}
	if global.Config.Event.WebhookUrl != "" {
		list = append(list, NewWebhookSender())
	}
	return list
}
