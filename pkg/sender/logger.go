package sender

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/zeromicro/go-zero/core/logc"
)

// LogSender 把事件写进结构化日志，作为兜底投递通道
type LogSender struct{}

func NewLogSender() EventInter {
	return &LogSender{}
}

func (l *LogSender) Send(params EventParams) error {
	body, err := sonic.Marshal(params)
	if err != nil {
		return fmt.Errorf("事件序列化失败, err: %s", err.Error())
	}
	logc.Info(context.Background(), fmt.Sprintf("事件 %s, body: %s", params.EventType, string(body)))
	return nil
}
