package sender

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"shiftSync/internal/global"

	"github.com/bytedance/sonic"
)

// WebhookSender 把事件 POST 到配置的回调地址
type WebhookSender struct{}

func NewWebhookSender() EventInter {
	return &WebhookSender{}
}

func (w *WebhookSender) Send(params EventParams) error {
	body, err := sonic.Marshal(params)
	if err != nil {
		return fmt.Errorf("事件序列化失败, err: %s", err.Error())
	}

	timeout := time.Duration(global.Config.Event.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	resp, err := client.Post(global.Config.Event.WebhookUrl, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("请求回调地址失败, err: %s", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("回调地址返回异常状态码 %d, body: %s", resp.StatusCode, string(msg))
	}
	return nil
}
