package sender

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shiftSync/internal/global"

	"github.com/stretchr/testify/require"
)

// 业务路径不等待 Webhook 响应, 投递在后台完成
func TestPublishDoesNotBlockOnWebhook(t *testing.T) {
	delivered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		close(delivered)
	}))
	defer srv.Close()

	global.Config.Event.WebhookUrl = srv.URL
	global.Config.Event.Timeout = 5
	defer func() { global.Config.Event.WebhookUrl = "" }()

	start := time.Now()
	Publish(context.Background(), EventParams{
		EventType: "assignment.created",
		Payload:   map[string]interface{}{"assignmentId": "asg_test"},
	})
	require.Less(t, time.Since(start), 200*time.Millisecond)

	select {
	case <-delivered:
	case <-time.After(3 * time.Second):
		t.Fatal("事件未投递到回调地址")
	}
}
