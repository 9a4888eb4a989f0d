package ctx

import (
	"context"
	"sync"

	"shiftSync/internal/repo"
)

// Context 服务层共享上下文
// 持有数据层入口和可取消的后台任务句柄，服务与定时任务通过它访问存储。
type Context struct {
	Ctx        context.Context
	DB         *repo.RepoEntry
	ContextMap map[string]context.CancelFunc
	Mux        sync.Mutex
}

func NewContext(c context.Context, db *repo.RepoEntry) *Context {
	return &Context{
		Ctx:        c,
		DB:         db,
		ContextMap: make(map[string]context.CancelFunc),
	}
}
