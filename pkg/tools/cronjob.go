package tools

import (
	"github.com/robfig/cron/v3"
)

// NewCronjob 注册并启动一个按标准五段 cron 表达式触发的定时任务
// 调用方负责保证任务函数自身幂等；重复触发不应产生副作用叠加。
func NewCronjob(spec string, fn func()) *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc(spec, fn); err != nil {
		panic("注册定时任务失败: " + err.Error())
	}
	c.Start()
	return c
}
