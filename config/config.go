package config

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/zeromicro/go-zero/core/logc"
)

type App struct {
	Server     Server     `json:"server"`
	MySQL      MySQL      `json:"mysql"`
	Scheduling Scheduling `json:"scheduling"`
	Event      Event      `json:"event"`
}

type Server struct {
	Port string `json:"port"`
	Mode string `json:"mode"`
}

type MySQL struct {
	Host    string `json:"host"`
	Port    string `json:"port"`
	User    string `json:"user"`
	Pass    string `json:"pass"`
	DBName  string `json:"dbName"`
	Timeout string `json:"timeout"`
}

// Event 出站事件配置
// WebhookUrl 为空时仅使用日志通道
type Event struct {
	WebhookUrl string `json:"webhookUrl"`
	Timeout    int    `json:"timeout"`
}

// Scheduling 排班规则配置
// 所有阈值均可通过配置文件或环境变量覆盖，默认值与产品规则一致。
// 该结构在进程启动后视为不可变，约束引擎通过构造函数显式接收，
// 不允许在运行期读取全局可变状态。
type Scheduling struct {
	MinRestHours            int      `json:"minRestHours"`            // 两班之间的最小休息小时数
	WeeklyHoursWarning      float64  `json:"weeklyHoursWarning"`      // 周工时软性告警阈值
	WeeklyHoursHardLimit    float64  `json:"weeklyHoursHardLimit"`    // 周工时硬性上限
	DailyHoursWarning       float64  `json:"dailyHoursWarning"`       // 日工时软性告警阈值
	DailyHoursHardLimit     float64  `json:"dailyHoursHardLimit"`     // 日工时硬性上限
	ConsecutiveDaysWarning  int      `json:"consecutiveDaysWarning"`  // 连续工作天数告警阈值
	ConsecutiveDaysOverride int      `json:"consecutiveDaysOverride"` // 连续工作天数需要主管豁免的阈值
	DefaultEditCutoffHours  int      `json:"defaultEditCutoffHours"`  // 班次开始前多少小时禁止结构性编辑
	MaxPendingSwapRequests  int      `json:"maxPendingSwapRequests"`  // 单个员工同时存在的未决换班请求上限
	DropRequestExpiryHours  int      `json:"dropRequestExpiryHours"`  // 放班请求在班次开始前多少小时过期
	SwapAcceptExpiryHours   int      `json:"swapAcceptExpiryHours"`   // 换班请求等待对方响应的时限
	PremiumShiftDays        []string `json:"premiumShiftDays"`        // 高峰班次的星期（如 Friday/Saturday）
	PremiumShiftStartHour   int      `json:"premiumShiftStartHour"`   // 高峰班次的起始小时（所在门店当地时间）
}

// MinRest 返回最小休息间隔
func (s Scheduling) MinRest() time.Duration {
	return time.Duration(s.MinRestHours) * time.Hour
}

// PremiumWeekdays 将配置的星期名称解析为集合
func (s Scheduling) PremiumWeekdays() map[time.Weekday]bool {
	names := map[string]time.Weekday{
		"Sunday": time.Sunday, "Monday": time.Monday, "Tuesday": time.Tuesday,
		"Wednesday": time.Wednesday, "Thursday": time.Thursday,
		"Friday": time.Friday, "Saturday": time.Saturday,
	}
	set := make(map[time.Weekday]bool, len(s.PremiumShiftDays))
	for _, d := range s.PremiumShiftDays {
		if wd, ok := names[d]; ok {
			set[wd] = true
		}
	}
	return set
}

func InitConfig() App {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("SHIFTSYNC")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// 允许无配置文件启动，全部走默认值和环境变量
		logc.Infof(context.Background(), "未读取到配置文件, 使用默认配置, msg: %s", err.Error())
	}

	var app App
	if err := v.Unmarshal(&app); err != nil {
		panic(fmt.Sprintf("解析配置失败: %s", err))
	}

	return app
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "9001")
	v.SetDefault("server.mode", "release")

	v.SetDefault("mysql.host", "127.0.0.1")
	v.SetDefault("mysql.port", "3306")
	v.SetDefault("mysql.user", "root")
	v.SetDefault("mysql.pass", "")
	v.SetDefault("mysql.dbName", "shiftsync")
	v.SetDefault("mysql.timeout", "10s")

	v.SetDefault("event.webhookUrl", "")
	v.SetDefault("event.timeout", 5)

	v.SetDefault("scheduling.minRestHours", 10)
	v.SetDefault("scheduling.weeklyHoursWarning", 35)
	v.SetDefault("scheduling.weeklyHoursHardLimit", 40)
	v.SetDefault("scheduling.dailyHoursWarning", 8)
	v.SetDefault("scheduling.dailyHoursHardLimit", 12)
	v.SetDefault("scheduling.consecutiveDaysWarning", 6)
	v.SetDefault("scheduling.consecutiveDaysOverride", 7)
	v.SetDefault("scheduling.defaultEditCutoffHours", 48)
	v.SetDefault("scheduling.maxPendingSwapRequests", 3)
	v.SetDefault("scheduling.dropRequestExpiryHours", 24)
	v.SetDefault("scheduling.swapAcceptExpiryHours", 24)
	v.SetDefault("scheduling.premiumShiftDays", []string{"Friday", "Saturday"})
	v.SetDefault("scheduling.premiumShiftStartHour", 17)
}
