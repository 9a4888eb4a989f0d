package services

import (
	"fmt"
	"time"

	"shiftSync/internal/ctx"
	"shiftSync/internal/global"
	"shiftSync/internal/models"
	"shiftSync/internal/types"
	"shiftSync/pkg/idutil"
	"shiftSync/pkg/sender"
)

type shiftService struct {
	ctx *ctx.Context
}

type InterShiftService interface {
	Create(req interface{}) (interface{}, interface{})
	List(req interface{}) (interface{}, interface{})
	Publish(req interface{}) (interface{}, interface{})
	PublishWeek(req interface{}) (interface{}, interface{})
	Delete(req interface{}) (interface{}, interface{})
}

func newInterShiftService(ctx *ctx.Context) InterShiftService {
	return &shiftService{
		ctx: ctx,
	}
}

// Create 创建班次（草稿态, 员工不可见）
func (s shiftService) Create(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestShiftCreate)

	start, err := time.Parse(time.RFC3339, r.StartUtc)
	if err != nil {
		return nil, fmt.Errorf("startUtc 格式错误, 应为 RFC3339: %s", err.Error())
	}
	end, err := time.Parse(time.RFC3339, r.EndUtc)
	if err != nil {
		return nil, fmt.Errorf("endUtc 格式错误, 应为 RFC3339: %s", err.Error())
	}
	if !end.After(start) {
		return nil, invalidState("创建班次", "结束时间必须晚于开始时间")
	}
	if end.Sub(start) > 24*time.Hour {
		return nil, invalidState("创建班次", "单个班次不能超过 24 小时")
	}

	location, err := s.ctx.DB.Location().Get(r.LocationId)
	if err != nil {
		return nil, fmt.Errorf("门店 %s 不存在: %s", r.LocationId, err.Error())
	}
	if !location.GetActive() {
		return nil, invalidState("创建班次", "门店 %s 已停业", location.Name)
	}
	if _, err := s.ctx.DB.Member().GetSkill(r.RequiredSkillId); err != nil {
		return nil, fmt.Errorf("技能 %s 不存在: %s", r.RequiredSkillId, err.Error())
	}

	headcount := r.HeadcountNeeded
	if headcount <= 0 {
		headcount = 1
	}
	cutoff := r.EditCutoffHours
	if cutoff <= 0 {
		cutoff = global.Config.Scheduling.DefaultEditCutoffHours
	}

	published := false
	now := time.Now().UTC()
	shift := models.Shift{
		ID:              idutil.ShiftId(),
		LocationId:      r.LocationId,
		RequiredSkillId: r.RequiredSkillId,
		HeadcountNeeded: headcount,
		StartUtc:        start.UTC(),
		EndUtc:          end.UTC(),
		IsPublished:     &published,
		EditCutoffHours: cutoff,
		Notes:           r.Notes,
		CreatedBy:       r.CreatedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.ctx.DB.Shift().Create(shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// List 查询班次及其人员配置情况，时间字段换算为门店当地时间
func (s shiftService) List(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestShiftQuery)

	var from, to time.Time
	var err error
	if r.From != "" {
		if from, err = time.Parse(time.RFC3339, r.From); err != nil {
			return nil, fmt.Errorf("from 格式错误, 应为 RFC3339: %s", err.Error())
		}
	}
	if r.To != "" {
		if to, err = time.Parse(time.RFC3339, r.To); err != nil {
			return nil, fmt.Errorf("to 格式错误, 应为 RFC3339: %s", err.Error())
		}
	}

	shifts, err := s.ctx.DB.Shift().List(r.LocationId, from, to)
	if err != nil {
		return nil, err
	}

	locations, err := s.ctx.DB.Location().List()
	if err != nil {
		return nil, err
	}
	locMap := make(map[string]*time.Location, len(locations))
	for _, l := range locations {
		if loc, err := l.LoadLocation(); err == nil {
			locMap[l.ID] = loc
		}
	}

	premiumDays := global.Config.Scheduling.PremiumWeekdays()
	premiumHour := global.Config.Scheduling.PremiumShiftStartHour

	out := make([]types.ResponseShiftStaffing, 0, len(shifts))
	for _, shift := range shifts {
		count, err := s.ctx.DB.Assignment().CountActiveByShift(shift.ID)
		if err != nil {
			return nil, err
		}

		item := types.ResponseShiftStaffing{
			Shift:         shift,
			AssignedCount: count,
			FullyStaffed:  count >= int64(shift.HeadcountNeeded),
		}
		if loc, ok := locMap[shift.LocationId]; ok {
			item.LocalStart = shift.StartUtc.In(loc).Format(global.Layout)
			item.LocalEnd = shift.EndUtc.In(loc).Format(global.Layout)
			item.IsOvernight = shift.IsOvernight(loc)
			item.IsPremium = shift.IsPremium(premiumDays, premiumHour, loc)
		}
		out = append(out, item)
	}
	return out, nil
}

// Publish 发布或取消发布单个班次
// 取消发布属于结构性编辑，过了编辑锁定时刻不再允许。
func (s shiftService) Publish(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestShiftPublish)
	now := time.Now().UTC()

	shift, err := s.ctx.DB.Shift().Get(r.ID)
	if err != nil {
		return nil, fmt.Errorf("班次 %s 不存在: %s", r.ID, err.Error())
	}

	if r.Publish {
		if shift.GetPublished() {
			return shift, nil
		}
	} else {
		if !shift.GetPublished() {
			return shift, nil
		}
		if shift.IsPastEditCutoff(now) {
			return nil, invalidState("取消发布", "距开班不足 %d 小时, 班次已锁定", shift.EditCutoffHours)
		}
	}

	if err := s.ctx.DB.Shift().SetPublished(r.ID, r.Publish, r.ActorId, now); err != nil {
		return nil, err
	}

	eventType := "shift.published"
	if !r.Publish {
		eventType = "shift.unpublished"
	}
	sender.Publish(s.ctx.Ctx, sender.EventParams{
		EventType: eventType,
		ActorId:   r.ActorId,
		Payload:   map[string]interface{}{"shiftId": shift.ID},
	})

	return s.ctx.DB.Shift().Get(r.ID)
}

// PublishWeek 把一周的草稿班次批量发布
// 周窗口按门店当地时区解释: [周一零点, 下周一零点)。
func (s shiftService) PublishWeek(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestShiftPublishWeek)
	now := time.Now().UTC()

	location, err := s.ctx.DB.Location().Get(r.LocationId)
	if err != nil {
		return nil, fmt.Errorf("门店 %s 不存在: %s", r.LocationId, err.Error())
	}
	loc, err := location.LoadLocation()
	if err != nil {
		return nil, fmt.Errorf("门店 %s 的时区 %q 无效: %s", location.Name, location.Timezone, err.Error())
	}

	weekStart, err := time.ParseInLocation(global.DateLayout, r.WeekStart, loc)
	if err != nil {
		return nil, fmt.Errorf("weekStart 格式错误, 应为 %s: %s", global.DateLayout, err.Error())
	}
	if weekStart.Weekday() != time.Monday {
		return nil, invalidState("整周发布", "weekStart 必须是周一")
	}
	weekEnd := weekStart.AddDate(0, 0, 7)

	drafts, err := s.ctx.DB.Shift().ListUnpublished(r.LocationId, weekStart.UTC(), weekEnd.UTC())
	if err != nil {
		return nil, err
	}

	published := make([]string, 0, len(drafts))
	for _, shift := range drafts {
		if err := s.ctx.DB.Shift().SetPublished(shift.ID, true, r.ActorId, now); err != nil {
			return nil, fmt.Errorf("发布班次 %s 失败: %s", shift.ID, err.Error())
		}
		published = append(published, shift.ID)
	}

	sender.Publish(s.ctx.Ctx, sender.EventParams{
		EventType: "shift.week_published",
		ActorId:   r.ActorId,
		Payload: map[string]interface{}{
			"locationId": r.LocationId,
			"weekStart":  r.WeekStart,
			"shiftIds":   published,
		},
	})
	return published, nil
}

// Delete 删除草稿班次
// 已发布的班次不允许物理删除, 需先取消发布; 已有活跃排班的也不允许删。
func (s shiftService) Delete(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestShiftDelete)

	shift, err := s.ctx.DB.Shift().Get(r.ID)
	if err != nil {
		return nil, fmt.Errorf("班次 %s 不存在: %s", r.ID, err.Error())
	}
	if shift.GetPublished() {
		return nil, invalidState("删除班次", "已发布的班次不能删除, 请先取消发布")
	}

	count, err := s.ctx.DB.Assignment().CountActiveByShift(r.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, invalidState("删除班次", "班次上仍有 %d 条活跃排班", count)
	}

	if err := s.ctx.DB.Shift().Delete(r.ID); err != nil {
		return nil, err
	}
	return nil, nil
}
