package services

import (
	"fmt"
	"time"

	"shiftSync/internal/ctx"
	"shiftSync/internal/global"
	"shiftSync/internal/models"
	"shiftSync/internal/types"
	"shiftSync/pkg/idutil"
)

type availabilityService struct {
	ctx *ctx.Context
}

type InterAvailabilityService interface {
	Upsert(req interface{}) (interface{}, interface{})
	List(req interface{}) (interface{}, interface{})
	Delete(req interface{}) (interface{}, interface{})
}

func newInterAvailabilityService(ctx *ctx.Context) InterAvailabilityService {
	return &availabilityService{
		ctx: ctx,
	}
}

// Upsert 录入或更新可用时段
//
// weekly 条目按 (member, dayOfWeek) 去重, one_off 按 (member, date) 去重。
// 时间是员工自己时区的钟面值, StartTime/EndTime 均为空表示整天不可用。
func (avs availabilityService) Upsert(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestAvailabilityUpsert)

	if _, err := avs.ctx.DB.Member().Get(r.MemberId); err != nil {
		return nil, fmt.Errorf("员工 %s 不存在: %s", r.MemberId, err.Error())
	}

	entry := models.StaffAvailability{
		ID:         idutil.AvailId(),
		MemberId:   r.MemberId,
		Recurrence: models.Recurrence(r.Recurrence),
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Timezone:   r.Timezone,
		Notes:      r.Notes,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	if entry.Timezone == "" {
		entry.Timezone = "UTC"
	}
	if _, err := time.LoadLocation(entry.Timezone); err != nil {
		return nil, invalidState("录入时段", "时区 %q 无效", entry.Timezone)
	}

	switch entry.Recurrence {
	case models.RecurrenceWeekly:
		if r.DayOfWeek == nil || *r.DayOfWeek < 0 || *r.DayOfWeek > 6 {
			return nil, invalidState("录入时段", "weekly 条目的 dayOfWeek 必须在 0(周一)..6(周日) 之间")
		}
		entry.DayOfWeek = r.DayOfWeek
	case models.RecurrenceOneOff:
		if _, err := time.Parse(global.DateLayout, r.SpecificDate); err != nil {
			return nil, invalidState("录入时段", "one_off 条目的 specificDate 格式应为 %s", global.DateLayout)
		}
		entry.SpecificDate = r.SpecificDate
	default:
		return nil, invalidState("录入时段", "未知的重复类型 %q", r.Recurrence)
	}

	// 要么都为空(整天不可用), 要么都是合法的 15:04 且结束晚于开始
	if (r.StartTime == "") != (r.EndTime == "") {
		return nil, invalidState("录入时段", "startTime 与 endTime 必须同时为空或同时给出")
	}
	if r.StartTime != "" {
		start, err := time.Parse("15:04", r.StartTime)
		if err != nil {
			return nil, invalidState("录入时段", "startTime 格式应为 15:04")
		}
		end, err := time.Parse("15:04", r.EndTime)
		if err != nil {
			return nil, invalidState("录入时段", "endTime 格式应为 15:04")
		}
		if !end.After(start) {
			return nil, invalidState("录入时段", "endTime 必须晚于 startTime")
		}
	}

	if err := avs.ctx.DB.Availability().Upsert(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (avs availabilityService) List(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestAvailabilityQuery)
	list, err := avs.ctx.DB.Availability().ListByMember(r.MemberId)
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (avs availabilityService) Delete(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestAvailabilityDelete)
	if err := avs.ctx.DB.Availability().Delete(r.ID); err != nil {
		return nil, err
	}
	return nil, nil
}
