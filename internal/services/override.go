package services

import (
	"shiftSync/internal/ctx"
	"shiftSync/internal/models"
	"shiftSync/internal/types"
)

type overrideService struct {
	ctx *ctx.Context
}

// InterOverrideService 豁免台账只读服务
// 写入只发生在排班与审批路径的事务里, 没有独立的写接口。
type InterOverrideService interface {
	List(req interface{}) (interface{}, interface{})
}

func newInterOverrideService(ctx *ctx.Context) InterOverrideService {
	return &overrideService{
		ctx: ctx,
	}
}

func (os overrideService) List(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestOverrideQuery)

	if r.AssignmentId != "" {
		list, err := os.ctx.DB.Override().ListByAssignment(r.AssignmentId)
		if err != nil {
			return nil, err
		}
		return list, nil
	}

	list, total, err := os.ctx.DB.Override().List(models.Page{Index: r.Index, Size: r.Size})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"list":  list,
		"total": total,
	}, nil
}
