package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"shiftSync/config"
	"shiftSync/constraint"
	"shiftSync/internal/ctx"
	"shiftSync/internal/global"
	"shiftSync/internal/models"
	"shiftSync/internal/repo"
	"shiftSync/internal/types"
	"shiftSync/pkg/idutil"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixture 内存库上的完整服务栈
// 门店时区用 UTC, 让当地日界与测试时间直接对应。
type fixture struct {
	c        *ctx.Context
	location models.Location
	skill    models.Skill
	manager  models.Member
	staffA   models.Member
	staffB   models.Member
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	global.Config = config.InitConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	c := ctx.NewContext(context.Background(), repo.NewRepoEntryWithDB(db))
	NewServices(c)

	f := &fixture{c: c}

	active := true
	f.location = models.Location{ID: idutil.LocationId(), Name: "测试门店", Timezone: "UTC", IsActive: &active}
	require.NoError(t, c.DB.Location().Create(f.location))

	f.skill = models.Skill{ID: idutil.SkillId(), Name: "bartender"}
	require.NoError(t, c.DB.Member().CreateSkill(f.skill))

	f.manager = f.addMember(t, "王经理", models.MemberRoleManager)
	f.staffA = f.addMember(t, "张晓", models.MemberRoleStaff)
	f.staffB = f.addMember(t, "李强", models.MemberRoleStaff)
	return f
}

// addMember 创建员工并配齐技能、认证与全周可用时段
func (f *fixture) addMember(t *testing.T, name string, role models.MemberRole) models.Member {
	t.Helper()
	active := true
	m := models.Member{
		ID:       idutil.MemberId(),
		Name:     name,
		Role:     role,
		IsActive: &active,
		Skills:   []string{f.skill.ID},
	}
	require.NoError(t, f.c.DB.Member().Create(m))

	require.NoError(t, f.c.DB.Certification().Create(models.LocationCertification{
		ID:          idutil.CertId(),
		MemberId:    m.ID,
		LocationId:  f.location.ID,
		IsActive:    &active,
		CertifiedBy: "mem_admin",
		CertifiedAt: time.Now().UTC(),
	}))

	for d := 0; d < 7; d++ {
		day := d
		require.NoError(t, f.c.DB.Availability().Upsert(models.StaffAvailability{
			ID:         idutil.AvailId(),
			MemberId:   m.ID,
			Recurrence: models.RecurrenceWeekly,
			DayOfWeek:  &day,
			StartTime:  "00:00",
			EndTime:    "23:59",
			Timezone:   "UTC",
		}))
	}
	return m
}

// dayAt 距今 offsetDays 天的指定整点 (UTC)
func dayAt(offsetDays, hour int) time.Time {
	n := time.Now().UTC().AddDate(0, 0, offsetDays)
	return time.Date(n.Year(), n.Month(), n.Day(), hour, 0, 0, 0, time.UTC)
}

func (f *fixture) addShift(t *testing.T, start, end time.Time) models.Shift {
	t.Helper()
	published := true
	s := models.Shift{
		ID:              idutil.ShiftId(),
		LocationId:      f.location.ID,
		RequiredSkillId: f.skill.ID,
		HeadcountNeeded: 1,
		StartUtc:        start,
		EndUtc:          end,
		IsPublished:     &published,
		EditCutoffHours: 48,
	}
	require.NoError(t, f.c.DB.Shift().Create(s))
	return s
}

func (f *fixture) addAssignment(t *testing.T, shift models.Shift, member models.Member, status models.AssignmentStatus) models.ShiftAssignment {
	t.Helper()
	now := time.Now().UTC()
	a := models.ShiftAssignment{
		ID:         idutil.AssignmentId(),
		ShiftId:    shift.ID,
		MemberId:   member.ID,
		Status:     status,
		AssignedBy: f.manager.ID,
		AssignedAt: now,
		UpdatedAt:  now,
	}
	require.NoError(t, f.c.DB.Assignment().Create(a))
	return a
}

func TestAssignHappyPath(t *testing.T) {
	f := newFixture(t)
	shift := f.addShift(t, dayAt(4, 12), dayAt(4, 18))

	data, errVal := AssignmentService.Create(&types.RequestAssignmentCreate{
		ShiftId:  shift.ID,
		MemberId: f.staffA.ID,
		ActorId:  f.manager.ID,
	})
	require.Nil(t, errVal)

	resp := data.(types.ResponseAssignmentCreate)
	require.Equal(t, models.AssignmentStatusAssigned, resp.Assignment.Status)
	require.Equal(t, constraint.SeverityOK, resp.Result.Severity)

	overrides, err := f.c.DB.Override().ListByAssignment(resp.Assignment.ID)
	require.NoError(t, err)
	require.Empty(t, overrides)
}

func TestAssignRejectsNonManager(t *testing.T) {
	f := newFixture(t)
	shift := f.addShift(t, dayAt(4, 12), dayAt(4, 18))

	_, errVal := AssignmentService.Create(&types.RequestAssignmentCreate{
		ShiftId:  shift.ID,
		MemberId: f.staffA.ID,
		ActorId:  f.staffB.ID,
	})
	require.NotNil(t, errVal)

	var stateErr *InvalidStateError
	require.True(t, errors.As(errVal.(error), &stateErr))
}

func TestAssignBlockedBySkillMismatch(t *testing.T) {
	f := newFixture(t)
	shift := f.addShift(t, dayAt(4, 12), dayAt(4, 18))

	otherSkill := models.Skill{ID: idutil.SkillId(), Name: "line_cook"}
	require.NoError(t, f.c.DB.Member().CreateSkill(otherSkill))
	shift.RequiredSkillId = otherSkill.ID
	require.NoError(t, f.c.DB.Shift().Delete(shift.ID))
	require.NoError(t, f.c.DB.Shift().Create(shift))

	_, errVal := AssignmentService.Create(&types.RequestAssignmentCreate{
		ShiftId:  shift.ID,
		MemberId: f.staffA.ID,
		ActorId:  f.manager.ID,
	})
	require.NotNil(t, errVal)

	var constraintErr *ConstraintError
	require.True(t, errors.As(errVal.(error), &constraintErr))
	require.Equal(t, constraint.ConstraintSkillMismatch, constraintErr.Result.ConstraintId)

	exists, err := f.c.DB.Assignment().HasActiveForShift(shift.ID, f.staffA.ID)
	require.NoError(t, err)
	require.False(t, exists)
}

// 第 7 个连续工作日: 无理由被拒且不落写, 附理由通过且台账恰好一条
func TestAssignSeventhDayOverride(t *testing.T) {
	f := newFixture(t)

	for d := 1; d <= 6; d++ {
		shift := f.addShift(t, dayAt(d, 12), dayAt(d, 16))
		f.addAssignment(t, shift, f.staffA, models.AssignmentStatusAssigned)
	}
	seventh := f.addShift(t, dayAt(7, 12), dayAt(7, 16))

	// 不带理由: 返回 override_required 结论, 不落任何写
	_, errVal := AssignmentService.Create(&types.RequestAssignmentCreate{
		ShiftId:  seventh.ID,
		MemberId: f.staffA.ID,
		ActorId:  f.manager.ID,
	})
	require.NotNil(t, errVal)

	var constraintErr *ConstraintError
	require.True(t, errors.As(errVal.(error), &constraintErr))
	require.Equal(t, constraint.SeverityOverrideRequired, constraintErr.Result.Severity)
	require.Equal(t, constraint.ConstraintConsecutiveDays7, constraintErr.Result.ConstraintId)

	exists, err := f.c.DB.Assignment().HasActiveForShift(seventh.ID, f.staffA.ID)
	require.NoError(t, err)
	require.False(t, exists)

	// 附理由: 排班与豁免台账一并写入
	data, errVal := AssignmentService.Create(&types.RequestAssignmentCreate{
		ShiftId:        seventh.ID,
		MemberId:       f.staffA.ID,
		ActorId:        f.manager.ID,
		OverrideReason: "旺季缺人, 员工本人同意",
	})
	require.Nil(t, errVal)

	resp := data.(types.ResponseAssignmentCreate)
	overrides, err := f.c.DB.Override().ListByAssignment(resp.Assignment.ID)
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	require.Equal(t, constraint.ConstraintConsecutiveDays7, overrides[0].ConstraintViolated)
	require.Equal(t, f.manager.ID, overrides[0].ManagerId)
}

func TestSwapDeclineRestoresAssignment(t *testing.T) {
	f := newFixture(t)
	shift := f.addShift(t, dayAt(4, 12), dayAt(4, 18))
	assignment := f.addAssignment(t, shift, f.staffA, models.AssignmentStatusAssigned)

	data, errVal := SwapService.Create(&types.RequestSwapCreate{
		AssignmentId: assignment.ID,
		RequesterId:  f.staffA.ID,
		RequestType:  string(models.SwapTypeSwap),
		TargetId:     f.staffB.ID,
	})
	require.Nil(t, errVal)
	request := data.(models.SwapRequest)
	require.Equal(t, models.SwapStatusPendingAcceptance, request.Status)

	// 发起后排班进入 swap_pending
	a, err := f.c.DB.Assignment().Get(assignment.ID)
	require.NoError(t, err)
	require.Equal(t, models.AssignmentStatusSwapPending, a.Status)

	_, errVal = SwapService.Respond(&types.RequestSwapRespond{
		ID:      request.ID,
		ActorId: f.staffB.ID,
		Accept:  false,
	})
	require.Nil(t, errVal)

	got, err := f.c.DB.Swap().Get(request.ID)
	require.NoError(t, err)
	require.Equal(t, models.SwapStatusRejected, got.Status)

	a, err = f.c.DB.Assignment().Get(assignment.ID)
	require.NoError(t, err)
	require.Equal(t, models.AssignmentStatusAssigned, a.Status)
}

// 放班全链路: 发起 → 认领 → 主管批准
func TestDropLifecycleApproved(t *testing.T) {
	f := newFixture(t)
	shift := f.addShift(t, dayAt(4, 12), dayAt(4, 18))
	assignment := f.addAssignment(t, shift, f.staffA, models.AssignmentStatusAssigned)

	data, errVal := SwapService.Create(&types.RequestSwapCreate{
		AssignmentId: assignment.ID,
		RequesterId:  f.staffA.ID,
		RequestType:  string(models.SwapTypeDrop),
	})
	require.Nil(t, errVal)
	request := data.(models.SwapRequest)
	require.Equal(t, models.SwapStatusPendingPickup, request.Status)
	require.NotNil(t, request.ExpiresAt)

	_, errVal = SwapService.Claim(&types.RequestSwapClaim{
		ID:      request.ID,
		ActorId: f.staffB.ID,
	})
	require.Nil(t, errVal)

	data, errVal = SwapService.Review(&types.RequestSwapReview{
		ID:        request.ID,
		ManagerId: f.manager.ID,
		Approve:   true,
	})
	require.Nil(t, errVal)
	review := data.(types.ResponseSwapReview)
	require.Equal(t, models.SwapStatusApproved, review.Request.Status)
	require.Equal(t, f.staffB.ID, review.NewAssignment.MemberId)

	// 原排班收尾为 dropped, 接班人的新排班生效
	old, err := f.c.DB.Assignment().Get(assignment.ID)
	require.NoError(t, err)
	require.Equal(t, models.AssignmentStatusDropped, old.Status)

	exists, err := f.c.DB.Assignment().HasActiveForShift(shift.ID, f.staffB.ID)
	require.NoError(t, err)
	require.True(t, exists)
}

func TestClaimRequiresQualification(t *testing.T) {
	f := newFixture(t)
	shift := f.addShift(t, dayAt(4, 12), dayAt(4, 18))
	assignment := f.addAssignment(t, shift, f.staffA, models.AssignmentStatusAssigned)

	data, errVal := SwapService.Create(&types.RequestSwapCreate{
		AssignmentId: assignment.ID,
		RequesterId:  f.staffA.ID,
		RequestType:  string(models.SwapTypeDrop),
	})
	require.Nil(t, errVal)
	request := data.(models.SwapRequest)

	// 无技能的新员工不能认领
	active := true
	outsider := models.Member{ID: idutil.MemberId(), Name: "赵无技", Role: models.MemberRoleStaff, IsActive: &active}
	require.NoError(t, f.c.DB.Member().Create(outsider))

	_, errVal = SwapService.Claim(&types.RequestSwapClaim{
		ID:      request.ID,
		ActorId: outsider.ID,
	})
	require.NotNil(t, errVal)

	got, err := f.c.DB.Swap().Get(request.ID)
	require.NoError(t, err)
	require.Equal(t, models.SwapStatusPendingPickup, got.Status)
}

// 指定接班同事必须具备技能与有效认证, 与认领同一套资格快筛
func TestSwapCreateRequiresQualifiedTarget(t *testing.T) {
	f := newFixture(t)
	shift := f.addShift(t, dayAt(4, 12), dayAt(4, 18))
	assignment := f.addAssignment(t, shift, f.staffA, models.AssignmentStatusAssigned)

	active := true
	unskilled := models.Member{ID: idutil.MemberId(), Name: "赵无技", Role: models.MemberRoleStaff, IsActive: &active}
	require.NoError(t, f.c.DB.Member().Create(unskilled))

	_, errVal := SwapService.Create(&types.RequestSwapCreate{
		AssignmentId: assignment.ID,
		RequesterId:  f.staffA.ID,
		RequestType:  string(models.SwapTypeSwap),
		TargetId:     unskilled.ID,
	})
	require.NotNil(t, errVal)

	var stateErr *InvalidStateError
	require.True(t, errors.As(errVal.(error), &stateErr))

	// 请求未落库, 排班也未进入 swap_pending
	a, err := f.c.DB.Assignment().Get(assignment.ID)
	require.NoError(t, err)
	require.Equal(t, models.AssignmentStatusAssigned, a.Status)
}

// addShiftWithHeadcount 多人班次
func (f *fixture) addShiftWithHeadcount(t *testing.T, start, end time.Time, headcount int) models.Shift {
	t.Helper()
	published := true
	s := models.Shift{
		ID:              idutil.ShiftId(),
		LocationId:      f.location.ID,
		RequiredSkillId: f.skill.ID,
		HeadcountNeeded: headcount,
		StartUtc:        start,
		EndUtc:          end,
		IsPublished:     &published,
		EditCutoffHours: 48,
	}
	require.NoError(t, f.c.DB.Shift().Create(s))
	return s
}

// 已在同一班次上的员工不能认领该班次的放班
func TestClaimRejectsWorkerAlreadyOnShift(t *testing.T) {
	f := newFixture(t)
	shift := f.addShiftWithHeadcount(t, dayAt(4, 12), dayAt(4, 18), 2)
	assignmentA := f.addAssignment(t, shift, f.staffA, models.AssignmentStatusAssigned)
	f.addAssignment(t, shift, f.staffB, models.AssignmentStatusAssigned)

	data, errVal := SwapService.Create(&types.RequestSwapCreate{
		AssignmentId: assignmentA.ID,
		RequesterId:  f.staffA.ID,
		RequestType:  string(models.SwapTypeDrop),
	})
	require.Nil(t, errVal)
	request := data.(models.SwapRequest)

	_, errVal = SwapService.Claim(&types.RequestSwapClaim{
		ID:      request.ID,
		ActorId: f.staffB.ID,
	})
	require.NotNil(t, errVal)

	var stateErr *InvalidStateError
	require.True(t, errors.As(errVal.(error), &stateErr))

	got, err := f.c.DB.Swap().Get(request.ID)
	require.NoError(t, err)
	require.Equal(t, models.SwapStatusPendingPickup, got.Status)
}

// 发起后才被排上同一班次的指定接班人不能再接受请求
func TestRespondAcceptRejectsWorkerAlreadyOnShift(t *testing.T) {
	f := newFixture(t)
	now := time.Now().UTC()
	shift := f.addShiftWithHeadcount(t, dayAt(4, 12), dayAt(4, 18), 2)
	assignmentA := f.addAssignment(t, shift, f.staffA, models.AssignmentStatusSwapPending)
	f.addAssignment(t, shift, f.staffB, models.AssignmentStatusAssigned)

	request := models.SwapRequest{
		ID:           idutil.SwapId(),
		RequestType:  models.SwapTypeSwap,
		Status:       models.SwapStatusPendingAcceptance,
		RequesterId:  f.staffA.ID,
		TargetId:     f.staffB.ID,
		AssignmentId: assignmentA.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, f.c.DB.Swap().Create(request))

	_, errVal := SwapService.Respond(&types.RequestSwapRespond{
		ID:      request.ID,
		ActorId: f.staffB.ID,
		Accept:  true,
	})
	require.NotNil(t, errVal)

	got, err := f.c.DB.Swap().Get(request.ID)
	require.NoError(t, err)
	require.Equal(t, models.SwapStatusPendingAcceptance, got.Status)
}

// 审批兜底: 接班人已在班次上的请求即使流转到待审批也不得批准,
// 同一 (shift, member) 永远只有一条活跃排班
func TestApproveRejectsWorkerAlreadyOnShift(t *testing.T) {
	f := newFixture(t)
	now := time.Now().UTC()
	shift := f.addShiftWithHeadcount(t, dayAt(4, 12), dayAt(4, 18), 2)
	assignmentA := f.addAssignment(t, shift, f.staffA, models.AssignmentStatusSwapPending)
	f.addAssignment(t, shift, f.staffB, models.AssignmentStatusAssigned)

	request := models.SwapRequest{
		ID:           idutil.SwapId(),
		RequestType:  models.SwapTypeDrop,
		Status:       models.SwapStatusPendingManager,
		RequesterId:  f.staffA.ID,
		ClaimedById:  f.staffB.ID,
		AssignmentId: assignmentA.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, f.c.DB.Swap().Create(request))

	_, errVal := SwapService.Review(&types.RequestSwapReview{
		ID:        request.ID,
		ManagerId: f.manager.ID,
		Approve:   true,
	})
	require.NotNil(t, errVal)

	got, err := f.c.DB.Swap().Get(request.ID)
	require.NoError(t, err)
	require.Equal(t, models.SwapStatusPendingManager, got.Status)

	// 李强在该班次上仍只有一条活跃排班
	list, err := f.c.DB.Assignment().ListActiveByMember(f.staffB.ID)
	require.NoError(t, err)
	onShift := 0
	for _, a := range list {
		if a.ShiftId == shift.ID {
			onShift++
		}
	}
	require.Equal(t, 1, onShift)
}

// 未决请求数上限
func TestPendingSwapRequestCap(t *testing.T) {
	f := newFixture(t)
	limit := global.Config.Scheduling.MaxPendingSwapRequests

	var last models.ShiftAssignment
	for i := 0; i <= limit; i++ {
		shift := f.addShift(t, dayAt(4+i, 12), dayAt(4+i, 18))
		last = f.addAssignment(t, shift, f.staffA, models.AssignmentStatusAssigned)
		if i == limit {
			break
		}
		_, errVal := SwapService.Create(&types.RequestSwapCreate{
			AssignmentId: last.ID,
			RequesterId:  f.staffA.ID,
			RequestType:  string(models.SwapTypeDrop),
		})
		require.Nil(t, errVal)
	}

	_, errVal := SwapService.Create(&types.RequestSwapCreate{
		AssignmentId: last.ID,
		RequesterId:  f.staffA.ID,
		RequestType:  string(models.SwapTypeDrop),
	})
	require.NotNil(t, errVal)

	var stateErr *InvalidStateError
	require.True(t, errors.As(errVal.(error), &stateErr))
}

// 过期清理幂等: 第二轮不改变任何状态
func TestExpireDropRequestsIdempotent(t *testing.T) {
	f := newFixture(t)
	now := time.Now().UTC()

	shift := f.addShift(t, dayAt(1, 12), dayAt(1, 18))
	assignment := f.addAssignment(t, shift, f.staffA, models.AssignmentStatusSwapPending)

	expiresAt := now.Add(-time.Hour)
	request := models.SwapRequest{
		ID:           idutil.SwapId(),
		RequestType:  models.SwapTypeDrop,
		Status:       models.SwapStatusPendingPickup,
		RequesterId:  f.staffA.ID,
		AssignmentId: assignment.ID,
		ExpiresAt:    &expiresAt,
		CreatedAt:    now.Add(-48 * time.Hour),
		UpdatedAt:    now.Add(-48 * time.Hour),
	}
	require.NoError(t, f.c.DB.Swap().Create(request))

	require.NoError(t, SwapService.ExpireDropRequests(now))

	got, err := f.c.DB.Swap().Get(request.ID)
	require.NoError(t, err)
	require.Equal(t, models.SwapStatusExpired, got.Status)

	a, err := f.c.DB.Assignment().Get(assignment.ID)
	require.NoError(t, err)
	require.Equal(t, models.AssignmentStatusAssigned, a.Status)

	// 再跑一轮, 状态不变
	require.NoError(t, SwapService.ExpireDropRequests(time.Now().UTC()))

	got, err = f.c.DB.Swap().Get(request.ID)
	require.NoError(t, err)
	require.Equal(t, models.SwapStatusExpired, got.Status)
	a, err = f.c.DB.Assignment().Get(assignment.ID)
	require.NoError(t, err)
	require.Equal(t, models.AssignmentStatusAssigned, a.Status)
}

// 超时未响应的换班请求同样过期
func TestExpireStaleSwaps(t *testing.T) {
	f := newFixture(t)
	now := time.Now().UTC()

	shift := f.addShift(t, dayAt(4, 12), dayAt(4, 18))
	assignment := f.addAssignment(t, shift, f.staffA, models.AssignmentStatusSwapPending)

	stale := models.SwapRequest{
		ID:           idutil.SwapId(),
		RequestType:  models.SwapTypeSwap,
		Status:       models.SwapStatusPendingAcceptance,
		RequesterId:  f.staffA.ID,
		TargetId:     f.staffB.ID,
		AssignmentId: assignment.ID,
		CreatedAt:    now.Add(-48 * time.Hour),
		UpdatedAt:    now.Add(-48 * time.Hour),
	}
	require.NoError(t, f.c.DB.Swap().Create(stale))

	require.NoError(t, SwapService.ExpireStaleSwaps(now))

	got, err := f.c.DB.Swap().Get(stale.ID)
	require.NoError(t, err)
	require.Equal(t, models.SwapStatusExpired, got.Status)

	a, err := f.c.DB.Assignment().Get(assignment.ID)
	require.NoError(t, err)
	require.Equal(t, models.AssignmentStatusAssigned, a.Status)
}

func TestCancelOnlyByRequester(t *testing.T) {
	f := newFixture(t)
	shift := f.addShift(t, dayAt(4, 12), dayAt(4, 18))
	assignment := f.addAssignment(t, shift, f.staffA, models.AssignmentStatusAssigned)

	data, errVal := SwapService.Create(&types.RequestSwapCreate{
		AssignmentId: assignment.ID,
		RequesterId:  f.staffA.ID,
		RequestType:  string(models.SwapTypeDrop),
	})
	require.Nil(t, errVal)
	request := data.(models.SwapRequest)

	_, errVal = SwapService.Cancel(&types.RequestSwapCancel{ID: request.ID, ActorId: f.staffB.ID})
	require.NotNil(t, errVal)

	_, errVal = SwapService.Cancel(&types.RequestSwapCancel{ID: request.ID, ActorId: f.staffA.ID})
	require.Nil(t, errVal)

	got, err := f.c.DB.Swap().Get(request.ID)
	require.NoError(t, err)
	require.Equal(t, models.SwapStatusCancelled, got.Status)

	a, err := f.c.DB.Assignment().Get(assignment.ID)
	require.NoError(t, err)
	require.Equal(t, models.AssignmentStatusAssigned, a.Status)
}
