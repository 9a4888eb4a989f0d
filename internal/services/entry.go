package services

import (
	"shiftSync/internal/ctx"
)

var (
	ShiftService        InterShiftService
	AssignmentService   InterAssignmentService
	SwapService         InterSwapService
	AvailabilityService InterAvailabilityService
	MemberService       InterMemberService
	OverrideService     InterOverrideService
)

func NewServices(ctx *ctx.Context) {
	ShiftService = newInterShiftService(ctx)
	AssignmentService = newInterAssignmentService(ctx)
	SwapService = newInterSwapService(ctx)
	AvailabilityService = newInterAvailabilityService(ctx)
	MemberService = newInterMemberService(ctx)
	OverrideService = newInterOverrideService(ctx)
}
