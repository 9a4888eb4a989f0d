package constraint

// Severity 约束结论的严重级别
type Severity string

const (
	// SeverityOK 无问题
	SeverityOK Severity = "ok"
	// SeverityWarning 提示性告警，操作可继续
	SeverityWarning Severity = "warning"
	// SeverityBlock 硬性阻断，不可豁免
	SeverityBlock Severity = "block"
	// SeverityOverrideRequired 阻断，但主管附理由豁免后可继续
	SeverityOverrideRequired Severity = "override_required"
)

// 稳定的规则ID，供上游程序化识别，不随文案变化
const (
	ConstraintSkillMismatch              = "skill_mismatch"
	ConstraintLocationCertification      = "location_certification"
	ConstraintAvailabilityOneOffUnavail  = "availability_one_off_unavailable"
	ConstraintAvailabilityNoWindow       = "availability_no_window"
	ConstraintAvailabilityWeeklyUnavail  = "availability_weekly_unavailable"
	ConstraintAvailabilityWindowMismatch = "availability_window_mismatch"
	ConstraintDoubleBooking              = "double_booking"
	ConstraintMinimumRestBefore          = "minimum_rest_before"
	ConstraintMinimumRestAfter           = "minimum_rest_after"
	ConstraintDailyHoursWarning          = "daily_hours_warning"
	ConstraintDailyHoursExceeded         = "daily_hours_exceeded"
	ConstraintWeeklyHoursWarning         = "weekly_hours_warning"
	ConstraintWeeklyHoursExceeded        = "weekly_hours_exceeded"
	ConstraintConsecutiveDays6           = "consecutive_days_6"
	ConstraintConsecutiveDays7           = "consecutive_days_7"
)

// Suggestion 约束阻断时给主管的替代人选
// 轻量近似匹配（技能 + 有效门店认证），不逐个跑完整约束管线。
type Suggestion struct {
	MemberId string `json:"memberId"`
	Name     string `json:"name"`
	Reason   string `json:"reason"`
}

// ConstraintResult 一次约束检查的结论
//
// 业务规则的所有结论都以该类型返回，不走 error 控制流；
// 只有引用缺失、存储故障等非预期情况才作为 error 上抛。
type ConstraintResult struct {
	OK           bool         `json:"ok"`
	Severity     Severity     `json:"severity"`
	ConstraintId string       `json:"constraintId"`
	Reason       string       `json:"reason"`
	Suggestions  []Suggestion `json:"suggestions,omitempty"`
}

// Success 通过
func Success() ConstraintResult {
	return ConstraintResult{OK: true, Severity: SeverityOK}
}

// Warning 告警但放行
func Warning(constraintId, reason string) ConstraintResult {
	return ConstraintResult{
		OK:           true,
		Severity:     SeverityWarning,
		ConstraintId: constraintId,
		Reason:       reason,
	}
}

// Block 硬性阻断
func Block(constraintId, reason string, suggestions ...Suggestion) ConstraintResult {
	return ConstraintResult{
		OK:           false,
		Severity:     SeverityBlock,
		ConstraintId: constraintId,
		Reason:       reason,
		Suggestions:  suggestions,
	}
}

// OverrideRequired 需主管附理由豁免
func OverrideRequired(constraintId, reason string) ConstraintResult {
	return ConstraintResult{
		OK:           false,
		Severity:     SeverityOverrideRequired,
		ConstraintId: constraintId,
		Reason:       reason,
	}
}
