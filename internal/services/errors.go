package services

import (
	"fmt"

	"shiftSync/constraint"
)

// InvalidStateError 状态机前置条件不满足
// 例如取消一个已被裁决的请求、重复排班同一人。调用方据此返回业务错误
// 而不是 500。
type InvalidStateError struct {
	Op     string
	Detail string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}

func invalidState(op, format string, args ...interface{}) *InvalidStateError {
	return &InvalidStateError{Op: op, Detail: fmt.Sprintf(format, args...)}
}

// ConstraintError 约束管线给出的阻断结论
// 携带完整的 ConstraintResult，上游可以程序化读取规则ID、严重级别
// 与替代人选；override_required 与 block 靠 Result.Severity 区分。
type ConstraintError struct {
	Result constraint.ConstraintResult
}

func (e *ConstraintError) Error() string {
	return e.Result.Reason
}
