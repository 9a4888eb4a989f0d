package idutil

import (
	"strings"

	"github.com/google/uuid"
)

// 各业务实体的ID前缀，带前缀的ID便于日志检索和排障时一眼区分实体类型
const (
	MemberIdPrefix     = "mem_"
	LocationIdPrefix   = "loc_"
	SkillIdPrefix      = "skl_"
	ShiftIdPrefix      = "sft_"
	AssignmentIdPrefix = "asg_"
	SwapIdPrefix       = "swp_"
	OverrideIdPrefix   = "ovr_"
	CertIdPrefix       = "crt_"
	AvailIdPrefix      = "avl_"
)

// WithPrefix 生成带前缀的唯一ID
// 格式: {prefix}{32位hex}，示例: sft_0b3d7a2e4f6c48d19a5e8c7b6d4f2a1e
func WithPrefix(prefix string) string {
	id := uuid.New()
	return prefix + strings.ReplaceAll(id.String(), "-", "")
}

func MemberId() string     { return WithPrefix(MemberIdPrefix) }
func LocationId() string   { return WithPrefix(LocationIdPrefix) }
func SkillId() string      { return WithPrefix(SkillIdPrefix) }
func ShiftId() string      { return WithPrefix(ShiftIdPrefix) }
func AssignmentId() string { return WithPrefix(AssignmentIdPrefix) }
func SwapId() string       { return WithPrefix(SwapIdPrefix) }
func OverrideId() string   { return WithPrefix(OverrideIdPrefix) }
func CertId() string       { return WithPrefix(CertIdPrefix) }
func AvailId() string      { return WithPrefix(AvailIdPrefix) }
