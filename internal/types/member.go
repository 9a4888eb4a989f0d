package types

type RequestMemberCreate struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	// admin / manager / staff，缺省为 staff
	Role   string   `json:"role"`
	Skills []string `json:"skills"`
}

type RequestLocationCreate struct {
	Name string `json:"name" binding:"required"`
	// IANA 时区标识，如 America/New_York
	Timezone string `json:"timezone" binding:"required"`
	Address  string `json:"address"`
}

type RequestSkillCreate struct {
	Name        string `json:"name" binding:"required"`
	DisplayName string `json:"displayName"`
}

type RequestCertificationGrant struct {
	MemberId   string `json:"memberId" binding:"required"`
	LocationId string `json:"locationId" binding:"required"`
	ActorId    string `json:"actorId" binding:"required"`
}

type RequestCertificationRevoke struct {
	ID      string `json:"id" binding:"required"`
	Reason  string `json:"reason" binding:"required"`
	ActorId string `json:"actorId" binding:"required"`
}

type RequestOverrideQuery struct {
	AssignmentId string `json:"assignmentId" form:"assignmentId"`
	Index        int64  `json:"index" form:"index"`
	Size         int64  `json:"size" form:"size"`
}
