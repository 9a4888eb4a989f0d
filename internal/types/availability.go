package types

type RequestAvailabilityUpsert struct {
	MemberId string `json:"memberId" binding:"required"`
	// weekly / one_off
	Recurrence string `json:"recurrence" binding:"required"`
	// weekly 专用, 0=周一..6=周日
	DayOfWeek *int `json:"dayOfWeek"`
	// one_off 专用, 格式 2006-01-02
	SpecificDate string `json:"specificDate"`
	// 本地钟面时间 "15:04"，二者均为空表示整天不可用
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Timezone  string `json:"timezone"`
	Notes     string `json:"notes"`
}

type RequestAvailabilityQuery struct {
	MemberId string `json:"memberId" form:"memberId" binding:"required"`
}

type RequestAvailabilityDelete struct {
	ID string `json:"id" form:"id" binding:"required"`
}
