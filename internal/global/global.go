package global

import (
	"shiftSync/config"
)

var (
	Layout     = "2006-01-02 15:04:05"
	DateLayout = "2006-01-02"
	Config     config.App
	Version    string
)
