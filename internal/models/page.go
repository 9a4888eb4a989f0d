package models

type Page struct {
	Index int64 `json:"index" form:"index"`
	Size  int64 `json:"size" form:"size"`
}
