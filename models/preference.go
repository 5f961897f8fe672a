package models

import "time"

type Preference struct {
	UserId        string    `json:"user_id"`
	View          string    `json:"view"`
	PageSize      int       `json:"page_size"`
	SortColumn    string    `json:"sort_column"`
	SortDirection string    `json:"sort_direction"`
	UpdatedAt     time.Time `json:"updated_at"`
}
