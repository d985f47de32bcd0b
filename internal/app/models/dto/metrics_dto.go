package dto

// CountsResponse holds total row counts for the dashboard summary
type CountsResponse struct {
	Colleges int64 `json:"colleges" example:"5"`
	Programs int64 `json:"programs" example:"12"`
	Students int64 `json:"students" example:"300"`
	Users    int64 `json:"users" example:"2"`
}

// DailyMetric holds the rows created on one calendar day
type DailyMetric struct {
	Date     string `json:"date" example:"2025-04-23"`
	College  int64  `json:"college" example:"0"`
	Program  int64  `json:"program" example:"1"`
	Students int64  `json:"students" example:"14"`
	Users    int64  `json:"users" example:"0"`
}
