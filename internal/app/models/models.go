package models

import "time"

// College defines the college model based on the 'colleges' table
type College struct {
	Code      string    `json:"code" db:"code"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Program defines the program model based on the 'programs' table
type Program struct {
	Code        string    `json:"code" db:"code"`
	Name        string    `json:"name" db:"name"`
	CollegeCode *string   `json:"college_code" db:"college_code"` // NULL once the college is deleted
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// DailyCount is one bucket of a per-day row count
type DailyCount struct {
	Day   time.Time
	Count int64
}
