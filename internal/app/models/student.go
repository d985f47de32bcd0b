package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	IDNo        string    `json:"idNo" db:"idNo"`
	FirstName   string    `json:"firstName" db:"firstName"`
	LastName    string    `json:"lastName" db:"lastName"`
	Course      *string   `json:"course" db:"course"`
	Year        int       `json:"year" db:"year"`
	Gender      string    `json:"gender" db:"gender"`
	PhotoPath   *string   `json:"photo_path" db:"photo_path"`
	CollegeCode *string   `json:"college_code" db:"college_code"` // derived from the course's program
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
