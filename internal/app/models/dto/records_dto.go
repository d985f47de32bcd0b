package dto

import (
	"time"

	"github.com/yigit/ssis/internal/app/models"
	"github.com/yigit/ssis/internal/pkg/helpers"
)

// CollegeResponse represents a college as returned by the API
type CollegeResponse struct {
	Code string `json:"code" example:"CCS"`
	Name string `json:"name" example:"College of Computer Studies"`
}

// CollegeRequest represents college creation and update data
type CollegeRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// ProgramResponse represents a program as returned by the API
type ProgramResponse struct {
	Code        string `json:"code" example:"BSCS"`
	Name        string `json:"name" example:"Bachelor of Science in Computer Science"`
	CollegeCode string `json:"college_code" example:"CCS"`
}

// ProgramRequest represents program creation and update data
type ProgramRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	CollegeCode string `json:"college_code" binding:"required"`
}

// StudentResponse represents a student as returned by the API
type StudentResponse struct {
	IDNo        string `json:"idNo" example:"2023-0001"`
	FirstName   string `json:"firstName" example:"Juan"`
	LastName    string `json:"lastName" example:"Dela Cruz"`
	Course      string `json:"course" example:"BSCS"`
	Year        int    `json:"year" example:"2"`
	Gender      string `json:"gender" example:"Male"`
	PhotoPath   string `json:"photo_path" example:"students/3f1c.png"`
	CollegeCode string `json:"college_code" example:"CCS"`
}

// StudentRequest represents student creation and update data.
// college_code is never accepted; it follows the course's program.
type StudentRequest struct {
	IDNo      string `json:"idNo" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Course    string `json:"course" binding:"required"`
	Year      int    `json:"year" binding:"required,min=1,max=4"`
	Gender    string `json:"gender" binding:"required"`
	PhotoPath string `json:"photo_path"`
}

// UserResponse represents a user profile; the password hash never leaves the service
type UserResponse struct {
	Username   string     `json:"username" example:"admin"`
	Email      string     `json:"email" example:"admin@example.com"`
	DateLogged *time.Time `json:"dateLogged" example:"2025-04-23T12:01:05Z"`
}

// NewCollegeResponse maps a college row to its API shape
func NewCollegeResponse(c *models.College) *CollegeResponse {
	if c == nil {
		return nil
	}
	return &CollegeResponse{Code: c.Code, Name: c.Name}
}

// NewProgramResponse maps a program row to its API shape
func NewProgramResponse(p *models.Program) *ProgramResponse {
	if p == nil {
		return nil
	}
	return &ProgramResponse{
		Code:        p.Code,
		Name:        p.Name,
		CollegeCode: helpers.StringValue(p.CollegeCode),
	}
}

// NewStudentResponse maps a student row to its API shape; NULL columns become ""
func NewStudentResponse(s *models.Student) *StudentResponse {
	if s == nil {
		return nil
	}
	return &StudentResponse{
		IDNo:        s.IDNo,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Course:      helpers.StringValue(s.Course),
		Year:        s.Year,
		Gender:      s.Gender,
		PhotoPath:   helpers.StringValue(s.PhotoPath),
		CollegeCode: helpers.StringValue(s.CollegeCode),
	}
}

// NewUserResponse maps a user row to its API shape
func NewUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		Username:   u.Username,
		Email:      u.Email,
		DateLogged: u.DateLogged,
	}
}
