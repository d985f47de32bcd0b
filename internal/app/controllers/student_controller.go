package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/ssis/internal/app/models/dto"
	"github.com/yigit/ssis/internal/app/services"
	"github.com/yigit/ssis/internal/middleware"
)

// photoField is the multipart form field carrying a student photo
const photoField = "photo"

// StudentController handles student-related operations
type StudentController struct {
	studentService services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// GetAllStudents lists every student
// @Summary List students
// @Tags students
// @Produce json
// @Success 200 {array} dto.StudentResponse
// @Router /students/ [get]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	students, err := c.studentService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, students)
}

// GetStudent retrieves a student by id number
// @Summary Get student by id number
// @Tags students
// @Produce json
// @Param idNo path string true "Student id number"
// @Success 200 {object} dto.StudentResponse
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{idNo} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	student, err := c.studentService.GetByID(ctx.Request.Context(), ctx.Param("idNo"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if student == nil {
		middleware.NotFound(ctx, "Student not found")
		return
	}
	ctx.JSON(http.StatusOK, student)
}

// CreateStudent handles student creation. college_code is derived from the course.
// @Summary Create a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StudentRequest true "Student information"
// @Success 201 {object} dto.StudentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown course"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Student already exists"
// @Router /students/ [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.Create(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, student)
}

// UpdateStudent replaces a student, possibly changing the id number
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param idNo path string true "Student id number"
// @Param request body dto.StudentRequest true "Student information"
// @Success 200 {object} dto.StudentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{idNo} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.Update(ctx.Request.Context(), ctx.Param("idNo"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if student == nil {
		middleware.NotFound(ctx, "Student not found")
		return
	}
	ctx.JSON(http.StatusOK, student)
}

// DeleteStudent removes a student and returns it
// @Summary Delete a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param idNo path string true "Student id number"
// @Success 200 {object} dto.StudentResponse
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{idNo} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	student, err := c.studentService.Delete(ctx.Request.Context(), ctx.Param("idNo"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if student == nil {
		middleware.NotFound(ctx, "Student not found")
		return
	}
	ctx.JSON(http.StatusOK, student)
}

// BulkDeleteStudents removes every listed student
// @Summary Delete several students
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkDeleteIDsRequest true "Student id numbers"
// @Success 200 {object} dto.BulkDeleteResponse
// @Failure 400 {object} dto.ErrorResponse "No ids provided"
// @Router /students/bulk-delete [post]
func (c *StudentController) BulkDeleteStudents(ctx *gin.Context) {
	var req dto.BulkDeleteIDsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	deleted, err := c.studentService.BulkDelete(ctx.Request.Context(), req.IDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.BulkDeleteResponse{Deleted: deleted})
}

// UploadStudentPhoto stores a photo for a student and returns the updated record
// @Summary Upload a student photo
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param idNo path string true "Student id number"
// @Param photo formData file true "Photo (jpg, png, gif or webp, max 5MB)"
// @Success 200 {object} dto.StudentResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or rejected file"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{idNo}/photo [post]
func (c *StudentController) UploadStudentPhoto(ctx *gin.Context) {
	file, err := ctx.FormFile(photoField)
	if err != nil {
		c.logger.Debug().Err(err).Msg("Photo upload without a file")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Photo file is required").
			WithField(photoField)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.UploadPhoto(ctx.Request.Context(), ctx.Param("idNo"), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if student == nil {
		middleware.NotFound(ctx, "Student not found")
		return
	}

	c.logger.Info().Str("idNo", student.IDNo).Str("path", student.PhotoPath).Msg("Student photo updated")
	ctx.JSON(http.StatusOK, student)
}
