package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/ssis/internal/app/models/dto"
	"github.com/yigit/ssis/internal/app/services"
	"github.com/yigit/ssis/internal/middleware"
)

// CollegeController handles college-related operations
type CollegeController struct {
	collegeService services.CollegeService
}

// NewCollegeController creates a new CollegeController
func NewCollegeController(collegeService services.CollegeService) *CollegeController {
	return &CollegeController{
		collegeService: collegeService,
	}
}

// GetAllColleges lists every college
// @Summary List colleges
// @Tags colleges
// @Produce json
// @Success 200 {array} dto.CollegeResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /colleges/ [get]
func (c *CollegeController) GetAllColleges(ctx *gin.Context) {
	colleges, err := c.collegeService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, colleges)
}

// GetCollege retrieves a college by code
// @Summary Get college by code
// @Tags colleges
// @Produce json
// @Param code path string true "College code"
// @Success 200 {object} dto.CollegeResponse
// @Failure 404 {object} dto.ErrorResponse "College not found"
// @Router /colleges/{code} [get]
func (c *CollegeController) GetCollege(ctx *gin.Context) {
	college, err := c.collegeService.GetByCode(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if college == nil {
		middleware.NotFound(ctx, "College not found")
		return
	}
	ctx.JSON(http.StatusOK, college)
}

// CreateCollege handles college creation
// @Summary Create a college
// @Tags colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CollegeRequest true "College information"
// @Success 201 {object} dto.CollegeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "College already exists"
// @Router /colleges/ [post]
func (c *CollegeController) CreateCollege(ctx *gin.Context) {
	var req dto.CollegeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	college, err := c.collegeService.Create(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, college)
}

// UpdateCollege replaces a college, possibly renaming its code
// @Summary Update a college
// @Tags colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "College code"
// @Param request body dto.CollegeRequest true "College information"
// @Success 200 {object} dto.CollegeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "College not found"
// @Router /colleges/{code} [put]
func (c *CollegeController) UpdateCollege(ctx *gin.Context) {
	var req dto.CollegeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	college, err := c.collegeService.Update(ctx.Request.Context(), ctx.Param("code"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if college == nil {
		middleware.NotFound(ctx, "College not found")
		return
	}
	ctx.JSON(http.StatusOK, college)
}

// DeleteCollege removes a college and returns it
// @Summary Delete a college
// @Tags colleges
// @Produce json
// @Security BearerAuth
// @Param code path string true "College code"
// @Success 200 {object} dto.CollegeResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "College not found"
// @Router /colleges/{code} [delete]
func (c *CollegeController) DeleteCollege(ctx *gin.Context) {
	college, err := c.collegeService.Delete(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if college == nil {
		middleware.NotFound(ctx, "College not found")
		return
	}
	ctx.JSON(http.StatusOK, college)
}

// BulkDeleteColleges removes every listed college
// @Summary Delete several colleges
// @Tags colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkDeleteCodesRequest true "College codes"
// @Success 200 {object} dto.BulkDeleteResponse
// @Failure 400 {object} dto.ErrorResponse "No codes provided"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /colleges/bulk-delete [post]
func (c *CollegeController) BulkDeleteColleges(ctx *gin.Context) {
	var req dto.BulkDeleteCodesRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	deleted, err := c.collegeService.BulkDelete(ctx.Request.Context(), req.Codes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.BulkDeleteResponse{Deleted: deleted})
}
