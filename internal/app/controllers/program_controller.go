package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/ssis/internal/app/models/dto"
	"github.com/yigit/ssis/internal/app/services"
	"github.com/yigit/ssis/internal/middleware"
)

// ProgramController handles program-related operations
type ProgramController struct {
	programService services.ProgramService
}

// NewProgramController creates a new ProgramController
func NewProgramController(programService services.ProgramService) *ProgramController {
	return &ProgramController{
		programService: programService,
	}
}

// GetAllPrograms lists every program
// @Summary List programs
// @Tags programs
// @Produce json
// @Success 200 {array} dto.ProgramResponse
// @Router /programs/ [get]
func (c *ProgramController) GetAllPrograms(ctx *gin.Context) {
	programs, err := c.programService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, programs)
}

// GetProgram retrieves a program by code
// @Summary Get program by code
// @Tags programs
// @Produce json
// @Param code path string true "Program code"
// @Success 200 {object} dto.ProgramResponse
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{code} [get]
func (c *ProgramController) GetProgram(ctx *gin.Context) {
	program, err := c.programService.GetByCode(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if program == nil {
		middleware.NotFound(ctx, "Program not found")
		return
	}
	ctx.JSON(http.StatusOK, program)
}

// CreateProgram handles program creation
// @Summary Create a program
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProgramRequest true "Program information"
// @Success 201 {object} dto.ProgramResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown college"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Program already exists"
// @Router /programs/ [post]
func (c *ProgramController) CreateProgram(ctx *gin.Context) {
	var req dto.ProgramRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	program, err := c.programService.Create(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, program)
}

// UpdateProgram replaces a program, possibly renaming its code
// @Summary Update a program
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Program code"
// @Param request body dto.ProgramRequest true "Program information"
// @Success 200 {object} dto.ProgramResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{code} [put]
func (c *ProgramController) UpdateProgram(ctx *gin.Context) {
	var req dto.ProgramRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	program, err := c.programService.Update(ctx.Request.Context(), ctx.Param("code"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if program == nil {
		middleware.NotFound(ctx, "Program not found")
		return
	}
	ctx.JSON(http.StatusOK, program)
}

// DeleteProgram removes a program and returns it
// @Summary Delete a program
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param code path string true "Program code"
// @Success 200 {object} dto.ProgramResponse
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{code} [delete]
func (c *ProgramController) DeleteProgram(ctx *gin.Context) {
	program, err := c.programService.Delete(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if program == nil {
		middleware.NotFound(ctx, "Program not found")
		return
	}
	ctx.JSON(http.StatusOK, program)
}

// BulkDeletePrograms removes every listed program
// @Summary Delete several programs
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkDeleteCodesRequest true "Program codes"
// @Success 200 {object} dto.BulkDeleteResponse
// @Failure 400 {object} dto.ErrorResponse "No codes provided"
// @Router /programs/bulk-delete [post]
func (c *ProgramController) BulkDeletePrograms(ctx *gin.Context) {
	var req dto.BulkDeleteCodesRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	deleted, err := c.programService.BulkDelete(ctx.Request.Context(), req.Codes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.BulkDeleteResponse{Deleted: deleted})
}
