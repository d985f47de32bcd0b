package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/ssis/internal/app/models/dto"
)

// Home reports that the API is up
// @Summary Health message
// @Tags home
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /home [get]
func Home(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Backend is working!"})
}
