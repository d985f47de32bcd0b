package main

import (
	"os"

	"github.com/yigit/ssis/internal/pkg/logger"
	"github.com/yigit/ssis/internal/server"
)

// @title SSIS API
// @version 1.0
// @description Student information system: colleges, programs, students and user accounts

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token; the access_token cookie is accepted as well

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
