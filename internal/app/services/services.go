package services

import (
	"strings"
	"time"

	"github.com/yigit/ssis/internal/app/repositories"
	"github.com/yigit/ssis/internal/pkg/auth"
	"github.com/yigit/ssis/internal/pkg/filestorage"
	"github.com/yigit/ssis/internal/pkg/logger"
)

// Services holds every service the HTTP layer depends on
type Services struct {
	CollegeService CollegeService
	ProgramService ProgramService
	StudentService StudentService
	UserService    UserService
	MetricsService MetricsService
	AuthService    AuthService
}

// MetricsSettings configures daily bucketing
type MetricsSettings struct {
	Location *time.Location
	Days     int
}

// NewServices wires the services on top of the repositories
func NewServices(repos *repositories.Repositories, storage filestorage.FileStorage, jwtService *auth.JWTService, denylist auth.Denylist, metrics MetricsSettings) *Services {
	return &Services{
		CollegeService: NewCollegeService(repos.CollegeRepository),
		ProgramService: NewProgramService(repos.ProgramRepository),
		StudentService: NewStudentService(repos.StudentRepository, storage, logger.WithComponent("students")),
		UserService:    NewUserService(repos.UserRepository),
		MetricsService: NewMetricsService(repos.MetricsRepository, metrics.Location, metrics.Days, logger.WithComponent("metrics")),
		AuthService:    NewAuthService(repos.UserRepository, jwtService, logger.WithComponent("auth"), WithDenylist(denylist)),
	}
}

// cleanKeys trims keys and drops blanks and repeats, keeping order
func cleanKeys(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	cleaned := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		cleaned = append(cleaned, k)
	}
	return cleaned
}
