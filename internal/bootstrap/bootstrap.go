package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/ssis/internal/app/controllers"
	appMigrations "github.com/yigit/ssis/internal/app/migrations"
	appRepos "github.com/yigit/ssis/internal/app/repositories"
	appRoutes "github.com/yigit/ssis/internal/app/routes"
	appServices "github.com/yigit/ssis/internal/app/services"
	"github.com/yigit/ssis/internal/config"
	"github.com/yigit/ssis/internal/db"
	appMiddleware "github.com/yigit/ssis/internal/middleware"
	pkgAuth "github.com/yigit/ssis/internal/pkg/auth"
	"github.com/yigit/ssis/internal/pkg/filestorage"
	"github.com/yigit/ssis/internal/pkg/helpers"
	"github.com/yigit/ssis/internal/pkg/logger"
	"github.com/yigit/ssis/internal/pkg/validation"
	"github.com/yigit/ssis/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Denylist       pkgAuth.Denylist
	Redis          *redis.Client // nil without REDIS_URI
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the pool, applies migrations and seeds demo data when enabled.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if cfg.Database.Migrations {
		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.NewMigrator(database).Up(ctx); err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			database.Close()
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")
	}

	if cfg.Seed.Enabled {
		repos := appRepos.NewRepositories(database)
		seeder := seed.NewSeeder(repos.CollegeRepository, repos.ProgramRepository, repos.StudentRepository, logger.WithComponent("seed"))
		if err := seeder.Run(ctx, cfg.Seed.Students); err != nil {
			lgr.Error().Err(err).Msg("Failed to seed default data, proceeding anyway...")
		}
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		Expiration:  helpers.ParseDuration(cfg.JWT.Expiration, pkgAuth.DefaultTokenLifetime),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.Denylist, deps.Redis, err = setupDenylist(cfg, lgr)
	if err != nil {
		return nil, err
	}

	deps.Services = appServices.NewServices(deps.Repos, deps.FileStorage, deps.JWTService, deps.Denylist, appServices.MetricsSettings{
		Location: cfg.MetricsLocation(),
		Days:     cfg.Metrics.Days,
	})

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, cfg.Auth.CookieName, logger.WithComponent("auth")).
		WithDenylist(deps.Denylist)

	deps.Controllers = appRoutes.Controllers{
		Auth: appControllers.NewAuthController(
			deps.Services.AuthService,
			appControllers.CookieConfig{Name: cfg.Auth.CookieName, Secure: cfg.Auth.CookieSecure},
			logger.WithComponent("auth"),
		),
		College: appControllers.NewCollegeController(deps.Services.CollegeService),
		Program: appControllers.NewProgramController(deps.Services.ProgramService),
		Student: appControllers.NewStudentController(deps.Services.StudentService, logger.WithComponent("students")),
		User:    appControllers.NewUserController(deps.Services.UserService),
		Metrics: appControllers.NewMetricsController(deps.Services.MetricsService),
	}

	return deps, nil
}

// setupDenylist shares token revocations through Redis when REDIS_URI is set
// and keeps them in memory otherwise.
func setupDenylist(cfg *config.Config, lgr zerolog.Logger) (pkgAuth.Denylist, *redis.Client, error) {
	if cfg.Redis.URI == "" {
		lgr.Info().Msg("REDIS_URI not set, token revocations are kept in memory")
		return pkgAuth.NewMemoryDenylist(), nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.URI,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		lgr.Error().Err(err).Str("addr", cfg.Redis.URI).Msg("Failed to connect to Redis")
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	lgr.Info().Str("addr", cfg.Redis.URI).Msg("Token revocations shared through Redis")
	return pkgAuth.NewRedisDenylist(client), client, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	validation.RegisterJSONFieldNames()

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(logger.WithComponent("http")))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.FileStorage.BasePath())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	return router
}
