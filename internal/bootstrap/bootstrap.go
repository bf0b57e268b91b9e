package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/campuscompanion/campusplus/internal/app/controllers"
	appMigrations "github.com/campuscompanion/campusplus/internal/app/migrations"
	appRepos "github.com/campuscompanion/campusplus/internal/app/repositories"
	appRoutes "github.com/campuscompanion/campusplus/internal/app/routes"
	appServices "github.com/campuscompanion/campusplus/internal/app/services"
	"github.com/campuscompanion/campusplus/internal/config"
	"github.com/campuscompanion/campusplus/internal/db"
	appMiddleware "github.com/campuscompanion/campusplus/internal/middleware"
	pkgAuth "github.com/campuscompanion/campusplus/internal/pkg/auth"
	"github.com/campuscompanion/campusplus/internal/pkg/filestorage"
	"github.com/campuscompanion/campusplus/internal/pkg/logger"
	"github.com/campuscompanion/campusplus/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos             *appRepos.Repositories
	Services          *appServices.Services
	AuthController    *appControllers.AuthController
	SubjectController *appControllers.SubjectController
	NoteController    *appControllers.NoteController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	JWTService        *pkgAuth.JWTService
	Storage           filestorage.Backend
	LocalStorage      *filestorage.LocalStorage // set only for the local backend
	Logger            zerolog.Logger
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
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding failures are not fatal; the schema is in place.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// setupStorage builds the configured file storage backend.
func setupStorage(cfg *config.Config, deps *Dependencies) error {
	switch cfg.Storage.Backend {
	case filestorage.BackendDrive:
		timeout, err := time.ParseDuration(cfg.Storage.Drive.Timeout)
		if err != nil {
			return fmt.Errorf("invalid drive timeout: %w", err)
		}
		deps.Storage = filestorage.NewDriveStorage(cfg.Storage.Drive.BaseURL, timeout)

	case filestorage.BackendMinio:
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		storage, err := filestorage.NewMinioStorage(ctx, filestorage.MinioConfig{
			Endpoint:  cfg.Storage.Minio.Endpoint,
			AccessKey: cfg.Storage.Minio.AccessKey,
			SecretKey: cfg.Storage.Minio.SecretKey,
			Bucket:    cfg.Storage.Minio.Bucket,
			UseSSL:    cfg.Storage.Minio.UseSSL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize minio storage: %w", err)
		}
		deps.Storage = storage

	case filestorage.BackendLocal:
		baseURL := cfg.Storage.Local.BaseURL
		if strings.HasPrefix(baseURL, "/") {
			baseURL = "http://localhost:" + cfg.Server.Port + baseURL
		}
		storage, err := filestorage.NewLocalStorage(cfg.Storage.Local.Path, baseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
		deps.Storage = storage
		deps.LocalStorage = storage

	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	if err := setupStorage(cfg, deps); err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, err
	}
	lgr.Info().Str("backend", deps.Storage.Name()).Msg("File storage initialized")

	accessExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access token expiration: %w", err)
	}
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: accessExp,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.Storage, appServices.Options{
		NoteResultCap:      cfg.Notes.ResultCap,
		MaxUploadBytes:     cfg.MaxUploadBytes(),
		AcceptedExtensions: cfg.AcceptedExtensions(),
	})

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService)
	deps.SubjectController = appControllers.NewSubjectController(deps.Services.SubjectService)
	deps.NoteController = appControllers.NewNoteController(deps.Services.NoteService, deps.Services.UploadService)

	return deps, nil
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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.SubjectController,
		deps.NoteController,
		deps.AuthMiddleware,
	)

	return router
}
