package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/foliolab/folio/internal/config"
	"github.com/foliolab/folio/internal/db"
	"github.com/foliolab/folio/internal/model"
	"github.com/foliolab/folio/internal/repository"
	"github.com/foliolab/folio/internal/service"
	"github.com/foliolab/folio/internal/storage"
	"github.com/foliolab/folio/internal/task"
)

type App struct {
	Cfg               *config.Config
	DB                *sqlx.DB
	Runner            *task.Runner
	AuthService       *service.AuthService
	UserService       *service.UserService
	UserImageService  *service.UserImageService
	ContactService    *service.ContactService
	SkillService      *service.SkillService
	PortfolioService  *service.PortfolioService
	ExperienceService *service.ExperienceService
	EducationService  *service.EducationService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	userImageRepository := repository.NewUserImageRepository(database)
	contactRepository := repository.NewContactRepository(database)
	skillRepository := repository.NewSkillRepository(database)
	experienceRepository := repository.NewExperienceRepository(database)
	educationRepository := repository.NewEducationRepository(database)
	portfolioItemRepository := repository.NewPortfolioItemRepository(database)

	err = seedOwner(userRepository, cfg)
	if err != nil {
		return nil, err
	}

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	runner := task.NewRunner()

	// Services
	authService := service.NewAuthService(
		userRepository,
		cfg.OwnerID,
		cfg.JWTSecret,
		cfg.JWTExpiry,
		cfg.IsProduction(),
	)
	cleanupService := service.NewCleanupService(fileStorage)
	userService := service.NewUserService(
		userRepository,
		userImageRepository,
		contactRepository,
		skillRepository,
		experienceRepository,
		educationRepository,
		portfolioItemRepository,
		fileStorage,
		authService,
		cfg.OwnerID,
	)
	userImageService := service.NewUserImageService(userImageRepository, fileStorage, cfg.OwnerID)
	contactService := service.NewContactService(contactRepository, cfg.OwnerID, cfg.MaxContacts)
	skillService := service.NewSkillService(skillRepository, fileStorage, cleanupService, runner, cfg.OwnerID)
	portfolioService := service.NewPortfolioService(
		portfolioItemRepository,
		skillRepository,
		fileStorage,
		cleanupService,
		runner,
		cfg.OwnerID,
	)
	experienceService := service.NewExperienceService(experienceRepository, cfg.OwnerID)
	educationService := service.NewEducationService(educationRepository, cfg.OwnerID)

	return &App{
		Cfg:               cfg,
		DB:                database,
		Runner:            runner,
		AuthService:       authService,
		UserService:       userService,
		UserImageService:  userImageService,
		ContactService:    contactService,
		SkillService:      skillService,
		PortfolioService:  portfolioService,
		ExperienceService: experienceService,
		EducationService:  educationService,
	}, nil
}

// seedOwner creates the single owner row on first start. Without it
// nobody could ever sign in.
func seedOwner(userRepository repository.UserRepository, cfg *config.Config) error {
	_, err := userRepository.ByID(cfg.OwnerID)
	if err == nil {
		return nil
	}

	count, err := userRepository.Count()
	if err != nil {
		return fmt.Errorf("failed to count users: %v", err)
	}
	if count > 0 {
		return fmt.Errorf("users table is populated but no row matches OWNER_ID %s", cfg.OwnerID)
	}

	if cfg.OwnerUserName == "" || cfg.OwnerPassword == "" {
		return fmt.Errorf("empty database and no OWNER_USERNAME/OWNER_PASSWORD to seed the owner from")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.OwnerPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash owner password: %v", err)
	}

	now := time.Now()
	err = userRepository.Create(&model.User{
		ID:           cfg.OwnerID,
		UserName:     cfg.OwnerUserName,
		PasswordHash: string(hash),
		Name:         cfg.OwnerUserName,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("failed to seed owner: %v", err)
	}

	slog.Info("seeded owner account", "user_id", cfg.OwnerID, "user_name", cfg.OwnerUserName)
	return nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
