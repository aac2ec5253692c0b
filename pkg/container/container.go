package container

import (
	"context"
	"fmt"
	"time"

	"matcha-journal-backend/internal/config"
	catalogHandler "matcha-journal-backend/internal/domains/catalog/handler"
	catalogRepo "matcha-journal-backend/internal/domains/catalog/repository"
	catalogService "matcha-journal-backend/internal/domains/catalog/service"
	noteHandler "matcha-journal-backend/internal/domains/tastingnote/handler"
	noteRepo "matcha-journal-backend/internal/domains/tastingnote/repository"
	noteService "matcha-journal-backend/internal/domains/tastingnote/service"
	userHandler "matcha-journal-backend/internal/domains/user/handler"
	userRepo "matcha-journal-backend/internal/domains/user/repository"
	userService "matcha-journal-backend/internal/domains/user/service"
	infraCache "matcha-journal-backend/internal/infrastructure/cache"
	"matcha-journal-backend/internal/infrastructure/database"
	"matcha-journal-backend/internal/infrastructure/email"
	"matcha-journal-backend/pkg/cache"
	"matcha-journal-backend/pkg/jwt"
	"matcha-journal-backend/pkg/logger"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in layer order: config,
// infrastructure, repositories, services, handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Mailer     email.Service

	BrandRepo  catalogRepo.BrandRepository
	RegionRepo catalogRepo.RegionRepository
	BlendRepo  catalogRepo.BlendRepository
	NoteRepo   noteRepo.Repository
	UserRepo   userRepo.Repository

	CatalogService catalogService.ServiceInterface
	NoteService    noteService.ServiceInterface
	UserService    userService.ServiceInterface

	CatalogHandler *catalogHandler.CatalogHandler
	NoteHandler    *noteHandler.NoteHandler
	UserHandler    *userHandler.UserHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	// Step 1: Configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("configuration loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	// Step 2: Database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	logger.Info("database connected", nil)

	// Step 3: Redis. Sessions cannot be revoked and reset tokens cannot
	// be issued without it, so a failed connection is fatal.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache
	logger.Info("redis connected", nil)

	// Step 4: Token manager and mailer
	c.JWTManager = jwt.NewManager(cfg.Session.JWTSecret, cfg.Session.TokenTTL)
	c.Mailer = email.NewSMTPService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)

	// Steps 5-7: Repositories, services, handlers
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.BrandRepo = catalogRepo.NewPostgresBrandRepository(pool)
	c.RegionRepo = catalogRepo.NewPostgresRegionRepository(pool)
	c.BlendRepo = catalogRepo.NewPostgresBlendRepository(pool)
	c.NoteRepo = noteRepo.NewPostgresNoteRepository(pool)
	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
}

func (c *Container) initServices() {
	c.CatalogService = catalogService.NewCatalogService(c.BrandRepo, c.RegionRepo, c.BlendRepo)
	c.NoteService = noteService.NewNoteService(c.NoteRepo, c.BlendRepo)
	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.JWTManager,
		c.Cache,
		c.Mailer,
		c.Config.Session.ResetTokenTTL,
	)
}

func (c *Container) initHandlers() {
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.CatalogService)
	c.NoteHandler = noteHandler.NewNoteHandler(c.NoteService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService, c.Config.Session)
}

// Cleanup closes infrastructure connections in reverse order.
func (c *Container) Cleanup() {
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("failed to close redis connection", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Info("container cleaned up", nil)
}
