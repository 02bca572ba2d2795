package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/infrastructure/storage"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"

	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"
	dashboardHandler "library-backend/internal/domains/dashboard/handler"
	dashboardRepo "library-backend/internal/domains/dashboard/repository"
	dashboardService "library-backend/internal/domains/dashboard/service"
	fineHandler "library-backend/internal/domains/fine/handler"
	fineService "library-backend/internal/domains/fine/service"
	issueHandler "library-backend/internal/domains/issue/handler"
	issueRepo "library-backend/internal/domains/issue/repository"
	issueService "library-backend/internal/domains/issue/service"
	memberHandler "library-backend/internal/domains/member/handler"
	memberRepo "library-backend/internal/domains/member/repository"
	memberService "library-backend/internal/domains/member/service"
	userHandler "library-backend/internal/domains/user/handler"
	userRepo "library-backend/internal/domains/user/repository"
	userService "library-backend/internal/domains/user/service"
)

// Container holds the whole dependency graph. Everything in it is a
// singleton living for the process lifetime. Initialization order is
// config, infrastructure, repositories, services, handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Storage    *storage.MinIOStorage
	Queue      *asynq.Client

	UserRepo      userRepo.RepositoryInterface
	BookRepo      bookRepo.RepositoryInterface
	MemberRepo    memberRepo.RepositoryInterface
	IssueRepo     issueRepo.RepositoryInterface
	DashboardRepo dashboardRepo.RepositoryInterface

	UserService      userService.ServiceInterface
	BookService      bookService.ServiceInterface
	MemberService    memberService.ServiceInterface
	IssueService     issueService.ServiceInterface
	FineService      fineService.ServiceInterface
	DashboardService dashboardService.ServiceInterface

	UserHandler      *userHandler.Handler
	BookHandler      *bookHandler.Handler
	MemberHandler    *memberHandler.Handler
	IssueHandler     *issueHandler.Handler
	FineHandler      *fineHandler.Handler
	DashboardHandler *dashboardHandler.Handler
}

// NewContainer builds and initializes the dependency graph.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment)
	logger.Info("Configuration loaded", map[string]interface{}{"environment": cfg.App.Environment})

	db := database.NewPostgresDB(cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	logger.Info("Database connected", nil)

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(context.Background()); err != nil {
		// Cache misses degrade to DB reads, so this is non-critical.
		logger.Warn("Redis connection failed", map[string]interface{}{"error": err.Error()})
	} else {
		logger.Info("Redis connected", nil)
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		logger.Warn("MinIO unavailable, cover uploads disabled", map[string]interface{}{"error": err.Error()})
	} else {
		c.Storage = minioStorage
		logger.Info("MinIO connected", nil)
	}

	c.Queue = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	if err := c.UserService.EnsureBootstrapAdmin(
		context.Background(),
		cfg.Admin.Name,
		cfg.Admin.Email,
		cfg.Admin.Password,
	); err != nil {
		return nil, fmt.Errorf("failed to ensure bootstrap admin: %w", err)
	}

	logger.Info("Container initialized", nil)
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewRepository(pool)
	c.BookRepo = bookRepo.NewRepository(pool)
	c.MemberRepo = memberRepo.NewRepository(pool)
	c.IssueRepo = issueRepo.NewRepository(pool)
	c.DashboardRepo = dashboardRepo.NewRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewService(c.UserRepo, c.JWTManager)

	// Storage is a nil interface when MinIO is down; the book service
	// rejects cover uploads in that case.
	var coverStorage bookService.CoverStorage
	if c.Storage != nil {
		coverStorage = c.Storage
	}
	c.BookService = bookService.NewService(c.BookRepo, c.IssueRepo, coverStorage, c.Cache)

	c.MemberService = memberService.NewService(c.MemberRepo, c.UserRepo, c.Config.Library.MemberBorrowLimit)

	c.IssueService = issueService.NewService(c.IssueRepo, c.BookRepo, c.UserRepo, c.Queue, c.Config.Library)

	c.FineService = fineService.NewService(c.IssueRepo, c.Config.Library.FineRatePerDay)

	c.DashboardService = dashboardService.NewService(c.DashboardRepo, c.Cache)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewHandler(c.UserService)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.MemberHandler = memberHandler.NewHandler(c.MemberService)
	c.IssueHandler = issueHandler.NewHandler(c.IssueService)
	c.FineHandler = fineHandler.NewHandler(c.FineService)
	c.DashboardHandler = dashboardHandler.NewHandler(c.DashboardService)
}

// Cleanup releases held connections. Call on shutdown.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Error("Failed to close queue client", err)
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("Failed to close redis", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("Failed to close database", err)
		}
	}
}
