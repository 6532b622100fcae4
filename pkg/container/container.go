package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"catalog-backend/internal/config"
	authorHandler "catalog-backend/internal/domains/author/handler"
	"catalog-backend/internal/domains/author/model"
	authorRepo "catalog-backend/internal/domains/author/repository"
	authorService "catalog-backend/internal/domains/author/service"
	infraCache "catalog-backend/internal/infrastructure/cache"
	"catalog-backend/internal/infrastructure/database"
	"catalog-backend/pkg/cache"
	"catalog-backend/pkg/jwt"
)

// Container holds every long-lived dependency of the API.
// Initialization order: config, infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repositories
	AuthorRepo authorRepo.RepositoryInterface

	// Services
	AuthorService authorService.ServiceInterface

	// Handlers
	AuthorHandler *authorHandler.AuthorHandler
}

// NewContainer builds the dependency graph from the environment
func NewContainer(ctx context.Context) (*Container, error) {
	log.Info().Msg("initializing container")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	c := &Container{Config: cfg}

	if err := c.initDatabase(ctx); err != nil {
		return nil, err
	}
	c.initCache(ctx)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TokenExpiry)*time.Minute)

	c.wire(c.DB.Pool)

	log.Info().
		Str("environment", cfg.App.Environment).
		Bool("auth_enabled", cfg.JWT.AuthEnabled).
		Msg("container initialized")
	return c, nil
}

// NewWithDependencies wires the domain layers over already-built infrastructure
func NewWithDependencies(cfg *config.Config, db authorRepo.DB, c cache.Cache, manager *jwt.Manager) *Container {
	ct := &Container{
		Config:     cfg,
		Cache:      c,
		JWTManager: manager,
	}
	ct.wire(db)
	return ct
}

func (c *Container) wire(db authorRepo.DB) {
	c.AuthorRepo = authorRepo.NewPostgresRepository(db, c.Cache)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService, model.DefaultDateFormatter)
}

func (c *Container) initDatabase(ctx context.Context) error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return fmt.Errorf("database health check failed: %w", err)
	}

	if c.Config.Database.AutoSchema {
		if err := db.Migrate(ctx, authorRepo.SchemaStatements); err != nil {
			db.Close()
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	c.DB = db
	return nil
}

// initCache prefers Redis and falls back to the in-process cache.
// Cache failures are never fatal.
func (c *Container) initCache(ctx context.Context) {
	if !c.Config.Redis.Enabled {
		log.Info().Msg("redis disabled, using in-memory cache")
		c.Cache = cache.NewMemoryCache()
		return
	}

	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("redis connection failed, using in-memory cache")
		_ = rc.Close()
		c.Cache = cache.NewMemoryCache()
		return
	}
	c.Cache = rc
}

// Cleanup releases connections; call on shutdown
func (c *Container) Cleanup() {
	if c.DB != nil {
		_ = c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}

	log.Info().Msg("container cleanup completed")
}
