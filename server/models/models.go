package models

import (
	"campuspulse/server/bredis"
	"campuspulse/server/bsql"
	"campuspulse/server/cmd"
	"campuspulse/server/env"
	"campuspulse/server/logger"
	"campuspulse/server/models/admin"
	"campuspulse/server/models/auth"
	"campuspulse/server/models/blog"
	"campuspulse/server/models/event"
	"campuspulse/server/models/notification"
	"campuspulse/server/models/registration"
	"campuspulse/server/models/upload"
	"campuspulse/server/models/user"
	"campuspulse/server/psql"
)

// Models holds all application components
type Models struct {
	db           *bsql.DB
	bredisClient *bredis.Client

	userStore  user.Repository
	eventStore event.Repository
	regStore   registration.Repository
	blogStore  blog.Repository
	notifStore notification.Repository

	revocationStore *auth.TokenRevocationStore
	jwtService      *auth.JWTService

	authHandler   *auth.Handler
	uploadHandler *upload.Handler
	eventHandler  *event.Handler
	regHandler    *registration.Handler
	blogHandler   *blog.Handler
	notifHandler  *notification.Handler
	adminHandler  *admin.Handler
}

// NewModels creates and initializes all application components
func NewModels(cmdMode bool) *Models {
	m := &Models{}

	// Database is required
	logger.Info("Connecting to PostgreSQL...")

	dbConfigPath := cmd.ResolvePath(env.E.DatabaseConfigFilePath)
	dbConfig, err := bsql.LoadDatabaseConfig(dbConfigPath)
	if err != nil {
		logger.Fatalf("Failed to load database config: %v", err)
	}

	logger.Infof("  Host: %s:%s", dbConfig.Host, dbConfig.Port)
	logger.Infof("  Database: %s", dbConfig.Database)
	logger.Infof("  User: %s", dbConfig.Username)

	m.db = bsql.Open(
		dbConfig.Username,
		dbConfig.Password,
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.Database,
		dbConfig.MaxIdleConnection,
		dbConfig.MaxOpenConnection,
	)

	// Run migrations
	logger.Info("Running database migrations...")
	migPath := cmd.ResolvePath("db/migrations")
	if err := psql.MigrateUp(m.db, migPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis is optional; a nil client disables caching and rate limiting
	if env.E.RedisConfigFilePath != "" {
		redisConfigPath := cmd.ResolvePath(env.E.RedisConfigFilePath)
		if redisConfig, err := bredis.LoadConfig(redisConfigPath); err == nil {
			m.bredisClient = bredis.New(redisConfig.Addr, redisConfig.Password, redisConfig.DB, redisConfig.KeyPrefix)
		}
	}
	if m.bredisClient == nil {
		logger.Warn("Redis unavailable, caching and rate limiting disabled")
	} else {
		logger.Info("Connected to Redis")
	}

	// PostgreSQL repositories
	m.userStore = user.NewPostgresRepository(m.db)
	m.eventStore = event.NewPostgresRepository(m.db)
	m.regStore = registration.NewPostgresRepository(m.db)
	m.blogStore = blog.NewPostgresRepository(m.db)
	m.notifStore = notification.NewPostgresRepository(m.db)
	logger.Info("Using PostgreSQL for storage")

	// Token revocation store (DB-based)
	m.revocationStore = auth.NewTokenRevocationStore(m.db)

	// JWT service
	jwtConfig := &auth.Config{
		SecretKey:     []byte(env.E.JWTSigningKey),
		TokenDuration: env.E.GetJWTDuration(),
	}
	m.jwtService = auth.NewJWTService(jwtConfig, m.revocationStore)

	// Upload store needs its category directories before serving
	uploadStore := upload.NewStore(env.E.GetUploadRoot())
	if err := uploadStore.EnsureDirs(); err != nil {
		logger.Fatalf("Failed to prepare upload directories: %v", err)
	}
	logger.Infof("Upload root: %s", env.E.GetUploadRoot())

	// Handlers
	m.authHandler = auth.NewHandler(m.userStore, m.jwtService, m.bredisClient)
	m.uploadHandler = upload.NewHandler(uploadStore)
	m.eventHandler = event.NewHandler(m.eventStore)
	m.regHandler = registration.NewHandler(m.regStore, m.eventStore)
	m.blogHandler = blog.NewHandler(m.blogStore)
	m.notifHandler = notification.NewHandler(m.notifStore)
	m.adminHandler = admin.NewHandler(m.userStore, m.eventStore, m.regStore, m.bredisClient)

	if !cmdMode {
		m.SetupRoutes()
	}

	return m
}

// RunCmd runs command mode
func (m *Models) RunCmd(c string) {
	switch c {
	default:
		logger.Warnf("Unknown command: %s", c)
	}
}
