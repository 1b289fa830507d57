package router

import (
	"github.com/gin-gonic/gin"

	"github.com/dtroode/passworld/internal/api/http/handler"
	"github.com/dtroode/passworld/internal/api/http/middleware"
	"github.com/dtroode/passworld/internal/logger"
)

// SessionService issues and validates session tokens.
type SessionService interface {
	handler.SessionService
	middleware.SessionValidator
	Enabled() bool
}

// Router builds the REST API.
type Router struct {
	credentialService handler.CredentialService
	sessionService    SessionService
	backupService     handler.BackupService
	pinger            handler.Pinger
	logger            *logger.Logger
}

// New creates new Router instance. backupService may be nil when object storage is disabled.
func New(
	credentialService handler.CredentialService,
	sessionService SessionService,
	backupService handler.BackupService,
	pinger handler.Pinger,
	logger *logger.Logger,
) *Router {
	return &Router{
		credentialService: credentialService,
		sessionService:    sessionService,
		backupService:     backupService,
		pinger:            pinger,
		logger:            logger,
	}
}

// Register wires middleware and routes into a new gin engine.
func (r *Router) Register() *gin.Engine {
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.NewLogging(r.logger).Handle(),
		middleware.CORS(),
	)

	health := handler.NewHealth(r.pinger, r.logger)
	session := handler.NewSession(r.sessionService, r.logger)
	engine.GET("/health", health.Check)
	engine.POST("/session", session.Open)

	protected := engine.Group("/")
	if r.sessionService.Enabled() {
		protected.Use(middleware.NewAuthenticate(r.sessionService, r.logger).Handle())
	}

	credentials := handler.NewCredential(r.credentialService, r.logger)
	protected.GET("/", credentials.List)
	protected.POST("/", credentials.Create)
	protected.PUT("/", credentials.Update)
	protected.DELETE("/", credentials.Delete)

	backups := handler.NewBackup(r.backupService, r.logger)
	protected.POST("/backups", backups.Create)
	protected.POST("/backups/restore", backups.Restore)

	return engine
}
