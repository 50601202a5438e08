package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"ecocollect/config"
	"ecocollect/middleware"
	"ecocollect/realtime"
	"ecocollect/repository"
	"ecocollect/services"
	"ecocollect/utils"
)

// ServiceContainer holds all services and dependencies wired at startup.
type ServiceContainer struct {
	DB        *mongo.Database
	JWTSecret string

	AuthService         *services.AuthService
	UserService         *services.UserService
	ReceiverService     *services.ReceiverService
	RequestService      *services.RequestService
	NotificationService *services.NotificationService
	NotificationRepo    repository.NotificationRepository

	Hub         *realtime.Hub
	AuthLimiter *middleware.LimiterStore
}

// NewServiceContainer builds the repository, service and realtime graph
// from config. The websocket hub loop is started here.
func NewServiceContainer(db *mongo.Database, cfg *config.Config) (*ServiceContainer, error) {
	userRepo := repository.NewMongoUserRepository(db)
	receiverRepo := repository.NewMongoReceiverRepository(db)
	requestRepo := repository.NewMongoRequestRepository(db)
	notificationRepo := repository.NewMongoNotificationRepository(db)

	hub := realtime.NewHub()
	go hub.Run()

	var proofStore services.ProofStore = services.InlineProofStore{}
	if cfg.B2Enabled() {
		b2Store, err := services.NewB2ProofStore(cfg.B2ApplicationKeyID, cfg.B2ApplicationKey, cfg.B2BucketName)
		if err != nil {
			return nil, err
		}
		proofStore = b2Store
		utils.LogInfo("Collection proofs will be stored in Backblaze B2")
	}

	notificationService := services.NewNotificationService(notificationRepo, hub)

	return &ServiceContainer{
		DB:                  db,
		JWTSecret:           cfg.JWTSecret,
		AuthService:         services.NewAuthService(userRepo, receiverRepo, cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiration),
		UserService:         services.NewUserService(userRepo),
		ReceiverService:     services.NewReceiverService(receiverRepo),
		RequestService:      services.NewRequestService(requestRepo, receiverRepo, notificationService, proofStore),
		NotificationService: notificationService,
		NotificationRepo:    notificationRepo,
		Hub:                 hub,
		AuthLimiter:         middleware.NewLimiterStore(cfg.AuthRateLimitPerMinute, cfg.AuthRateLimitBurst, 5*time.Minute),
	}, nil
}

// SetupRoutes registers all API route groups on the given group.
func SetupRoutes(api *gin.RouterGroup, container *ServiceContainer, cfg *config.Config) {
	RegisterAuthRoutes(api, container)
	RegisterUserRoutes(api, container)
	RegisterReceiverRoutes(api, container)
	RegisterRequestRoutes(api, container, cfg.MaxProofSize)
	RegisterNotificationRoutes(api, container)
}
