package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"fitlink/api/internal/cache"
	"fitlink/api/internal/config"
	"fitlink/api/internal/middleware"
	"fitlink/api/internal/models"
	"fitlink/api/internal/repository"
	"fitlink/api/internal/service"
	"fitlink/api/internal/storage"
)

type HandlerSet struct {
	log           zerolog.Logger
	cfg           *config.AppConfig
	db            *pgxpool.Pool
	cache         *redis.Client
	authService   *service.AuthService
	userService   *service.UserService
	activities    *service.ActivityService
	tagService    *service.TagService
	subscriptions *service.SubscriptionService
	media         *service.MediaService
	users         *repository.UserRepository
	tokens        *repository.TokenRepository
	denylist      *cache.Denylist
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cacheClient *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	tagRepo := repository.NewTagRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	denylist := cache.NewDenylist(cacheClient)

	return HandlerSet{
		log:           log,
		cfg:           cfg,
		db:            db,
		cache:         cacheClient,
		authService:   service.NewAuthService(userRepo, tokenRepo, denylist, cfg, log),
		userService:   service.NewUserService(userRepo, log),
		activities:    service.NewActivityService(activityRepo, tagRepo, log),
		tagService:    service.NewTagService(tagRepo, log),
		subscriptions: service.NewSubscriptionService(userRepo, subscriptionRepo, log),
		media:         service.NewMediaService(userRepo, activityRepo, store, log),
		users:         userRepo,
		tokens:        tokenRepo,
		denylist:      denylist,
	}
}

// Auth exposes the auth service for wiring into the job scheduler.
func (h HandlerSet) Auth() *service.AuthService {
	return h.authService
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	auth := router.Group("/auth")
	auth.POST("/register", h.RegisterUser)
	auth.POST("/login", h.Login)

	authed := router.Group("/auth")
	authed.Use(middleware.Auth(h.cfg, h.users, h.tokens, h.denylist))

	authed.GET("/logout", h.Logout)

	users := authed.Group("/users")
	users.GET("", middleware.RequireRoles(models.MainRoleModerator, models.MainRoleAdministrator), h.ListUsers)
	users.GET("/getUserInfo", h.GetUserInfo)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/tokens", middleware.RequireRoles(models.MainRoleAdministrator), h.SweepTokens)
	users.DELETE("/:id", middleware.RequireRoles(models.MainRoleModerator, models.MainRoleAdministrator), h.DeleteUser)

	activities := users.Group("/activities")
	activities.GET("", h.ListActivities)
	activities.GET("/:id", h.GetActivity)
	activities.POST("/newActivity", h.CreateActivity)
	activities.PUT("/:id", h.UpdateActivity)
	activities.DELETE("/:id", h.DeleteActivity)

	tags := authed.Group("/tags")
	tags.PUT("/addTags", h.AddTags)
	tags.PUT("/changeTagLevel", middleware.RequireRoles(models.MainRoleModerator, models.MainRoleAdministrator), h.ChangeTagLevel)
	tags.DELETE("/deleteTags", h.DeleteTags)

	subscription := authed.Group("/subscription")
	subscription.GET("/:id", h.GetSubscriptionProfile)
	subscription.POST("/change-subscription/:channelId", h.ChangeSubscription)

	img := authed.Group("/img")
	img.POST("/avatar", h.UploadAvatar)
	img.POST("/image", h.UploadActivityImage)
}
