package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/derrickgr2-cpu/familyconnest/internal/config"
	"github.com/derrickgr2-cpu/familyconnest/internal/middleware"
	"github.com/derrickgr2-cpu/familyconnest/internal/models"
	"github.com/derrickgr2-cpu/familyconnest/internal/service"
)

// PingFunc reports whether a backing store is reachable.
type PingFunc func(ctx context.Context) error

// PublicMembersCache stores the encoded public member listing.
type PublicMembersCache interface {
	Members(ctx context.Context) ([]byte, bool, error)
	StoreMembers(ctx context.Context, payload []byte) error
}

type Services struct {
	Auth    *service.AuthService
	Members *service.MemberService
	Albums  *service.AlbumService
	Events  *service.EventService
	Forum   *service.ForumService
	Uploads *service.UploadService
}

type HandlerSet struct {
	log         zerolog.Logger
	cfg         *config.AppConfig
	services    Services
	publicCache PublicMembersCache
	checks      map[string]PingFunc
}

// NewHandlerSet wires the route handlers. checks maps a health component name
// (database, cache) to its ping.
func NewHandlerSet(log zerolog.Logger, cfg *config.AppConfig, services Services, publicCache PublicMembersCache, checks map[string]PingFunc) HandlerSet {
	return HandlerSet{
		log:         log,
		cfg:         cfg,
		services:    services,
		publicCache: publicCache,
		checks:      checks,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	requireAuth := middleware.Auth(h.services.Auth)

	auth := router.Group("/auth")
	auth.POST("/register", h.RegisterUser)
	auth.POST("/login", h.Login)
	auth.GET("/me", requireAuth, h.Me)
	auth.GET("/photos", requireAuth, h.ListMyPhotos)
	auth.POST("/photos", requireAuth, h.AddMyPhoto)
	auth.DELETE("/photos/:photoId", requireAuth, h.DeleteMyPhoto)

	router.GET("/users/:userId/public", h.PublicUser)

	members := router.Group("/members")
	members.GET("/public", h.ListPublicMembers)
	members.GET("/public/:id", h.GetPublicMember)
	members.Use(requireAuth)
	members.GET("", h.ListMembers)
	members.POST("", h.CreateMember)
	members.GET("/:id", h.GetMember)
	members.PUT("/:id", h.UpdateMember)
	members.DELETE("/:id", h.DeleteMember)
	members.GET("/:id/photos", h.ListMemberPhotos)
	members.POST("/:id/photos", h.AddMemberPhoto)
	members.DELETE("/:id/photos/:photoId", h.DeleteMemberPhoto)

	events := router.Group("/events", requireAuth)
	events.GET("", h.ListEvents)
	events.POST("", h.CreateEvent)
	events.GET("/:id", h.GetEvent)
	events.PUT("/:id", h.UpdateEvent)
	events.DELETE("/:id", h.DeleteEvent)

	forum := router.Group("/forum/posts", requireAuth)
	forum.GET("", h.ListPosts)
	forum.POST("", h.CreatePost)
	forum.GET("/:id", h.GetPost)
	forum.PUT("/:id", h.UpdatePost)
	forum.DELETE("/:id", h.DeletePost)
	forum.POST("/:id/replies", h.AddReply)
	forum.DELETE("/:id/replies/:replyId", h.DeleteReply)

	router.POST("/upload", requireAuth, h.UploadMedia)
	router.POST("/upload/public", h.UploadPublicMedia)

	admin := router.Group("/admin", requireAuth, middleware.RequireRoles(models.UserRoleAdmin))
	admin.GET("/uploads", h.AdminListUploads)
}

// currentUser is only called behind middleware.Auth.
func currentUser(c *gin.Context) models.User {
	user, _ := middleware.CurrentUser(c)
	return user
}
