package router

import (
	"fmt"
	"log/slog"
	"net/http"

	"bookshelf/internal/http-api/handler"
	"bookshelf/internal/http-api/middleware"
	"bookshelf/internal/http-api/service"
	"bookshelf/internal/http-api/validation"
	"bookshelf/internal/http-api/web"
	"bookshelf/internal/ratelimit"
	"bookshelf/internal/storage"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the routing table dispatches to
type Deps struct {
	Logger *slog.Logger

	AuthService   service.AuthService
	ShelfService  service.ShelfService
	ReviewService service.ReviewService
	LikeService   service.LikeService
	TaskService   service.TaskService
	Media         storage.Store

	LoginLimiter *ratelimit.KeyedRateLimiter
	Cookie       handler.CookieConfig
	CSRF         middleware.CSRFOptions
	MaxUpload    int64
}

// New builds the gin engine with the middleware chain and every route
func New(deps Deps) (*gin.Engine, error) {
	if err := validation.Register(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.MaxMultipartMemory = deps.MaxUpload

	r.Use(
		middleware.RequestID(deps.Logger),
		middleware.AccessLog(),
		middleware.Recovery(),
		// multipart envelope on top of the largest accepted file
		middleware.BodyLimit(deps.MaxUpload+1<<20),
		middleware.CSRF(deps.CSRF),
		middleware.SessionAuth(deps.AuthService),
	)

	r.NoRoute(func(c *gin.Context) {
		if middleware.WantsJSON(c) {
			c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
			return
		}
		c.HTML(http.StatusNotFound, "error.html", gin.H{
			"title":      "Not Found",
			"status":     http.StatusNotFound,
			"message":    "page not found",
			"csrf_token": middleware.CSRFTokenFrom(c),
		})
	})

	public := r.Group("")
	handler.RegisterHealth(public)
	handler.NewTaskHandler(deps.TaskService).RegisterRoutes(public)
	handler.NewMediaHandler(deps.Media).RegisterRoutes(public)
	handler.NewAuthHandler(deps.AuthService, deps.Cookie).
		RegisterRoutes(public, middleware.LoginRateLimit(deps.LoginLimiter))

	protected := r.Group("")
	protected.Use(middleware.RequireLogin())
	handler.NewShelfHandler(deps.ShelfService, deps.MaxUpload).RegisterRoutes(protected)
	handler.NewReviewHandler(deps.ReviewService).RegisterRoutes(protected)
	handler.NewLikeHandler(deps.LikeService).RegisterRoutes(protected)

	return r, nil
}
