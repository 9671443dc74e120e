package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/codesmith/internal/config"
	"github.com/codesmith/internal/handler"
	"github.com/codesmith/internal/logging"
	"github.com/codesmith/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionName = "codesmith_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig, api *handler.API, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(logging.GinRecovery(logger), logging.GinLogger(logger))

	if len(cfg.CorsAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CorsAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	// 本地媒体目录；MEDIA_URL 指向外部地址时由对方负责
	if prefix, ok := localMediaPrefix(cfg.MediaURL); ok {
		r.Static(prefix, cfg.MediaDir)
	}

	r.GET("/healthz", api.HealthCheck)

	commentLimiter := middleware.NewRateLimiter(cfg.PublicRateLimit)
	loginLimiter := middleware.NewRateLimiter(cfg.PublicRateLimit)

	blog := r.Group("/blog-api")
	{
		blog.GET("/post-page/:page_number", api.ListPosts)
		blog.GET("/count_pages/:post_per_page", api.CountPages)
		blog.GET("/post/:slug", api.GetPost)
		blog.GET("/post/:slug/comments", api.ListComments)
		blog.POST("/post/:slug/comments", commentLimiter.Middleware(), api.CreateComment)
		blog.GET("/related/:category_slug", api.RelatedPosts)
		blog.GET("/tags", api.ListTags)
		blog.GET("/categories", api.ListCategories)
	}

	projects := r.Group("/project-api")
	{
		projects.GET("/projects/", api.ListProjects)
		projects.GET("/projects/:id/", api.GetProject)
		projects.GET("/cats/", api.ListProjectCategories)
	}

	r.GET("/img/:name", api.GetImage)

	portfolio := r.Group("/api")
	{
		portfolio.GET("/skills-cards", api.SkillsCards)
		portfolio.GET("/about/", api.About)
		portfolio.GET("/about/:lang/", api.About)
		portfolio.GET("/footer-links", api.FooterLinks)
		portfolio.GET("/contact/", api.Contact)
		portfolio.GET("/contact/:lang", api.Contact)
	}

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.POST("/login", loginLimiter.Middleware(), api.Login)
		admin.POST("/logout", api.Logout)

		auth := admin.Group("/api")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/me", api.Me)

			auth.GET("/posts/:id", api.AdminGetPost)
			auth.POST("/posts", api.CreatePost)
			auth.PUT("/posts/:id", api.UpdatePost)
			auth.DELETE("/posts/:id", api.DeletePost)

			auth.POST("/tags", api.CreateTag)
			auth.DELETE("/tags/:id", api.DeleteTag)
			auth.POST("/categories", api.CreateCategory)
			auth.DELETE("/categories/:id", api.DeleteCategory)

			auth.GET("/authors", api.ListAuthors)
			auth.POST("/authors", api.CreateAuthor)

			auth.GET("/images", api.ListImages)
			auth.POST("/images", api.UploadImage)
			auth.DELETE("/images/:id", api.DeleteImage)
			auth.POST("/media/:folder", api.UploadMedia)

			auth.PATCH("/comments/:id/visibility", api.SetCommentVisibility)
		}
	}

	return r
}

func localMediaPrefix(mediaURL string) (string, bool) {
	if !strings.HasPrefix(mediaURL, "/") || strings.HasPrefix(mediaURL, "//") {
		return "", false
	}
	prefix := strings.TrimSuffix(mediaURL, "/")
	if prefix == "" {
		return "", false
	}
	return prefix, true
}
