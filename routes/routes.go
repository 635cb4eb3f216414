package routes

import (
	"time"

	"portfolio/config"
	"portfolio/handlers"
	"portfolio/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the sign-up and login endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/verify-email", hb.Auth.VerifyEmailHandler)
		api.POST("/resend-code", hb.Auth.ResendCodeHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.POST("/verify-login-email", hb.Auth.VerifyLoginEmailHandler)
		api.POST("/update-password", hb.Auth.ForgotPasswordHandler)
	}
}

// RegisterPostRoutes registers blog post endpoints. Reads are public.
func RegisterPostRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/posts")
	{
		api.GET("/get-posts", hb.Posts.GetPostsHandler)
		api.GET("/get-posts-list", hb.Posts.GetPostsListHandler)
		api.GET("/get-post/:id", hb.Posts.GetPostByIDHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.Tokens))
		protected.POST("/create-post", hb.Posts.CreatePostHandler)
	}
}

// RegisterUploadRoutes registers the file upload endpoint.
func RegisterUploadRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/upload", middleware.JWTAuthMiddleware(hb.Tokens), hb.Storage.UploadFileHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, cfg config.Config) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogger())
	r.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	RegisterAuthRoutes(r, hb)
	RegisterPostRoutes(r, hb)
	RegisterUploadRoutes(r, hb)
	RegisterHealthRoute(r)
}
