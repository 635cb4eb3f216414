package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio/config"
	"portfolio/database"
	accountRepo "portfolio/database/repository/account"
	postRepo "portfolio/database/repository/post"
	"portfolio/handlers"
	"portfolio/routes"
	"portfolio/services/auth"
	"portfolio/services/codestore"
	"portfolio/services/credentials"
	"portfolio/services/notification"
	"portfolio/services/post"
	"portfolio/services/storage"
	"portfolio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("main: invalid configuration: %v", err)
	}
	cfg := config.AppConfig
	utils.InitializeLogger(config.IsProduction(), cfg.LogLevel)
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if err := database.InitDB(); err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}

	// Pending verification codes.
	var codes codestore.Store
	switch cfg.CodeStore {
	case "memory":
		mem := codestore.NewMemoryStore(nil)
		mem.StartSweeper(ctx, cfg.CodeSweepInterval)
		codes = mem
		logger.Warn("Verification codes are kept in memory and are not shared between instances")
	default:
		if err := utils.InitCodeCache(); err != nil {
			logger.Fatal("main: failed to connect to Redis", zap.Error(err))
		}
		codes = codestore.NewRedisStore(utils.GetCodeCacheClient(), cfg.CodeRetention, nil)
	}

	// repositories.
	accounts, err := accountRepo.NewMongoAccountRepo(ctx, database.Database())
	if err != nil {
		logger.Fatal("main: failed to prepare accounts collection", zap.Error(err))
	}
	posts, err := postRepo.NewMongoPostRepo(ctx, database.Database())
	if err != nil {
		logger.Fatal("main: failed to prepare posts collection", zap.Error(err))
	}

	// services.
	tokens, err := credentials.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL, nil)
	if err != nil {
		logger.Fatal("main: failed to create token issuer", zap.Error(err))
	}
	mailer, err := notification.NewSenderFromConfig(cfg)
	if err != nil {
		logger.Fatal("main: failed to create email sender", zap.Error(err))
	}
	uploads, err := storage.NewFromConfig(ctx, cfg)
	if err != nil {
		logger.Fatal("main: failed to initialize storage", zap.Error(err), zap.String("provider", cfg.StorageProvider))
	}

	authService := &auth.DefaultAuthService{
		Repo:           accounts,
		Codes:          codes,
		Hasher:         credentials.NewBcryptHasher(),
		Tokens:         tokens,
		Notifier:       mailer,
		CodeTTL:        cfg.CodeTTL,
		VerifyLinkBase: cfg.VerifyLinkBase,
	}
	postService := &post.DefaultPostService{Repo: posts}

	maxUpload := cfg.MaxUploadMB << 20
	handlerBundle := &handlers.HandlerBundle{
		Auth:    handlers.NewAuthHandler(authService),
		Posts:   handlers.NewPostHandler(postService),
		Storage: handlers.NewStorageHandler(uploads, cfg.UploadFolder, maxUpload),
		Tokens:  tokens,
	}

	utils.StartHealthMonitor(ctx, 30*time.Second, utils.GetCodeCacheClient(), database.MongoClient)

	router := gin.New()
	router.MaxMultipartMemory = 32 << 20
	router.Use(utils.ErrorHandler())
	routes.RegisterRoutes(router, handlerBundle, cfg)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if err := database.Disconnect(shutdownCtx); err != nil {
		logger.Error("main: failed to disconnect MongoDB", zap.Error(err))
	}
	if client := utils.GetCodeCacheClient(); client != nil {
		client.Close()
	}
	logger.Info("main: server stopped gracefully")
}
