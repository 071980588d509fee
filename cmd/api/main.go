package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"

	"github.com/Emmir-1/sell-swap-hint/internal/account"
	"github.com/Emmir-1/sell-swap-hint/internal/auth"
	"github.com/Emmir-1/sell-swap-hint/internal/cache"
	"github.com/Emmir-1/sell-swap-hint/internal/category"
	"github.com/Emmir-1/sell-swap-hint/internal/config"
	"github.com/Emmir-1/sell-swap-hint/internal/news"
	"github.com/Emmir-1/sell-swap-hint/internal/notify"
	"github.com/Emmir-1/sell-swap-hint/internal/order"
	"github.com/Emmir-1/sell-swap-hint/internal/postgres"
	"github.com/Emmir-1/sell-swap-hint/internal/product"
	"github.com/Emmir-1/sell-swap-hint/internal/promo"
	"github.com/Emmir-1/sell-swap-hint/internal/rating"
	"github.com/Emmir-1/sell-swap-hint/internal/telemetry"
	"github.com/Emmir-1/sell-swap-hint/internal/tracking"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Telemetry
	tp, err := telemetry.InitTracer(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()
	mp, err := telemetry.InitMetrics(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down metrics: %v", err)
		}
	}()
	tracer := otel.Tracer(cfg.ServiceName)

	// Database
	db, err := postgres.Connect(ctx, cfg.DatabaseDSN())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Mail dispatcher
	mailer, err := notify.NewSMTPMailer(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})
	if err != nil {
		log.Fatalf("Failed to initialize mailer: %v", err)
	}
	dispatcher := notify.NewDispatcher(mailer, cfg.NotifyQueueSize, cfg.NotifyWorkers)
	if err := dispatcher.Start(ctx); err != nil {
		log.Fatalf("Failed to start mail dispatcher: %v", err)
	}

	// Page-view recorder
	trackingRepository := tracking.NewRepository(db)
	recorder := tracking.NewRecorder(trackingRepository, cfg.NotifyQueueSize)
	recorder.Start()

	// Auth
	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		SecretKey:            cfg.JWTSecret,
		AccessTokenDuration:  cfg.AccessTokenTTL,
		RefreshTokenDuration: cfg.RefreshTokenTTL,
		Issuer:               cfg.ServiceName,
	})
	hasher := auth.NewPasswordHasher()

	// Repositories and use cases
	accountRepository := account.NewRepository(db)
	accountUseCase := account.NewUseCase(accountRepository, hasher, jwtManager, dispatcher, cfg.PublicHost)
	accountHandler := account.NewHandler(accountUseCase)

	categoryRepository := category.NewRepository(db)
	categoryHandler := category.NewHandler(category.NewUseCase(categoryRepository))

	productRepository := product.NewRepository(db)
	productHandler := product.NewHandler(product.NewUseCase(productRepository))

	orderRepository := order.NewRepository(db)
	orderHandler := order.NewHandler(order.NewUseCase(orderRepository, dispatcher), tracer)

	ratingHandler := rating.NewHandler(rating.NewUseCase(rating.NewRepository(db)))
	promoHandler := promo.NewHandler(promo.NewUseCase(promo.NewRepository(db)))

	newsRepository := news.NewRepository(db)
	scraper := news.NewScraper(newsRepository, cfg.NewsSourceURL)
	newsHandler := news.NewHandler(newsRepository, scraper)

	trackingHandler := tracking.NewHandler(trackingRepository)

	// Response cache. Public listings share entries by path; the orders
	// listing is per-user, it must never replay one user's body to another.
	passThrough := gin.HandlerFunc(func(c *gin.Context) { c.Next() })
	publicCache, userCache := passThrough, passThrough
	if !cfg.CacheDisabled {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		store := cache.NewRedisStore(redisClient, "page:")
		if err := store.Ping(ctx); err != nil {
			log.Printf("Redis unreachable, responses will not be cached: %v", err)
		} else {
			publicCache = cache.Page(store, cfg.CacheTTL, cache.PathKey)
			userCache = cache.Page(store, cfg.CacheTTL, cache.UserKey)
		}
	}

	// Scheduled news scraping
	scheduler := cron.New()
	if !cfg.ScrapeDisabled && cfg.NewsSourceURL != "" {
		_, err := scheduler.AddFunc(cfg.ScrapeSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if _, err := scraper.Run(ctx); err != nil {
				log.Printf("Scheduled scrape failed: %v", err)
			}
		})
		if err != nil {
			log.Fatalf("Invalid scrape schedule %q: %v", cfg.ScrapeSchedule, err)
		}
		scheduler.Start()
	}

	// Router
	r := gin.Default()
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(tracking.Middleware(recorder))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	accounts := api.Group("/accounts")
	{
		accounts.POST("/register", accountHandler.Register)
		accounts.GET("/activate/:code", accountHandler.Activate)
		accounts.POST("/login", accountHandler.Login)
		accounts.POST("/refresh", accountHandler.Refresh)
		accounts.POST("/change-password", auth.Middleware(jwtManager), accountHandler.ChangePassword)
		accounts.PUT("/profile", auth.Middleware(jwtManager), accountHandler.UpdateProfile)
		accounts.GET("", auth.Middleware(jwtManager), auth.StaffOnly(), accountHandler.List)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.List)
		categories.GET("/:slug", categoryHandler.Get)
		staff := categories.Group("", auth.Middleware(jwtManager), auth.StaffOnly())
		staff.POST("", categoryHandler.Create)
		staff.PUT("/:slug", categoryHandler.Update)
		staff.DELETE("/:slug", categoryHandler.Delete)
	}

	products := api.Group("/products")
	{
		products.GET("", auth.OptionalMiddleware(jwtManager), productHandler.List)
		products.GET("/favorites", auth.Middleware(jwtManager), productHandler.ListFavorites)
		products.GET("/:id", auth.OptionalMiddleware(jwtManager), productHandler.Get)
		products.GET("/:id/reviews", ratingHandler.ListByProduct)

		authed := products.Group("", auth.Middleware(jwtManager))
		authed.POST("", productHandler.Create)
		authed.PUT("/:id", productHandler.Update)
		authed.DELETE("/:id", productHandler.Delete)
		authed.POST("/:id/like", productHandler.Like)
		authed.POST("/:id/favorite", productHandler.Favorite)
		authed.POST("/:id/reviews", ratingHandler.Create)
	}

	reviews := api.Group("/reviews", auth.Middleware(jwtManager), auth.StaffOnly())
	{
		reviews.PUT("/:id", ratingHandler.Update)
		reviews.DELETE("/:id", ratingHandler.Delete)
	}

	orders := api.Group("/orders", auth.Middleware(jwtManager))
	{
		orders.POST("", orderHandler.Place)
		orders.GET("", userCache, orderHandler.List)
		orders.GET("/:id", orderHandler.Get)
	}

	promos := api.Group("/promos")
	{
		promos.GET("", publicCache, promoHandler.List)
		staff := promos.Group("", auth.Middleware(jwtManager), auth.StaffOnly())
		staff.POST("", promoHandler.Create)
		staff.PUT("/:id", promoHandler.Update)
		staff.DELETE("/:id", promoHandler.Delete)
	}

	newsGroup := api.Group("/news")
	{
		newsGroup.GET("", publicCache, newsHandler.List)
		staff := newsGroup.Group("", auth.Middleware(jwtManager), auth.StaffOnly())
		staff.GET("/parse", newsHandler.Parse)
		staff.DELETE("/:id", newsHandler.Delete)
	}

	trackingGroup := api.Group("/tracking", auth.Middleware(jwtManager), auth.StaffOnly())
	{
		trackingGroup.GET("", trackingHandler.List)
		trackingGroup.DELETE("/:id", trackingHandler.Delete)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		log.Printf("🚀 Shop API listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	scrapeCtx := scheduler.Stop()
	<-scrapeCtx.Done()
	recorder.Stop()
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Printf("Dispatcher shutdown error: %v", err)
	}
	log.Println("Bye")
}
