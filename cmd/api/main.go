package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"harborview/internal/config"
	"harborview/internal/database"
	"harborview/internal/metrics"
	"harborview/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
)

func main() {
	log.SetPrefix("[API] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	log.Printf("Starting %s v%s", cfg.App.Name, cfg.App.Version)
	log.Printf("Environment: debug=%v, port=%s, host=%s", cfg.App.Debug, cfg.App.Port, cfg.App.Host)

	log.Println("Initializing database connection...")
	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		log.Println("Closing database connections...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.Close(ctx); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	log.Println("Initializing services...")
	db := database.GetDB()
	emailSvc := services.NewEmailService(&cfg.Email)
	authSvc := services.NewAuthService(db, &cfg.Auth)
	messageSvc := services.NewMessageService(db, emailSvc, cfg.Email.AdminEmail)
	businessSvc := services.NewBusinessService(db, emailSvc, cfg.Email.AdminEmail)
	articleSvc := services.NewArticleService(db)
	catalogSvc := services.NewCatalogService(db)
	contactSvc := services.NewContactService(db)

	if !emailSvc.IsEnabled() {
		log.Println("Email notifications disabled (no SMTP credentials configured)")
	}

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(securityHeaders(cfg))
	router.Use(corsMiddleware(cfg))
	router.Use(requestLogging())
	router.Use(metrics.Middleware())

	router.GET("/health", services.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/auth/login", authSvc.Login)

		api.POST("/messages", messageSvc.Submit)
		api.POST("/business/sell", businessSvc.SubmitSale)
		api.POST("/business/buy", businessSvc.SubmitBuy)

		api.GET("/articles", articleSvc.List)
		api.GET("/articles/meta/categories", articleSvc.Categories)
		api.GET("/articles/:id", articleSvc.Get)

		api.GET("/services", catalogSvc.List)
		api.GET("/services/:id", catalogSvc.Get)

		api.GET("/contact", contactSvc.Get)
	}

	admin := router.Group("/api", services.AuthMiddleware(&cfg.Auth))
	{
		admin.GET("/messages", messageSvc.List)
		admin.GET("/messages/:id", messageSvc.Get)
		admin.PATCH("/messages/:id", messageSvc.UpdateStatus)
		admin.DELETE("/messages/:id", messageSvc.Delete)

		admin.GET("/business/sales", businessSvc.ListSales)
		admin.PUT("/business/sales/:id", businessSvc.UpdateSaleStatus)
		admin.DELETE("/business/sales/:id", businessSvc.DeleteSale)
		admin.GET("/business/investments", businessSvc.ListBuys)
		admin.PUT("/business/investments/:id", businessSvc.UpdateBuyStatus)
		admin.DELETE("/business/investments/:id", businessSvc.DeleteBuy)

		admin.GET("/articles/admin/all", articleSvc.AdminList)
		admin.POST("/articles", articleSvc.Create)
		admin.PUT("/articles/:id", articleSvc.Update)
		admin.DELETE("/articles/:id", articleSvc.Delete)

		admin.GET("/services/all", catalogSvc.ListAll)
		admin.POST("/services", catalogSvc.Create)
		admin.PUT("/services/:id", catalogSvc.Update)
		admin.DELETE("/services/:id", catalogSvc.Delete)

		admin.PUT("/contact", contactSvc.Upsert)
	}

	addr := fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		ErrorLog:     log.New(os.Stderr, "[HTTP] ", log.LstdFlags),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("server error: %w", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatalf("Server failed to start: %v", err)
	case sig := <-shutdown:
		log.Printf("Received signal: %v. Starting graceful shutdown...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Error during graceful shutdown: %v", err)
		if err == context.DeadlineExceeded {
			log.Println("Shutdown timeout exceeded, forcing close...")
			httpServer.Close()
		}
	}

	log.Println("Server shutdown complete")
}

// validateConfig validates critical configuration values
func validateConfig(cfg *config.Config) error {
	if cfg.Auth.SecretKey == "" || cfg.Auth.SecretKey == "your-secret-key-change-in-production" {
		return fmt.Errorf("JWT_SECRET must be set and changed from default value")
	}
	if len(cfg.Auth.SecretKey) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters for security")
	}
	if cfg.App.Port == "" {
		return fmt.Errorf("PORT must be set")
	}
	return nil
}

// securityHeaders adds security headers to every response
func securityHeaders(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		c.Header("Server", "")

		// HSTS only when actually serving HTTPS
		if !cfg.App.Debug && c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// corsMiddleware validates origins against the configured allow-list in
// production; debug mode accepts everything.
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if !cfg.App.Debug && len(cfg.CORS.AllowedOrigins) > 0 && cfg.CORS.AllowedOrigins[0] != "*" {
			allowed := false
			for _, allowedOrigin := range cfg.CORS.AllowedOrigins {
				if origin == allowedOrigin {
					allowed = true
					break
				}
			}
			if !allowed && origin != "" {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}

		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
		} else if cfg.App.Debug {
			c.Header("Access-Control-Allow-Origin", "*")
		}

		c.Header("Access-Control-Allow-Methods", strings.Join(cfg.CORS.AllowedMethods, ", "))
		c.Header("Access-Control-Allow-Headers", strings.Join(cfg.CORS.AllowedHeaders, ", "))
		c.Header("Access-Control-Expose-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Header("Access-Control-Max-Age", fmt.Sprintf("%d", cfg.CORS.MaxAge))
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// requestLogging logs all incoming requests and their responses
func requestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip logging for health checks to reduce noise
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		log.Printf("[REQUEST] %s %s from %s", c.Request.Method, c.Request.URL.Path, c.ClientIP())

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		statusText := "OK"
		if status >= 400 {
			statusText = "ERROR"
		}
		log.Printf("[RESPONSE] %s %s -> %d %s (%v)", c.Request.Method, c.Request.URL.Path, status, statusText, duration)
	}
}
