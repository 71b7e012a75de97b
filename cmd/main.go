package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/gw-user-admin/internal/facades"
	"github.com/sbilibin2017/gw-user-admin/internal/handlers"
	"github.com/sbilibin2017/gw-user-admin/internal/logger"
	"github.com/sbilibin2017/gw-user-admin/internal/middlewares"
	"github.com/sbilibin2017/gw-user-admin/internal/repositories"
	"github.com/sbilibin2017/gw-user-admin/internal/services"
	"github.com/sbilibin2017/gw-user-admin/internal/validation"
	"github.com/sbilibin2017/gw-user-admin/internal/views"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

const serviceName = "gw-user-admin"

func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel, apiBaseURL,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns,
		viewExpSecond, rateLimit, maxUploadBytes,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel, apiBaseURL,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns,
		viewExpSecond, rateLimit, maxUploadBytes,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting %s\nVersion: %s\nCommit: %s\nBuild: %s\n", serviceName, buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// the application, user API, Redis and view store configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel, apiBaseURL string,
	redisHost string, redisPort int, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns int,
	viewExpSecond, rateLimit int, maxUploadBytes int64,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")
	if rateLimit, err = strconv.Atoi(getEnv("RATE_LIMIT", "120")); err != nil {
		return
	}
	if maxUploadBytes, err = strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", "5242880"), 10, 64); err != nil {
		return
	}

	// User API config
	apiBaseURL = getEnv("API_BASE_URL", "http://localhost:4000/api")

	// Redis config; an empty host keeps views in memory
	redisHost = getEnv("REDIS_HOST", "")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if redisPoolSize, err = strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10")); err != nil {
		return
	}
	if redisMinIdleConns, err = strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "2")); err != nil {
		return
	}

	// View store config
	if viewExpSecond, err = strconv.Atoi(getEnv("VIEW_EXP_SECOND", "1800")); err != nil {
		return
	}

	return
}

// run initializes the logger, view store, user API client and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel, apiBaseURL string,
	redisHost string, redisPort, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns int,
	viewExpSecond, rateLimit int, maxUploadBytes int64,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel, serviceName); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	viewExp := time.Duration(viewExpSecond) * time.Second

	// Initialize view store
	var store services.ViewStore
	if redisHost != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", redisHost, redisPort),
			Password:     redisPassword,
			DB:           redisDB,
			PoolSize:     redisPoolSize,
			MinIdleConns: redisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis connection error: %w", err)
		}
		defer rdb.Close()
		logger.Log.Infof("Views stored in Redis at %s:%d", redisHost, redisPort)
		store = repositories.NewViewCacheRepository(rdb, viewExp)
	} else {
		logger.Log.Info("Views stored in memory")
		store = repositories.NewViewMemoryRepository(viewExp)
	}

	// User API client; requests run to completion without a deadline
	userAPI := facades.NewUserAPIFacade(apiBaseURL, &http.Client{})
	logger.Log.Infof("User API at %s", apiBaseURL)

	// Initialize services
	formService := services.NewFormService(store, userAPI, validation.New())
	listService := services.NewListService(store, userAPI)

	pages, err := views.NewRenderer()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: newRouter(formService, listService, pages, rateLimit, maxUploadBytes),
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// newRouter wires the pages of the admin UI.
func newRouter(
	forms handlers.FormController,
	lists handlers.UserLister,
	pages handlers.PageRenderer,
	rateLimit int,
	maxUploadBytes int64,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.RateLimitMiddleware(rateLimit))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/users", http.StatusFound)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(chimiddleware.RequestSize(maxUploadBytes))

		// List view
		r.Get("/", handlers.NewListUsersHandler(lists, pages))
		r.Get("/views/{view}", handlers.NewListViewHandler(lists, pages))
		r.Post("/views/{view}/users/{id}/delete", handlers.NewDeleteUserHandler(lists, pages))
		r.Post("/views/{view}/notice/dismiss", handlers.NewDismissListNoticeHandler(lists, pages))

		// Forms
		r.Get("/new", handlers.NewCreateDraftHandler(forms, pages))
		r.Get("/{id}/edit", handlers.NewEditUserHandler(forms, pages))
		r.Get("/drafts/{draft}", handlers.NewDraftHandler(forms, pages))
		r.Post("/drafts/{draft}", handlers.NewSubmitDraftHandler(forms, pages))
		r.Post("/drafts/{draft}/languages/{language}", handlers.NewToggleLanguageHandler(forms, pages))
		r.Get("/drafts/{draft}/image", handlers.NewDraftImageHandler(forms))
		r.Post("/drafts/{draft}/image", handlers.NewSelectImageHandler(forms, pages))
		r.Post("/drafts/{draft}/image/delete", handlers.NewRemoveImageHandler(forms, pages))
		r.Post("/drafts/{draft}/notice/dismiss", handlers.NewDismissDraftNoticeHandler(forms, pages))
	})

	return r
}
