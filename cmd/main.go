package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/srm-campusmart/backend/internal/api/messages"
	"github.com/srm-campusmart/backend/internal/api/products"
	"github.com/srm-campusmart/backend/internal/api/users"
	"github.com/srm-campusmart/backend/internal/auth"
	"github.com/srm-campusmart/backend/internal/config"
	"github.com/srm-campusmart/backend/internal/httputil"
	kvvalkey "github.com/srm-campusmart/backend/internal/kv/valkey"
	"github.com/srm-campusmart/backend/internal/middleware"
	"github.com/srm-campusmart/backend/internal/objects"
	"github.com/srm-campusmart/backend/internal/storage"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	store, err := kvvalkey.NewStore(cfg.ValkeyAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.ValkeyAddr).Msg("failed to connect to valkey")
	}
	defer store.Close()

	objectStore, err := objects.NewStore(cfg.UploadDir, cfg.PublicBaseURL, cfg.SigningSecret, cfg.SignedURLTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object store")
	}

	provider := auth.NewProvider(store, cfg.JWTSecret, cfg.TokenTTL)
	gate := middleware.NewGate(provider, log)

	userStore := storage.NewUserStore(store)
	productStore := storage.NewProductStore(store)
	messageStore := storage.NewMessageStore(store)

	userHandler := &users.Handler{
		Auth:        provider,
		Users:       userStore,
		EmailDomain: cfg.AllowedEmailDomain,
		Log:         log,
	}
	productHandler := &products.Handler{
		Products: productStore,
		Users:    userStore,
		Objects:  objectStore,
		Log:      log,
	}
	messageHandler := &messages.Handler{
		Messages: messageStore,
		Users:    userStore,
		Products: productStore,
		Log:      log,
	}

	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.CORSOrigin))
	router.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, provider, log).Handler)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	users.RegisterRoutes(router, userHandler, gate)
	products.RegisterRoutes(router, productHandler, gate)
	messages.RegisterRoutes(router, messageHandler, gate)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("server stopped")
}
