package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/kdduha/gemini-relay/internal/config"
	"github.com/kdduha/gemini-relay/internal/handler"
	"github.com/kdduha/gemini-relay/internal/httpclient"
	"github.com/kdduha/gemini-relay/internal/logger"
	"github.com/kdduha/gemini-relay/internal/metrics"
	"github.com/kdduha/gemini-relay/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	_ "github.com/kdduha/gemini-relay/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Gemini Relay API
// @version 1.0
// @description Forwards a prompt and an optional inline image to Gemini.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	lg, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}

	if cfg.Gemini.APIKey == "" {
		lg.Warn("GEMINI_API_KEY is empty, relay routes will answer 500")
	}

	httpClient := httpclient.New(httpclient.Options{
		PreferIPv4: cfg.HTTP.PreferIPv4,
		Timeout:    cfg.HTTP.Timeout,
	})

	rawService := service.NewRawService(lg, httpClient, cfg.Gemini)
	textService, err := service.NewTextService(ctx, lg, httpClient, cfg.Gemini)
	if err != nil {
		lg.Fatalf("text service error: %v", err)
	}

	h := handler.NewRelayHandler(lg, rawService, textService, cfg.Server.MaxBodyBytes)

	r := chi.NewRouter()
	r.Use([]func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: lg, NoColor: true}),
		middleware.Recoverer,
		middleware.Throttle(cfg.Server.ThrottleLimit),
		middleware.Timeout(cfg.Server.Timeout),
		metrics.Middleware,
	}...)

	// Relay routes accept every method so non-POST gets a JSON 405.
	r.HandleFunc("/api/gemini", h.Generate)
	r.HandleFunc("/gemini", h.GenerateText)
	r.Get("/healthz", h.Healthz)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Infof("server started :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		lg.Fatalf("server error: %v", err)
	}
	lg.Info("server stopped")
}
