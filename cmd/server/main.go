package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/beadloom/storefront/internal/config"
	"github.com/beadloom/storefront/internal/db"
	"github.com/beadloom/storefront/internal/events"
	"github.com/beadloom/storefront/internal/httpserver"
	"github.com/beadloom/storefront/internal/logging"
	loggingmw "github.com/beadloom/storefront/internal/middleware/logging"
	"github.com/beadloom/storefront/internal/payment"
	"github.com/beadloom/storefront/internal/repo"
	"github.com/beadloom/storefront/internal/search"
	"github.com/beadloom/storefront/internal/service"
)

func main() {
	cfg := config.MustLoad()

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx := context.Background()

	gormDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("database migrate: %v", err)
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
	} else {
		logger.Warn("KAFKA_BROKERS not set, event publishing disabled")
	}

	var productIndex *search.Index
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init: %v", err)
		}
		productIndex = search.NewIndex(esClient, "products")
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	store := repo.New(gormDB)
	broker := payment.NewStripeBroker(cfg.StripeSecretKey)

	var publisher events.Publisher
	if producer != nil {
		publisher = producer
	}

	deps := httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{
			Svc: &service.CatalogService{Repo: store, Producer: publisher, Search: productIndex},
		},
		OrderHandler: &httpserver.OrderHTTP{
			Svc: &service.OrderService{Repo: store, Producer: publisher},
		},
		CheckoutHandler: &httpserver.CheckoutHTTP{
			Svc: &service.CheckoutService{Repo: store, Broker: broker, PublicBaseURL: cfg.PublicBaseURL},
		},
		WebhookHandler: &httpserver.WebhookHTTP{
			Reconciler:    &service.Reconciler{Repo: store, Producer: publisher},
			SigningSecret: cfg.StripeWebhookSecret,
		},
		CollectionsHandler: &httpserver.CollectionsHTTP{
			Svc: &service.CollectionsService{Repo: store},
		},
		JWTSecret: cfg.JWTSecret,
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
