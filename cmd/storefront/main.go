package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/HirthickCoder/D3R/internal/authclient"
	"github.com/HirthickCoder/D3R/internal/cart"
	"github.com/HirthickCoder/D3R/internal/checkout"
	"github.com/HirthickCoder/D3R/internal/clipboard"
	"github.com/HirthickCoder/D3R/internal/config"
	"github.com/HirthickCoder/D3R/internal/db"
	"github.com/HirthickCoder/D3R/internal/events"
	"github.com/HirthickCoder/D3R/internal/httpapi"
	"github.com/HirthickCoder/D3R/internal/payment"
	"github.com/HirthickCoder/D3R/internal/session"
)

func main() {
	cfg := config.Load()

	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.Lshortfile)

	if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
		logger.Fatalf("run migrations: %v", err)
	}

	database := db.MustOpen(cfg.DatabaseDSN)
	defer database.Close()

	cartRepo := cart.NewRepository(database)
	storage := session.NewPostgres(database)

	authAPI := authclient.New(cfg.AuthAPIURL, &http.Client{Timeout: cfg.UpstreamTimeout})
	provider := payment.NewSimulated(cfg.PaymentDelay)

	var publisher *events.Publisher
	var receiptEvents checkout.ReceiptPublisher
	if cfg.RabbitURL != "" {
		conn, err := amqp.Dial(cfg.RabbitURL)
		if err != nil {
			logger.Fatalf("connect to RabbitMQ: %v", err)
		}
		defer conn.Close()

		publisher, err = events.NewPublisher(conn)
		if err != nil {
			logger.Fatalf("create order events publisher: %v", err)
		}
		receiptEvents = publisher
	} else {
		logger.Printf("RABBITMQ_URL not set, order events disabled")
	}

	handler := httpapi.NewHandler(logger, cartRepo, provider, authAPI, storage, clipboard.System{}, receiptEvents)
	router := httpapi.NewRouter(handler, cfg.CORSAllowOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("storefront listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Printf("shutdown signal received")
	case err := <-errCh:
		logger.Fatalf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown error: %v", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Printf("publisher close error: %v", err)
		}
	}
}
