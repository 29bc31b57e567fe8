package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ticketplace/backend/internal/config"
	"github.com/ticketplace/backend/internal/events"
	"github.com/ticketplace/backend/internal/httpserver"
	"github.com/ticketplace/backend/internal/keys"
	"github.com/ticketplace/backend/internal/logging"
	"github.com/ticketplace/backend/internal/middleware/loggingmw"
	"github.com/ticketplace/backend/internal/repo"
	"github.com/ticketplace/backend/internal/service"
	"github.com/ticketplace/backend/internal/tokens"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmpty(cfg.PrivateKeyPath, "PRIVATE_KEY_PATH")

	logger := logging.New(cfg.LogLevel)

	// No key material, no authenticated routes. Fatal by design.
	keyPair, err := keys.Load(cfg.PrivateKeyPath)
	if err != nil {
		log.Fatalf("key material: %v", err)
	}

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	verifier := tokens.NewVerifier(keyPair)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc: &service.AuthService{
				Repo:     &repo.UserRepo{DB: db},
				Issuer:   tokens.NewIssuer(keyPair),
				Verifier: verifier,
				Producer: producer,
			},
		},
		Verifier: verifier,
	})

	go func() {
		if err := e.Start(cfg.ServerAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}
}
