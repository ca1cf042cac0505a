package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/tallytrace/finance-service/internal/config"
	"github.com/tallytrace/finance-service/internal/events"
	"github.com/tallytrace/finance-service/internal/forecast"
	"github.com/tallytrace/finance-service/internal/handler"
	"github.com/tallytrace/finance-service/internal/integrations/ecb"
	"github.com/tallytrace/finance-service/internal/jobs"
	"github.com/tallytrace/finance-service/internal/repository"
	"github.com/tallytrace/finance-service/internal/service"
	"github.com/tallytrace/finance-service/internal/storage"
	"github.com/tallytrace/finance-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	if err := storage.RunMigrations(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Optional event publishing
	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			logger.Fatalf("Failed to connect to AMQP broker: %v", err)
		}
		defer publisher.Close()
	} else {
		logger.Info("AMQP_URL not set, event publishing disabled")
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	engine := forecast.NewEngine(repo, logger)
	mailer := email.NewSender(cfg, logger)
	svc := service.NewService(repo, engine, mailer, publisher, logger, cfg)
	fxClient := ecb.NewClient(cfg, logger)
	h := handler.NewHandler(svc, fxClient, logger)

	// Daily payment reminders
	reminder := jobs.NewReminderJob(repo, engine, mailer, cfg, logger)
	if err := reminder.Start(); err != nil {
		logger.Fatalf("Failed to start reminder job: %v", err)
	}
	defer reminder.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      h.Routes(cfg),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
