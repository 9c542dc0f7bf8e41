package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/pizzalab/pizza-service/internal/config"
	"github.com/pizzalab/pizza-service/internal/handler"
	"github.com/pizzalab/pizza-service/internal/middleware"
	"github.com/pizzalab/pizza-service/internal/report"
	"github.com/pizzalab/pizza-service/internal/repository"
	"github.com/pizzalab/pizza-service/internal/service"
	"github.com/pizzalab/pizza-service/internal/token"
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
	db, err := sqlx.Connect("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := repository.RunMigrations(db, cfg.MigrationsDir); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize layers
	store := repository.NewStore(db)
	tokens := token.NewService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authSvc := service.NewAuthService(store, tokens, logger)
	orderSvc := service.NewOrderService(store, logger)
	authHandler := handler.NewAuthHandler(authSvc, logger)
	orderHandler := handler.NewOrderHandler(orderSvc, logger)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/refresh", authHandler.Refresh).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.RequireAccess(authSvc))
	authRouter.HandleFunc("/auth/", authHandler.Hello).Methods("GET")
	authRouter.HandleFunc("/orders/order/all", orderHandler.ListAll).Methods("GET")
	authRouter.HandleFunc("/orders/order/my-orders", orderHandler.ListMine).Methods("GET")
	authRouter.HandleFunc("/orders/order/export", orderHandler.Export).Methods("GET")
	authRouter.HandleFunc("/orders/order", orderHandler.Create).Methods("POST")
	authRouter.HandleFunc("/orders/order/get/{order_id}", orderHandler.Get).Methods("GET")
	authRouter.HandleFunc("/orders/order/update/{order_id}", orderHandler.Update).Methods("PUT")

	// Daily order report, enabled when SMTP is configured
	if cfg.SMTPHost != "" {
		reporter := report.NewReporter(store, report.NewMailer(cfg, logger), logger, cfg.ReportSchedule)
		if err := reporter.Start(); err != nil {
			logger.Fatalf("Failed to start order report: %v", err)
		}
		defer reporter.Stop()
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
