package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gestimo/rent-service/internal/config"
	"github.com/gestimo/rent-service/internal/handler"
	"github.com/gestimo/rent-service/internal/integrations/insee"
	"github.com/gestimo/rent-service/internal/middleware"
	"github.com/gestimo/rent-service/internal/repository"
	"github.com/gestimo/rent-service/internal/scheduler"
	"github.com/gestimo/rent-service/internal/service"
	"github.com/gestimo/rent-service/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
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

	// Initialize layers
	repo := repository.NewRepository(db)
	sender := email.NewSender(cfg, logger)
	svc := service.NewService(repo, sender, logger)
	indexClient := insee.NewClient(cfg, logger)
	h := handler.NewHandler(svc, indexClient, logger)

	// Recurring jobs: monthly generation, daily overdue sweep
	sched, err := scheduler.New(cfg, svc, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.AuthMiddleware(cfg))
	r.HandleFunc("/payments/generate", h.GeneratePayments).Methods("POST")
	r.HandleFunc("/payments/{id}/validate", h.ValidatePayment).Methods("POST")
	r.HandleFunc("/payments/{id}/history", h.PaymentHistory).Methods("GET")
	r.HandleFunc("/payments/{id}/reminders", h.SendReminder).Methods("POST")
	r.HandleFunc("/leases/{id}/payments", h.LeasePayments).Methods("GET")
	r.HandleFunc("/leases/{id}/payment-config", h.LeaseConfig).Methods("GET")
	r.HandleFunc("/leases/{id}/payment-config", h.SaveConfig).Methods("PUT")
	r.HandleFunc("/leases/{id}/revise-rent", h.ReviseRent).Methods("POST")
	r.HandleFunc("/leases/{id}/adjust-charges", h.AdjustCharges).Methods("POST")
	r.HandleFunc("/stats", h.Stats).Methods("GET")
	r.HandleFunc("/reference-index", h.ReferenceIndex).Methods("GET")

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
