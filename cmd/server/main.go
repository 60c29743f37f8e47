package main

import (
	"context"
	"fmt"
	"log"

	_ "github.com/einvoicelab/e-invoice-service/docs"
	"github.com/einvoicelab/e-invoice-service/internal/config"
	"github.com/einvoicelab/e-invoice-service/internal/database"
	"github.com/einvoicelab/e-invoice-service/internal/handler"
	"github.com/einvoicelab/e-invoice-service/internal/repository"
	"github.com/einvoicelab/e-invoice-service/internal/server"
	"github.com/einvoicelab/e-invoice-service/internal/service"
)

// @title E-Invoice API
// @version 1.0
// @description HTTP API for recording electronic invoices
// @BasePath /
func main() {
	// Load configuration
	log.Println("Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to the database
	log.Println("Connecting to database...")
	db, err := database.NewPostgresDB(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize repository and service
	log.Println("Initializing repository...")
	repo := repository.NewPostgresInvoiceRepository(db.GetPool())
	invoiceService := service.NewInvoiceService(repo)

	// Create handler
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)

	// Create and configure server
	log.Println("Configuring server...")
	appServer := server.NewServer(cfg, invoiceHandler)

	// Start server (blocking call)
	log.Printf("Starting server on port %d...", cfg.Port)
	if err := appServer.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	fmt.Println("Server shutdown complete")
}
