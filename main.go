package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"gamevault_server/config"
	"gamevault_server/routes"
	"gamevault_server/services"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient(cfg.AWSRegion)
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Shared collaborators
	marketplaceService := services.NewMarketplaceService(cfg.MarketplaceBaseURL, time.Duration(cfg.MarketplaceTimeout)*time.Second)
	snapshotService := &services.PriceSnapshotService{Dynamo: dynamoService, RetentionDays: cfg.SnapshotRetentionDays}
	emailService := &services.SESEmailService{Client: services.InitializeSESClient(cfg.AWSRegion), Sender: cfg.SenderEmail}

	// Entity stores
	userService := &services.UserService{Dynamo: dynamoService}
	collectionService := &services.CollectionService{Dynamo: dynamoService}
	gameService := &services.GameService{
		Dynamo:             dynamoService,
		Marketplace:        marketplaceService,
		Snapshots:          snapshotService,
		MarketplaceRetries: cfg.MarketplaceRetries,
	}
	priceMonitorService := &services.PriceMonitorService{
		Dynamo:             dynamoService,
		Games:              gameService,
		Marketplace:        marketplaceService,
		Snapshots:          snapshotService,
		MarketplaceRetries: cfg.MarketplaceRetries,
	}
	notificationService := &services.NotificationService{
		Games:       gameService,
		Monitors:    priceMonitorService,
		Marketplace: marketplaceService,
		Email:       emailService,
		ItemTimeout: time.Duration(cfg.MarketplaceTimeout) * time.Second,
	}

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to GameVault")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterUserRoutes(r, userService)
	routes.RegisterCollectionRoutes(r, collectionService)
	routes.RegisterGameRoutes(r, gameService)
	routes.RegisterPriceMonitorRoutes(r, priceMonitorService)
	routes.RegisterNotificationRoutes(r, notificationService)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
