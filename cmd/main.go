package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"solosphere/config"
	"solosphere/db"
	"solosphere/handlers"
	"solosphere/services"
	"solosphere/store"
)

func main() {
	// A .env file is optional; deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Connect to MongoDB
	client, err := db.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Disconnect(client)

	database := client.Database(cfg.MongoDB)
	jobs := store.NewJobs(database)
	bids := store.NewBids(database)
	sessions := services.NewSessionService(cfg.JWTSecret, cfg.Production)

	jobHandler := handlers.NewJobHandler(jobs)
	bidHandler := handlers.NewBidHandler(bids, jobs)
	authHandler := handlers.NewAuthHandler(sessions)

	router := httprouter.New()
	router.GET("/", handleRoot)
	router.GET("/health", handleHealth)

	router.GET("/jobs", jobHandler.List)
	router.GET("/allJobs", jobHandler.ListFiltered)
	router.POST("/addJob", jobHandler.Create)
	router.GET("/jobs/:email", jobHandler.ListByBuyer)
	router.GET("/job/:id", jobHandler.Get)
	router.PUT("/updateJob/:id", jobHandler.Update)
	router.DELETE("/job/:id", jobHandler.Delete)

	router.POST("/addBid", bidHandler.Create)
	router.GET("/myBids/:email", bidHandler.ListByBidder)
	router.GET("/bidRequest/:email", authHandler.RequireSession(bidHandler.ListByBuyer))
	router.PATCH("/bidStatusUpdate/:id", bidHandler.UpdateStatus)

	router.POST("/jwt", authHandler.CreateToken)
	router.GET("/logoutJWT", authHandler.Logout)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsPolicy(cfg).Handler(router),
	}

	log.Printf("Starting server on port %s\n", cfg.Port)

	// Start server in a goroutine so we can listen for shutdown signals
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// corsPolicy is permissive unless a single frontend origin is
// configured, in which case cookies require credentials mode.
func corsPolicy(cfg *config.Config) *cors.Cors {
	if cfg.CORSOrigin == "" {
		return cors.AllowAll()
	}
	return cors.New(cors.Options{
		AllowedOrigins: []string{cfg.CORSOrigin},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete,
		},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
}

func handleRoot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "Hello from SoloSphere Server....")
}

// handleHealth is a simple health check endpoint.
func handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"healthy"}`)
}
