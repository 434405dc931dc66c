package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"

	"github.com/jshn22/jira-clone/internal/config"
	"github.com/jshn22/jira-clone/internal/database"
	"github.com/jshn22/jira-clone/internal/handlers"
	authmw "github.com/jshn22/jira-clone/internal/middleware"
	"github.com/jshn22/jira-clone/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	projectService := services.NewProjectService(db)
	taskService := services.NewTaskService(db)
	aiService := services.NewAIService(cfg.Gemini)

	if !aiService.Configured() {
		log.Println("GEMINI_API_KEY not set, AI task generation will serve canned data")
	}

	authHandler := handlers.NewAuthHandler(userService, tokenService, jwtService)
	projectHandler := handlers.NewProjectHandler(projectService, taskService)
	taskHandler := handlers.NewTaskHandler(taskService)
	aiHandler := handlers.NewAIHandler(aiService, taskService, projectService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/projects", projectHandler.Create)
	protected.Get("/projects", projectHandler.List)
	protected.Get("/projects/:id", projectHandler.Get)
	protected.Put("/projects/:id", projectHandler.Update)
	protected.Delete("/projects/:id", projectHandler.Delete)
	protected.Get("/projects/:id/members", projectHandler.GetMembers)
	protected.Post("/projects/:id/members", projectHandler.AddMember)
	protected.Get("/projects/:id/stats", projectHandler.Stats)

	protected.Post("/tasks", taskHandler.Create)
	protected.Get("/tasks/project/:projectId", taskHandler.ListByProject)
	protected.Put("/tasks/:id/status", taskHandler.UpdateStatus)
	protected.Put("/tasks/:id/assign", taskHandler.Assign)
	protected.Put("/tasks/:id", taskHandler.Update)
	protected.Delete("/tasks/:id", taskHandler.Delete)

	protected.Post("/ai/generate-tasks", aiHandler.GenerateTasks)
	protected.Post("/ai/tasks/:id/breakdown", aiHandler.BreakdownTask)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = tokenService.CleanupExpired(context.Background())
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
