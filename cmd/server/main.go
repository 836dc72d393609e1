package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/taskflow-app/taskflow/config"
	"github.com/taskflow-app/taskflow/db"
	authhandler "github.com/taskflow-app/taskflow/internal/auth/handler"
	authrepo "github.com/taskflow-app/taskflow/internal/auth/repository/postgres"
	authservice "github.com/taskflow-app/taskflow/internal/auth/service"
	taskhandler "github.com/taskflow-app/taskflow/internal/task/handler"
	taskrepo "github.com/taskflow-app/taskflow/internal/task/repository/postgres"
	taskservice "github.com/taskflow-app/taskflow/internal/task/service"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	userRepo := authrepo.NewPostgresUserRepository(dbPool)
	taskRepo := taskrepo.NewPostgresTaskRepository(dbPool)

	tokenService := authservice.NewTokenService(cfg.JWTSecret, cfg.TokenExpiryMin)
	userService := authservice.NewUserService(userRepo, tokenService)
	taskService := taskservice.NewTaskService(taskRepo)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	authhandler.RegisterRoutes(app, authhandler.NewAuthHandler(userService))
	taskhandler.RegisterRoutes(app, taskhandler.NewTaskHandler(taskService), tokenService)

	log.Printf("listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
