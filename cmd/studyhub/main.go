package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/studyhub-dev/studyhub/db"
	"github.com/studyhub-dev/studyhub/internal/auth"
	"github.com/studyhub-dev/studyhub/internal/logging"
	"github.com/studyhub-dev/studyhub/internal/mailer"
	"github.com/studyhub-dev/studyhub/internal/repositories"
	"github.com/studyhub-dev/studyhub/internal/router"
	"github.com/studyhub-dev/studyhub/internal/scheduler"
)

func main() {
	envErr := godotenv.Load()

	logging.InitLogger()

	if envErr != nil {
		logging.Logger.Info("No .env file found, using environment variables")
	}

	if err := auth.InitJWTSecret(); err != nil {
		logging.Logger.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		logging.Logger.Fatal("DATABASE_URL is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		logging.Logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		logging.Logger.Warnf("Failed to migrate database: %v", err)
	}

	if err := db.SeedDatabase(); err != nil {
		logging.Logger.Warnf("Failed to seed database: %v", err)
	}

	mail := mailer.NewFromEnv()

	reminders := scheduler.NewScheduler(repositories.NewAssignmentRepository(db.DB), mail)
	reminders.Start()
	defer reminders.Stop()

	r := router.NewRouter(db.DB, mail)

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		logging.Logger.Info("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		logging.Logger.Fatalf("Failed to start server: %v", err)
	}
}
