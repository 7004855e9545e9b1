package main

import (
	"log"

	"github.com/joho/godotenv"

	"firemonitor/internal/app"
)

func main() {
	// Optional .env file; environment variables win.
	_ = godotenv.Load()

	application, err := app.NewApp()
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
