package main

import (
	"context"
	"log"

	"quizbot/internal/app"
	"quizbot/internal/config"
)

func main() {
	cfg := config.Load()

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	a.Run(context.Background())
}
