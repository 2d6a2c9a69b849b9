// Package main implements the entry point for the quizgen API server,
// which serves LLM-generated PSeInt quiz questions from a bounded prefetch
// cache kept warm by a background worker.
package main

import (
	"context"
	"log"
)

func main() {
	ctx := context.Background()

	app, err := newApplication(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Keep the cache warm from the moment the server accepts traffic.
	app.replenishWorker.Start()

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
