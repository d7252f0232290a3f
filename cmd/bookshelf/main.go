package main

import (
	"context"
	"log"

	"github.com/MrSnakeDoc/bookshelf/internal/app"
)

func main() {
	a, err := app.New(context.Background())
	if err != nil {
		log.Fatalf("❌ bookshelf failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ bookshelf stopped with error: %v", err)
	}
}
