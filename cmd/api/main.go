package main

import (
	"context"
	"log"

	"github.com/vetlink/vetlink-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("vetlink api exited: %v", err)
	}
}
