package main

import (
	"context"
	"log"

	"github.com/agrodata/ordenes-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("api: %v", err)
	}
}
