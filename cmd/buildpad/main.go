package main

import (
	"context"
	"log"

	"github.com/dspolyakov/buildpad/internal/client"
	"github.com/dspolyakov/buildpad/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := client.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
