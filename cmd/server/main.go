// Command server runs the dupe catalog HTTP API.
//
// Configuration is read from config.yaml and environment variables; see
// internal/config for the full list. Requires DATABASE_DSN and
// AUTH_JWT_SECRET at minimum.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/sipalaciosv/dupe/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
