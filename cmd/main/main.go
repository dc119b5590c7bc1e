package main

import (
	"chatkeywords/internal/pkg/app"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.New(ctx); err != nil {
		log.Fatal(err)
	}
}
