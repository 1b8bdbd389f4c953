package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/kudilabs/kudi-client/internal/client/cli"
	"github.com/kudilabs/kudi-client/internal/client/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)
}
