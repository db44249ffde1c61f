package main

import (
	"context"
	"log"
	"os"

	"github.com/mkalinin/healthportal/internal/client/cli"
	"github.com/mkalinin/healthportal/internal/client/config"
	"github.com/mkalinin/healthportal/internal/logging"
)

func main() {

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}
