package main

import (
	"context"
	"log"
	"os"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/buildinfo"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/cli"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/config"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())

}
