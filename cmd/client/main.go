package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/zoowayss/cursorpool/internal/buildinfo"
	"github.com/zoowayss/cursorpool/internal/client/cli"
	"github.com/zoowayss/cursorpool/internal/client/config"
	"github.com/zoowayss/cursorpool/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)
}
