package main

import (
	"context"

	"github.com/devesh1231/user-account-service/internal/client/cli"
	"github.com/devesh1231/user-account-service/internal/client/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app := cli.NewApp(cfg)
	app.Run(ctx)
}
