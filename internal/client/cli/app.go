// Package cli implements the interactive command-line client of the
// account service.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/devesh1231/user-account-service/internal/client/api"
	"github.com/devesh1231/user-account-service/internal/client/config"
)

type App struct {
	config   *config.Config
	api      *api.Client
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerEndpointAddr),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}
