package config

import (
	"flag"
	"os"

	"github.com/devesh1231/user-account-service/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. Only the
// flags it recognizes are parsed; everything else in os.Args is ignored.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&config.ServerEndpointAddr, "a", config.ServerEndpointAddr, "base URL of the account service")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
