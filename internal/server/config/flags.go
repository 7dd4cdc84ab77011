package config

import (
	"flag"

	"github.com/dmitrijs2005/technotes/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":3500")
//	-d string   database URI
//	-n string   database name
//	-l string   logs directory
//	-s string   access token secret
//	-o list     comma separated CORS origins
//
// Arguments are filtered with flagx.FilterArgs first so -c/-config and
// foreign flags do not break parsing.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-n", "-l", "-s", "-o"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseURI, "d", config.DatabaseURI, "database URI")
	fs.StringVar(&config.DatabaseName, "n", config.DatabaseName, "database name")
	fs.StringVar(&config.LogsDir, "l", config.LogsDir, "logs directory")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "access token secret")

	origins := flagx.StringList(config.AllowedOrigins)
	fs.Var(&origins, "o", "comma separated allowed origins")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.AllowedOrigins = origins
	return nil
}
