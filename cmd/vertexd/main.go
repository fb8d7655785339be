package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/baudgraph/vertex/env"
	"github.com/baudgraph/vertex/internal/vlog"
	"github.com/baudgraph/vertex/store"
)

const (
	flagBind      = "bind"
	flagData      = "data"
	flagHTTP      = "http"
	flagVerbose   = "v"
	flagMapSize   = "map-size"
	flagMaxBucket = "max-buckets"
)

var (
	app = &cli.App{
		Name:        "vertexd",
		Usage:       "vertexd [command]",
		Description: "Embedded property-graph and vector store daemon.",
	}
	serveCmd = &cli.Command{
		Name:        "serve",
		Usage:       "vertexd serve",
		Description: "Open the store and serve requests until a signal is received",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagBind, Usage: "RPC listen address (unix socket paths are unlinked before binding)"},
			&cli.StringFlag{Name: flagData, Usage: "data directory", Required: true},
			&cli.StringFlag{Name: flagHTTP, Usage: "HTTP listen address"},
			&cli.BoolFlag{Name: flagVerbose, Aliases: []string{"verbose"}, Usage: "enable debug logging"},
			&cli.Int64Flag{Name: flagMapSize, Usage: "virtual map size budget in bytes (accepted but not passed to the engine)"},
			&cli.IntFlag{Name: flagMaxBucket, Usage: "max open table count hint (0 selects the default)"},
		},
		Action: runServe,
	}
)

func runServe(c *cli.Context) error {
	if c.Bool(flagVerbose) {
		vlog.SetLevel(vlog.LevelDebug)
	}

	if bind := c.String(flagBind); isUnixSocketPath(bind) {
		if err := os.Remove(bind); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("vertexd: unlink %s: %w", bind, err)
		}
	}

	if maxBuckets := c.Int(flagMaxBucket); maxBuckets != 0 && maxBuckets < env.TableCount() {
		return fmt.Errorf("vertexd: --max-buckets %d is below the fixed table count %d", maxBuckets, env.TableCount())
	}

	s, err := store.Open(env.Options{
		Dir:     c.String(flagData),
		MapSize: c.Int64(flagMapSize),
	})
	if err != nil {
		return fmt.Errorf("vertexd: open store: %w", err)
	}
	defer s.Close()

	vlog.Infof("vertexd: store open at %s (bind=%q http=%q)", c.String(flagData), c.String(flagBind), c.String(flagHTTP))

	// The RPC and HTTP transports that would translate requests into
	// Store calls are out-of-scope collaborators; this process only
	// owns the Store's lifetime and blocks until told to stop.
	waitForSignal()

	vlog.Infof("vertexd: shutting down")
	return nil
}

// isUnixSocketPath reports whether bind names a filesystem path rather
// than a host:port address, the only case the CLI contract requires
// unlinking before a listener binds it.
func isUnixSocketPath(bind string) bool {
	return bind != "" && (bind[0] == '/' || bind[0] == '.')
}

func waitForSignal() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	<-sigs
}

func init() {
	app.Commands = append(app.Commands, serveCmd)
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "vertexd: %s\n", err)
		os.Exit(1)
	}
}
