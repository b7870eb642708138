// cmd/urlgen/main.go prints the resolved corplink API URLs.
//
//	urlgen                      every operation, one "name<TAB>url" per line
//	urlgen list-tunnels         a single operation
//	urlgen -tunnel URL ...      select the tunnel host first
//	urlgen -company             the company lookup endpoint
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"corplink/internal/apiurl"
	"corplink/pkg/config"
	"corplink/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("urlgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config file (overrides CORPLINK_CONFIG)")
	tunnel := fs.String("tunnel", "", "tunnel server base URL")
	company := fs.Bool("company", false, "print the company lookup URL and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *company {
		fmt.Fprintln(stdout, apiurl.CompanyMatchURL)
		return 0
	}

	var (
		cfg config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	log := logger.New(cfg.Env, cfg.LogLevel)
	defer log.Sync()

	if err := generate(cfg, *tunnel, fs.Args(), stdout, log); err != nil {
		log.Errorw("urlgen", "err", err)
		return 1
	}
	return 0
}

func generate(cfg config.Config, tunnel string, names []string, out io.Writer, log *zap.SugaredLogger) error {
	reg, err := apiurl.New(cfg, log)
	if err != nil {
		return err
	}
	if tunnel != "" {
		if err := reg.SetTunnelServer(tunnel); err != nil {
			return err
		}
	}

	ops := apiurl.Operations()
	if len(names) > 0 {
		ops = ops[:0]
		for _, n := range names {
			op, err := apiurl.ParseOperation(n)
			if err != nil {
				return err
			}
			ops = append(ops, op)
		}
	}

	for _, op := range ops {
		u, err := reg.URL(op)
		if err != nil {
			// Tunnel operations are only listed once a tunnel host is known.
			if len(names) == 0 && op.Kind() == apiurl.KindTunnel && reg.TunnelServer() == "" {
				continue
			}
			return err
		}
		if len(names) == 1 {
			fmt.Fprintln(out, u)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", op, u)
	}
	return nil
}
