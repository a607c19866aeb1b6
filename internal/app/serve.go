package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agbru/numkit/internal/logging"
	"github.com/agbru/numkit/internal/orchestration"
	"github.com/agbru/numkit/internal/server"
)

func (a *Application) newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the numeric utilities over HTTP",
		Long: `Serve the JSON API (/api/sum, /api/nonempty, /api/sortsum,
/api/fibonacci, /api/distance, /api/area, /api/person), /health and the
Prometheus /metrics endpoint until SIGINT or SIGTERM.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := a.newServer()
			if err != nil {
				return err
			}
			return srv.Start(ctx)
		},
	}
	f := cmd.Flags()
	f.StringVar(&a.Config.ServerAddr, "addr", a.Config.ServerAddr, "Listen address")
	f.StringVar(&a.Config.CORSOrigins, "cors-origins", a.Config.CORSOrigins, "Comma-separated CORS origins (* for any, empty to disable)")
	f.Uint64Var(&a.Config.MaxN, "max-n", a.Config.MaxN, "Largest Fibonacci index accepted")
	f.StringVar(&a.Config.Algo, "algo", a.Config.Algo, "Default Fibonacci algorithm")
	return cmd
}

// newServer builds the HTTP server from the resolved configuration.
func (a *Application) newServer() (*server.Server, error) {
	algo := a.Config.Algo
	if algo == orchestration.AllAlgorithms {
		algo = ""
	} else if _, err := a.Factory.Get(algo); err != nil {
		return nil, err
	}

	security := server.DefaultSecurityConfig()
	security.AllowedOrigins = server.ParseOrigins(a.Config.CORSOrigins)
	security.EnableCORS = len(security.AllowedOrigins) > 0
	security.MaxNValue = a.Config.MaxN

	a.Logger.Debug("server configured",
		logging.String("addr", a.Config.ServerAddr),
		logging.Int("cors_origins", len(security.AllowedOrigins)),
		logging.Uint64("max_n", security.MaxNValue),
	)
	return server.NewServer(a.Factory, server.Config{
		Addr:           a.Config.ServerAddr,
		DefaultAlgo:    algo,
		RequestTimeout: a.Config.Timeout,
		Version:        Version,
	}, security, a.Logger), nil
}
