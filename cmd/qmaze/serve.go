package main

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"qmaze/internal/api"
	"qmaze/internal/config"
)

func newServeCommand(cfg config.Config, stderr io.Writer) *cobra.Command {
	addr := cfg.HTTPAddr

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			router, err := newRouter(cfg, addr, stderr)
			if err != nil {
				return err
			}
			return router.Run()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", addr, "listen address")
	return cmd
}

func newRouter(cfg config.Config, addr string, stderr io.Writer) (*api.Router, error) {
	gin.SetMode(cfg.GinMode)
	log := newLogger(stderr, cfg.Level())

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	defaults := cfg.Engine()
	defaults.Verbose = false
	solve, err := api.NewSolveController(defaults, cfg.MaxGridCells, api.NewMetrics(reg), log)
	if err != nil {
		return nil, err
	}

	return api.NewRouter(api.Config{
		Addr:        addr,
		BaseURL:     "/api",
		Controllers: []api.Controller{solve},
		Gatherer:    reg,
		Logger:      log,
	}), nil
}
